package components

import (
	"github.com/decker502/prism/pkg/ecs"
	"github.com/decker502/prism/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

// LightRaySourceComponent 光源（发射器）
// 由关卡加载创建；只有每帧的推进操作会修改 TimeTraveled
type LightRaySourceComponent struct {
	StartPos     mgl64.Vec2       // 发射点（世界坐标）
	StartDir     mgl64.Vec2       // 发射方向（单位向量）
	Color        types.LightColor // 光线颜色
	TimeTraveled float64          // 光线本帧可传播的距离预算，每帧增加固定的光速增量

	// Struck 本帧光线依次命中的碰撞体，由推进操作改写，缓冲区跨帧复用
	Struck []ecs.EntityID
}
