package components

import (
	"github.com/decker502/prism/pkg/ecs"
	"github.com/decker502/prism/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

// LightSegmentComponent 光束段
// 挂在光束段缓存分配的稳定句柄实体上，每帧被改写，不会在关卡中途销毁
type LightSegmentComponent struct {
	Start mgl64.Vec2
	End   mgl64.Vec2
	Color types.LightColor

	// 由 Start/End 推导的渲染参数
	Midpoint mgl64.Vec2 // 中点
	Length   float64    // 长度（欧氏距离）
	Angle    float64    // 从 Start 指向 End 的角度（弧度）

	// Live 本帧是否由某个光源写入；缓存中多余的句柄保留旧数据但 Live=false
	Live bool

	// Source 写入该段的白色光源；非白色段和测试构造的段为 InvalidEntity
	Source ecs.EntityID
}
