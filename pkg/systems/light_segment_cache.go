package systems

import (
	"math"

	"github.com/decker502/prism/pkg/components"
	"github.com/decker502/prism/pkg/ecs"
	"github.com/decker502/prism/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

// LightSegmentCache 按颜色缓存可复用的光束段句柄
//
// 每种颜色一个句柄列表，只增不减（增长到出现过的最大段数），
// 每帧改写句柄上的 LightSegmentComponent，而不是销毁再创建实体。
// 同色的多个光源在同一帧内依次占用连续的句柄，Live 记录本帧写入的数量。
type LightSegmentCache struct {
	em    *ecs.EntityManager
	table [types.LightColorCount][]ecs.EntityID
	live  [types.LightColorCount]int
}

// NewLightSegmentCache 创建光束段缓存
func NewLightSegmentCache(em *ecs.EntityManager) *LightSegmentCache {
	return &LightSegmentCache{em: em}
}

// EnsureCapacity 确保颜色的句柄数量至少为 count
// 新句柄是带有空 LightSegmentComponent 的实体；已有句柄不变
func (c *LightSegmentCache) EnsureCapacity(color types.LightColor, count int) {
	if !color.Valid() {
		return
	}
	for len(c.table[color]) < count {
		id := c.em.CreateEntity()
		ecs.AddComponent(c.em, id, &components.LightSegmentComponent{Color: color})
		c.table[color] = append(c.table[color], id)
	}
}

// Write 改写 index 处句柄的光束段数据，句柄ID保持不变
// index 超出容量时返回 false
func (c *LightSegmentCache) Write(color types.LightColor, index int, segment components.LightSegmentComponent) bool {
	if !color.Valid() || index < 0 || index >= len(c.table[color]) {
		return false
	}
	seg, ok := ecs.GetComponent[*components.LightSegmentComponent](c.em, c.table[color][index])
	if !ok {
		return false
	}
	*seg = segment
	return true
}

// BeginFrame 开始新的一帧：所有句柄标记为非活动，活动计数清零
// 句柄上的旧数据保留到下次被写入
func (c *LightSegmentCache) BeginFrame() {
	for color := range c.table {
		for _, id := range c.table[color] {
			if seg, ok := ecs.GetComponent[*components.LightSegmentComponent](c.em, id); ok {
				seg.Live = false
			}
		}
		c.live[color] = 0
	}
}

// AppendPolyline 将折线的每一对相邻点写成一个光束段，追加在本帧已写入的段之后
//
// 返回写入的第一个句柄下标和段数。点数少于2时不写入。
func (c *LightSegmentCache) AppendPolyline(color types.LightColor, pts []mgl64.Vec2) (int, int) {
	if !color.Valid() || len(pts) < 2 {
		return c.Live(color), 0
	}

	first := c.live[color]
	n := len(pts) - 1
	c.EnsureCapacity(color, first+n)

	for i := 0; i < n; i++ {
		c.Write(color, first+i, NewLightSegment(pts[i], pts[i+1], color))
	}
	c.live[color] = first + n
	return first, n
}

// Handles 返回颜色的全部句柄（只读）
func (c *LightSegmentCache) Handles(color types.LightColor) []ecs.EntityID {
	if !color.Valid() {
		return nil
	}
	return c.table[color]
}

// LiveHandles 返回本帧写入的句柄（只读）
func (c *LightSegmentCache) LiveHandles(color types.LightColor) []ecs.EntityID {
	if !color.Valid() {
		return nil
	}
	return c.table[color][:c.live[color]]
}

// Capacity 返回颜色的句柄数量
func (c *LightSegmentCache) Capacity(color types.LightColor) int {
	return len(c.Handles(color))
}

// Live 返回颜色本帧写入的段数
func (c *LightSegmentCache) Live(color types.LightColor) int {
	if !color.Valid() {
		return 0
	}
	return c.live[color]
}

// Clear 销毁所有句柄（关卡会话结束时调用）
func (c *LightSegmentCache) Clear() {
	for color := range c.table {
		for _, id := range c.table[color] {
			c.em.DestroyEntity(id)
		}
		c.table[color] = nil
		c.live[color] = 0
	}
}

// NewLightSegment 根据起止点计算光束段的中点、长度和角度
func NewLightSegment(start, end mgl64.Vec2, color types.LightColor) components.LightSegmentComponent {
	delta := end.Sub(start)
	return components.LightSegmentComponent{
		Start:    start,
		End:      end,
		Color:    color,
		Midpoint: start.Add(end).Mul(0.5),
		Length:   delta.Len(),
		Angle:    math.Atan2(delta.Y(), delta.X()),
		Live:     true,
	}
}
