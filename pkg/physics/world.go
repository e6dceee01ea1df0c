// Package physics 提供光线模拟所需的二维空间查询服务
//
// World 保存以实体ID为键的碰撞体，支持按碰撞分组过滤的射线检测和重叠查询。
// 所有查询按实体ID升序遍历碰撞体，距离相同的命中取ID最小者，保证结果确定。
package physics

import (
	"sort"

	"github.com/decker502/prism/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// Collider 碰撞体
type Collider struct {
	Shape   Shape
	Groups  CollisionGroups
	Enabled bool
}

// RayIntersection 射线检测结果
type RayIntersection struct {
	Point        mgl64.Vec2 // 命中点
	Normal       mgl64.Vec2 // 命中面的法线（朝向射线来向）
	TimeOfImpact float64    // 沿射线的距离（以方向向量长度为单位）
}

// QueryFilter 射线检测过滤条件
type QueryFilter struct {
	Groups   CollisionGroups
	Excluded ecs.EntityID // 跳过的碰撞体，InvalidEntity 表示不排除
}

// NewQueryFilter 创建只按分组过滤的查询条件
func NewQueryFilter(groups CollisionGroups) QueryFilter {
	return QueryFilter{Groups: groups}
}

// ExcludeCollider 返回排除指定碰撞体的过滤条件，替换原有的排除项
func (f QueryFilter) ExcludeCollider(id ecs.EntityID) QueryFilter {
	f.Excluded = id
	return f
}

// IsExcluded 判断碰撞体是否被排除
func (f QueryFilter) IsExcluded(id ecs.EntityID) bool {
	return f.Excluded != ecs.InvalidEntity && f.Excluded == id
}

// RayCaster 光线系统依赖的空间查询能力
type RayCaster interface {
	// CastRayAndGetNormal 从 origin 沿 dir 投射长度为 maxToi 的射线，
	// 返回最近命中的碰撞体、命中点、法线和沿射线距离
	CastRayAndGetNormal(origin, dir mgl64.Vec2, maxToi float64, solid bool, filter QueryFilter) (ecs.EntityID, RayIntersection, bool)
}

// World 二维碰撞世界
type World struct {
	colliders map[ecs.EntityID]*Collider
	order     []ecs.EntityID // 按ID升序
}

// NewWorld 创建空的碰撞世界
func NewWorld() *World {
	return &World{
		colliders: make(map[ecs.EntityID]*Collider),
		order:     make([]ecs.EntityID, 0),
	}
}

// Insert 插入或替换实体的碰撞体（默认启用）
func (w *World) Insert(id ecs.EntityID, shape Shape, groups CollisionGroups) {
	if c, ok := w.colliders[id]; ok {
		c.Shape = shape
		c.Groups = groups
		c.Enabled = true
		return
	}
	w.colliders[id] = &Collider{Shape: shape, Groups: groups, Enabled: true}

	idx := sort.Search(len(w.order), func(i int) bool { return w.order[i] >= id })
	w.order = append(w.order, 0)
	copy(w.order[idx+1:], w.order[idx:])
	w.order[idx] = id
}

// SetShape 更新已有碰撞体的形状，碰撞体不存在时返回 false
func (w *World) SetShape(id ecs.EntityID, shape Shape) bool {
	c, ok := w.colliders[id]
	if !ok {
		return false
	}
	c.Shape = shape
	return true
}

// SetEnabled 启用或禁用碰撞体
func (w *World) SetEnabled(id ecs.EntityID, enabled bool) {
	if c, ok := w.colliders[id]; ok {
		c.Enabled = enabled
	}
}

// Remove 移除碰撞体
func (w *World) Remove(id ecs.EntityID) {
	if _, ok := w.colliders[id]; !ok {
		return
	}
	delete(w.colliders, id)
	idx := sort.Search(len(w.order), func(i int) bool { return w.order[i] >= id })
	w.order = append(w.order[:idx], w.order[idx+1:]...)
}

// Collider 返回碰撞体的副本
func (w *World) Collider(id ecs.EntityID) (Collider, bool) {
	c, ok := w.colliders[id]
	if !ok {
		return Collider{}, false
	}
	return *c, true
}

// Len 返回碰撞体数量
func (w *World) Len() int {
	return len(w.order)
}

// CastRayAndGetNormal 实现 RayCaster
func (w *World) CastRayAndGetNormal(origin, dir mgl64.Vec2, maxToi float64, solid bool, filter QueryFilter) (ecs.EntityID, RayIntersection, bool) {
	bestID := ecs.InvalidEntity
	best := RayIntersection{}
	found := false

	for _, id := range w.order {
		c := w.colliders[id]
		if !c.Enabled || filter.IsExcluded(id) || !filter.Groups.Interacts(c.Groups) {
			continue
		}
		toi, normal, ok := c.Shape.CastRay(origin, dir, maxToi, solid)
		if !ok {
			continue
		}
		if !found || toi < best.TimeOfImpact {
			found = true
			bestID = id
			best = RayIntersection{
				Point:        origin.Add(dir.Mul(toi)),
				Normal:       normal,
				TimeOfImpact: toi,
			}
		}
	}

	return bestID, best, found
}

// IntersectingWith 返回与指定碰撞体重叠且分组允许交互的所有启用碰撞体（按ID升序）
func (w *World) IntersectingWith(id ecs.EntityID) []ecs.EntityID {
	self, ok := w.colliders[id]
	if !ok || !self.Enabled {
		return nil
	}

	var result []ecs.EntityID
	for _, other := range w.order {
		if other == id {
			continue
		}
		c := w.colliders[other]
		if !c.Enabled || !self.Groups.Interacts(c.Groups) {
			continue
		}
		if self.Shape.Intersects(c.Shape) {
			result = append(result, other)
		}
	}
	return result
}
