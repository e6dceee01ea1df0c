package physics

import (
	"math"
	"testing"

	"github.com/decker502/prism/pkg/ecs"
	"github.com/decker502/prism/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func vecNear(t *testing.T, want, got mgl64.Vec2) {
	t.Helper()
	assert.InDelta(t, want.X(), got.X(), 1e-6, "x of %v vs %v", want, got)
	assert.InDelta(t, want.Y(), got.Y(), 1e-6, "y of %v vs %v", want, got)
}

func TestCastRayAgainstSegment(t *testing.T) {
	w := NewWorld()
	w.Insert(1, NewSegment(mgl64.Vec2{10, -5}, mgl64.Vec2{10, 5}), TerrainGroups)

	filter := NewQueryFilter(RayGroups(types.LightWhite))
	id, hit, ok := w.CastRayAndGetNormal(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, 100, true, filter)
	require.True(t, ok)
	assert.Equal(t, ecs.EntityID(1), id)
	assert.InDelta(t, 10, hit.TimeOfImpact, eps)
	vecNear(t, mgl64.Vec2{10, 0}, hit.Point)
	vecNear(t, mgl64.Vec2{-1, 0}, hit.Normal)

	// 射线从另一侧射入时法线翻转
	_, hit, ok = w.CastRayAndGetNormal(mgl64.Vec2{20, 0}, mgl64.Vec2{-1, 0}, 100, true, filter)
	require.True(t, ok)
	vecNear(t, mgl64.Vec2{1, 0}, hit.Normal)
}

func TestCastRayRespectsMaxToi(t *testing.T) {
	w := NewWorld()
	w.Insert(1, NewSegment(mgl64.Vec2{10, -5}, mgl64.Vec2{10, 5}), TerrainGroups)
	filter := NewQueryFilter(RayGroups(types.LightRed))

	_, _, ok := w.CastRayAndGetNormal(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, 5, true, filter)
	assert.False(t, ok, "wall beyond travel budget should not be hit")

	_, _, ok = w.CastRayAndGetNormal(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, -1, true, filter)
	assert.False(t, ok, "negative budget never hits")

	_, _, ok = w.CastRayAndGetNormal(mgl64.Vec2{0, 0}, mgl64.Vec2{0, 1}, 100, true, filter)
	assert.False(t, ok, "parallel ray misses")
}

func TestCastRayAgainstBox(t *testing.T) {
	w := NewWorld()
	w.Insert(7, NewAxisBox(mgl64.Vec2{20, 0}, 4, 4), SensorGroups)
	filter := NewQueryFilter(RayGroups(types.LightWhite))

	id, hit, ok := w.CastRayAndGetNormal(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, 100, true, filter)
	require.True(t, ok)
	assert.Equal(t, ecs.EntityID(7), id)
	assert.InDelta(t, 16, hit.TimeOfImpact, eps)
	vecNear(t, mgl64.Vec2{-1, 0}, hit.Normal)

	// 从上方射入
	_, hit, ok = w.CastRayAndGetNormal(mgl64.Vec2{20, -30}, mgl64.Vec2{0, 1}, 100, true, filter)
	require.True(t, ok)
	assert.InDelta(t, 26, hit.TimeOfImpact, eps)
	vecNear(t, mgl64.Vec2{0, -1}, hit.Normal)

	// 起点在盒内：solid 模式下立即命中
	_, hit, ok = w.CastRayAndGetNormal(mgl64.Vec2{20, 0}, mgl64.Vec2{1, 0}, 100, true, filter)
	require.True(t, ok)
	assert.Equal(t, 0.0, hit.TimeOfImpact)

	// 非 solid 模式返回出射点
	_, hit, ok = w.CastRayAndGetNormal(mgl64.Vec2{20, 0}, mgl64.Vec2{1, 0}, 100, false, filter)
	require.True(t, ok)
	assert.InDelta(t, 4, hit.TimeOfImpact, eps)
}

func TestCastRayAgainstRotatedBox(t *testing.T) {
	w := NewWorld()
	w.Insert(1, NewBox(mgl64.Vec2{20, 0}, mgl64.Vec2{1, 1}, math.Pi/4), TerrainGroups)

	_, hit, ok := w.CastRayAndGetNormal(mgl64.Vec2{0, 0.5}, mgl64.Vec2{1, 0}, 100, true,
		NewQueryFilter(RayGroups(types.LightGreen)))
	require.True(t, ok)
	// 菱形左上边: x + |y| = 20 - √2 在 y=0.5 处
	assert.InDelta(t, 20-math.Sqrt2+0.5, hit.TimeOfImpact, 1e-6)
	vecNear(t, mgl64.Vec2{-math.Sqrt2 / 2, math.Sqrt2 / 2}, hit.Normal)
}

func TestCastRayGroupLayering(t *testing.T) {
	w := NewWorld()
	// 白光光束段横在路上
	w.Insert(3, NewBox(mgl64.Vec2{10, 0}, mgl64.Vec2{0.5, 10}, 0), WhiteSegmentGroups)
	w.Insert(4, NewSegment(mgl64.Vec2{30, -5}, mgl64.Vec2{30, 5}), TerrainGroups)

	origin, dir := mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}

	id, _, ok := w.CastRayAndGetNormal(origin, dir, 100, true, NewQueryFilter(RayGroups(types.LightWhite)))
	require.True(t, ok)
	assert.Equal(t, ecs.EntityID(4), id, "white light passes through white segments")

	id, _, ok = w.CastRayAndGetNormal(origin, dir, 100, true, NewQueryFilter(RayGroups(types.LightRed)))
	require.True(t, ok)
	assert.Equal(t, ecs.EntityID(3), id, "tinted light yields to white segments")
}

func TestCastRayExclusionAndDisabled(t *testing.T) {
	w := NewWorld()
	w.Insert(1, NewSegment(mgl64.Vec2{10, -5}, mgl64.Vec2{10, 5}), TerrainGroups)
	w.Insert(2, NewSegment(mgl64.Vec2{20, -5}, mgl64.Vec2{20, 5}), TerrainGroups)

	base := NewQueryFilter(RayGroups(types.LightBlue))
	excluded := base.ExcludeCollider(1)
	assert.Equal(t, ecs.InvalidEntity, base.Excluded, "ExcludeCollider must not mutate the receiver")
	assert.False(t, base.IsExcluded(ecs.InvalidEntity))
	assert.True(t, excluded.IsExcluded(1))

	// 只保留最近一次排除
	assert.False(t, excluded.ExcludeCollider(2).IsExcluded(1))

	id, _, ok := w.CastRayAndGetNormal(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, 100, true, excluded)
	require.True(t, ok)
	assert.Equal(t, ecs.EntityID(2), id)

	w.SetEnabled(2, false)
	_, _, ok = w.CastRayAndGetNormal(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, 100, true, excluded)
	assert.False(t, ok)

	w.Remove(1)
	assert.Equal(t, 1, w.Len())
	_, exists := w.Collider(1)
	assert.False(t, exists)
}

func TestCastRayTieBreaksOnLowestID(t *testing.T) {
	w := NewWorld()
	wall := NewSegment(mgl64.Vec2{10, -5}, mgl64.Vec2{10, 5})
	w.Insert(9, wall, TerrainGroups)
	w.Insert(5, wall, TerrainGroups)
	w.Insert(6, wall, TerrainGroups)

	for i := 0; i < 10; i++ {
		id, _, ok := w.CastRayAndGetNormal(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, 100, true,
			NewQueryFilter(RayGroups(types.LightWhite)))
		require.True(t, ok)
		assert.Equal(t, ecs.EntityID(5), id)
	}
}

func TestIntersectingWith(t *testing.T) {
	w := NewWorld()
	w.Insert(1, NewAxisBox(mgl64.Vec2{0, 0}, 4, 4), SensorGroups)
	// 穿过传感器的白色光束段
	w.Insert(2, NewBox(mgl64.Vec2{0, 0}, mgl64.Vec2{20, 0.5}, math.Pi/6), WhiteSegmentGroups)
	// 远离传感器的白色光束段
	w.Insert(3, NewBox(mgl64.Vec2{50, 50}, mgl64.Vec2{5, 0.5}, 0), WhiteSegmentGroups)
	// 与传感器重叠但不交互的地形
	w.Insert(4, NewSegment(mgl64.Vec2{-10, 0}, mgl64.Vec2{10, 0}), CollisionGroups{Memberships: GroupTerrain, Filter: GroupTerrain})

	assert.Equal(t, []ecs.EntityID{2}, w.IntersectingWith(1))

	w.SetEnabled(2, false)
	assert.Empty(t, w.IntersectingWith(1))
	assert.Nil(t, w.IntersectingWith(99))
}

func TestShapeIntersectsSegmentAndBox(t *testing.T) {
	box := NewAxisBox(mgl64.Vec2{0, 0}, 1, 1)
	assert.True(t, box.Intersects(NewSegment(mgl64.Vec2{-5, 0}, mgl64.Vec2{5, 0})))
	assert.True(t, box.Intersects(NewSegment(mgl64.Vec2{1, 1}, mgl64.Vec2{3, 3})), "touching counts")
	assert.False(t, box.Intersects(NewSegment(mgl64.Vec2{2, -5}, mgl64.Vec2{2, 5})))
	// 对角线线段在角外侧擦过
	assert.False(t, box.Intersects(NewSegment(mgl64.Vec2{0, 3}, mgl64.Vec2{3, 0})))
}

func TestCollisionGroupsInteracts(t *testing.T) {
	assert.True(t, RayGroups(types.LightWhite).Interacts(SensorGroups))
	assert.True(t, RayGroups(types.LightRed).Interacts(SensorGroups))
	assert.True(t, RayGroups(types.LightBlue).Interacts(TerrainGroups))
	assert.False(t, RayGroups(types.LightWhite).Interacts(WhiteSegmentGroups))
	assert.True(t, RayGroups(types.LightGreen).Interacts(WhiteSegmentGroups))
	assert.True(t, SensorGroups.Interacts(WhiteSegmentGroups))
	assert.Equal(t, GroupRedRay, ColorGroup(types.LightRed))

	// 零值分组不与任何碰撞体交互
	assert.False(t, CollisionGroups{}.Interacts(TerrainGroups))
	assert.False(t, TerrainGroups.Interacts(CollisionGroups{}))
}
