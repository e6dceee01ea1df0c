package systems

import (
	"math"
	"testing"

	"github.com/decker502/prism/pkg/components"
	"github.com/decker502/prism/pkg/ecs"
	"github.com/decker502/prism/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCapacityNeverShrinks(t *testing.T) {
	em := ecs.NewEntityManager()
	cache := NewLightSegmentCache(em)

	cache.EnsureCapacity(types.LightRed, 3)
	assert.Equal(t, 3, cache.Capacity(types.LightRed))
	handles := append([]ecs.EntityID(nil), cache.Handles(types.LightRed)...)

	cache.EnsureCapacity(types.LightRed, 1)
	assert.Equal(t, 3, cache.Capacity(types.LightRed), "smaller demand does not shrink the pool")

	cache.EnsureCapacity(types.LightRed, 5)
	assert.Equal(t, 5, cache.Capacity(types.LightRed))
	assert.Equal(t, handles, cache.Handles(types.LightRed)[:3], "existing handles keep their identity")

	assert.Equal(t, 0, cache.Capacity(types.LightBlue), "colors are independent")
	assert.Equal(t, 5, em.EntityCount())

	cache.EnsureCapacity(types.LightColorCount, 4)
	assert.Nil(t, cache.Handles(types.LightColorCount))
}

func TestWriteOverwritesInPlace(t *testing.T) {
	em := ecs.NewEntityManager()
	cache := NewLightSegmentCache(em)
	cache.EnsureCapacity(types.LightGreen, 2)

	id := cache.Handles(types.LightGreen)[1]
	before, _ := ecs.GetComponent[*components.LightSegmentComponent](em, id)

	seg := NewLightSegment(mgl64.Vec2{0, 0}, mgl64.Vec2{3, 4}, types.LightGreen)
	require.True(t, cache.Write(types.LightGreen, 1, seg))

	after, _ := ecs.GetComponent[*components.LightSegmentComponent](em, id)
	assert.Same(t, before, after, "component storage is reused")
	assert.Equal(t, seg, *after)

	assert.False(t, cache.Write(types.LightGreen, 2, seg), "out of range")
	assert.False(t, cache.Write(types.LightGreen, -1, seg))
}

func TestAppendPolylineSharesPoolBetweenSources(t *testing.T) {
	em := ecs.NewEntityManager()
	cache := NewLightSegmentCache(em)

	cache.BeginFrame()
	first, n := cache.AppendPolyline(types.LightWhite, []mgl64.Vec2{{0, 0}, {10, 0}, {10, 10}})
	assert.Equal(t, 0, first)
	assert.Equal(t, 2, n)

	// 同色第二个光源接在后面，不覆盖第一个光源的段
	first, n = cache.AppendPolyline(types.LightWhite, []mgl64.Vec2{{5, 5}, {5, 20}})
	assert.Equal(t, 2, first)
	assert.Equal(t, 1, n)
	assert.Equal(t, 3, cache.Live(types.LightWhite))
	assert.Len(t, cache.LiveHandles(types.LightWhite), 3)

	// 单点折线不产生段
	_, n = cache.AppendPolyline(types.LightWhite, []mgl64.Vec2{{1, 1}})
	assert.Equal(t, 0, n)

	// 下一帧需求变小：容量不变，活动数变小，旧数据标记为非活动
	cache.BeginFrame()
	cache.AppendPolyline(types.LightWhite, []mgl64.Vec2{{0, 0}, {1, 0}})
	assert.Equal(t, 1, cache.Live(types.LightWhite))
	assert.Equal(t, 3, cache.Capacity(types.LightWhite))

	stale, _ := ecs.GetComponent[*components.LightSegmentComponent](em, cache.Handles(types.LightWhite)[2])
	assert.False(t, stale.Live)
	assert.Equal(t, mgl64.Vec2{5, 20}, stale.End, "stale handles keep their old data")
}

func TestNewLightSegmentGeometry(t *testing.T) {
	seg := NewLightSegment(mgl64.Vec2{1, 1}, mgl64.Vec2{1, 5}, types.LightRed)
	assert.Equal(t, mgl64.Vec2{1, 3}, seg.Midpoint)
	assert.Equal(t, 4.0, seg.Length)
	assert.InDelta(t, math.Pi/2, seg.Angle, 1e-12)
	assert.True(t, seg.Live)

	seg = NewLightSegment(mgl64.Vec2{0, 0}, mgl64.Vec2{-3, 0}, types.LightRed)
	assert.InDelta(t, math.Pi, seg.Angle, 1e-12)
	assert.Equal(t, 3.0, seg.Length)
}

func TestClearDestroysHandles(t *testing.T) {
	em := ecs.NewEntityManager()
	cache := NewLightSegmentCache(em)
	cache.EnsureCapacity(types.LightWhite, 2)
	cache.EnsureCapacity(types.LightBlue, 1)

	cache.Clear()
	em.RemoveMarkedEntities()

	assert.Equal(t, 0, cache.Capacity(types.LightWhite))
	assert.Equal(t, 0, em.EntityCount())
}
