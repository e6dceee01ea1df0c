package entities

import (
	"math"
	"testing"

	"github.com/decker502/prism/pkg/components"
	"github.com/decker502/prism/pkg/config"
	"github.com/decker502/prism/pkg/ecs"
	"github.com/decker502/prism/pkg/physics"
	"github.com/decker502/prism/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func button(color types.LightColor, id int, delayMs *float64) config.EntityInstance {
	return config.EntityInstance{
		Identifier: config.EntityButton,
		Pos:        mgl64.Vec2{20, 30},
		Fields: config.EntityFields{
			LightColor:        &color,
			ID:                &id,
			ActivationDelayMs: delayMs,
		},
	}
}

func TestNewLightSourceEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	id := NewLightSourceEntity(em, config.LightSourceConfig{
		Pos:   mgl64.Vec2{1, 2},
		Dir:   mgl64.Vec2{0, 1},
		Color: types.LightGreen,
	})

	src, ok := ecs.GetComponent[*components.LightRaySourceComponent](em, id)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec2{1, 2}, src.StartPos)
	assert.Equal(t, mgl64.Vec2{0, 1}, src.StartDir)
	assert.Equal(t, types.LightGreen, src.Color)
	assert.Zero(t, src.TimeTraveled)
}

func TestNewLightSensorEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	world := physics.NewWorld()
	cfg := config.DefaultLightPhysicsConfig()

	id, err := NewLightSensorEntity(em, world, cfg, button(types.LightRed, 2, nil))
	require.NoError(t, err)

	sensor, ok := ecs.GetComponent[*components.LightSensorComponent](em, id)
	require.True(t, ok)
	assert.Equal(t, types.CrystalColor{Color: types.LightRed, ID: 2}, sensor.ToggleColor)
	assert.InDelta(t, cfg.DefaultActivationDelay(), sensor.ActivationTimer.TargetTime, 1e-12)
	assert.Equal(t, components.SensorUnset, sensor.WasHit)

	col, ok := world.Collider(id)
	require.True(t, ok)
	assert.Equal(t, physics.SensorGroups, col.Groups)
	assert.Equal(t, mgl64.Vec2{20, 30}, col.Shape.Center)
	assert.Equal(t, mgl64.Vec2{cfg.SensorHalfExtent, cfg.SensorHalfExtent}, col.Shape.HalfExtents)

	comp, ok := ecs.GetComponent[*components.CollisionComponent](em, id)
	require.True(t, ok)
	assert.Equal(t, col.Shape, comp.Shape)
}

func TestNewLightSensorEntityDelayOverride(t *testing.T) {
	em := ecs.NewEntityManager()
	delay := 1500.0

	id, err := NewLightSensorEntity(em, nil, config.DefaultLightPhysicsConfig(), button(types.LightBlue, 0, &delay))
	require.NoError(t, err)

	sensor, _ := ecs.GetComponent[*components.LightSensorComponent](em, id)
	assert.InDelta(t, 1.5, sensor.ActivationTimer.TargetTime, 1e-12)
}

func TestNewLightSensorEntityRejectsInvalidInstance(t *testing.T) {
	em := ecs.NewEntityManager()
	world := physics.NewWorld()

	inst := button(types.LightRed, 1, nil)
	inst.Fields.LightColor = nil

	id, err := NewLightSensorEntity(em, world, config.DefaultLightPhysicsConfig(), inst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lightColor needs to be an enum field on all buttons")
	assert.Equal(t, ecs.InvalidEntity, id)
	assert.Equal(t, 0, em.EntityCount())
	assert.Equal(t, 0, world.Len())

	inst = button(types.LightRed, 1, nil)
	inst.Fields.ID = nil
	_, err = NewLightSensorEntity(em, world, config.DefaultLightPhysicsConfig(), inst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id needs to be an int field on all buttons")
}

func TestNewTerrainEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	world := physics.NewWorld()

	seg, err := NewTerrainEntity(em, world, config.TerrainConfig{
		Type: config.TerrainSegment,
		From: mgl64.Vec2{0, 0},
		To:   mgl64.Vec2{10, 0},
	})
	require.NoError(t, err)
	assert.True(t, ecs.HasComponent[*components.TerrainComponent](em, seg))

	col, ok := world.Collider(seg)
	require.True(t, ok)
	assert.Equal(t, physics.ShapeSegment, col.Shape.Kind)
	assert.Equal(t, physics.TerrainGroups, col.Groups)

	box, err := NewTerrainEntity(em, world, config.TerrainConfig{
		Type:        config.TerrainBox,
		Center:      mgl64.Vec2{5, 5},
		HalfExtents: mgl64.Vec2{2, 1},
		Angle:       90,
	})
	require.NoError(t, err)
	col, _ = world.Collider(box)
	assert.Equal(t, physics.ShapeBox, col.Shape.Kind)
	assert.InDelta(t, math.Pi/2, col.Shape.Angle, 1e-12)

	_, err = NewTerrainEntity(em, world, config.TerrainConfig{Type: "circle"})
	assert.Error(t, err)
	assert.Equal(t, 2, world.Len())
}
