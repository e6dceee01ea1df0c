package entities

import (
	"fmt"

	"github.com/decker502/prism/pkg/components"
	"github.com/decker502/prism/pkg/config"
	"github.com/decker502/prism/pkg/ecs"
	"github.com/decker502/prism/pkg/physics"
	"github.com/go-gl/mathgl/mgl64"
)

// ColliderInserter 创建实体时登记碰撞体的能力（由 physics.World 实现）
type ColliderInserter interface {
	Insert(id ecs.EntityID, shape physics.Shape, groups physics.CollisionGroups)
}

// NewLightSourceEntity 创建一个光源实体
// 参数:
//   - em: EntityManager 实例
//   - src: 关卡中的光源配置（方向已归一化）
//
// 返回: 创建的实体ID
func NewLightSourceEntity(em *ecs.EntityManager, src config.LightSourceConfig) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.LightRaySourceComponent{
		StartPos: src.Pos,
		StartDir: src.Dir,
		Color:    src.Color,
	})
	return id
}

// NewLightSensorEntity 创建一个光敏按钮实体
//
// 按钮的碰撞盒以 inst.Pos 为中心，半边长取 cfg.SensorHalfExtent，
// 激活延迟优先使用实例字段，否则使用配置中的默认值。
//
// 返回:
//   - ecs.EntityID: 创建的实体ID
//   - error: 实例缺少必填字段时返回错误，且不创建实体
func NewLightSensorEntity(em *ecs.EntityManager, world ColliderInserter, cfg *config.LightPhysicsConfig, inst config.EntityInstance) (ecs.EntityID, error) {
	if err := inst.Validate(); err != nil {
		return ecs.InvalidEntity, err
	}
	if !inst.IsSensor() {
		return ecs.InvalidEntity, fmt.Errorf("entity %q is not a light sensor", inst.Identifier)
	}

	shape := physics.NewAxisBox(inst.Pos, cfg.SensorHalfExtent, cfg.SensorHalfExtent)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Shape:  shape,
		Groups: physics.SensorGroups,
	})
	ecs.AddComponent(em, id, components.NewLightSensor(
		inst.ToggleColor(),
		inst.ActivationDelay(cfg.DefaultActivationDelay()),
	))

	if world != nil {
		world.Insert(id, shape, physics.SensorGroups)
	}
	return id, nil
}

// NewTerrainEntity 创建一个地形（反射面）实体
// 盒形地形的角度在配置中为角度制，这里转换为弧度
func NewTerrainEntity(em *ecs.EntityManager, world ColliderInserter, t config.TerrainConfig) (ecs.EntityID, error) {
	var shape physics.Shape
	switch t.Type {
	case config.TerrainSegment:
		shape = physics.NewSegment(t.From, t.To)
	case config.TerrainBox:
		shape = physics.NewBox(t.Center, t.HalfExtents, mgl64.DegToRad(t.Angle))
	default:
		return ecs.InvalidEntity, fmt.Errorf("unknown terrain type %q", t.Type)
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TerrainComponent{})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Shape:  shape,
		Groups: physics.TerrainGroups,
	})

	if world != nil {
		world.Insert(id, shape, physics.TerrainGroups)
	}
	return id, nil
}
