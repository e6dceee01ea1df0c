package systems

import (
	"github.com/decker502/prism/pkg/components"
	"github.com/decker502/prism/pkg/ecs"
	"github.com/decker502/prism/pkg/physics"
)

// OverlapQuery 重叠查询能力
type OverlapQuery interface {
	IntersectingWith(id ecs.EntityID) []ecs.EntityID
}

// SensorOverlapSystem 统计与每个传感器重叠的白色光束，累加到 HitCount
//
// 白色光束段带有碰撞体，即使光线不是直接射向传感器，擦过传感器的白光也会被检测到。
// 计数以光束为单位：同一光源的多段只算一次，推进时已命中该传感器的光源不再重复计数。
// 必须在 LightRaySystem.March 之后、LightSensorSystem.Update 之前运行。
type SensorOverlapSystem struct {
	em    *ecs.EntityManager
	world OverlapQuery

	// 当前传感器已计数的光源，跨传感器复用
	counted []ecs.EntityID
}

// NewSensorOverlapSystem 创建重叠检测系统，world 可为 nil
func NewSensorOverlapSystem(em *ecs.EntityManager, world OverlapQuery) *SensorOverlapSystem {
	return &SensorOverlapSystem{em: em, world: world}
}

// Update 累加重叠的白色光束数量
func (s *SensorOverlapSystem) Update() {
	if s.world == nil {
		return
	}

	for _, id := range ecs.GetEntitiesWith1[*components.LightSensorComponent](s.em) {
		sensor, ok := ecs.GetComponent[*components.LightSensorComponent](s.em, id)
		if !ok {
			continue
		}
		s.counted = s.counted[:0]
		for _, other := range s.world.IntersectingWith(id) {
			seg, ok := ecs.GetComponent[*components.LightSegmentComponent](s.em, other)
			if !ok || !seg.Live {
				continue
			}
			if seg.Source != ecs.InvalidEntity {
				if containsEntity(s.counted, seg.Source) || s.struckBySource(seg.Source, id) {
					continue
				}
				s.counted = append(s.counted, seg.Source)
			}
			sensor.HitCount++
		}
	}
}

// struckBySource 光源本帧的推进是否已经命中 sensor
func (s *SensorOverlapSystem) struckBySource(source, sensor ecs.EntityID) bool {
	src, ok := ecs.GetComponent[*components.LightRaySourceComponent](s.em, source)
	return ok && containsEntity(src.Struck, sensor)
}

func containsEntity(ids []ecs.EntityID, id ecs.EntityID) bool {
	for _, e := range ids {
		if e == id {
			return true
		}
	}
	return false
}

var _ OverlapQuery = (*physics.World)(nil)
var _ SpatialWorld = (*physics.World)(nil)
