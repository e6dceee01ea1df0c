package systems

import (
	"errors"

	"github.com/decker502/prism/pkg/components"
	"github.com/decker502/prism/pkg/config"
	"github.com/decker502/prism/pkg/ecs"
	"github.com/decker502/prism/pkg/physics"
	"github.com/decker502/prism/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrHitCountsNotReset 推进光线前没有清零传感器命中计数
var ErrHitCountsNotReset = errors.New("light sensor hit counts were not reset before the march pass")

// SpatialWorld 光线系统需要的碰撞世界能力：射线检测 + 维护白色光束段碰撞体
type SpatialWorld interface {
	physics.RayCaster
	Insert(id ecs.EntityID, shape physics.Shape, groups physics.CollisionGroups)
	SetEnabled(id ecs.EntityID, enabled bool)
}

// LightRaySystem 推进每个光源的光线并生成反射折线
//
// 每帧调用顺序：
//  1. ResetHitCounts  清零传感器命中计数
//  2. TickLightSources 增加每个光源的传播距离
//  3. March           投射、反射、标记被命中的传感器，写入光束段缓存
type LightRaySystem struct {
	em     *ecs.EntityManager
	world  SpatialWorld
	cache  *LightSegmentCache
	config *config.LightPhysicsConfig

	hitsReset bool

	// 每个光源本帧的折线，跨帧复用
	polylines [][]mgl64.Vec2
}

// NewLightRaySystem 创建光线系统
//
// 参数:
//   - em: 实体管理器
//   - world: 碰撞世界，可为 nil（没有空间查询服务时每帧静默跳过）
//   - cache: 光束段缓存
//   - cfg: 光线物理配置，nil 时使用默认值
func NewLightRaySystem(em *ecs.EntityManager, world SpatialWorld, cache *LightSegmentCache, cfg *config.LightPhysicsConfig) *LightRaySystem {
	if cfg == nil {
		cfg = config.DefaultLightPhysicsConfig()
	}
	return &LightRaySystem{
		em:     em,
		world:  world,
		cache:  cache,
		config: cfg,
	}
}

// SetWorld 更换碰撞世界（可设为 nil）
func (s *LightRaySystem) SetWorld(world SpatialWorld) {
	s.world = world
}

// ResetHitCounts 清零所有传感器的命中计数，并允许下一次 March
func (s *LightRaySystem) ResetHitCounts() {
	for _, id := range ecs.GetEntitiesWith1[*components.LightSensorComponent](s.em) {
		if sensor, ok := ecs.GetComponent[*components.LightSensorComponent](s.em, id); ok {
			sensor.HitCount = 0
		}
	}
	s.hitsReset = true
}

// TickLightSources 每个光源的传播距离增加固定的光速增量
func (s *LightRaySystem) TickLightSources() {
	for _, id := range ecs.GetEntitiesWith1[*components.LightRaySourceComponent](s.em) {
		if source, ok := ecs.GetComponent[*components.LightRaySourceComponent](s.em, id); ok {
			source.TimeTraveled += s.config.LightSpeed
		}
	}
}

// ResetLightSources 将所有光源的传播距离归零（关卡重开时调用）
func (s *LightRaySystem) ResetLightSources() {
	for _, id := range ecs.GetEntitiesWith1[*components.LightRaySourceComponent](s.em) {
		if source, ok := ecs.GetComponent[*components.LightRaySourceComponent](s.em, id); ok {
			source.TimeTraveled = 0
		}
	}
}

// March 对所有光源执行一次光线推进
//
// 先推进全部光源、标记被命中的传感器，再统一写入光束段缓存和白色光束段碰撞体，
// 因此本帧的光束段对本帧的其他光源不可见。
//
// 返回:
//   - error: 本帧之前没有调用 ResetHitCounts 时返回 ErrHitCountsNotReset，且不做任何推进
func (s *LightRaySystem) March() error {
	if !s.hitsReset {
		return ErrHitCountsNotReset
	}
	s.hitsReset = false

	// 没有空间查询服务：本帧无需模拟
	if s.world == nil {
		return nil
	}

	sources := ecs.GetEntitiesWith1[*components.LightRaySourceComponent](s.em)
	for len(s.polylines) < len(sources) {
		s.polylines = append(s.polylines, make([]mgl64.Vec2, 0, 8))
	}

	for i, id := range sources {
		source, ok := ecs.GetComponent[*components.LightRaySourceComponent](s.em, id)
		if !ok {
			s.polylines[i] = s.polylines[i][:0]
			continue
		}

		s.polylines[i], source.Struck = MarchRay(s.world, source, s.config.ImpactEpsilon, s.polylines[i], source.Struck)
		for _, hitID := range source.Struck {
			if sensor, ok := ecs.GetComponent[*components.LightSensorComponent](s.em, hitID); ok {
				sensor.HitCount++
			}
		}
	}

	s.cache.BeginFrame()
	for i, id := range sources {
		source, ok := ecs.GetComponent[*components.LightRaySourceComponent](s.em, id)
		if !ok {
			continue
		}
		first, n := s.cache.AppendPolyline(source.Color, s.polylines[i])
		if source.Color.IsWhite() {
			s.syncWhiteColliders(id, first, n)
		}
	}
	s.disableStaleWhiteColliders()

	return nil
}

// syncWhiteColliders 白色光束段携带与自身几何一致的碰撞体，使传感器能检测到穿过的白光
func (s *LightRaySystem) syncWhiteColliders(source ecs.EntityID, first, n int) {
	handles := s.cache.Handles(types.LightWhite)
	for i := first; i < first+n; i++ {
		seg, ok := ecs.GetComponent[*components.LightSegmentComponent](s.em, handles[i])
		if !ok {
			continue
		}
		seg.Source = source
		shape := WhiteSegmentShape(seg, s.config.WhiteSegmentThickness)
		s.world.Insert(handles[i], shape, physics.WhiteSegmentGroups)

		if col, ok := ecs.GetComponent[*components.CollisionComponent](s.em, handles[i]); ok {
			col.Shape = shape
			continue
		}
		ecs.AddComponent(s.em, handles[i], &components.CollisionComponent{
			Shape:  shape,
			Groups: physics.WhiteSegmentGroups,
		})
	}
}

// disableStaleWhiteColliders 禁用本帧未被写入的白色光束段碰撞体
func (s *LightRaySystem) disableStaleWhiteColliders() {
	handles := s.cache.Handles(types.LightWhite)
	for i := s.cache.Live(types.LightWhite); i < len(handles); i++ {
		s.world.SetEnabled(handles[i], false)
	}
}

// WhiteSegmentShape 返回白色光束段的碰撞盒：长度 × thickness，沿光束方向旋转
func WhiteSegmentShape(seg *components.LightSegmentComponent, thickness float64) physics.Shape {
	return physics.NewBox(seg.Midpoint, mgl64.Vec2{seg.Length / 2, thickness / 2}, seg.Angle)
}

// MarchRay 计算单个光源本帧的光线折线
//
// 从 StartPos 沿 StartDir 出发，最多投射 NumBounces()+1 次：
//   - 未命中：追加剩余距离末端点并结束
//   - 命中距离小于 epsilon：视为自相交噪声，不追加点直接结束
//   - 否则扣除命中距离，追加命中点，记录被命中的碰撞体，沿法线反射并在下一次投射中排除该碰撞体
//
// pts 和 hits 作为缓冲区被重置后复用。返回的折线至少包含起点。
func MarchRay(caster physics.RayCaster, source *components.LightRaySourceComponent, epsilon float64,
	pts []mgl64.Vec2, hits []ecs.EntityID) ([]mgl64.Vec2, []ecs.EntityID) {

	pos := source.StartPos
	dir := source.StartDir
	base := physics.NewQueryFilter(physics.RayGroups(source.Color))
	filter := base

	pts = append(pts[:0], pos)
	hits = hits[:0]
	remaining := source.TimeTraveled

	for i := 0; i < source.Color.NumBounces()+1; i++ {
		id, hit, ok := caster.CastRayAndGetNormal(pos, dir, remaining, true, filter)
		if !ok {
			pts = append(pts, pos.Add(dir.Mul(remaining)))
			break
		}

		if hit.TimeOfImpact < epsilon {
			break
		}

		remaining -= hit.TimeOfImpact
		pts = append(pts, hit.Point)
		hits = append(hits, id)

		pos = hit.Point
		dir = Reflect(dir, hit.Normal)
		filter = base.ExcludeCollider(id)
	}

	return pts, hits
}

// Reflect 将方向 d 关于单位法线 n 反射
func Reflect(d, n mgl64.Vec2) mgl64.Vec2 {
	return d.Sub(n.Mul(2 * d.Dot(n)))
}
