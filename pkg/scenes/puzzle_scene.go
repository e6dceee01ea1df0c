package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"sort"

	"github.com/decker502/prism/pkg/components"
	"github.com/decker502/prism/pkg/config"
	"github.com/decker502/prism/pkg/ecs"
	"github.com/decker502/prism/pkg/entities"
	"github.com/decker502/prism/pkg/event"
	"github.com/decker502/prism/pkg/physics"
	"github.com/decker502/prism/pkg/systems"
	"github.com/decker502/prism/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var backgroundColor = color.RGBA{R: 18, G: 18, B: 28, A: 255}

// PuzzleScene 光线谜题关卡场景，同时是每帧的驱动者
//
// 每帧按固定顺序运行：
//  1. 清零传感器命中计数
//  2. 推进光源传播距离
//  3. 光线推进（写入光束段缓存和白色光束段碰撞体）
//  4. 白色光束段与传感器的重叠检测
//  5. 传感器状态机
//  6. 消费事件，切换水晶状态
type PuzzleScene struct {
	level         *config.LevelConfig
	physicsConfig *config.LightPhysicsConfig
	audio         systems.SoundPlayer

	em     *ecs.EntityManager
	world  *physics.World
	cache  *systems.LightSegmentCache
	events *event.EventQueue

	raySystem     *systems.LightRaySystem
	overlapSystem *systems.SensorOverlapSystem
	sensorSystem  *systems.LightSensorSystem
	renderSystem  *systems.LightRenderSystem

	// 被切换过奇数次的水晶组
	crystals map[types.CrystalColor]bool

	frame      uint64
	lastEvents []event.GameEvent
}

// NewPuzzleScene 根据关卡配置创建场景
//
// 参数:
//   - level: 已验证的关卡配置
//   - cfg: 光线物理配置，nil 时使用默认值
//   - audio: 音效播放器，可为 nil
func NewPuzzleScene(level *config.LevelConfig, cfg *config.LightPhysicsConfig, audio systems.SoundPlayer) (*PuzzleScene, error) {
	if level == nil {
		return nil, fmt.Errorf("level config is nil")
	}
	if cfg == nil {
		cfg = config.DefaultLightPhysicsConfig()
	}

	s := &PuzzleScene{
		physicsConfig: cfg,
		audio:         audio,
		events:        event.NewEventQueue(),
	}
	if err := s.load(level); err != nil {
		return nil, err
	}
	return s, nil
}

// load 重建实体、碰撞世界和系统
func (s *PuzzleScene) load(level *config.LevelConfig) error {
	em := ecs.NewEntityManager()
	world := physics.NewWorld()

	for i, t := range level.Terrain {
		if _, err := entities.NewTerrainEntity(em, world, t); err != nil {
			return fmt.Errorf("level %s terrain[%d]: %w", level.ID, i, err)
		}
	}
	for i, inst := range level.Entities {
		if !inst.IsSensor() {
			continue
		}
		if _, err := entities.NewLightSensorEntity(em, world, s.physicsConfig, inst); err != nil {
			return fmt.Errorf("level %s entities[%d]: %w", level.ID, i, err)
		}
	}
	for _, src := range level.LightSources {
		entities.NewLightSourceEntity(em, src)
	}

	s.level = level
	s.em = em
	s.world = world
	s.cache = systems.NewLightSegmentCache(em)
	s.raySystem = systems.NewLightRaySystem(em, world, s.cache, s.physicsConfig)
	s.overlapSystem = systems.NewSensorOverlapSystem(em, world)
	s.sensorSystem = systems.NewLightSensorSystem(em, s.events, s.audio)
	s.renderSystem = systems.NewLightRenderSystem(em, s.cache, 1)
	s.crystals = make(map[types.CrystalColor]bool)

	log.Printf("[PuzzleScene] Loaded level %s (%s): %d terrain, %d sources, %d entities",
		level.ID, level.Name, len(level.Terrain), len(level.LightSources), len(level.Entities))
	return nil
}

// LevelID 实现 game.LevelScene
func (s *PuzzleScene) LevelID() string {
	return s.level.ID
}

// Level 返回当前关卡配置
func (s *PuzzleScene) Level() *config.LevelConfig {
	return s.level
}

// Update 实现 game.Scene
func (s *PuzzleScene) Update(deltaTime float64) {
	if err := s.Step(deltaTime); err != nil {
		log.Printf("[PuzzleScene] Warning: frame %d skipped: %v", s.frame, err)
	}
}

// Step 按固定顺序运行一帧模拟
func (s *PuzzleScene) Step(deltaTime float64) error {
	s.frame++

	s.raySystem.ResetHitCounts()
	s.raySystem.TickLightSources()
	if err := s.raySystem.March(); err != nil {
		return err
	}
	s.overlapSystem.Update()
	s.sensorSystem.Update(deltaTime, s.frame)

	s.processEvents()
	return nil
}

// processEvents 消费本帧的事件
func (s *PuzzleScene) processEvents() {
	s.lastEvents = s.events.Consume()
	for _, ev := range s.lastEvents {
		switch ev.Type {
		case event.TypeCrystalToggle:
			s.crystals[ev.Crystal] = !s.crystals[ev.Crystal]
			log.Printf("[PuzzleScene] Crystal %s toggled (active=%v)", ev.Crystal, s.crystals[ev.Crystal])
		case event.TypeLevelSwitch:
			log.Printf("[PuzzleScene] Switched to level %s", ev.Level)
		}
	}
}

// SwitchLevel 切换关卡
//
// 所有传感器恢复到初始状态，所有光源传播距离归零，水晶状态清空，
// 并发出 LevelSwitch 事件（在下一次 Step 时被消费）。
// level 为 nil 或与当前关卡相同时只做重置；否则按新关卡重建场景。
func (s *PuzzleScene) SwitchLevel(level *config.LevelConfig) error {
	s.sensorSystem.ResetAll()
	s.raySystem.ResetLightSources()
	s.crystals = make(map[types.CrystalColor]bool)

	if level != nil && level != s.level {
		if err := s.load(level); err != nil {
			return err
		}
	}

	s.events.Push(event.LevelSwitch(s.level.ID, s.frame))
	return nil
}

// Restart 重开当前关卡
func (s *PuzzleScene) Restart() error {
	return s.SwitchLevel(nil)
}

// Frame 返回已运行的帧数
func (s *PuzzleScene) Frame() uint64 {
	return s.frame
}

// LastEvents 返回最近一次 Step 消费的事件
func (s *PuzzleScene) LastEvents() []event.GameEvent {
	return s.lastEvents
}

// CrystalActive 水晶组当前是否处于切换状态
func (s *PuzzleScene) CrystalActive(c types.CrystalColor) bool {
	return s.crystals[c]
}

// ActiveCrystals 返回处于切换状态的水晶组（按颜色、ID排序）
func (s *PuzzleScene) ActiveCrystals() []types.CrystalColor {
	out := make([]types.CrystalColor, 0, len(s.crystals))
	for c, active := range s.crystals {
		if active {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Color != out[j].Color {
			return out[i].Color < out[j].Color
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// LiveSegments 返回本帧某颜色的活动光束段
func (s *PuzzleScene) LiveSegments(c types.LightColor) []components.LightSegmentComponent {
	handles := s.cache.LiveHandles(c)
	out := make([]components.LightSegmentComponent, 0, len(handles))
	for _, id := range handles {
		if seg, ok := ecs.GetComponent[*components.LightSegmentComponent](s.em, id); ok {
			out = append(out, *seg)
		}
	}
	return out
}

// Sensors 返回所有传感器组件（按实体ID排序）
func (s *PuzzleScene) Sensors() []*components.LightSensorComponent {
	ids := ecs.GetEntitiesWith1[*components.LightSensorComponent](s.em)
	out := make([]*components.LightSensorComponent, 0, len(ids))
	for _, id := range ids {
		if sensor, ok := ecs.GetComponent[*components.LightSensorComponent](s.em, id); ok {
			out = append(out, sensor)
		}
	}
	return out
}

// Draw 实现 game.Scene
func (s *PuzzleScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	if s.level.Width > 0 && s.level.Height > 0 {
		b := screen.Bounds()
		s.renderSystem.SetScale(math.Min(
			float64(b.Dx())/s.level.Width,
			float64(b.Dy())/s.level.Height,
		))
	}
	s.renderSystem.Draw(screen)

	hud := fmt.Sprintf("Level %s  %s\nCrystals: %v\n[R] restart  [N] next level", s.level.ID, s.level.Name, s.ActiveCrystals())
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)
}
