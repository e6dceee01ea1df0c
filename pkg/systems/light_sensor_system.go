package systems

import (
	"log"

	"github.com/decker502/prism/pkg/components"
	"github.com/decker502/prism/pkg/ecs"
	"github.com/decker502/prism/pkg/event"
)

// SoundButton 传感器激活音效ID
const SoundButton = "SOUND_BUTTON"

// SoundPlayer 播放音效的能力（由 game.AudioManager 实现）
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// LightSensorSystem 将每帧的命中计数转换为累计曝光和去抖后的激活信号
//
// 必须在本帧所有光源推进完成后运行。
type LightSensorSystem struct {
	em     *ecs.EntityManager
	events *event.EventQueue
	audio  SoundPlayer // 可为 nil
}

// NewLightSensorSystem 创建传感器系统
//
// 参数:
//   - em: 实体管理器
//   - events: 水晶切换事件的输出队列
//   - audio: 音效播放器，可为 nil（静音）
func NewLightSensorSystem(em *ecs.EntityManager, events *event.EventQueue, audio SoundPlayer) *LightSensorSystem {
	return &LightSensorSystem{
		em:     em,
		events: events,
		audio:  audio,
	}
}

// Update 更新所有传感器
//
// 参数:
//   - deltaTime: 自上一帧以来经过的时间（秒）
//   - frame: 当前帧号，写入水晶切换事件
func (s *LightSensorSystem) Update(deltaTime float64, frame uint64) {
	for _, id := range ecs.GetEntitiesWith1[*components.LightSensorComponent](s.em) {
		sensor, ok := ecs.GetComponent[*components.LightSensorComponent](s.em, id)
		if !ok {
			continue
		}

		if s.updateSensor(sensor, deltaTime) {
			log.Printf("[LightSensorSystem] Sensor %d activated, toggling crystals %s", id, sensor.ToggleColor)
			if s.events != nil {
				s.events.Push(event.CrystalToggle(sensor.ToggleColor, frame))
			}
			if s.audio != nil {
				s.audio.PlaySound(SoundButton)
			}
		}
	}
}

// updateSensor 执行单个传感器的一帧更新，返回本帧是否激活
func (s *LightSensorSystem) updateSensor(sensor *components.LightSensorComponent, deltaTime float64) bool {
	hit := sensor.IsHit()

	next, actions := SensorTransition(sensor.WasHit, hit)
	applyTimerActions(&sensor.ActivationTimer, actions)
	sensor.WasHit = next

	if hit {
		sensor.CumulativeExposure += deltaTime
	}

	sensor.ActivationTimer.Tick(deltaTime)
	return sensor.ActivationTimer.JustFinished()
}

// ResetAll 将所有传感器恢复到构造时的状态（关卡切换时调用）
func (s *LightSensorSystem) ResetAll() {
	for _, id := range ecs.GetEntitiesWith1[*components.LightSensorComponent](s.em) {
		if sensor, ok := ecs.GetComponent[*components.LightSensorComponent](s.em, id); ok {
			sensor.Reset()
		}
	}
}
