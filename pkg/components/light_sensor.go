package components

import (
	"github.com/decker502/prism/pkg/types"
)

// SensorState 传感器上一帧的受光状态
type SensorState int

const (
	// SensorUnset 从未被评估过
	SensorUnset SensorState = iota
	// SensorNotHit 上一帧未被光线命中
	SensorNotHit
	// SensorHit 上一帧被光线命中
	SensorHit
)

// String 返回状态名称
func (s SensorState) String() string {
	switch s {
	case SensorNotHit:
		return "NotHit"
	case SensorHit:
		return "Hit"
	default:
		return "Unset"
	}
}

// DefaultActivationDelay 传感器默认激活延迟（秒）
const DefaultActivationDelay = 0.3

// LightSensorComponent 光敏传感器
//
// 将"本帧是否被命中"转换为累计曝光时间和去抖后的激活信号。
// HitCount 在每次光线推进前由帧驱动清零，推进过程中累加。
type LightSensorComponent struct {
	CumulativeExposure float64            // 被光照射的累计时间（秒）
	ActivationTimer    TimerComponent     // 持续照射多久才激活
	HitCount           int                // 本帧命中该传感器的光束数量
	ToggleColor        types.CrystalColor // 激活时切换的水晶组
	WasHit             SensorState        // 上一帧的受光状态
}

// NewLightSensor 创建传感器；activationDelay<=0 时使用默认延迟
func NewLightSensor(toggle types.CrystalColor, activationDelay float64) *LightSensorComponent {
	if activationDelay <= 0 {
		activationDelay = DefaultActivationDelay
	}
	return &LightSensorComponent{
		ActivationTimer: NewTimer("sensor_activation", activationDelay),
		ToggleColor:     toggle,
		WasHit:          SensorUnset,
	}
}

// Reset 恢复到构造时的状态（关卡切换时调用）
func (s *LightSensorComponent) Reset() {
	s.ActivationTimer = NewTimer(s.ActivationTimer.Name, s.ActivationTimer.TargetTime)
	s.HitCount = 0
	s.WasHit = SensorUnset
	s.CumulativeExposure = 0
}

// IsHit 本帧是否被命中
func (s *LightSensorComponent) IsHit() bool {
	return s.HitCount > 0
}
