// Package event 定义光线子系统向外发出的事件和单线程事件队列
package event

import "github.com/decker502/prism/pkg/types"

// Type 事件类型
type Type int

const (
	// TypeCrystalToggle 传感器激活，切换对应颜色的水晶
	TypeCrystalToggle Type = iota
	// TypeLevelSwitch 关卡切换，所有传感器需要重置
	TypeLevelSwitch
)

// String 返回事件类型名称
func (t Type) String() string {
	switch t {
	case TypeCrystalToggle:
		return "CrystalToggle"
	case TypeLevelSwitch:
		return "LevelSwitch"
	default:
		return "Unknown"
	}
}

// GameEvent 事件
// Crystal 仅对 TypeCrystalToggle 有效；Level 仅对 TypeLevelSwitch 有效
type GameEvent struct {
	Type    Type
	Crystal types.CrystalColor
	Level   string
	Frame   uint64 // 产生事件的帧号
}

// CrystalToggle 构造水晶切换事件
func CrystalToggle(color types.CrystalColor, frame uint64) GameEvent {
	return GameEvent{Type: TypeCrystalToggle, Crystal: color, Frame: frame}
}

// LevelSwitch 构造关卡切换事件
func LevelSwitch(level string, frame uint64) GameEvent {
	return GameEvent{Type: TypeLevelSwitch, Level: level, Frame: frame}
}
