package systems

import "github.com/decker502/prism/pkg/components"

// TimerAction 传感器状态转换时对激活计时器的操作
type TimerAction int

const (
	// TimerPause 暂停计时器
	TimerPause TimerAction = iota
	// TimerUnpause 恢复计时器
	TimerUnpause
	// TimerReset 清零计时器
	TimerReset
)

// String 返回操作名称
func (a TimerAction) String() string {
	switch a {
	case TimerPause:
		return "Pause"
	case TimerUnpause:
		return "Unpause"
	case TimerReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// 共享的只读操作列表，调用方不得修改
var (
	pauseActions      = []TimerAction{TimerPause}
	risingEdgeActions = []TimerAction{TimerUnpause, TimerReset}
	fallingEdgeAction = []TimerAction{TimerReset}
)

// SensorTransition 传感器状态转换表
//
//	上一状态 | 本帧命中 | 操作
//	Unset   | 任意     | 暂停（从未评估过）
//	NotHit  | 是       | 恢复并清零（上升沿开始计时）
//	Hit     | 否       | 清零（下降沿取消进度，不暂停）
//	Hit     | 是       | 无
//	NotHit  | 否       | 无
//
// 返回下一状态和按顺序执行的计时器操作。返回的切片是共享的只读数据。
func SensorTransition(prev components.SensorState, hit bool) (components.SensorState, []TimerAction) {
	next := components.SensorNotHit
	if hit {
		next = components.SensorHit
	}

	switch {
	case prev == components.SensorUnset:
		return next, pauseActions
	case prev == components.SensorNotHit && hit:
		return next, risingEdgeActions
	case prev == components.SensorHit && !hit:
		return next, fallingEdgeAction
	}
	return next, nil
}

// applyTimerActions 按顺序对计时器执行操作
func applyTimerActions(timer *components.TimerComponent, actions []TimerAction) {
	for _, a := range actions {
		switch a {
		case TimerPause:
			timer.Pause()
		case TimerUnpause:
			timer.Unpause()
		case TimerReset:
			timer.Reset()
		}
	}
}
