package components

// TimerComponent 通用一次性计时器
// 用于传感器的激活延迟：可暂停、可重置，完成后不会自动重复
type TimerComponent struct {
	Name        string  // 计时器名称，如 "sensor_activation"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒），完成后停在 TargetTime
	IsReady     bool    // 计时器是否已完成
	IsPaused    bool    // 是否暂停（暂停时 Tick 不推进）

	justFinished bool // 最近一次 Tick 是否恰好完成
}

// NewTimer 创建未开始、未暂停的计时器
func NewTimer(name string, target float64) TimerComponent {
	return TimerComponent{Name: name, TargetTime: target}
}

// Tick 推进计时器
// 暂停时不推进；已完成的计时器保持完成状态，不会再次触发 JustFinished
func (t *TimerComponent) Tick(deltaTime float64) {
	t.justFinished = false
	if t.IsPaused || t.IsReady {
		return
	}

	t.CurrentTime += deltaTime
	if t.CurrentTime >= t.TargetTime {
		t.CurrentTime = t.TargetTime
		t.IsReady = true
		t.justFinished = true
	}
}

// Reset 清零已过时间和完成状态，不改变暂停状态
func (t *TimerComponent) Reset() {
	t.CurrentTime = 0
	t.IsReady = false
	t.justFinished = false
}

// Pause 暂停计时器
func (t *TimerComponent) Pause() {
	t.IsPaused = true
}

// Unpause 恢复计时器
func (t *TimerComponent) Unpause() {
	t.IsPaused = false
}

// JustFinished 最近一次 Tick 是否从运行中变为完成
func (t *TimerComponent) JustFinished() bool {
	return t.justFinished
}
