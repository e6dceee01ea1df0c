package event

// EventQueue 单线程 FIFO 事件队列
// 光线模拟按帧同步运行，只有一个写者和一个读者，不需要加锁
type EventQueue struct {
	events []GameEvent
}

// NewEventQueue 创建空队列
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make([]GameEvent, 0, 8)}
}

// Push 追加事件
func (eq *EventQueue) Push(ev GameEvent) {
	eq.events = append(eq.events, ev)
}

// Consume 按 FIFO 顺序取出所有待处理事件并清空队列
// 没有事件时返回 nil
func (eq *EventQueue) Consume() []GameEvent {
	if len(eq.events) == 0 {
		return nil
	}
	out := make([]GameEvent, len(eq.events))
	copy(out, eq.events)
	eq.events = eq.events[:0]
	return out
}

// Len 返回待处理事件数量
func (eq *EventQueue) Len() int {
	return len(eq.events)
}
