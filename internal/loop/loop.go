// internal/loop/loop.go
//
// Single-threaded cooperative microtask queue.
// Components queue work here instead of rendering inline so that a burst of
// attribute/content writes collapses into one render.
//
// Notes:
//   - Tasks queued while draining run in the same Drain call, in FIFO order.
//   - A Loop is owned by one goroutine; it takes no locks.

package loop

// Scheduler is the part of a Loop components depend on.
type Scheduler interface {
	Queue(task func())
}

// Loop is a FIFO of pending microtasks.
type Loop struct {
	tasks []func()
}

// New returns an empty Loop.
func New() *Loop { return &Loop{} }

// Queue appends task to the queue. Nil tasks are dropped.
func (l *Loop) Queue(task func()) {
	if task == nil {
		return
	}
	l.tasks = append(l.tasks, task)
}

// Len reports the number of pending tasks.
func (l *Loop) Len() int { return len(l.tasks) }

// Drain runs tasks until the queue is empty and returns how many ran.
func (l *Loop) Drain() int {
	n := 0
	for len(l.tasks) > 0 {
		task := l.tasks[0]
		l.tasks[0] = nil
		l.tasks = l.tasks[1:]
		task()
		n++
	}
	l.tasks = nil
	return n
}
