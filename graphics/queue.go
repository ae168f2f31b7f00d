package graphics

import "sync"

// FrameQueue holds requestAnimationFrame-style callbacks. Tick runs only the
// callbacks that were armed before it started.
type FrameQueue struct {
	pending []FrameFunc
}

func (q *FrameQueue) RequestFrame(f FrameFunc) {
	if f == nil {
		return
	}
	q.pending = append(q.pending, f)
}

// Pending reports whether any callback is armed.
func (q *FrameQueue) Pending() bool {
	return len(q.pending) > 0
}

// Tick runs the armed callbacks and returns how many ran.
func (q *FrameQueue) Tick(now float64) int {
	run := q.pending
	q.pending = nil
	for _, f := range run {
		f(now)
	}
	return len(run)
}

// TaskQueue collects tasks posted from any goroutine for the render thread.
type TaskQueue struct {
	mu    sync.Mutex
	tasks []func()
}

func (q *TaskQueue) Post(task func()) {
	if task == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
}

// Drain runs every queued task on the calling goroutine and returns the count.
// Tasks posted while draining wait for the next call.
func (q *TaskQueue) Drain() int {
	q.mu.Lock()
	run := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, task := range run {
		task()
	}
	return len(run)
}
