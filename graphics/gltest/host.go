package gltest

import "github.com/richinsley/goshadercanvas/graphics"

// Surface is a fake host window and drawable.
type Surface struct {
	WindowW, WindowH int
	W, H             int
	listeners        []func()
}

var _ graphics.Surface = (*Surface)(nil)

func NewSurface(width, height int) *Surface {
	return &Surface{WindowW: width, WindowH: height}
}

func (s *Surface) WindowSize() (int, int)    { return s.WindowW, s.WindowH }
func (s *Surface) Size() (int, int)          { return s.W, s.H }
func (s *Surface) SetSize(width, height int) { s.W, s.H = width, height }
func (s *Surface) OnResize(f func())         { s.listeners = append(s.listeners, f) }

// Listeners is the number of registered resize callbacks.
func (s *Surface) Listeners() int { return len(s.listeners) }

// Resize changes the window size and fires every resize callback.
func (s *Surface) Resize(width, height int) {
	s.WindowW, s.WindowH = width, height
	for _, f := range s.listeners {
		f()
	}
}

// Clock is a manually advanced clock.
type Clock struct {
	T float64
}

func (c *Clock) Now() float64            { return c.T }
func (c *Clock) Advance(seconds float64) { c.T += seconds }

// Scheduler runs frames only when stepped, reading time from Clock.
type Scheduler struct {
	Clock  *Clock
	frames graphics.FrameQueue
	tasks  graphics.TaskQueue
}

var _ graphics.Scheduler = (*Scheduler)(nil)

func NewScheduler(clock *Clock) *Scheduler {
	return &Scheduler{Clock: clock}
}

func (s *Scheduler) RequestFrame(f graphics.FrameFunc) { s.frames.RequestFrame(f) }
func (s *Scheduler) Post(task func())                  { s.tasks.Post(task) }

// Pending reports whether a frame callback is armed.
func (s *Scheduler) Pending() bool { return s.frames.Pending() }

// RunTasks drains posted tasks without running a frame.
func (s *Scheduler) RunTasks() int { return s.tasks.Drain() }

// Step advances the clock by dt, drains posted tasks and runs one refresh.
// It returns the number of frame callbacks that ran.
func (s *Scheduler) Step(dt float64) int {
	s.Clock.Advance(dt)
	s.tasks.Drain()
	return s.frames.Tick(s.Clock.Now())
}
