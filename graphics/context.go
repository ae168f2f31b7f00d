package graphics

// Surface is the drawable owned by the host window.
type Surface interface {
	// WindowSize is the current size of the host window in device pixels.
	WindowSize() (int, int)
	// Size is the current pixel size of the drawable.
	Size() (int, int)
	SetSize(width, height int)
	// OnResize registers a callback run on the render thread for every
	// host resize event.
	OnResize(func())
}

// FrameFunc is called once per display refresh with the clock reading in seconds.
type FrameFunc func(now float64)

// Scheduler drives the cooperative render thread.
type Scheduler interface {
	// RequestFrame arms f for the next display refresh. A callback requested
	// while a frame is running is deferred to the following refresh.
	RequestFrame(f FrameFunc)
	// Post queues task to run on the render thread before the next frame.
	// It is safe to call from any goroutine.
	Post(task func())
}

// Clock is a monotonic time source in seconds.
type Clock interface {
	Now() float64
}
