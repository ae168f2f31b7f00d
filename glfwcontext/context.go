//go:build !js

package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/goshadercanvas/graphics"
)

// Context is a glfw window with a current OpenGL 4.1 core context. It is the
// host Surface, Scheduler and Clock for the canvas and must only be used on
// the thread that called InitGraphics.
type Context struct {
	window   *glfw.Window
	width    int
	height   int
	frames   graphics.FrameQueue
	tasks    graphics.TaskQueue
	onResize []func()
}

var (
	_ graphics.Surface   = (*Context)(nil)
	_ graphics.Scheduler = (*Context)(nil)
	_ graphics.Clock     = (*Context)(nil)
)

// New creates the window and makes its context current. Hidden windows are
// used for recording and are not resizable.
func New(width, height int, title string, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{window: win}
	win.MakeContextCurrent()
	// Frames follow the display's vertical sync.
	glfw.SwapInterval(1)

	win.SetFramebufferSizeCallback(c.glfwFramebufferSizeCallback)
	return c, nil
}

// glfwFramebufferSizeCallback is called by glfw from PollEvents, on the
// render thread.
func (c *Context) glfwFramebufferSizeCallback(w *glfw.Window, width, height int) {
	for _, f := range c.onResize {
		f()
	}
}

// WindowSize is the framebuffer size of the window in device pixels.
func (c *Context) WindowSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Size() (int, int) {
	return c.width, c.height
}

// SetSize records the drawable size. glfw sizes the default framebuffer
// with the window, so there is nothing to reallocate.
func (c *Context) SetSize(width, height int) {
	c.width, c.height = width, height
}

func (c *Context) OnResize(f func()) {
	c.onResize = append(c.onResize, f)
}

func (c *Context) RequestFrame(f graphics.FrameFunc) {
	c.frames.RequestFrame(f)
}

// Post is safe to call from any goroutine.
func (c *Context) Post(task func()) {
	c.tasks.Post(task)
	glfw.PostEmptyEvent()
}

func (c *Context) Now() float64 {
	return glfw.GetTime()
}

// Run drives the render thread until the window is closed: posted tasks,
// armed frame callbacks, buffer swap, event polling.
func (c *Context) Run() {
	for !c.window.ShouldClose() {
		c.tasks.Drain()
		if c.frames.Tick(c.Now()) == 0 {
			// Nothing armed; wait for input or a posted task instead of spinning.
			glfw.WaitEvents()
			continue
		}
		c.EndFrame()
	}
}

// RunTasks drains posted tasks on the calling (render) thread.
func (c *Context) RunTasks() int {
	return c.tasks.Drain()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

// EndFrame presents the back buffer and dispatches pending window events.
func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) PollEvents() {
	glfw.PollEvents()
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

// Window returns the underlying *glfw.Window.
func (c *Context) Window() *glfw.Window {
	return c.window
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
