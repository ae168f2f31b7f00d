//go:build js && wasm

package webgl

import (
	"fmt"
	"syscall/js"

	"github.com/richinsley/goshadercanvas/graphics"
)

// Host is a <canvas> element and its WebGL2 context. It provides the
// Device, Surface, Scheduler and Clock for the canvas renderer; everything
// runs on the browser's event loop.
type Host struct {
	*Device
	window   js.Value
	canvas   js.Value
	frames   graphics.FrameQueue
	tasks    graphics.TaskQueue
	tick     js.Func
	armed    bool
	funcs    []js.Func
	onResize []func()
}

var (
	_ graphics.Surface   = (*Host)(nil)
	_ graphics.Scheduler = (*Host)(nil)
	_ graphics.Clock     = (*Host)(nil)
)

// New looks up the canvas element by id and acquires a WebGL2 context.
func New(canvasID string) (*Host, error) {
	window := js.Global()
	doc := window.Get("document")
	canvas := doc.Call("getElementById", canvasID)
	if !valid(canvas) {
		return nil, fmt.Errorf("canvas element %q not found", canvasID)
	}
	gl := canvas.Call("getContext", "webgl2")
	if !valid(gl) {
		return nil, fmt.Errorf("WebGL2 not supported")
	}

	h := &Host{
		Device: newDevice(gl),
		window: window,
		canvas: canvas,
	}
	h.tick = js.FuncOf(func(this js.Value, args []js.Value) any {
		h.armed = false
		now := h.Now()
		if len(args) > 0 && args[0].Type() == js.TypeNumber {
			now = args[0].Float() / 1000
		}
		h.tasks.Drain()
		h.frames.Tick(now)
		return nil
	})
	h.funcs = append(h.funcs, h.tick)

	resize := js.FuncOf(func(this js.Value, args []js.Value) any {
		for _, f := range h.onResize {
			f()
		}
		return nil
	})
	h.funcs = append(h.funcs, resize)
	window.Call("addEventListener", "resize", resize)

	return h, nil
}

func (h *Host) WindowSize() (int, int) {
	return h.window.Get("innerWidth").Int(), h.window.Get("innerHeight").Int()
}

func (h *Host) Size() (int, int) {
	return h.canvas.Get("width").Int(), h.canvas.Get("height").Int()
}

func (h *Host) SetSize(width, height int) {
	h.canvas.Set("width", width)
	h.canvas.Set("height", height)
}

func (h *Host) OnResize(f func()) {
	h.onResize = append(h.onResize, f)
}

func (h *Host) RequestFrame(f graphics.FrameFunc) {
	h.frames.RequestFrame(f)
	h.arm()
}

// Post queues task for the next animation frame. Goroutines in wasm share
// the browser thread, so tasks still run between frames.
func (h *Host) Post(task func()) {
	h.tasks.Post(task)
	h.arm()
}

func (h *Host) arm() {
	if h.armed {
		return
	}
	h.armed = true
	h.window.Call("requestAnimationFrame", h.tick)
}

// Now reads performance.now() in seconds, the clock requestAnimationFrame
// timestamps use.
func (h *Host) Now() float64 {
	return h.window.Get("performance").Call("now").Float() / 1000
}

// Release frees the Go callbacks registered with the browser.
func (h *Host) Release() {
	for _, f := range h.funcs {
		f.Release()
	}
	h.funcs = nil
}
