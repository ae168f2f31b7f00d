package renderer

import (
	"errors"
	"image/color"
	"log"

	"github.com/richinsley/goshadercanvas/graphics"
	"github.com/richinsley/goshadercanvas/inputs"
	"github.com/richinsley/goshadercanvas/shader"
)

// ErrContextUnavailable is returned by New when no rendering context was supplied.
var ErrContextUnavailable = errors.New("rendering context unavailable")

// DefaultPlaceholder is the colour sampled until the texture image arrives.
var DefaultPlaceholder = color.NRGBA{R: 255, G: 0, B: 0, A: 255}

// State is the lifecycle state of a Canvas.
type State int

const (
	Uninitialized State = iota
	Initializing
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// TextureConfig enables sampling an image through u_texture.
type TextureConfig struct {
	// Source is a file path or http(s) URL.
	Source string
	// Placeholder is sampled until Source is decoded. Nil selects
	// DefaultPlaceholder.
	Placeholder *color.NRGBA
	Sampler     inputs.Sampler
	// Fetch overrides inputs.Fetch.
	Fetch inputs.FetchFunc
}

// Config wires a Canvas to its host.
type Config struct {
	Device    graphics.Device
	Surface   graphics.Surface
	Scheduler graphics.Scheduler
	Clock     graphics.Clock
	// Translator, when set, rewrites both stages before compiling.
	Translator Translator
	// Sources defaults to shader.Default, or shader.Textured when Texture is set.
	Sources    shader.Sources
	ClearColor color.NRGBA
	Texture    *TextureConfig
}

// Canvas draws one full-screen fragment program every display refresh.
type Canvas struct {
	device        graphics.Device
	surface       graphics.Surface
	scheduler     graphics.Scheduler
	clock         graphics.Clock
	translator    Translator
	clearColor    [4]float32
	textureConfig *TextureConfig

	names    map[string]string
	program  graphics.Program
	vbo      graphics.Buffer
	bindings Bindings
	texture  *inputs.TextureCell

	state   State
	start   float64
	elapsed float64
	frames  uint64
}

// New initializes the canvas: it sizes the surface, registers for resize
// events, builds the program and geometry, starts the texture load and arms
// the first frame. Shader failures are logged and do not stop it.
func New(cfg Config) (*Canvas, error) {
	if cfg.Device == nil || cfg.Surface == nil || cfg.Scheduler == nil {
		return nil, ErrContextUnavailable
	}
	clock := cfg.Clock
	if clock == nil {
		if sc, ok := cfg.Scheduler.(graphics.Clock); ok {
			clock = sc
		} else {
			return nil, errors.New("no clock available for the frame loop")
		}
	}

	c := &Canvas{
		device:     cfg.Device,
		surface:    cfg.Surface,
		scheduler:  cfg.Scheduler,
		clock:      clock,
		translator: cfg.Translator,
		clearColor: normalize(cfg.ClearColor),
		names:      make(map[string]string),
		state:      Initializing,
	}
	if cfg.Texture != nil {
		tc := *cfg.Texture
		if tc.Placeholder == nil {
			p := DefaultPlaceholder
			tc.Placeholder = &p
		}
		c.textureConfig = &tc
	}

	sources := cfg.Sources
	if sources.Vertex == "" || sources.Fragment == "" {
		def := shader.Default()
		if c.textureConfig != nil {
			def = shader.Textured()
		}
		if sources.Vertex == "" {
			sources.Vertex = def.Vertex
		}
		if sources.Fragment == "" {
			sources.Fragment = def.Fragment
		}
	}

	c.Resize()
	c.surface.OnResize(c.Resize)

	vs := c.CompileStage(graphics.VertexStage, sources.Vertex)
	fs := c.CompileStage(graphics.FragmentStage, sources.Fragment)
	c.program = c.LinkProgram(vs, fs)
	c.UploadGeometry()

	if c.textureConfig != nil {
		c.LoadTexture()
	}

	c.start = c.clock.Now()
	c.state = Running
	c.scheduler.RequestFrame(c.Frame)

	w, h := c.surface.Size()
	log.Printf("Shader canvas running at %dx%d", w, h)
	return c, nil
}

// Resize matches the drawable and the viewport to the host window.
func (c *Canvas) Resize() {
	w, h := c.surface.WindowSize()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.surface.SetSize(w, h)
	c.device.Viewport(0, 0, w, h)
}

// Frame draws one frame at clock reading now and arms the next one.
func (c *Canvas) Frame(now float64) {
	if c.state != Running {
		return
	}
	elapsed := now - c.start
	if elapsed < c.elapsed {
		elapsed = c.elapsed
	}
	c.elapsed = elapsed

	dev := c.device
	dev.ClearColor(c.clearColor[0], c.clearColor[1], c.clearColor[2], c.clearColor[3])
	dev.Clear()

	w, h := c.surface.Size()
	dev.Uniform2f(c.bindings.Resolution, float32(w), float32(h))
	dev.Uniform1f(c.bindings.Time, float32(elapsed))

	if c.texture != nil {
		dev.ActiveTexture(0)
		dev.BindTexture(c.texture.Texture())
		dev.Uniform1i(c.bindings.Texture, 0)
	}

	dev.DrawArrays(graphics.TriangleStrip, 0, quadVertexCount)
	c.frames++

	c.scheduler.RequestFrame(c.Frame)
}

// Destroy stops the loop and releases the GPU objects.
func (c *Canvas) Destroy() {
	if c.state == Stopped {
		return
	}
	c.state = Stopped
	if c.texture != nil {
		c.device.DeleteTexture(c.texture.Texture())
	}
	if c.vbo != 0 {
		c.device.DeleteBuffer(c.vbo)
	}
	if c.program != 0 {
		c.device.DeleteProgram(c.program)
	}
}

func (c *Canvas) State() State { return c.state }

// Program is the linked program, 0 if compiling or linking failed.
func (c *Canvas) Program() graphics.Program { return c.program }

func (c *Canvas) Bindings() Bindings { return c.bindings }

// Frames is the number of frames drawn.
func (c *Canvas) Frames() uint64 { return c.frames }

// Elapsed is the u_time value of the last frame.
func (c *Canvas) Elapsed() float64 { return c.elapsed }

// TextureState reports the texture load state. Canvases without a texture
// report TexturePlaceholder.
func (c *Canvas) TextureState() inputs.TextureState {
	if c.texture == nil {
		return inputs.TexturePlaceholder
	}
	return c.texture.State()
}

func normalize(c color.NRGBA) [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}
