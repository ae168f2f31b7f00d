package options

import (
	"flag"
	"fmt"
	"image/color"
	"net/url"

	css "github.com/mazznoer/csscolorparser"
	"github.com/richinsley/goshadercanvas/inputs"
	"github.com/richinsley/goshadercanvas/renderer"
	"github.com/richinsley/goshadercanvas/shader"
)

// TextureEnv names the environment variable used when -texture is not set.
const TextureEnv = "SHADERCANVAS_TEXTURE"

type ShaderOptions struct {
	Help        *bool
	Width       *int
	Height      *int
	Vertex      *string // GLSL ES 3.00 vertex stage file, overrides the embedded one
	Fragment    *string // GLSL ES 3.00 fragment stage file, overrides the embedded one
	Texture     *string // image path or http(s) URL sampled through u_texture
	Placeholder *string // CSS colour shown until the texture is decoded
	Clear       *string // CSS clear colour
	Wrap        *string
	Filter      *string
	VFlip       *bool
	Translate   *bool // translate stages to desktop GLSL before compiling
	// Recording options
	Record     *bool
	Duration   *float64
	FPS        *int
	OutputFile *string
	Codec      *string
	FFMPEGPath *string

	fs *flag.FlagSet
}

// New registers every option on fs. Call fs.Parse afterwards.
func New(fs *flag.FlagSet) *ShaderOptions {
	return &ShaderOptions{
		Help:        fs.Bool("help", false, "Show help message"),
		Width:       fs.Int("width", 1280, "Width of the window or recording"),
		Height:      fs.Int("height", 720, "Height of the window or recording"),
		Vertex:      fs.String("vertex", "", "Vertex shader source file (default: embedded)"),
		Fragment:    fs.String("fragment", "", "Fragment shader source file (default: embedded)"),
		Texture:     fs.String("texture", "", "Image path or URL bound to u_texture (from "+TextureEnv+" env var if not set)"),
		Placeholder: fs.String("placeholder", "red", "Colour sampled until the texture has loaded"),
		Clear:       fs.String("clear", "black", "Clear colour"),
		Wrap:        fs.String("wrap", "clamp", "Texture wrap mode: clamp or repeat"),
		Filter:      fs.String("filter", "linear", "Texture filter: linear or nearest"),
		VFlip:       fs.Bool("vflip", false, "Flip the texture vertically on upload"),
		Translate:   fs.Bool("translate", true, "Translate shaders to desktop GLSL before compiling"),
		Record:      fs.Bool("record", false, "Enable recording mode"),
		Duration:    fs.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:         fs.Int("fps", 60, "Frames per second for recording"),
		OutputFile:  fs.String("output", "output.mp4", "Output file name for recording"),
		Codec:       fs.String("codec", "h264", "Video codec for recording: h264 or hevc"),
		FFMPEGPath:  fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		fs:          fs,
	}
}

// ApplyEnv fills unset options from the environment.
func (o *ShaderOptions) ApplyEnv(lookup func(string) (string, bool)) {
	if *o.Texture != "" {
		return
	}
	if v, ok := lookup(TextureEnv); ok {
		*o.Texture = v
	}
}

// ApplyQuery sets options from URL query parameters named like the flags.
// Unknown parameters are ignored.
func (o *ShaderOptions) ApplyQuery(query url.Values) error {
	for name, values := range query {
		if len(values) == 0 || o.fs.Lookup(name) == nil {
			continue
		}
		if err := o.fs.Set(name, values[len(values)-1]); err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
	}
	return nil
}

func (o *ShaderOptions) Validate() error {
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", *o.Width, *o.Height)
	}
	if err := o.Sampler().Validate(); err != nil {
		return err
	}
	if _, err := ParseColor(*o.Placeholder); err != nil {
		return fmt.Errorf("invalid placeholder colour: %w", err)
	}
	if _, err := ParseColor(*o.Clear); err != nil {
		return fmt.Errorf("invalid clear colour: %w", err)
	}
	if *o.Record {
		if *o.FPS <= 0 {
			return fmt.Errorf("invalid fps %d", *o.FPS)
		}
		if *o.Duration <= 0 {
			return fmt.Errorf("invalid duration %v", *o.Duration)
		}
		if *o.Codec != "h264" && *o.Codec != "hevc" {
			return fmt.Errorf("unknown codec %q", *o.Codec)
		}
	}
	return nil
}

// ParseColor parses any CSS colour string.
func ParseColor(str string) (color.NRGBA, error) {
	c, err := css.Parse(str)
	if err != nil {
		return color.NRGBA{}, err
	}

	return color.NRGBA{
		R: uint8(255 * c.R),
		G: uint8(255 * c.G),
		B: uint8(255 * c.B),
		A: uint8(255 * c.A),
	}, nil
}

func (o *ShaderOptions) Sampler() inputs.Sampler {
	return inputs.Sampler{Wrap: *o.Wrap, Filter: *o.Filter, VFlip: *o.VFlip}
}

// TextureConfig returns nil when no texture is configured.
func (o *ShaderOptions) TextureConfig() (*renderer.TextureConfig, error) {
	if *o.Texture == "" {
		return nil, nil
	}
	placeholder, err := ParseColor(*o.Placeholder)
	if err != nil {
		return nil, fmt.Errorf("invalid placeholder colour: %w", err)
	}
	return &renderer.TextureConfig{
		Source:      *o.Texture,
		Placeholder: &placeholder,
		Sampler:     o.Sampler(),
	}, nil
}

// Sources loads the shader stages, starting from the embedded pair that
// matches whether a texture is configured.
func (o *ShaderOptions) Sources() (shader.Sources, error) {
	base := shader.Default()
	if *o.Texture != "" {
		base = shader.Textured()
	}
	return shader.Load(base, *o.Vertex, *o.Fragment)
}

// RendererConfig builds the host-independent part of a renderer.Config.
func (o *ShaderOptions) RendererConfig() (renderer.Config, error) {
	var cfg renderer.Config
	var err error
	if cfg.Sources, err = o.Sources(); err != nil {
		return cfg, err
	}
	if cfg.Texture, err = o.TextureConfig(); err != nil {
		return cfg, err
	}
	if cfg.ClearColor, err = ParseColor(*o.Clear); err != nil {
		return cfg, fmt.Errorf("invalid clear colour: %w", err)
	}
	return cfg, nil
}
