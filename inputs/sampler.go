package inputs

import (
	"fmt"

	"github.com/richinsley/goshadercanvas/graphics"
)

// Sampler describes how the loaded image is sampled.
type Sampler struct {
	Wrap   string // "clamp" or "repeat"
	Filter string // "linear" or "nearest"
	VFlip  bool
}

// DefaultSampler clamps to edge and filters linearly on both axes.
func DefaultSampler() Sampler {
	return Sampler{Wrap: "clamp", Filter: "linear"}
}

// Validate reports unknown wrap or filter names.
func (s Sampler) Validate() error {
	switch s.Wrap {
	case "", "clamp", "repeat":
	default:
		return fmt.Errorf("unknown wrap mode %q", s.Wrap)
	}
	switch s.Filter {
	case "", "linear", "nearest":
	default:
		return fmt.Errorf("unknown filter mode %q", s.Filter)
	}
	return nil
}

// Helper to convert a wrap string to a texture parameter value.
func getWrapMode(wrap string) graphics.TexValue {
	switch wrap {
	case "repeat":
		return graphics.Repeat
	default:
		return graphics.ClampToEdge
	}
}

// Helper to convert a filter string to a texture parameter value.
func getFilterMode(filter string) graphics.TexValue {
	switch filter {
	case "nearest":
		return graphics.Nearest
	default:
		return graphics.Linear
	}
}

// Apply sets wrap and filter parameters on the currently bound texture.
func (s Sampler) Apply(dev graphics.Device) {
	wrap := getWrapMode(s.Wrap)
	filter := getFilterMode(s.Filter)
	dev.TexParameter(graphics.TextureWrapS, wrap)
	dev.TexParameter(graphics.TextureWrapT, wrap)
	dev.TexParameter(graphics.TextureMinFilter, filter)
	dev.TexParameter(graphics.TextureMagFilter, filter)
}
