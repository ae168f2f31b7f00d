package inputs

import "github.com/richinsley/goshadercanvas/graphics"

// TextureState is the load state of the canvas texture.
type TextureState int

const (
	// TexturePlaceholder: the 1x1 placeholder is bound, the image is pending.
	TexturePlaceholder TextureState = iota
	// TextureLoaded: the decoded image replaced the placeholder.
	TextureLoaded
	// TextureFailed: the image could not be loaded; the placeholder stays.
	TextureFailed
)

func (s TextureState) String() string {
	switch s {
	case TexturePlaceholder:
		return "placeholder"
	case TextureLoaded:
		return "loaded"
	case TextureFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TextureCell holds a texture object and its load state. It leaves the
// placeholder state at most once. Writer and reader both live on the render
// thread, so there is no locking.
type TextureCell struct {
	texture graphics.Texture
	state   TextureState
	width   int
	height  int
	err     error
}

// NewTextureCell wraps a texture that currently holds the placeholder.
func NewTextureCell(tex graphics.Texture) *TextureCell {
	return &TextureCell{texture: tex, state: TexturePlaceholder, width: 1, height: 1}
}

func (c *TextureCell) Texture() graphics.Texture { return c.texture }
func (c *TextureCell) State() TextureState       { return c.state }
func (c *TextureCell) Err() error                { return c.err }

// Size is the pixel size of the current texture contents.
func (c *TextureCell) Size() (int, int) { return c.width, c.height }

// Resolve records that the image was uploaded. Returns false if the cell
// already left the placeholder state.
func (c *TextureCell) Resolve(width, height int) bool {
	if c.state != TexturePlaceholder {
		return false
	}
	c.state = TextureLoaded
	c.width, c.height = width, height
	return true
}

// Fail records a load failure. Returns false if the cell already left the
// placeholder state.
func (c *TextureCell) Fail(err error) bool {
	if c.state != TexturePlaceholder {
		return false
	}
	c.state = TextureFailed
	c.err = err
	return true
}
