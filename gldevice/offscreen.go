//go:build !js

package gldevice

import (
	"fmt"
	"log"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshadercanvas/graphics"
)

// Offscreen is a fixed-size RGBA8 framebuffer object. While bound, draws go
// to it instead of the window, so its size does not depend on the window
// system or display scaling.
type Offscreen struct {
	width     int
	height    int
	fbo       uint32
	textureID uint32
}

var _ graphics.PixelReader = (*Offscreen)(nil)

// NewOffscreen creates the framebuffer and leaves it bound for drawing and
// reading. The GL context must be current.
func NewOffscreen(width, height int) (*Offscreen, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid offscreen size %dx%d", width, height)
	}
	o := &Offscreen{width: width, height: height}

	log.Printf("Offscreen FBO: %dx%d RGBA8", width, height)
	gl.GenFramebuffers(1, &o.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, o.fbo)
	gl.GenTextures(1, &o.textureID)
	gl.BindTexture(gl.TEXTURE_2D, o.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, o.textureID, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		o.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete")
	}
	return o, nil
}

func (o *Offscreen) Size() (int, int) {
	return o.width, o.height
}

// Bind directs drawing and reading to the framebuffer.
func (o *Offscreen) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, o.fbo)
}

// ReadPixels reads the framebuffer's colour attachment into dst as RGBA8.
// Requests larger than the framebuffer are clipped to it.
func (o *Offscreen) ReadPixels(width, height int, dst []byte) {
	if width > o.width {
		width = o.width
	}
	if height > o.height {
		height = o.height
	}
	if width <= 0 || height <= 0 || len(dst) < width*height*4 {
		return
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, o.fbo)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
}

// Destroy deletes the framebuffer and rebinds the window's.
func (o *Offscreen) Destroy() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if o.fbo != 0 {
		gl.DeleteFramebuffers(1, &o.fbo)
		o.fbo = 0
	}
	if o.textureID != 0 {
		gl.DeleteTextures(1, &o.textureID)
		o.textureID = 0
	}
}
