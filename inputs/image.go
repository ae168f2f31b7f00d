// inputs/image.go
package inputs

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/richinsley/goshadercanvas/graphics"
)

// vflip vertically flips the provided RGBA image.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	// This is faster than calling At/Set for each pixel
	rowSize := bounds.Dx() * 4 // 4 bytes per pixel (RGBA)
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// ToRGBA converts img to tightly packed RGBA with its origin at (0,0).
func ToRGBA(img image.Image, flip bool) (*image.RGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("input image is empty")
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	if flip {
		rgba = vflip(rgba)
	}
	return rgba, nil
}

// UploadPlaceholder fills tex with a single pixel of c so that
// sampling is defined before the real image arrives.
func UploadPlaceholder(dev graphics.Device, tex graphics.Texture, c color.NRGBA) {
	dev.BindTexture(tex)
	dev.TexImage2D(1, 1, []byte{c.R, c.G, c.B, c.A})
}

// UploadImage replaces the contents of tex with img and applies the sampler.
func UploadImage(dev graphics.Device, tex graphics.Texture, img image.Image, sampler Sampler) (int, int, error) {
	rgba, err := ToRGBA(img, sampler.VFlip)
	if err != nil {
		return 0, 0, err
	}
	width, height := rgba.Rect.Dx(), rgba.Rect.Dy()

	dev.BindTexture(tex)
	dev.TexImage2D(width, height, rgba.Pix)
	sampler.Apply(dev)
	return width, height, nil
}
