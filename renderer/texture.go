package renderer

import (
	"image"
	"log"

	"github.com/richinsley/goshadercanvas/inputs"
)

// LoadTexture creates the texture, fills it with the placeholder colour and
// starts fetching the image. Frames sample the placeholder until the decoded
// image is uploaded on the render thread. A failed load is logged once and
// the placeholder stays; there is no retry.
func (c *Canvas) LoadTexture() {
	cfg := c.textureConfig
	if cfg == nil || c.texture != nil {
		return
	}
	dev := c.device

	tex := dev.CreateTexture()
	dev.ActiveTexture(0)
	inputs.UploadPlaceholder(dev, tex, *cfg.Placeholder)
	cfg.Sampler.Apply(dev)
	c.texture = inputs.NewTextureCell(tex)

	loader := inputs.NewLoader(c.scheduler)
	if cfg.Fetch != nil {
		loader.Fetch = cfg.Fetch
	}
	loader.Load(cfg.Source, c.textureLoaded)
}

func (c *Canvas) textureLoaded(img image.Image, err error) {
	if c.state == Stopped {
		return
	}
	var w, h int
	if err == nil {
		c.device.ActiveTexture(0)
		w, h, err = inputs.UploadImage(c.device, c.texture.Texture(), img, c.textureConfig.Sampler)
	}
	if err != nil {
		log.Printf("Texture load error: %v", err)
		c.texture.Fail(err)
		return
	}
	c.texture.Resolve(w, h)
	log.Printf("Texture loaded: %s (%dx%d)", c.textureConfig.Source, w, h)
}
