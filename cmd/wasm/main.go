//go:build js && wasm

package main

import (
	"flag"
	"log"
	"net/url"
	"syscall/js"

	"github.com/richinsley/goshadercanvas/options"
	"github.com/richinsley/goshadercanvas/renderer"
	"github.com/richinsley/goshadercanvas/webgl"
)

// pageOptions reads options from the page's query string. A relative
// texture is resolved against the page URL.
func pageOptions() (*options.ShaderOptions, error) {
	opts := options.New(flag.NewFlagSet("goshadercanvas", flag.ContinueOnError))

	page, err := url.Parse(js.Global().Get("location").Get("href").String())
	if err != nil {
		return nil, err
	}
	if err := opts.ApplyQuery(page.Query()); err != nil {
		return nil, err
	}
	if *opts.Texture != "" {
		ref, err := url.Parse(*opts.Texture)
		if err != nil {
			return nil, err
		}
		*opts.Texture = page.ResolveReference(ref).String()
	}
	return opts, opts.Validate()
}

func main() {
	opts, err := pageOptions()
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	host, err := webgl.New("canvas")
	if err != nil {
		log.Fatalf("Failed to create rendering context: %v", err)
	}

	cfg, err := opts.RendererConfig()
	if err != nil {
		log.Fatalf("Failed to load shader canvas configuration: %v", err)
	}
	cfg.Device = host.Device
	cfg.Surface = host
	cfg.Scheduler = host
	cfg.Clock = host

	if _, err := renderer.New(cfg); err != nil {
		log.Fatalf("Failed to initialize shader canvas: %v", err)
	}

	// The frame loop runs from requestAnimationFrame callbacks.
	select {}
}
