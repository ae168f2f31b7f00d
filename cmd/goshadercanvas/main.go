//go:build !js

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/richinsley/goshadercanvas/encoder"
	"github.com/richinsley/goshadercanvas/gldevice"
	"github.com/richinsley/goshadercanvas/glfwcontext"
	"github.com/richinsley/goshadercanvas/options"
	"github.com/richinsley/goshadercanvas/renderer"
	"github.com/richinsley/goshadercanvas/translator"
)

func runCanvas(opts *options.ShaderOptions) {
	record := *opts.Record

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	// If recording, the window will be hidden (headless mode)
	ctx, err := glfwcontext.New(*opts.Width, *opts.Height, "Shader Canvas", !record)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer ctx.Shutdown()

	dev, err := gldevice.New()
	if err != nil {
		log.Fatalf("Failed to create rendering context: %v", err)
	}
	defer dev.Destroy()
	log.Printf("OpenGL version: %s", dev.Version())

	cfg, err := opts.RendererConfig()
	if err != nil {
		log.Fatalf("Failed to load shader canvas configuration: %v", err)
	}
	cfg.Device = dev
	cfg.Surface = ctx
	cfg.Scheduler = ctx
	cfg.Clock = ctx

	if *opts.Translate {
		t, err := translator.NewDesktop()
		if err != nil {
			log.Fatalf("%v", err)
		}
		cfg.Translator = t
	}

	var rec *encoder.Recorder
	var target *gldevice.Offscreen
	if record {
		rec, err = encoder.NewRecorder(encoder.Settings{
			Width:      *opts.Width,
			Height:     *opts.Height,
			FPS:        *opts.FPS,
			Duration:   *opts.Duration,
			OutputFile: *opts.OutputFile,
			Codec:      *opts.Codec,
			FFmpegPath: *opts.FFMPEGPath,
		})
		if err != nil {
			log.Fatalf("Failed to create recorder: %v", err)
		}
		// Frames go to a fixed-size FBO; the hidden window only owns the context.
		target, err = gldevice.NewOffscreen(*opts.Width, *opts.Height)
		if err != nil {
			log.Fatalf("Failed to create offscreen target: %v", err)
		}
		defer target.Destroy()
		rec.AfterFrame = ctx.PollEvents
		cfg.Surface = rec
		cfg.Scheduler = rec
		cfg.Clock = rec
	}

	canvas, err := renderer.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize shader canvas: %v", err)
	}
	defer canvas.Destroy()

	if record {
		log.Println("Starting offscreen render loop...")
		if err := rec.Run(target); err != nil {
			log.Fatalf("Offscreen rendering failed: %v", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
		return
	}

	log.Println("Starting interactive render loop...")
	ctx.Run()
}

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.New(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("Shader Canvas Viewer/Recorder")
		flag.PrintDefaults()
		return
	}

	opts.ApplyEnv(os.LookupEnv)
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	runCanvas(opts)
}
