package options

import (
	"flag"
	"image/color"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/richinsley/goshadercanvas/inputs"
	"github.com/richinsley/goshadercanvas/shader"
)

func parse(t *testing.T, args ...string) *ShaderOptions {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	o := New(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return o
}

func TestDefaults(t *testing.T) {
	o := parse(t)
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if *o.Width != 1280 || *o.Height != 720 {
		t.Errorf("size = %dx%d, want 1280x720", *o.Width, *o.Height)
	}
	if got := o.Sampler(); got != inputs.DefaultSampler() {
		t.Errorf("Sampler() = %+v, want %+v", got, inputs.DefaultSampler())
	}
	tex, err := o.TextureConfig()
	if err != nil || tex != nil {
		t.Errorf("TextureConfig() = %v, %v; want nil, nil", tex, err)
	}
	cfg, err := o.RendererConfig()
	if err != nil {
		t.Fatalf("RendererConfig() = %v", err)
	}
	if cfg.Sources != shader.Default() {
		t.Error("untextured config does not use the default sources")
	}
	if cfg.ClearColor != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("ClearColor = %v, want opaque black", cfg.ClearColor)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"red", color.NRGBA{255, 0, 0, 255}, false},
		{"#00ff00", color.NRGBA{0, 255, 0, 255}, false},
		{"rgba(0, 0, 255, 0)", color.NRGBA{0, 0, 255, 0}, false},
		{"not-a-colour", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero width", []string{"-width", "0"}},
		{"bad wrap", []string{"-wrap", "mirror"}},
		{"bad filter", []string{"-filter", "cubic"}},
		{"bad placeholder", []string{"-placeholder", "nope"}},
		{"bad clear", []string{"-clear", "nope"}},
		{"bad fps", []string{"-record", "-fps", "0"}},
		{"bad duration", []string{"-record", "-duration", "-1"}},
		{"bad codec", []string{"-record", "-codec", "vp9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := parse(t, tt.args...).Validate(); err == nil {
				t.Errorf("Validate() accepted %v", tt.args)
			}
		})
	}

	// Recording settings only matter when recording.
	if err := parse(t, "-codec", "vp9").Validate(); err != nil {
		t.Errorf("Validate() = %v for codec without -record", err)
	}
}

func TestTextureConfig(t *testing.T) {
	o := parse(t, "-texture", "img.png", "-placeholder", "#0000ff", "-wrap", "repeat", "-vflip")
	tex, err := o.TextureConfig()
	if err != nil {
		t.Fatal(err)
	}
	if tex.Source != "img.png" {
		t.Errorf("Source = %q", tex.Source)
	}
	if tex.Placeholder == nil || *tex.Placeholder != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("Placeholder = %v", tex.Placeholder)
	}

	want := inputs.Sampler{Wrap: "repeat", Filter: "linear", VFlip: true}
	if tex.Sampler != want {
		t.Errorf("Sampler = %+v, want %+v", tex.Sampler, want)
	}
	src, err := o.Sources()
	if err != nil {
		t.Fatal(err)
	}
	if src != shader.Textured() {
		t.Error("textured config does not use the textured sources")
	}

	tex, err = parse(t, "-texture", "img.png", "-placeholder", "transparent").TextureConfig()
	if err != nil {
		t.Fatal(err)
	}
	if tex.Placeholder == nil || *tex.Placeholder != (color.NRGBA{}) {
		t.Errorf("transparent Placeholder = %v, want explicit zero colour", tex.Placeholder)
	}
}

func TestSourcesFromFiles(t *testing.T) {
	frag := filepath.Join(t.TempDir(), "frag.glsl")
	body := "#version 300 es\nvoid main() {}\n"
	if err := os.WriteFile(frag, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := parse(t, "-fragment", frag).Sources()
	if err != nil {
		t.Fatal(err)
	}
	if src.Fragment != body || src.Vertex != shader.Default().Vertex {
		t.Error("fragment override not applied")
	}

	if _, err := parse(t, "-vertex", filepath.Join(t.TempDir(), "missing.glsl")).RendererConfig(); err == nil {
		t.Error("RendererConfig() succeeded with a missing vertex file")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{TextureEnv: "https://example.com/a.png"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	o := parse(t)
	o.ApplyEnv(lookup)
	if *o.Texture != env[TextureEnv] {
		t.Errorf("Texture = %q, want env value", *o.Texture)
	}

	o = parse(t, "-texture", "local.png")
	o.ApplyEnv(lookup)
	if *o.Texture != "local.png" {
		t.Errorf("Texture = %q, flag should win over env", *o.Texture)
	}
}

func TestApplyQuery(t *testing.T) {
	o := parse(t)
	q, err := url.ParseQuery("texture=cat.jpg&filter=nearest&vflip=true&width=320&unknown=1")
	if err != nil {
		t.Fatal(err)
	}
	if err := o.ApplyQuery(q); err != nil {
		t.Fatalf("ApplyQuery() = %v", err)
	}
	if *o.Texture != "cat.jpg" || *o.Filter != "nearest" || !*o.VFlip || *o.Width != 320 {
		t.Errorf("query not applied: texture=%q filter=%q vflip=%v width=%d", *o.Texture, *o.Filter, *o.VFlip, *o.Width)
	}

	err = parse(t).ApplyQuery(url.Values{"width": {"wide"}})
	if err == nil || !strings.Contains(err.Error(), "width") {
		t.Errorf("ApplyQuery(width=wide) = %v", err)
	}
}
