package inputs

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/richinsley/goshadercanvas/graphics"
	"github.com/richinsley/goshadercanvas/graphics/gltest"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.Set(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 255})
	img.Set(0, 1, color.NRGBA{R: 70, G: 80, B: 90, A: 255})
	img.Set(1, 1, color.NRGBA{R: 100, G: 110, B: 120, A: 255})
	return img
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFetchURL(t *testing.T) {
	data := encodePNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != userAgent {
			http.Error(w, "bad agent", http.StatusForbidden)
			return
		}
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write(data)
		case "/garbage.png":
			w.Write([]byte("not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	img, err := Fetch(context.Background(), srv.URL+"/ok.png")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := img.Bounds().Size(); got != (image.Point{2, 2}) {
		t.Errorf("size = %v, want 2x2", got)
	}

	if _, err := Fetch(context.Background(), srv.URL+"/missing.png"); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("missing image error = %v, want a 404 status", err)
	}
	if _, err := Fetch(context.Background(), srv.URL+"/garbage.png"); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("garbage image error = %v, want a decode error", err)
	}
}

func TestFetchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	if err := os.WriteFile(path, encodePNG(t), 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 100 || g>>8 != 110 || b>>8 != 120 {
		t.Errorf("pixel (1,1) = %d,%d,%d, want 100,110,120", r>>8, g>>8, b>>8)
	}

	if _, err := Fetch(context.Background(), filepath.Join(t.TempDir(), "none.png")); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := Fetch(context.Background(), ""); err == nil {
		t.Error("expected an error for an empty source")
	}
}

func TestToRGBA(t *testing.T) {
	rgba, err := ToRGBA(testImage(), false)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(rgba.Pix[:4], []byte{10, 20, 30, 255}) {
		t.Errorf("first texel = %v", rgba.Pix[:4])
	}

	flipped, err := ToRGBA(testImage(), true)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(flipped.Pix[:4], []byte{70, 80, 90, 255}) {
		t.Errorf("flipped first texel = %v", flipped.Pix[:4])
	}

	// Sub-images keep their content but start at the origin.
	sub := testImage().SubImage(image.Rect(1, 1, 2, 2))
	rgba, err = ToRGBA(sub, false)
	if err != nil {
		t.Fatal(err)
	}
	if rgba.Rect.Min != (image.Point{}) || !bytes.Equal(rgba.Pix[:4], []byte{100, 110, 120, 255}) {
		t.Errorf("sub-image rect %v texel %v", rgba.Rect, rgba.Pix[:4])
	}

	if _, err := ToRGBA(nil, false); err == nil {
		t.Error("expected an error for a nil image")
	}
}

func TestUploadImageAppliesSampler(t *testing.T) {
	tests := []struct {
		name    string
		sampler Sampler
		wrap    graphics.TexValue
		filter  graphics.TexValue
	}{
		{"default", DefaultSampler(), graphics.ClampToEdge, graphics.Linear},
		{"empty", Sampler{}, graphics.ClampToEdge, graphics.Linear},
		{"repeat nearest", Sampler{Wrap: "repeat", Filter: "nearest"}, graphics.Repeat, graphics.Nearest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := gltest.NewDevice()
			tex := dev.CreateTexture()
			UploadPlaceholder(dev, tex, color.NRGBA{R: 255, A: 255})

			w, h, err := UploadImage(dev, tex, testImage(), tt.sampler)
			if err != nil {
				t.Fatal(err)
			}
			if w != 2 || h != 2 {
				t.Errorf("size = %dx%d, want 2x2", w, h)
			}
			obj := dev.TextureObject(tex)
			if obj.Uploads != 2 || len(obj.Pixels) != 16 {
				t.Errorf("uploads=%d pixels=%d", obj.Uploads, len(obj.Pixels))
			}
			for _, p := range []graphics.TexParam{graphics.TextureWrapS, graphics.TextureWrapT} {
				if obj.Params[p] != tt.wrap {
					t.Errorf("param %d = %d, want %d", p, obj.Params[p], tt.wrap)
				}
			}
			for _, p := range []graphics.TexParam{graphics.TextureMinFilter, graphics.TextureMagFilter} {
				if obj.Params[p] != tt.filter {
					t.Errorf("param %d = %d, want %d", p, obj.Params[p], tt.filter)
				}
			}
		})
	}
}

func TestSamplerValidate(t *testing.T) {
	tests := []struct {
		sampler Sampler
		wantErr bool
	}{
		{DefaultSampler(), false},
		{Sampler{Wrap: "repeat", Filter: "nearest"}, false},
		{Sampler{Wrap: "mirror"}, true},
		{Sampler{Filter: "mipmap"}, true},
	}
	for _, tt := range tests {
		if err := tt.sampler.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.sampler, err, tt.wantErr)
		}
	}
}

func TestTextureCellWritesOnce(t *testing.T) {
	cell := NewTextureCell(3)
	if cell.State() != TexturePlaceholder {
		t.Fatalf("initial state = %v", cell.State())
	}
	if w, h := cell.Size(); w != 1 || h != 1 {
		t.Errorf("placeholder size = %dx%d", w, h)
	}
	if !cell.Resolve(64, 32) {
		t.Fatal("first Resolve should succeed")
	}
	if cell.Fail(errors.New("late")) {
		t.Error("Fail after Resolve should be ignored")
	}
	if cell.State() != TextureLoaded || cell.Err() != nil {
		t.Errorf("state = %v err = %v", cell.State(), cell.Err())
	}
	if w, h := cell.Size(); w != 64 || h != 32 {
		t.Errorf("size = %dx%d, want 64x32", w, h)
	}

	failed := NewTextureCell(4)
	boom := errors.New("boom")
	if !failed.Fail(boom) || failed.Resolve(1, 1) {
		t.Error("Fail should win and block Resolve")
	}
	if failed.State() != TextureFailed || !errors.Is(failed.Err(), boom) {
		t.Errorf("state = %v err = %v", failed.State(), failed.Err())
	}
	if failed.Texture() != 4 {
		t.Errorf("Texture() = %d, want 4", failed.Texture())
	}
}

func TestLoaderPostsResult(t *testing.T) {
	clock := &gltest.Clock{}
	sched := gltest.NewScheduler(clock)
	release := make(chan struct{})

	l := NewLoader(sched)
	l.Fetch = func(ctx context.Context, src string) (image.Image, error) {
		<-release
		if src == "bad" {
			return nil, errors.New("not found")
		}
		return testImage(), nil
	}

	var mu sync.Mutex
	results := map[string]error{}
	record := func(src string) func(image.Image, error) {
		return func(img image.Image, err error) {
			mu.Lock()
			defer mu.Unlock()
			results[src] = err
		}
	}
	l.Load("good", record("good"))
	l.Load("bad", record("bad"))

	if n := sched.RunTasks(); n != 0 {
		t.Fatalf("%d results delivered before the fetch finished", n)
	}
	close(release)

	deadline := time.Now().Add(5 * time.Second)
	delivered := 0
	for delivered < 2 && time.Now().Before(deadline) {
		delivered += sched.RunTasks()
		time.Sleep(time.Millisecond)
	}
	if delivered != 2 {
		t.Fatalf("delivered %d results, want 2", delivered)
	}
	if results["good"] != nil {
		t.Errorf("good load error = %v", results["good"])
	}
	if results["bad"] == nil {
		t.Error("bad load should report an error")
	}
}
