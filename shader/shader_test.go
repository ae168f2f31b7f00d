package shader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedSourcesDeclareBindings(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		symbols []string
	}{
		{"vertex", Default().Vertex, []string{"in vec2 " + PositionAttrib}},
		{"fragment", Default().Fragment, []string{ResolutionUniform, TimeUniform}},
		{"textured fragment", Textured().Fragment, []string{ResolutionUniform, TimeUniform, "sampler2D " + TextureUniform}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.HasPrefix(tt.source, "#version 300 es") {
				t.Errorf("source does not start with the GLSL ES 3.00 directive")
			}
			for _, sym := range tt.symbols {
				if !strings.Contains(tt.source, sym) {
					t.Errorf("source is missing %q", sym)
				}
			}
		})
	}
}

func TestTexturedSharesVertexStage(t *testing.T) {
	if Default().Vertex != Textured().Vertex {
		t.Error("plain and textured programs should share the vertex stage")
	}
	if Default().Fragment == Textured().Fragment {
		t.Error("textured fragment stage should differ from the plain one")
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	frag := filepath.Join(dir, "custom.frag")
	if err := os.WriteFile(frag, []byte("custom fragment"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(Default(), "", frag)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Fragment != "custom fragment" {
		t.Errorf("Fragment = %q, want override", got.Fragment)
	}
	if got.Vertex != Default().Vertex {
		t.Error("Vertex should be kept from base")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Default(), filepath.Join(t.TempDir(), "missing.vert"), "")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !strings.Contains(err.Error(), "missing.vert") {
		t.Errorf("error %q does not name the file", err)
	}
}
