package shader

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// All sources are GLSL ES 3.00 so the browser can use them directly; the
// desktop host translates them before compiling.

//go:embed glsl/vertex.glsl
var vertexSource string

//go:embed glsl/fragment.glsl
var fragmentSource string

//go:embed glsl/texture.glsl
var textureFragmentSource string

// Names of the attribute and uniforms every program is bound through.
const (
	PositionAttrib    = "a_position"
	ResolutionUniform = "u_resolution"
	TimeUniform       = "u_time"
	TextureUniform    = "u_texture"
)

// Sources is a vertex and fragment stage pair.
type Sources struct {
	Vertex   string
	Fragment string
}

// Default returns the animated plasma program.
func Default() Sources {
	return Sources{Vertex: vertexSource, Fragment: fragmentSource}
}

// Textured returns the program that samples u_texture.
func Textured() Sources {
	return Sources{Vertex: vertexSource, Fragment: textureFragmentSource}
}

// Load replaces the stages of base with the contents of the given files.
// An empty path keeps the stage from base.
func Load(base Sources, vertexPath, fragmentPath string) (Sources, error) {
	out := base
	if vertexPath != "" {
		src, err := readSource(vertexPath)
		if err != nil {
			return Sources{}, err
		}
		out.Vertex = src
	}
	if fragmentPath != "" {
		src, err := readSource(fragmentPath)
		if err != nil {
			return Sources{}, err
		}
		out.Fragment = src
	}
	return out, nil
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to read shader source %s: %w", path, err)
	}
	return string(data), nil
}
