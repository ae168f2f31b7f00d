package renderer

import (
	"log"
	"strings"

	"github.com/richinsley/goshadercanvas/graphics"
)

// Translator rewrites a stage into the dialect the device compiles. Names
// maps declared identifiers to the identifiers in the rewritten code.
type Translator interface {
	Translate(kind graphics.StageKind, source string) (code string, names map[string]string, err error)
}

// CompileStage compiles one stage. On failure it logs one diagnostic and
// returns the zero handle; it never returns an error.
func (c *Canvas) CompileStage(kind graphics.StageKind, source string) graphics.Shader {
	if c.translator != nil {
		code, names, err := c.translator.Translate(kind, source)
		if err != nil {
			log.Printf("Shader compilation error (%s): %v", kind, err)
			return 0
		}
		for from, to := range names {
			c.names[from] = to
		}
		source = code
	}

	dev := c.device
	s := dev.CreateShader(kind)
	if s == 0 {
		log.Printf("Shader compilation error (%s): could not create shader object", kind)
		return 0
	}
	dev.ShaderSource(s, source)
	dev.CompileShader(s)

	if !dev.ShaderCompiled(s) {
		log.Printf("Shader compilation error (%s): %s", kind, trimLog(dev.ShaderInfoLog(s)))
		dev.DeleteShader(s)
		return 0
	}
	return s
}

// LinkProgram links the two stages. Invalid stage handles are not attached,
// so the link fails with a diagnostic instead of faulting. On failure it
// logs the linker output and returns the zero handle.
func (c *Canvas) LinkProgram(vertex, fragment graphics.Shader) graphics.Program {
	dev := c.device
	program := dev.CreateProgram()
	if program == 0 {
		log.Printf("Program linking error: could not create program object")
		return 0
	}
	if vertex != 0 {
		dev.AttachShader(program, vertex)
	}
	if fragment != 0 {
		dev.AttachShader(program, fragment)
	}
	dev.LinkProgram(program)

	if !dev.ProgramLinked(program) {
		log.Printf("Program linking error: %s", trimLog(dev.ProgramInfoLog(program)))
		dev.DeleteProgram(program)
		return 0
	}

	if vertex != 0 {
		dev.DeleteShader(vertex)
	}
	if fragment != 0 {
		dev.DeleteShader(fragment)
	}
	return program
}

// name returns the identifier a declared name was rewritten to, if any.
func (c *Canvas) name(declared string) string {
	if mapped, ok := c.names[declared]; ok && mapped != "" {
		return mapped
	}
	return declared
}

// Info logs come back NUL padded from GL.
func trimLog(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}
