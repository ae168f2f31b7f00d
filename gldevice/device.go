//go:build !js

// Package gldevice implements graphics.Device on desktop OpenGL 4.1 core.
package gldevice

import (
	"fmt"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshadercanvas/graphics"
)

// Add a package-level variable to ensure gl.Init() is called only once.
var glInitOnce sync.Once

// Device issues GL calls on the thread that owns the current context.
type Device struct {
	vao uint32
}

var (
	_ graphics.Device      = (*Device)(nil)
	_ graphics.PixelReader = (*Device)(nil)
)

// New loads the GL entry points for the current context and binds the vertex
// array object core profiles require. The context must be current.
func New() (*Device, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}

	d := &Device{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	return d, nil
}

// Version returns the GL_VERSION string of the current context.
func (d *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Destroy releases the vertex array object.
func (d *Device) Destroy() {
	gl.BindVertexArray(0)
	gl.DeleteVertexArrays(1, &d.vao)
}

func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (d *Device) Clear()                        { gl.Clear(gl.COLOR_BUFFER_BIT) }

func stageEnum(kind graphics.StageKind) uint32 {
	if kind == graphics.VertexStage {
		return gl.VERTEX_SHADER
	}
	return gl.FRAGMENT_SHADER
}

func (d *Device) CreateShader(kind graphics.StageKind) graphics.Shader {
	return graphics.Shader(gl.CreateShader(stageEnum(kind)))
}

func (d *Device) ShaderSource(s graphics.Shader, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

func (d *Device) CompileShader(s graphics.Shader) { gl.CompileShader(uint32(s)) }

func (d *Device) ShaderCompiled(s graphics.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ShaderInfoLog(s graphics.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(s), logLength, nil, gl.Str(logText))
	return logText
}

func (d *Device) DeleteShader(s graphics.Shader) { gl.DeleteShader(uint32(s)) }

func (d *Device) CreateProgram() graphics.Program { return graphics.Program(gl.CreateProgram()) }

func (d *Device) AttachShader(p graphics.Program, s graphics.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (d *Device) LinkProgram(p graphics.Program) { gl.LinkProgram(uint32(p)) }

func (d *Device) ProgramLinked(p graphics.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ProgramInfoLog(p graphics.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(p), logLength, nil, gl.Str(logText))
	return logText
}

func (d *Device) UseProgram(p graphics.Program)    { gl.UseProgram(uint32(p)) }
func (d *Device) DeleteProgram(p graphics.Program) { gl.DeleteProgram(uint32(p)) }

func (d *Device) CreateBuffer() graphics.Buffer {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return graphics.Buffer(vbo)
}

func (d *Device) BindArrayBuffer(b graphics.Buffer) { gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b)) }

func (d *Device) StaticArrayBufferData(data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Device) DeleteBuffer(b graphics.Buffer) {
	vbo := uint32(b)
	gl.DeleteBuffers(1, &vbo)
}

func (d *Device) AttribLocation(p graphics.Program, name string) graphics.Location {
	if p == 0 {
		return graphics.NoLocation
	}
	return graphics.Location(gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00")))
}

func (d *Device) EnableVertexAttribArray(loc graphics.Location) {
	if loc < 0 {
		return
	}
	gl.EnableVertexAttribArray(uint32(loc))
}

func (d *Device) VertexAttribPointer(loc graphics.Location, size int, stride int, offset int) {
	if loc < 0 {
		return
	}
	gl.VertexAttribPointer(uint32(loc), int32(size), gl.FLOAT, false, int32(stride), gl.PtrOffset(offset))
}

func (d *Device) UniformLocation(p graphics.Program, name string) graphics.Location {
	if p == 0 {
		return graphics.NoLocation
	}
	return graphics.Location(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (d *Device) Uniform1f(loc graphics.Location, v float32)    { gl.Uniform1f(int32(loc), v) }
func (d *Device) Uniform2f(loc graphics.Location, x, y float32) { gl.Uniform2f(int32(loc), x, y) }
func (d *Device) Uniform1i(loc graphics.Location, v int32)      { gl.Uniform1i(int32(loc), v) }

func (d *Device) CreateTexture() graphics.Texture {
	var textureID uint32
	gl.GenTextures(1, &textureID)
	return graphics.Texture(textureID)
}

func (d *Device) ActiveTexture(unit int)          { gl.ActiveTexture(gl.TEXTURE0 + uint32(unit)) }
func (d *Device) BindTexture(t graphics.Texture) { gl.BindTexture(gl.TEXTURE_2D, uint32(t)) }

func (d *Device) TexImage2D(width, height int, rgba []byte) {
	if len(rgba) < width*height*4 || len(rgba) == 0 {
		return
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(width),
		int32(height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba),
	)
}

var texParams = map[graphics.TexParam]uint32{
	graphics.TextureWrapS:     gl.TEXTURE_WRAP_S,
	graphics.TextureWrapT:     gl.TEXTURE_WRAP_T,
	graphics.TextureMinFilter: gl.TEXTURE_MIN_FILTER,
	graphics.TextureMagFilter: gl.TEXTURE_MAG_FILTER,
}

var texValues = map[graphics.TexValue]int32{
	graphics.ClampToEdge: gl.CLAMP_TO_EDGE,
	graphics.Repeat:      gl.REPEAT,
	graphics.Linear:      gl.LINEAR,
	graphics.Nearest:     gl.NEAREST,
}

func (d *Device) TexParameter(param graphics.TexParam, value graphics.TexValue) {
	pname, ok := texParams[param]
	if !ok {
		return
	}
	v, ok := texValues[value]
	if !ok {
		return
	}
	gl.TexParameteri(gl.TEXTURE_2D, pname, v)
}

func (d *Device) DeleteTexture(t graphics.Texture) {
	textureID := uint32(t)
	gl.DeleteTextures(1, &textureID)
}

func (d *Device) DrawArrays(mode graphics.Primitive, first, count int) {
	glMode := uint32(gl.TRIANGLES)
	if mode == graphics.TriangleStrip {
		glMode = gl.TRIANGLE_STRIP
	}
	gl.DrawArrays(glMode, int32(first), int32(count))
}

// ReadPixels reads the bound read framebuffer into dst as RGBA8.
func (d *Device) ReadPixels(width, height int, dst []byte) {
	if len(dst) < width*height*4 {
		return
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
}
