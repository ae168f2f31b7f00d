// Package gltest provides in-memory implementations of the graphics
// interfaces for tests.
package gltest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/richinsley/goshadercanvas/graphics"
)

var (
	inputDecl   = regexp.MustCompile(`(?m)^\s*(?:in|attribute)\s+\w+\s+(\w+)\s*;`)
	uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*;`)
)

type shaderObject struct {
	kind     graphics.StageKind
	source   string
	compiled bool
	infoLog  string
	deleted  bool
}

type programObject struct {
	shaders  []graphics.Shader
	linked   bool
	infoLog  string
	attribs  map[string]graphics.Location
	uniforms map[string]graphics.Location
	names    map[graphics.Location]string
	values   map[graphics.Location][]float64
}

// TextureObject is the stored contents of a fake texture.
type TextureObject struct {
	Width, Height int
	Pixels        []byte
	Params        map[graphics.TexParam]graphics.TexValue
	Uploads       int
}

// DrawCall captures the state seen by one DrawArrays.
type DrawCall struct {
	Program  graphics.Program
	Mode     graphics.Primitive
	First    int
	Count    int
	Uniforms map[string][]float64
	// Sample is the first texel of the texture bound to unit 0, or nil.
	Sample []byte
}

// Device is a fake graphics.Device. Shaders "compile" when their braces
// balance and they define main; programs link when they hold a compiled
// vertex and fragment stage. Declared inputs and uniforms get locations in
// declaration order.
type Device struct {
	ViewportRect [4]int
	ClearRGBA    [4]float32
	Clears       int
	Draws        []DrawCall

	// FailLink forces every link to fail with this log when non-empty.
	FailLink string

	next        uint32
	shaders     map[graphics.Shader]*shaderObject
	programs    map[graphics.Program]*programObject
	buffers     map[graphics.Buffer][]float32
	textures    map[graphics.Texture]*TextureObject
	current     graphics.Program
	arrayBuffer graphics.Buffer
	activeUnit  int
	units       map[int]graphics.Texture
	attribs     map[graphics.Location]int
}

var (
	_ graphics.Device      = (*Device)(nil)
	_ graphics.PixelReader = (*Device)(nil)
)

func NewDevice() *Device {
	return &Device{
		shaders:  make(map[graphics.Shader]*shaderObject),
		programs: make(map[graphics.Program]*programObject),
		buffers:  make(map[graphics.Buffer][]float32),
		textures: make(map[graphics.Texture]*TextureObject),
		units:    make(map[int]graphics.Texture),
		attribs:  make(map[graphics.Location]int),
	}
}

func (d *Device) id() uint32 {
	d.next++
	return d.next
}

func (d *Device) Viewport(x, y, width, height int) {
	d.ViewportRect = [4]int{x, y, width, height}
}

func (d *Device) ClearColor(r, g, b, a float32) { d.ClearRGBA = [4]float32{r, g, b, a} }
func (d *Device) Clear() { d.Clears++ }

func (d *Device) CreateShader(kind graphics.StageKind) graphics.Shader {
	s := graphics.Shader(d.id())
	d.shaders[s] = &shaderObject{kind: kind}
	return s
}

func (d *Device) ShaderSource(s graphics.Shader, source string) {
	if obj, ok := d.shaders[s]; ok {
		obj.source = source
	}
}

func (d *Device) CompileShader(s graphics.Shader) {
	obj, ok := d.shaders[s]
	if !ok {
		return
	}
	obj.compiled, obj.infoLog = compile(obj.source)
}

func compile(source string) (bool, string) {
	depth := 0
	for i, line := range strings.Split(source, "\n") {
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			return false, fmt.Sprintf("ERROR: 0:%d: '}' : syntax error", i+1)
		}
	}
	if depth != 0 {
		return false, "ERROR: 0:0: '' : syntax error: unexpected end of file"
	}
	if !strings.Contains(source, "void main(") {
		return false, "ERROR: 0:0: 'main' : missing main function"
	}
	return true, ""
}

func (d *Device) ShaderCompiled(s graphics.Shader) bool {
	obj, ok := d.shaders[s]
	return ok && obj.compiled
}

func (d *Device) ShaderInfoLog(s graphics.Shader) string {
	if obj, ok := d.shaders[s]; ok {
		return obj.infoLog
	}
	return ""
}

func (d *Device) DeleteShader(s graphics.Shader) {
	if obj, ok := d.shaders[s]; ok {
		obj.deleted = true
	}
}

// ShaderDeleted reports whether DeleteShader was called for s.
func (d *Device) ShaderDeleted(s graphics.Shader) bool {
	obj, ok := d.shaders[s]
	return ok && obj.deleted
}

func (d *Device) CreateProgram() graphics.Program {
	p := graphics.Program(d.id())
	d.programs[p] = &programObject{}
	return p
}

func (d *Device) AttachShader(p graphics.Program, s graphics.Shader) {
	prog, ok := d.programs[p]
	if !ok {
		return
	}
	if _, ok := d.shaders[s]; !ok {
		return
	}
	prog.shaders = append(prog.shaders, s)
}

func (d *Device) LinkProgram(p graphics.Program) {
	prog, ok := d.programs[p]
	if !ok {
		return
	}
	prog.attribs = make(map[string]graphics.Location)
	prog.uniforms = make(map[string]graphics.Location)
	prog.names = make(map[graphics.Location]string)
	prog.values = make(map[graphics.Location][]float64)

	if d.FailLink != "" {
		prog.linked, prog.infoLog = false, d.FailLink
		return
	}

	var vertex, fragment *shaderObject
	for _, s := range prog.shaders {
		obj := d.shaders[s]
		if !obj.compiled {
			continue
		}
		switch obj.kind {
		case graphics.VertexStage:
			vertex = obj
		case graphics.FragmentStage:
			fragment = obj
		}
	}
	if vertex == nil || fragment == nil {
		prog.linked = false
		prog.infoLog = "error: program requires a compiled vertex and fragment shader"
		return
	}

	for i, m := range inputDecl.FindAllStringSubmatch(vertex.source, -1) {
		prog.attribs[m[1]] = graphics.Location(i)
	}
	loc := graphics.Location(0)
	for _, src := range []string{vertex.source, fragment.source} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			if _, dup := prog.uniforms[m[1]]; dup {
				continue
			}
			prog.uniforms[m[1]] = loc
			prog.names[loc] = m[1]
			loc++
		}
	}
	prog.linked, prog.infoLog = true, ""
}

func (d *Device) ProgramLinked(p graphics.Program) bool {
	prog, ok := d.programs[p]
	return ok && prog.linked
}

func (d *Device) ProgramInfoLog(p graphics.Program) string {
	if prog, ok := d.programs[p]; ok {
		return prog.infoLog
	}
	return ""
}

func (d *Device) UseProgram(p graphics.Program) { d.current = p }

// CurrentProgram is the last program passed to UseProgram.
func (d *Device) CurrentProgram() graphics.Program { return d.current }

func (d *Device) DeleteProgram(p graphics.Program) { delete(d.programs, p) }

func (d *Device) CreateBuffer() graphics.Buffer {
	b := graphics.Buffer(d.id())
	d.buffers[b] = nil
	return b
}

func (d *Device) BindArrayBuffer(b graphics.Buffer) { d.arrayBuffer = b }

func (d *Device) StaticArrayBufferData(data []float32) {
	if d.arrayBuffer == 0 {
		return
	}
	d.buffers[d.arrayBuffer] = append([]float32(nil), data...)
}

// BufferData returns the contents uploaded to b.
func (d *Device) BufferData(b graphics.Buffer) []float32 { return d.buffers[b] }

func (d *Device) DeleteBuffer(b graphics.Buffer) { delete(d.buffers, b) }

func (d *Device) AttribLocation(p graphics.Program, name string) graphics.Location {
	prog, ok := d.programs[p]
	if !ok || !prog.linked {
		return graphics.NoLocation
	}
	if loc, ok := prog.attribs[name]; ok {
		return loc
	}
	return graphics.NoLocation
}

func (d *Device) EnableVertexAttribArray(loc graphics.Location) {
	if loc < 0 {
		return
	}
	d.attribs[loc] = 0
}

func (d *Device) VertexAttribPointer(loc graphics.Location, size int, stride int, offset int) {
	if loc < 0 {
		return
	}
	d.attribs[loc] = size
}

// AttribSize is the component count set for loc, 0 if unset.
func (d *Device) AttribSize(loc graphics.Location) int { return d.attribs[loc] }

func (d *Device) UniformLocation(p graphics.Program, name string) graphics.Location {
	prog, ok := d.programs[p]
	if !ok || !prog.linked {
		return graphics.NoLocation
	}
	if loc, ok := prog.uniforms[name]; ok {
		return loc
	}
	return graphics.NoLocation
}

func (d *Device) setUniform(loc graphics.Location, v ...float64) {
	if loc < 0 {
		return
	}
	prog, ok := d.programs[d.current]
	if !ok || !prog.linked {
		return
	}
	prog.values[loc] = v
}

func (d *Device) Uniform1f(loc graphics.Location, v float32) { d.setUniform(loc, float64(v)) }
func (d *Device) Uniform2f(loc graphics.Location, x, y float32) {
	d.setUniform(loc, float64(x), float64(y))
}
func (d *Device) Uniform1i(loc graphics.Location, v int32) { d.setUniform(loc, float64(v)) }

func (d *Device) CreateTexture() graphics.Texture {
	t := graphics.Texture(d.id())
	d.textures[t] = &TextureObject{Params: make(map[graphics.TexParam]graphics.TexValue)}
	return t
}

func (d *Device) ActiveTexture(unit int) { d.activeUnit = unit }
func (d *Device) BindTexture(t graphics.Texture) { d.units[d.activeUnit] = t }

func (d *Device) TexImage2D(width, height int, rgba []byte) {
	tex, ok := d.textures[d.units[d.activeUnit]]
	if !ok {
		return
	}
	tex.Width, tex.Height = width, height
	tex.Pixels = append([]byte(nil), rgba...)
	tex.Uploads++
}

func (d *Device) TexParameter(param graphics.TexParam, value graphics.TexValue) {
	if tex, ok := d.textures[d.units[d.activeUnit]]; ok {
		tex.Params[param] = value
	}
}

// TextureObject returns the stored state of t, or nil.
func (d *Device) TextureObject(t graphics.Texture) *TextureObject { return d.textures[t] }

func (d *Device) DeleteTexture(t graphics.Texture) { delete(d.textures, t) }

func (d *Device) DrawArrays(mode graphics.Primitive, first, count int) {
	call := DrawCall{
		Program:  d.current,
		Mode:     mode,
		First:    first,
		Count:    count,
		Uniforms: make(map[string][]float64),
	}
	if prog, ok := d.programs[d.current]; ok && prog.linked {
		for loc, v := range prog.values {
			call.Uniforms[prog.names[loc]] = append([]float64(nil), v...)
		}
	}
	if tex, ok := d.textures[d.units[0]]; ok && len(tex.Pixels) >= 4 {
		call.Sample = append([]byte(nil), tex.Pixels[:4]...)
	}
	d.Draws = append(d.Draws, call)
}

// ReadPixels fills dst with the clear colour.
func (d *Device) ReadPixels(width, height int, dst []byte) {
	px := [4]byte{}
	for i, c := range d.ClearRGBA {
		px[i] = byte(c*255 + 0.5)
	}
	for i := 0; i+4 <= len(dst) && i < width*height*4; i += 4 {
		copy(dst[i:i+4], px[:])
	}
}
