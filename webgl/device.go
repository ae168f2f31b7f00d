//go:build js && wasm

// Package webgl implements the graphics interfaces on a browser canvas with
// a WebGL2 context.
package webgl

import (
	"syscall/js"

	"github.com/richinsley/goshadercanvas/graphics"
)

type glConsts struct {
	arrayBuffer      int
	staticDraw       int
	floatType        int
	triangles        int
	triangleStrip    int
	texture2D        int
	texture0         int
	rgba             int
	unsignedByte     int
	textureWrapS     int
	textureWrapT     int
	textureMinFilter int
	textureMagFilter int
	clampToEdge      int
	repeat           int
	linear           int
	nearest          int
	colorBufferBit   int
	compileStatus    int
	linkStatus       int
	vertexShader     int
	fragmentShader   int
	unpackAlignment  int
}

func loadConsts(gl js.Value) glConsts {
	return glConsts{
		arrayBuffer:      gl.Get("ARRAY_BUFFER").Int(),
		staticDraw:       gl.Get("STATIC_DRAW").Int(),
		floatType:        gl.Get("FLOAT").Int(),
		triangles:        gl.Get("TRIANGLES").Int(),
		triangleStrip:    gl.Get("TRIANGLE_STRIP").Int(),
		texture2D:        gl.Get("TEXTURE_2D").Int(),
		texture0:         gl.Get("TEXTURE0").Int(),
		rgba:             gl.Get("RGBA").Int(),
		unsignedByte:     gl.Get("UNSIGNED_BYTE").Int(),
		textureWrapS:     gl.Get("TEXTURE_WRAP_S").Int(),
		textureWrapT:     gl.Get("TEXTURE_WRAP_T").Int(),
		textureMinFilter: gl.Get("TEXTURE_MIN_FILTER").Int(),
		textureMagFilter: gl.Get("TEXTURE_MAG_FILTER").Int(),
		clampToEdge:      gl.Get("CLAMP_TO_EDGE").Int(),
		repeat:           gl.Get("REPEAT").Int(),
		linear:           gl.Get("LINEAR").Int(),
		nearest:          gl.Get("NEAREST").Int(),
		colorBufferBit:   gl.Get("COLOR_BUFFER_BIT").Int(),
		compileStatus:    gl.Get("COMPILE_STATUS").Int(),
		linkStatus:       gl.Get("LINK_STATUS").Int(),
		vertexShader:     gl.Get("VERTEX_SHADER").Int(),
		fragmentShader:   gl.Get("FRAGMENT_SHADER").Int(),
		unpackAlignment:  gl.Get("UNPACK_ALIGNMENT").Int(),
	}
}

// Device forwards graphics.Device calls to a WebGL2RenderingContext.
// WebGL hands out objects rather than integer names, so they are kept in a
// table keyed by the handles given to the caller.
type Device struct {
	gl      js.Value
	consts  glConsts
	next    uint32
	objects map[uint32]js.Value
	locs    map[graphics.Location]js.Value
	nextLoc graphics.Location
}

var _ graphics.Device = (*Device)(nil)

func newDevice(gl js.Value) *Device {
	return &Device{
		gl:      gl,
		consts:  loadConsts(gl),
		objects: make(map[uint32]js.Value),
		locs:    make(map[graphics.Location]js.Value),
	}
}

func valid(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}

func (d *Device) put(v js.Value) uint32 {
	if !valid(v) {
		return 0
	}
	d.next++
	d.objects[d.next] = v
	return d.next
}

// get returns null for unknown handles, which WebGL accepts as "no object".
func (d *Device) get(id uint32) js.Value {
	if v, ok := d.objects[id]; ok {
		return v
	}
	return js.Null()
}

func (d *Device) drop(id uint32) js.Value {
	v := d.get(id)
	delete(d.objects, id)
	return v
}

func (d *Device) Viewport(x, y, width, height int) {
	d.gl.Call("viewport", x, y, width, height)
}

func (d *Device) ClearColor(r, g, b, a float32) { d.gl.Call("clearColor", r, g, b, a) }
func (d *Device) Clear()                        { d.gl.Call("clear", d.consts.colorBufferBit) }

func (d *Device) CreateShader(kind graphics.StageKind) graphics.Shader {
	typ := d.consts.fragmentShader
	if kind == graphics.VertexStage {
		typ = d.consts.vertexShader
	}
	return graphics.Shader(d.put(d.gl.Call("createShader", typ)))
}

func (d *Device) ShaderSource(s graphics.Shader, source string) {
	d.gl.Call("shaderSource", d.get(uint32(s)), source)
}

func (d *Device) CompileShader(s graphics.Shader) {
	d.gl.Call("compileShader", d.get(uint32(s)))
}

func (d *Device) ShaderCompiled(s graphics.Shader) bool {
	return d.gl.Call("getShaderParameter", d.get(uint32(s)), d.consts.compileStatus).Truthy()
}

func (d *Device) ShaderInfoLog(s graphics.Shader) string {
	v := d.gl.Call("getShaderInfoLog", d.get(uint32(s)))
	if !valid(v) {
		return ""
	}
	return v.String()
}

func (d *Device) DeleteShader(s graphics.Shader) {
	d.gl.Call("deleteShader", d.drop(uint32(s)))
}

func (d *Device) CreateProgram() graphics.Program {
	return graphics.Program(d.put(d.gl.Call("createProgram")))
}

func (d *Device) AttachShader(p graphics.Program, s graphics.Shader) {
	d.gl.Call("attachShader", d.get(uint32(p)), d.get(uint32(s)))
}

func (d *Device) LinkProgram(p graphics.Program) {
	d.gl.Call("linkProgram", d.get(uint32(p)))
}

func (d *Device) ProgramLinked(p graphics.Program) bool {
	return d.gl.Call("getProgramParameter", d.get(uint32(p)), d.consts.linkStatus).Truthy()
}

func (d *Device) ProgramInfoLog(p graphics.Program) string {
	v := d.gl.Call("getProgramInfoLog", d.get(uint32(p)))
	if !valid(v) {
		return ""
	}
	return v.String()
}

func (d *Device) UseProgram(p graphics.Program) {
	d.gl.Call("useProgram", d.get(uint32(p)))
}

func (d *Device) DeleteProgram(p graphics.Program) {
	d.gl.Call("deleteProgram", d.drop(uint32(p)))
}

func (d *Device) CreateBuffer() graphics.Buffer {
	return graphics.Buffer(d.put(d.gl.Call("createBuffer")))
}

func (d *Device) BindArrayBuffer(b graphics.Buffer) {
	d.gl.Call("bindBuffer", d.consts.arrayBuffer, d.get(uint32(b)))
}

func (d *Device) StaticArrayBufferData(data []float32) {
	arr := js.Global().Get("Float32Array").New(len(data))
	for i, v := range data {
		arr.SetIndex(i, v)
	}
	d.gl.Call("bufferData", d.consts.arrayBuffer, arr, d.consts.staticDraw)
}

func (d *Device) DeleteBuffer(b graphics.Buffer) {
	d.gl.Call("deleteBuffer", d.drop(uint32(b)))
}

func (d *Device) AttribLocation(p graphics.Program, name string) graphics.Location {
	prog := d.get(uint32(p))
	if !valid(prog) {
		return graphics.NoLocation
	}
	return graphics.Location(d.gl.Call("getAttribLocation", prog, name).Int())
}

func (d *Device) EnableVertexAttribArray(loc graphics.Location) {
	if loc < 0 {
		return
	}
	d.gl.Call("enableVertexAttribArray", int(loc))
}

func (d *Device) VertexAttribPointer(loc graphics.Location, size int, stride int, offset int) {
	if loc < 0 {
		return
	}
	d.gl.Call("vertexAttribPointer", int(loc), size, d.consts.floatType, false, stride, offset)
}

func (d *Device) UniformLocation(p graphics.Program, name string) graphics.Location {
	prog := d.get(uint32(p))
	if !valid(prog) {
		return graphics.NoLocation
	}
	v := d.gl.Call("getUniformLocation", prog, name)
	if !valid(v) {
		return graphics.NoLocation
	}
	loc := d.nextLoc
	d.nextLoc++
	d.locs[loc] = v
	return loc
}

func (d *Device) uniform(loc graphics.Location) js.Value {
	if v, ok := d.locs[loc]; ok {
		return v
	}
	return js.Null()
}

func (d *Device) Uniform1f(loc graphics.Location, v float32) {
	d.gl.Call("uniform1f", d.uniform(loc), v)
}

func (d *Device) Uniform2f(loc graphics.Location, x, y float32) {
	d.gl.Call("uniform2f", d.uniform(loc), x, y)
}

func (d *Device) Uniform1i(loc graphics.Location, v int32) {
	d.gl.Call("uniform1i", d.uniform(loc), v)
}

func (d *Device) CreateTexture() graphics.Texture {
	return graphics.Texture(d.put(d.gl.Call("createTexture")))
}

func (d *Device) ActiveTexture(unit int) {
	d.gl.Call("activeTexture", d.consts.texture0+unit)
}

func (d *Device) BindTexture(t graphics.Texture) {
	d.gl.Call("bindTexture", d.consts.texture2D, d.get(uint32(t)))
}

func (d *Device) TexImage2D(width, height int, rgba []byte) {
	pixels := js.Global().Get("Uint8Array").New(len(rgba))
	js.CopyBytesToJS(pixels, rgba)
	d.gl.Call("pixelStorei", d.consts.unpackAlignment, 1)
	d.gl.Call("texImage2D", d.consts.texture2D, 0, d.consts.rgba, width, height, 0,
		d.consts.rgba, d.consts.unsignedByte, pixels)
}

func (d *Device) TexParameter(param graphics.TexParam, value graphics.TexValue) {
	var pname int
	switch param {
	case graphics.TextureWrapS:
		pname = d.consts.textureWrapS
	case graphics.TextureWrapT:
		pname = d.consts.textureWrapT
	case graphics.TextureMinFilter:
		pname = d.consts.textureMinFilter
	case graphics.TextureMagFilter:
		pname = d.consts.textureMagFilter
	default:
		return
	}
	var v int
	switch value {
	case graphics.ClampToEdge:
		v = d.consts.clampToEdge
	case graphics.Repeat:
		v = d.consts.repeat
	case graphics.Linear:
		v = d.consts.linear
	case graphics.Nearest:
		v = d.consts.nearest
	default:
		return
	}
	d.gl.Call("texParameteri", d.consts.texture2D, pname, v)
}

func (d *Device) DeleteTexture(t graphics.Texture) {
	d.gl.Call("deleteTexture", d.drop(uint32(t)))
}

func (d *Device) DrawArrays(mode graphics.Primitive, first, count int) {
	m := d.consts.triangles
	if mode == graphics.TriangleStrip {
		m = d.consts.triangleStrip
	}
	d.gl.Call("drawArrays", m, first, count)
}
