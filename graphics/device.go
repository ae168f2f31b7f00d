package graphics

// Handles name GPU objects. Zero is never a valid object, the same way the
// GL and WebGL APIs treat a zero or null name.
type (
	Shader  uint32
	Program uint32
	Buffer  uint32
	Texture uint32
)

// Location is an attribute or uniform slot. -1 means the name was not found.
type Location int32

// NoLocation is returned for names the linked program does not expose.
const NoLocation Location = -1

// StageKind selects the shader stage being compiled.
type StageKind int

const (
	VertexStage StageKind = iota
	FragmentStage
)

func (k StageKind) String() string {
	switch k {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// Primitive is the topology passed to DrawArrays.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
)

// TexParam is a 2D texture sampling parameter.
type TexParam int

const (
	TextureWrapS TexParam = iota
	TextureWrapT
	TextureMinFilter
	TextureMagFilter
)

// TexValue is a value for a TexParam.
type TexValue int

const (
	ClampToEdge TexValue = iota
	Repeat
	Linear
	Nearest
)

// Device is the subset of the GL / WebGL API the canvas renderer issues.
// Methods map one-to-one onto API calls; implementations must be used from
// the render thread only.
type Device interface {
	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear()

	CreateShader(kind StageKind) Shader
	ShaderSource(s Shader, source string)
	CompileShader(s Shader)
	ShaderCompiled(s Shader) bool
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	ProgramLinked(p Program) bool
	ProgramInfoLog(p Program) string
	UseProgram(p Program)
	DeleteProgram(p Program)

	CreateBuffer() Buffer
	BindArrayBuffer(b Buffer)
	StaticArrayBufferData(data []float32)
	DeleteBuffer(b Buffer)

	AttribLocation(p Program, name string) Location
	EnableVertexAttribArray(loc Location)
	VertexAttribPointer(loc Location, size int, stride int, offset int)

	UniformLocation(p Program, name string) Location
	Uniform1f(loc Location, v float32)
	Uniform2f(loc Location, x, y float32)
	Uniform1i(loc Location, v int32)

	CreateTexture() Texture
	ActiveTexture(unit int)
	BindTexture(t Texture)
	TexImage2D(width, height int, rgba []byte)
	TexParameter(param TexParam, value TexValue)
	DeleteTexture(t Texture)

	DrawArrays(mode Primitive, first, count int)
}

// PixelReader reads back the default framebuffer as tightly packed RGBA rows,
// bottom row first.
type PixelReader interface {
	ReadPixels(width, height int, dst []byte)
}
