package renderer

import (
	"github.com/richinsley/goshadercanvas/graphics"
	"github.com/richinsley/goshadercanvas/shader"
)

// quadVertices covers clip space as a triangle strip.
var quadVertices = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
}

const quadVertexCount = 4

// Bindings are the resolved attribute and uniform slots of the program.
type Bindings struct {
	Position   graphics.Location
	Resolution graphics.Location
	Time       graphics.Location
	Texture    graphics.Location // NoLocation unless a texture is configured
}

// UploadGeometry makes the program current, uploads the quad into a static
// buffer, points a_position at it and resolves the uniform locations.
func (c *Canvas) UploadGeometry() {
	dev := c.device
	dev.UseProgram(c.program)

	c.vbo = dev.CreateBuffer()
	dev.BindArrayBuffer(c.vbo)
	dev.StaticArrayBufferData(quadVertices)

	c.bindings.Position = dev.AttribLocation(c.program, c.name(shader.PositionAttrib))
	dev.EnableVertexAttribArray(c.bindings.Position)
	dev.VertexAttribPointer(c.bindings.Position, 2, 0, 0)

	c.bindings.Resolution = dev.UniformLocation(c.program, c.name(shader.ResolutionUniform))
	c.bindings.Time = dev.UniformLocation(c.program, c.name(shader.TimeUniform))
	c.bindings.Texture = graphics.NoLocation
	if c.textureConfig != nil {
		c.bindings.Texture = dev.UniformLocation(c.program, c.name(shader.TextureUniform))
	}
}
