package main

import (
	"globe-viewer/globe/libgl"
	"globe-viewer/globe/libscn"
	"globe-viewer/globe/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// 3 floats position + 3 floats color
const directVertexFloats = 3 + 3

// DirectBuffer collects overlay geometry every frame and draws it in one call.
type DirectBuffer struct {
	vao    libgl.UnboundVertexArray
	vbo    libgl.UnboundBuffer
	shader libgl.UnboundShaderPipeline
	data   []float32
	color  mgl32.Vec3
	stroke float32
}

func NewDirectDrawBuffer(shader libgl.UnboundShaderPipeline) *DirectBuffer {
	vao := libgl.NewVertexArray()
	vao.SetDebugLabel("direct")
	vao.Layout(0, 0, 3, gl.FLOAT, false, 0)
	vao.Layout(0, 1, 3, gl.FLOAT, false, 3*4)
	vbo := libgl.NewBuffer()
	vbo.SetDebugLabel("direct")
	vbo.AllocateEmptyMutable(1<<16, gl.STREAM_DRAW)
	vao.BindBuffer(0, vbo, 0, directVertexFloats*4)

	return &DirectBuffer{
		vao:    vao,
		vbo:    vbo,
		shader: shader,
		data:   []float32{},
		color:  mgl32.Vec3{1, 1, 1},
		stroke: 0.004,
	}
}

func (db *DirectBuffer) Stroke(width float32) {
	db.stroke = width
}

func (db *DirectBuffer) Color3(c mgl32.Vec3) {
	db.color = c
}

func (db *DirectBuffer) Vert(pos mgl32.Vec3) {
	db.data = append(db.data, pos[0], pos[1], pos[2], db.color[0], db.color[1], db.color[2])
}

// A--B
// | /
// C
func (db *DirectBuffer) Tri(a, b, c mgl32.Vec3) {
	db.Vert(a)
	db.Vert(c)
	db.Vert(b)
}

// A--B
// |  |
// C--D
func (db *DirectBuffer) Quad(a, b, c, d mgl32.Vec3) {
	db.Tri(a, b, c)
	db.Tri(d, c, b)
}

// Line is drawn as two crossed quads so it has width from every side.
func (db *DirectBuffer) Line(a, b mgl32.Vec3) {
	v := b.Sub(a)
	if v.LenSqr() == 0 {
		return
	}
	normal := libutil.Perpendicular(v).Normalize().Mul(db.stroke / 2)
	bitangent := normal.Cross(v).Normalize().Mul(db.stroke / 2)
	db.Quad(a.Add(normal), b.Add(normal), a.Sub(normal), b.Sub(normal))
	db.Quad(a.Add(bitangent), b.Add(bitangent), a.Sub(bitangent), b.Sub(bitangent))
}

// Overlays queues the overlay lines the settings enable.
func (db *DirectBuffer) Overlays(lines []libscn.Line) {
	for _, l := range lines {
		db.Color3(l.Color)
		db.Line(l.A, l.B)
	}
}

func (db *DirectBuffer) Draw(viewProj mgl32.Mat4) {
	if len(db.data) == 0 {
		return
	}
	libgl.PushGroup("Draw overlays")
	defer libgl.PopGroup()

	db.vbo.Grow(len(db.data) * 4)
	db.vbo.Write(0, db.data)

	db.vao.Bind()
	db.shader.Bind()
	db.shader.Get(gl.VERTEX_SHADER).SetUniform("u_view_projection_mat", viewProj)
	// overlays are two sided and always filled, even in wireframe mode
	libgl.State.SetEnabled(libgl.DepthTest)
	libgl.State.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	libgl.State.DepthFunc(libgl.DepthFuncLEqual)
	libgl.State.DepthMask(true)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(db.data)/directVertexFloats))

	db.Clear()
}

func (db *DirectBuffer) Clear() {
	db.data = db.data[0:0]
}

func (db *DirectBuffer) Delete() {
	db.vbo.Delete()
	db.vao.Delete()
	db.shader.Delete()
}
