package libscn

import (
	"fmt"
	"unsafe"

	"globe-viewer/globe/libnav"

	"github.com/go-gl/mathgl/mgl32"
)

type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

type Vertex struct {
	Position mgl32.Vec3
	Uv       mgl32.Vec2
	Normal   mgl32.Vec3
}

const ElementIndexSize = int(unsafe.Sizeof(uint32(0)))
const VertexSize = int(unsafe.Sizeof(Vertex{}))

// UvSphere builds a latitude/longitude sphere around the origin. Vertices are placed with
// libnav.ToCartesian so that a texel at (u, v) shows the same place the navigation
// code computes for that coordinate. u = 0 is longitude -180, v = 0 is the north pole.
// The seam column is duplicated so that u runs from 0 to 1.
func UvSphere(name string, radius float32, segments, rings int) (*Mesh, error) {
	if segments < 3 || rings < 2 {
		return nil, fmt.Errorf("sphere needs at least 3 segments and 2 rings, got %d and %d", segments, rings)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius must be positive, got %v", radius)
	}

	stride := segments + 1
	vertices := make([]Vertex, 0, stride*(rings+1))
	for ring := 0; ring <= rings; ring++ {
		v := float32(ring) / float32(rings)
		lat := 90 - 180*v
		for segment := 0; segment <= segments; segment++ {
			u := float32(segment) / float32(segments)
			lon := -180 + 360*u
			pos := libnav.ToCartesian(lat, lon, radius)
			vertices = append(vertices, Vertex{
				Position: pos,
				Uv:       mgl32.Vec2{u, v},
				Normal:   pos.Mul(1 / radius),
			})
		}
	}

	indices := make([]uint32, 0, segments*rings*6)
	for ring := 0; ring < rings; ring++ {
		for segment := 0; segment < segments; segment++ {
			a := uint32(ring*stride + segment)
			b := a + 1
			c := a + uint32(stride)
			d := c + 1
			// counter clockwise seen from outside
			indices = append(indices, a, c, b, b, c, d)
		}
	}

	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}, nil
}

// Invert flips the winding and the normals, turning an outside-facing mesh into a dome
// that is seen from within.
func (m *Mesh) Invert() {
	for i := 0; i+2 < len(m.Indices); i += 3 {
		m.Indices[i+1], m.Indices[i+2] = m.Indices[i+2], m.Indices[i+1]
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Mul(-1)
	}
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}
