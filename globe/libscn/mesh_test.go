package libscn_test

import (
	"testing"

	"globe-viewer/globe/libnav"
	"globe-viewer/globe/libscn"
	"globe-viewer/globe/libworld"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-5

func TestUvSphereCounts(t *testing.T) {
	mesh, err := libscn.UvSphere("globe", 0.5, 32, 18)
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Vertices) != 33*19 {
		t.Errorf("vertex count should be %v but is %v", 33*19, len(mesh.Vertices))
	}
	if mesh.TriangleCount() != 32*18*2 {
		t.Errorf("triangle count should be %v but is %v", 32*18*2, mesh.TriangleCount())
	}
	for _, i := range mesh.Indices {
		if int(i) >= len(mesh.Vertices) {
			t.Fatalf("index %v out of range", i)
		}
	}
}

func TestUvSphereOnSurface(t *testing.T) {
	mesh, _ := libscn.UvSphere("globe", 0.5, 32, 18)
	for i, v := range mesh.Vertices {
		if d := math32.Abs(v.Position.Len() - 0.5); d > epsilon {
			t.Fatalf("vertex %d is %v off the surface", i, d)
		}
		if d := math32.Abs(v.Normal.Len() - 1); d > epsilon {
			t.Fatalf("normal %d is not unit length", i)
		}
	}
}

func TestUvSphereMatchesGeoMapping(t *testing.T) {
	mesh, _ := libscn.UvSphere("globe", 0.5, 32, 18)

	// first vertex is the north pole
	if !mesh.Vertices[0].Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, 0.5}, epsilon) {
		t.Errorf("first vertex should be the north pole but is %v", mesh.Vertices[0].Position)
	}

	// middle ring, middle segment is lat 0 lon 0
	v := mesh.Vertices[9*33+16]
	want := libnav.ToCartesian(0, 0, 0.5)
	if !v.Position.ApproxEqualThreshold(want, epsilon) {
		t.Errorf("vertex should be %v but is %v", want, v.Position)
	}
	if !v.Uv.ApproxEqualThreshold(mgl32.Vec2{0.5, 0.5}, epsilon) {
		t.Errorf("uv should be (0.5, 0.5) but is %v", v.Uv)
	}
}

func TestUvSphereWindingFacesOutward(t *testing.T) {
	mesh, _ := libscn.UvSphere("globe", 0.5, 32, 18)
	checkWinding(t, mesh, 1)

	mesh.Invert()
	checkWinding(t, mesh, -1)
}

func checkWinding(t *testing.T, mesh *libscn.Mesh, sign float32) {
	t.Helper()
	for i := 0; i < len(mesh.Indices); i += 3 {
		a := mesh.Vertices[mesh.Indices[i]].Position
		b := mesh.Vertices[mesh.Indices[i+1]].Position
		c := mesh.Vertices[mesh.Indices[i+2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Len() < 1e-7 {
			// collapsed at the poles
			continue
		}
		center := a.Add(b).Add(c)
		if n.Dot(center)*sign <= 0 {
			t.Fatalf("triangle %d faces the wrong way", i/3)
		}
	}
}

func TestUvSphereRejectsBadInput(t *testing.T) {
	if _, err := libscn.UvSphere("bad", 0.5, 2, 18); err == nil {
		t.Errorf("2 segments should be rejected")
	}
	if _, err := libscn.UvSphere("bad", 0, 32, 18); err == nil {
		t.Errorf("zero radius should be rejected")
	}
}

func TestParallelIsClosed(t *testing.T) {
	lines := libscn.Parallel(0, 1, 16, libscn.EquatorColor)
	if len(lines) != 16 {
		t.Fatalf("should have 16 lines but has %d", len(lines))
	}
	for i := range lines {
		next := lines[(i+1)%len(lines)]
		if !lines[i].B.ApproxEqualThreshold(next.A, epsilon) {
			t.Errorf("line %d does not connect to the next one", i)
		}
		if math32.Abs(lines[i].A.Z()) > epsilon {
			t.Errorf("equator point should have z = 0 but has %v", lines[i].A.Z())
		}
	}
}

func TestOverlaysFollowSettings(t *testing.T) {
	s := libworld.DefaultSettings()
	if len(libscn.Overlays(s, 0.5)) != 0 {
		t.Errorf("no overlay should be enabled by default")
	}

	s.ShowGeographicPoles = true
	lines := libscn.Overlays(s, 0.5)
	if len(lines) != 4 {
		t.Fatalf("two pole markers should give 4 lines but gave %d", len(lines))
	}
	if lines[0].A.Z() <= 0.5 || lines[0].B.Z() <= lines[0].A.Z() {
		t.Errorf("north marker should rise above the north pole, got %v -> %v", lines[0].A, lines[0].B)
	}

	s.ShowEquator = true
	s.ShowMagneticPoles = true
	lines = libscn.Overlays(s, 0.5)
	if len(lines) != 64+4+4 {
		t.Errorf("should have %d lines but has %d", 64+4+4, len(lines))
	}
	last := lines[len(lines)-1]
	if last.Color != libscn.MagneticPoleColor {
		t.Errorf("magnetic markers should come last")
	}
}
