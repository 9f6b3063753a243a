package libscn

import (
	"globe-viewer/globe/libnav"
	"globe-viewer/globe/libutil"
	"globe-viewer/globe/libworld"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	EquatorColor        = mgl32.Vec3{1.0, 0.85, 0.1}
	GeographicPoleColor = mgl32.Vec3{0.2, 0.5, 1.0}
	MagneticPoleColor   = mgl32.Vec3{1.0, 0.2, 0.2}
)

const (
	// overlays float slightly above the surface
	overlayLift = 1.005
	poleLength  = 0.25
	poleMarker  = 0.02
)

type Line struct {
	A, B  mgl32.Vec3
	Color mgl32.Vec3
}

// Parallel is a closed line strip along the given latitude.
func Parallel(lat, radius float32, sides int, color mgl32.Vec3) []Line {
	if sides < 3 {
		sides = 3
	}
	lines := make([]Line, 0, sides)
	prev := libnav.ToCartesian(lat, -180, radius)
	for i := 1; i <= sides; i++ {
		lon := -180 + 360*float32(i)/float32(sides)
		next := libnav.ToCartesian(lat, lon, radius)
		lines = append(lines, Line{A: prev, B: next, Color: color})
		prev = next
	}
	return lines
}

// PoleMarker is a radial spike leaving the surface at the given coordinate,
// crossed by a short bar so it stays visible when viewed head on.
func PoleMarker(c libnav.GeoCoordinate, radius float32, color mgl32.Vec3) []Line {
	base := c.Cartesian(radius)
	tip := c.Cartesian(radius * (1 + poleLength))
	dir := base.Normalize()
	side := libutil.Perpendicular(dir).Normalize().Mul(radius * poleMarker)
	return []Line{
		{A: base, B: tip, Color: color},
		{A: tip.Sub(side), B: tip.Add(side), Color: color},
	}
}

// Overlays returns the line set enabled by the settings toggles.
func Overlays(s libworld.Settings, radius float32) []Line {
	var lines []Line
	r := radius * overlayLift
	if s.ShowEquator {
		lines = append(lines, Parallel(0, r, 64, EquatorColor)...)
	}
	if s.ShowGeographicPoles {
		lines = append(lines, PoleMarker(libworld.GeographicNorth, r, GeographicPoleColor)...)
		lines = append(lines, PoleMarker(libworld.GeographicSouth, r, GeographicPoleColor)...)
	}
	if s.ShowMagneticPoles {
		lines = append(lines, PoleMarker(libworld.MagneticNorth, r, MagneticPoleColor)...)
		lines = append(lines, PoleMarker(libworld.MagneticSouth, r, MagneticPoleColor)...)
	}
	return lines
}
