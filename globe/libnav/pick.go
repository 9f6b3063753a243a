package libnav

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// CursorRay builds a world space ray through the cursor. The cursor is in window
// coordinates with the origin at the top left; viewport is x, y, width, height.
func CursorRay(cursor mgl32.Vec2, viewport [4]int, view, projection mgl32.Mat4) (origin, dir mgl32.Vec3, ok bool) {
	if viewport[2] <= 0 || viewport[3] <= 0 {
		return
	}
	x := cursor[0]
	y := float32(viewport[3]) - cursor[1]
	near, err := mgl32.UnProject(mgl32.Vec3{x, y, 0}, view, projection, viewport[0], viewport[1], viewport[2], viewport[3])
	if err != nil {
		return
	}
	far, err := mgl32.UnProject(mgl32.Vec3{x, y, 1}, view, projection, viewport[0], viewport[1], viewport[2], viewport[3])
	if err != nil {
		return
	}
	dir = far.Sub(near)
	if dir.LenSqr() == 0 {
		return
	}
	return near, dir.Normalize(), true
}

// RaySphere intersects a ray with unit direction against a sphere at the origin
// and returns the distance to the closest hit in front of the ray origin.
func RaySphere(origin, dir mgl32.Vec3, radius float32) (float32, bool) {
	b := origin.Dot(dir)
	c := origin.Dot(origin) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	s := math32.Sqrt(disc)
	t := -b - s
	if t < 0 {
		t = -b + s
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

type HoverEvent int

const (
	HoverNone HoverEvent = iota
	HoverEnter
	HoverLeave
)

// HoverTracker turns per-frame pick results into pointer enter/leave notifications.
type HoverTracker struct {
	hovering bool
}

func (h *HoverTracker) Update(hit bool) HoverEvent {
	switch {
	case hit && !h.hovering:
		h.hovering = true
		return HoverEnter
	case !hit && h.hovering:
		h.hovering = false
		return HoverLeave
	}
	return HoverNone
}

func (h *HoverTracker) Hovering() bool {
	return h.hovering
}

// Pick reports whether the cursor is over the globe and where it hits it.
func Pick(cursor mgl32.Vec2, viewport [4]int, view, projection mgl32.Mat4, radius float32) (GeoCoordinate, bool) {
	origin, dir, ok := CursorRay(cursor, viewport, view, projection)
	if !ok {
		return GeoCoordinate{}, false
	}
	t, hit := RaySphere(origin, dir, radius)
	if !hit {
		return GeoCoordinate{}, false
	}
	return FromCartesian(origin.Add(dir.Mul(t))), true
}
