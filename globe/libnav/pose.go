package libnav

import (
	"globe-viewer/globe/libutil"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraPose is the orbit camera's placement. The camera always faces the origin;
// Up is only a hint that keeps the look-at orientation defined and is rotated
// together with Position.
type CameraPose struct {
	Position mgl32.Vec3
	Up       mgl32.Vec3
}

func NewPose(position, up mgl32.Vec3) CameraPose {
	p := CameraPose{Position: position, Up: up}
	p.Up = p.orthoUp()
	return p
}

func (p CameraPose) Distance() float32 {
	return p.Position.Len()
}

// Direction is the unit vector from the origin to the camera, or zero for a degenerate pose.
func (p CameraPose) Direction() mgl32.Vec3 {
	if p.Position.LenSqr() == 0 {
		return mgl32.Vec3{}
	}
	return p.Position.Normalize()
}

func (p CameraPose) orthoUp() mgl32.Vec3 {
	back := p.Direction()
	if back.LenSqr() == 0 {
		return p.Up
	}
	return libutil.Orthogonalize(p.Up, back)
}

// Axes returns the camera's local right, up and back vectors of a look-at-origin transform.
func (p CameraPose) Axes() (right, up, back mgl32.Vec3) {
	back = p.Direction()
	if back.LenSqr() == 0 {
		return mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}
	}
	up = p.orthoUp()
	right = up.Cross(back).Normalize()
	up = back.Cross(right)
	return right, up, back
}

// Rotated rotates the pose about the origin.
func (p CameraPose) Rotated(q mgl32.Quat) CameraPose {
	r := CameraPose{
		Position: q.Rotate(p.Position),
		Up:       q.Rotate(p.Up),
	}
	r.Up = r.orthoUp()
	return r
}

func (p CameraPose) ViewMatrix() mgl32.Mat4 {
	_, up, _ := p.Axes()
	return mgl32.LookAtV(p.Position, mgl32.Vec3{}, up)
}

func (p CameraPose) Geo() GeoCoordinate {
	return FromCartesian(p.Position)
}
