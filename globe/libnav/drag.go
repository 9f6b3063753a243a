package libnav

import "github.com/go-gl/mathgl/mgl32"

// DragRotation is the rotation about the origin produced by a pointer drag.
// Yaw turns around the camera's up (or the world up), pitch around its right axis;
// the yaw is the left operand of the composition.
func DragRotation(p CameraPose, delta mgl32.Vec2, cfg *Config) mgl32.Quat {
	right, up, _ := p.Axes()
	if cfg.YawAxis == YawWorldUp && cfg.WorldUp.LenSqr() != 0 {
		up = cfg.WorldUp.Normalize()
	}
	yaw := mgl32.QuatRotate(-delta[0]*cfg.DragSensitivity, up)
	pitch := mgl32.QuatRotate(-delta[1]*cfg.DragSensitivity, right)
	return yaw.Mul(pitch)
}

// ApplyDrag orbits the pose. The distance to the origin does not change.
func ApplyDrag(p CameraPose, delta mgl32.Vec2, cfg *Config) CameraPose {
	if delta[0] == 0 && delta[1] == 0 {
		return p
	}
	return p.Rotated(DragRotation(p, delta, cfg))
}
