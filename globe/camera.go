package main

import (
	"globe-viewer/globe/libnav"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera turns the orbit pose owned by the navigation controller into matrices.
type Camera struct {
	// in degrees
	VerticalFov       float32
	ViewportDimension mgl32.Vec2
	ClippingPlanes    mgl32.Vec2
	Position          mgl32.Vec3
	ViewMatrix        mgl32.Mat4
	ProjectionMatrix  mgl32.Mat4
}

func (cam *Camera) UpdateViewMatrix(pose libnav.CameraPose) {
	cam.Position = pose.Position
	cam.ViewMatrix = pose.ViewMatrix()
}

// UpdateProjectionMatrix keeps the previous matrix while the window is minimized.
func (cam *Camera) UpdateProjectionMatrix() {
	w, h := cam.ViewportDimension[0], cam.ViewportDimension[1]
	if w <= 0 || h <= 0 {
		return
	}
	n, f := cam.ClippingPlanes[0], cam.ClippingPlanes[1]
	cam.ProjectionMatrix = mgl32.Perspective(mgl32.DegToRad(cam.VerticalFov), w/h, n, f)
}

func (cam *Camera) ViewProjection() mgl32.Mat4 {
	return cam.ProjectionMatrix.Mul4(cam.ViewMatrix)
}

func (cam *Camera) Viewport() [4]int {
	return [4]int{0, 0, int(cam.ViewportDimension[0]), int(cam.ViewportDimension[1])}
}
