package libnav_test

import (
	"testing"

	"globe-viewer/globe/libnav"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRaySphere(t *testing.T) {
	dist, hit := libnav.RaySphere(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 0, -1}, 0.5)
	if !hit || !approx(dist, 1.5, 1e-6) {
		t.Errorf("ray towards the origin should hit at 1.5, got %v %v", dist, hit)
	}

	if _, hit = libnav.RaySphere(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 0, 1}, 0.5); hit {
		t.Errorf("ray away from the sphere should miss")
	}

	if _, hit = libnav.RaySphere(mgl32.Vec3{0, 0.6, 2}, mgl32.Vec3{0, 0, -1}, 0.5); hit {
		t.Errorf("ray passing above the sphere should miss")
	}

	dist, hit = libnav.RaySphere(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 0.5)
	if !hit || !approx(dist, 0.5, 1e-6) {
		t.Errorf("ray from inside should hit the far side at 0.5, got %v %v", dist, hit)
	}
}

func TestCursorRayPicksGlobe(t *testing.T) {
	pose := libnav.NewPose(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 1, 0})
	viewport := [4]int{0, 0, 1600, 900}
	proj := mgl32.Perspective(mgl32.DegToRad(70), 1600./900., 0.01, 100)

	origin, dir, ok := libnav.CursorRay(mgl32.Vec2{800, 450}, viewport, pose.ViewMatrix(), proj)
	if !ok {
		t.Fatal("center ray should be valid")
	}
	if _, hit := libnav.RaySphere(origin, dir, 0.5); !hit {
		t.Errorf("ray through the viewport center should hit the globe, origin %v dir %v", origin, dir)
	}

	origin, dir, ok = libnav.CursorRay(mgl32.Vec2{5, 5}, viewport, pose.ViewMatrix(), proj)
	if !ok {
		t.Fatal("corner ray should be valid")
	}
	if _, hit := libnav.RaySphere(origin, dir, 0.5); hit {
		t.Errorf("ray through the viewport corner should miss the globe")
	}

	if _, _, ok = libnav.CursorRay(mgl32.Vec2{}, [4]int{}, pose.ViewMatrix(), proj); ok {
		t.Errorf("empty viewport should not produce a ray")
	}
}

func TestHoverTracker(t *testing.T) {
	var h libnav.HoverTracker
	steps := []struct {
		hit    bool
		should libnav.HoverEvent
	}{
		{false, libnav.HoverNone},
		{true, libnav.HoverEnter},
		{true, libnav.HoverNone},
		{false, libnav.HoverLeave},
		{false, libnav.HoverNone},
		{true, libnav.HoverEnter},
	}
	for i, s := range steps {
		if is := h.Update(s.hit); is != s.should {
			t.Errorf("step %d should be %v but is %v", i, s.should, is)
		}
		if h.Hovering() != s.hit {
			t.Errorf("step %d hovering should be %v", i, s.hit)
		}
	}
}

func TestPick(t *testing.T) {
	pose := libnav.NewPose(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 1, 0})
	viewport := [4]int{0, 0, 1600, 900}
	proj := mgl32.Perspective(mgl32.DegToRad(70), 1600./900., 0.01, 100)

	geo, hit := libnav.Pick(mgl32.Vec2{800, 450}, viewport, pose.ViewMatrix(), proj, 0.5)
	if !hit {
		t.Fatal("center of the viewport should pick the globe")
	}
	if !approx(geo.Lat, 90, 0.1) {
		t.Errorf("camera above +Z should pick the north pole, got %v", geo)
	}

	if _, hit = libnav.Pick(mgl32.Vec2{5, 5}, viewport, pose.ViewMatrix(), proj, 0.5); hit {
		t.Errorf("corner should not pick the globe")
	}
}
