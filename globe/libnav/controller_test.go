package libnav_test

import (
	"testing"

	"globe-viewer/globe/libnav"

	"github.com/go-gl/mathgl/mgl32"
)

func zoomConfig() libnav.Config {
	cfg := libnav.DefaultConfig()
	cfg.MinRadius = 1.0
	cfg.MaxRadius = 4.0
	return cfg
}

func TestApplyZoomPixel(t *testing.T) {
	cfg := zoomConfig()

	is := libnav.ApplyZoom(1.0, libnav.ScrollEvent{Delta: -300, Unit: libnav.ScrollPixel}, &cfg)
	if !approx(is, 2.0, 1e-6) {
		t.Errorf("zooming out by 300px from 1.0 should be 2.0 but is %v", is)
	}

	is = libnav.ApplyZoom(1.0, libnav.ScrollEvent{Delta: 3000, Unit: libnav.ScrollPixel}, &cfg)
	if is != cfg.MinRadius {
		t.Errorf("zooming in past the globe should clamp to %v but is %v", cfg.MinRadius, is)
	}
}

func TestApplyZoomLine(t *testing.T) {
	cfg := zoomConfig()
	is := libnav.ApplyZoom(2.0, libnav.ScrollEvent{Delta: 1, Unit: libnav.ScrollLine}, &cfg)
	if !approx(is, 1.9, 1e-6) {
		t.Errorf("one line in from 2.0 should be 1.9 but is %v", is)
	}

	cfg.IgnoreLineScroll = true
	is = libnav.ApplyZoom(2.0, libnav.ScrollEvent{Delta: 1, Unit: libnav.ScrollLine}, &cfg)
	if is != 2.0 {
		t.Errorf("ignored line scroll should keep 2.0 but is %v", is)
	}
}

func TestApplyZoomStaysInRange(t *testing.T) {
	cfg := zoomConfig()
	for d := cfg.MinRadius; d <= cfg.MaxRadius; d += 0.25 {
		for _, delta := range []float32{-1e6, -3000, -300, -1, 0, 1, 300, 3000, 1e6} {
			for _, unit := range []libnav.ScrollUnit{libnav.ScrollLine, libnav.ScrollPixel} {
				is := libnav.ApplyZoom(d, libnav.ScrollEvent{Delta: delta, Unit: unit}, &cfg)
				if is < cfg.MinRadius || is > cfg.MaxRadius {
					t.Fatalf("zoom from %v by %v %v left the range: %v", d, delta, unit, is)
				}
			}
		}
	}
}

func TestZoomIdempotentAtMax(t *testing.T) {
	cfg := zoomConfig()
	pose := equatorPose(cfg.MaxRadius)
	for i := 0; i < 5; i++ {
		pose = libnav.Zoom(pose, libnav.ScrollEvent{Delta: -600, Unit: libnav.ScrollPixel}, &cfg)
		if !approx(pose.Distance(), cfg.MaxRadius, 1e-5) {
			t.Fatalf("distance should stay at %v but is %v", cfg.MaxRadius, pose.Distance())
		}
	}
}

func TestZoomKeepsDirection(t *testing.T) {
	cfg := zoomConfig()
	pose := libnav.NewPose(belgium.Cartesian(2), mgl32.Vec3{0, 0, 1})
	zoomed := libnav.Zoom(pose, libnav.ScrollEvent{Delta: 150, Unit: libnav.ScrollPixel}, &cfg)
	if !approx(zoomed.Distance(), 1.5, 1e-5) {
		t.Errorf("distance should be 1.5 but is %v", zoomed.Distance())
	}
	if !approxVec(zoomed.Direction(), pose.Direction(), 1e-5) {
		t.Errorf("direction should not change, was %v is %v", pose.Direction(), zoomed.Direction())
	}
}

func TestZoomDegeneratePose(t *testing.T) {
	cfg := zoomConfig()
	pose := libnav.CameraPose{Up: mgl32.Vec3{0, 1, 0}}
	zoomed := libnav.Zoom(pose, libnav.ScrollEvent{Delta: -300, Unit: libnav.ScrollPixel}, &cfg)
	if zoomed.Position != (mgl32.Vec3{}) {
		t.Errorf("pose at the origin should not move but is %v", zoomed.Position)
	}
}

func TestDragPreservesRadius(t *testing.T) {
	cfg := libnav.DefaultConfig()
	for _, axis := range []libnav.YawAxis{libnav.YawLocalUp, libnav.YawWorldUp} {
		cfg.YawAxis = axis
		pose := libnav.NewPose(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 1, 0})
		deltas := []mgl32.Vec2{{1, 0}, {0, 1}, {-35, 12}, {250, -400}, {0.3, 0.7}, {-1000, -1000}}
		for i := 0; i < 50; i++ {
			before := pose.Distance()
			pose = libnav.ApplyDrag(pose, deltas[i%len(deltas)], &cfg)
			if !approx(pose.Distance(), before, 1e-5) {
				t.Fatalf("%s: drag %d changed the distance from %v to %v", axis, i, before, pose.Distance())
			}
		}
	}
}

func TestDragWorldUpKeepsLatitude(t *testing.T) {
	cfg := libnav.DefaultConfig()
	cfg.YawAxis = libnav.YawWorldUp
	pose := libnav.NewPose(belgium.Cartesian(2), mgl32.Vec3{0, 0, 1})
	dragged := libnav.ApplyDrag(pose, mgl32.Vec2{120, 0}, &cfg)
	if !approx(dragged.Geo().Lat, belgium.Lat, 1e-3) {
		t.Errorf("horizontal drag around the world axis should keep latitude %v but is %v", belgium.Lat, dragged.Geo().Lat)
	}
	if approx(dragged.Geo().Lon, belgium.Lon, 1e-2) {
		t.Errorf("horizontal drag should change the longitude")
	}
}

func TestDragZeroDelta(t *testing.T) {
	cfg := libnav.DefaultConfig()
	pose := equatorPose(2)
	if is := libnav.ApplyDrag(pose, mgl32.Vec2{}, &cfg); is != pose {
		t.Errorf("zero drag should not change the pose, was %v is %v", pose, is)
	}
}

func TestDragOverThePole(t *testing.T) {
	cfg := libnav.DefaultConfig()
	pose := libnav.NewPose(mgl32.Vec3{0, -2, 0}, mgl32.Vec3{0, 0, 1})
	// pi/2 radians of pitch per step
	step := mgl32.Vec2{0, -float32(1.5707964) / cfg.DragSensitivity}
	for i := 0; i < 4; i++ {
		pose = libnav.ApplyDrag(pose, step, &cfg)
		right, up, back := pose.Axes()
		if !approx(right.Len(), 1, 1e-4) || !approx(up.Len(), 1, 1e-4) || !approx(back.Len(), 1, 1e-4) {
			t.Fatalf("axes should stay normalized, are %v %v %v", right, up, back)
		}
		if !approx(up.Dot(back), 0, 1e-4) {
			t.Fatalf("up should stay perpendicular to the view direction")
		}
	}
	if !approxVec(pose.Position, mgl32.Vec3{0, -2, 0}, 1e-3) {
		t.Errorf("four quarter turns should come back to the start but is at %v", pose.Position)
	}
}

func TestFlyToConverges(t *testing.T) {
	for _, term := range []libnav.Termination{libnav.TerminateCosine, libnav.TerminateCosineOrDistance} {
		cfg := libnav.DefaultConfig()
		cfg.FlyToTermination = term
		pose := equatorPose(2)

		var fly libnav.FlyTo
		fly.Request(belgium)

		frames := 0
		for fly.Moving() && frames < 500 {
			pose, _ = fly.Step(pose, frame60, &cfg)
			frames++
		}
		if fly.Moving() {
			t.Fatalf("%s: fly-to should converge within 500 frames", term)
		}
		t.Logf("%s: converged after %d frames", term, frames)

		target := belgium.Cartesian(1)
		dot := pose.Direction().Dot(target)
		if term == libnav.TerminateCosine && dot <= cfg.FlyToCosine {
			t.Errorf("%s: direction cosine should exceed %v but is %v", term, cfg.FlyToCosine, dot)
		}
		if !approx(pose.Distance(), 2, 1e-4) {
			t.Errorf("%s: fly-to should keep the distance, is %v", term, pose.Distance())
		}
	}
}

func TestFlyToCapsStep(t *testing.T) {
	cfg := libnav.DefaultConfig()
	pose := equatorPose(2)

	var fly libnav.FlyTo
	fly.Request(madagascar)
	// one huge frame reaches the target without overshooting
	pose, _ = fly.Step(pose, 10, &cfg)
	if !approxVec(pose.Direction(), madagascar.Cartesian(1), 1e-4) {
		t.Errorf("a step with t >= 1 should land on the target but is at %v", pose.Geo())
	}
	_, done := fly.Step(pose, frame60, &cfg)
	if !done || fly.Moving() {
		t.Errorf("fly-to should finish on the next frame")
	}
}

func TestFlyToOverwrite(t *testing.T) {
	cfg := libnav.DefaultConfig()
	pose := equatorPose(2)

	var fly libnav.FlyTo
	fly.Request(belgium)
	for i := 0; i < 10; i++ {
		pose, _ = fly.Step(pose, frame60, &cfg)
	}

	fly.Request(madagascar)
	if fly.Target() != madagascar {
		t.Fatalf("target should be %v but is %v", madagascar, fly.Target())
	}
	is, _ := fly.Step(pose, frame60, &cfg)

	var fresh libnav.FlyTo
	fresh.Request(madagascar)
	should, _ := fresh.Step(pose, frame60, &cfg)

	if !approxVec(is.Position, should.Position, 1e-6) {
		t.Errorf("step after overwrite should be %v but is %v", should.Position, is.Position)
	}
}

func TestFlyToIdleDoesNothing(t *testing.T) {
	cfg := libnav.DefaultConfig()
	pose := equatorPose(2)
	var fly libnav.FlyTo
	is, done := fly.Step(pose, frame60, &cfg)
	if done || is != pose {
		t.Errorf("idle fly-to should not move the camera")
	}

	fly.Request(belgium)
	fly.SetActive(false)
	if is, _ = fly.Step(pose, frame60, &cfg); is != pose {
		t.Errorf("deactivated fly-to should not move the camera")
	}
	fly.SetActive(true)
	if is, _ = fly.Step(pose, frame60, &cfg); is == pose {
		t.Errorf("reactivated fly-to should move towards the last target")
	}
}

func TestControllerDragWins(t *testing.T) {
	cfg := libnav.DefaultConfig()
	cfg.DragRequiresHover = false
	c := libnav.NewController(cfg)
	c.Request(belgium)

	before := c.Pose
	delta := mgl32.Vec2{10, -4}
	res := c.Update(libnav.InputFrame{DragDelta: delta, LeftPressed: true, DeltaSeconds: frame60})

	should := libnav.ApplyDrag(before, delta, &c.Config)
	if !approxVec(c.Pose.Position, should.Position, 1e-6) {
		t.Errorf("position should follow the drag %v but is %v", should.Position, c.Pose.Position)
	}
	if res.FlyToStepped || !res.Dragged {
		t.Errorf("drag should win over fly-to, got %+v", res)
	}
	if !c.FlyTo.Moving() {
		t.Errorf("fly-to should still be pending after the drag")
	}

	c.Update(libnav.InputFrame{DeltaSeconds: frame60})
	if !c.FlyTo.Moving() {
		t.Fatalf("fly-to should resume once the button is released")
	}
}

func TestControllerDragNeedsHover(t *testing.T) {
	cfg := libnav.DefaultConfig()
	c := libnav.NewController(cfg)
	before := c.Pose

	c.Update(libnav.InputFrame{DragDelta: mgl32.Vec2{20, 0}, LeftPressed: true, DeltaSeconds: frame60})
	if c.Pose != before {
		t.Errorf("drag without hover should not move the camera")
	}

	c.Update(libnav.InputFrame{Hover: []libnav.HoverEvent{libnav.HoverEnter}, DragDelta: mgl32.Vec2{20, 0}, LeftPressed: true})
	if c.Pose == before || !c.Hovering() {
		t.Errorf("drag over the globe should move the camera")
	}

	moved := c.Pose
	c.Update(libnav.InputFrame{Hover: []libnav.HoverEvent{libnav.HoverLeave}, DragDelta: mgl32.Vec2{20, 0}, LeftPressed: true})
	if c.Pose != moved || c.Hovering() {
		t.Errorf("drag after leaving the globe should not move the camera")
	}
}

func TestControllerFrameOrder(t *testing.T) {
	cfg := zoomConfig()
	c := libnav.NewController(cfg)

	res := c.Update(libnav.InputFrame{
		Navigate: []libnav.GeoCoordinate{belgium, madagascar},
		Scroll: []libnav.ScrollEvent{
			{Delta: -300, Unit: libnav.ScrollPixel},
			{Delta: -3000, Unit: libnav.ScrollPixel},
			{Delta: 150, Unit: libnav.ScrollPixel},
		},
		DeltaSeconds: frame60,
	})
	if !res.Zoomed || !res.FlyToStepped {
		t.Errorf("frame should zoom and step, got %+v", res)
	}
	if c.FlyTo.Target() != madagascar {
		t.Errorf("last navigation request should win, target is %v", c.FlyTo.Target())
	}
	// 2 -> 3 -> clamp 4 -> 3.5
	if !approx(c.Pose.Distance(), 3.5, 1e-4) {
		t.Errorf("scroll events should apply in order, distance should be 3.5 but is %v", c.Pose.Distance())
	}
}

func TestInputFrameHeldButtonOverUIPausesFlyTo(t *testing.T) {
	c := libnav.NewController(libnav.DefaultConfig())
	c.Request(belgium)
	hover := &libnav.HoverTracker{}
	before := c.Pose

	pointer := libnav.Pointer{LeftDown: true, Delta: mgl32.Vec2{25, 5}, OverGlobe: true}
	res := c.Update(libnav.NewInputFrame(pointer, true, hover, frame60))
	if res.FlyToStepped || res.Dragged {
		t.Errorf("held button over the UI should neither step nor drag, got %+v", res)
	}
	if c.Pose != before {
		t.Errorf("camera should not move while the button is held over the UI")
	}
	if !c.FlyTo.Moving() {
		t.Errorf("fly-to should still be pending")
	}

	pointer.LeftDown = false
	res = c.Update(libnav.NewInputFrame(pointer, true, hover, frame60))
	if !res.FlyToStepped || c.Pose == before {
		t.Errorf("fly-to should resume once the button is released over the UI, got %+v", res)
	}
}

func TestInputFrameWithholdsPointerFromUI(t *testing.T) {
	hover := &libnav.HoverTracker{}
	pointer := libnav.Pointer{
		LeftDown:  true,
		Delta:     mgl32.Vec2{10, -4},
		Scroll:    []libnav.ScrollEvent{{Delta: 1, Unit: libnav.ScrollLine}},
		OverGlobe: true,
	}

	frame := libnav.NewInputFrame(pointer, false, hover, frame60)
	if frame.DragDelta != pointer.Delta || len(frame.Scroll) != 1 || !frame.LeftPressed {
		t.Errorf("globe-owned pointer should pass through, got %+v", frame)
	}
	if len(frame.Hover) != 1 || frame.Hover[0] != libnav.HoverEnter {
		t.Errorf("pointer over the globe should enter, got %v", frame.Hover)
	}

	frame = libnav.NewInputFrame(pointer, true, hover, frame60)
	if frame.DragDelta != (mgl32.Vec2{}) || len(frame.Scroll) != 0 {
		t.Errorf("UI-owned pointer should not drag or zoom, got %+v", frame)
	}
	if !frame.LeftPressed {
		t.Errorf("UI-owned pointer should still report the held button")
	}
	if len(frame.Hover) != 1 || frame.Hover[0] != libnav.HoverLeave || hover.Hovering() {
		t.Errorf("moving onto the UI should leave the globe, got %v", frame.Hover)
	}
	if frame.DeltaSeconds != frame60 {
		t.Errorf("frame time should be %v but is %v", frame60, frame.DeltaSeconds)
	}
}
