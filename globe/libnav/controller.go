package libnav

import "github.com/go-gl/mathgl/mgl32"

// InputFrame is everything the controller consumes in one frame.
type InputFrame struct {
	DragDelta    mgl32.Vec2
	Scroll       []ScrollEvent
	LeftPressed  bool
	Hover        []HoverEvent
	Navigate     []GeoCoordinate
	DeltaSeconds float32
}

type FrameResult struct {
	Zoomed         bool
	Dragged        bool
	FlyToStepped   bool
	FlyToCompleted bool
}

// Controller owns the orbit camera pose and the pending fly-to.
// It is not safe for concurrent use; the frame loop is its only caller.
type Controller struct {
	Config   Config
	Pose     CameraPose
	FlyTo    FlyTo
	hovering bool
}

func NewController(cfg Config) *Controller {
	return &Controller{
		Config: cfg,
		Pose:   NewPose(cfg.Start, cfg.StartUp),
	}
}

func (c *Controller) Hovering() bool {
	return c.hovering
}

func (c *Controller) Request(target GeoCoordinate) {
	c.FlyTo.Request(target)
}

// Update applies one frame of input: navigation requests, hover changes and scroll
// events in order, then either the drag (left button held) or a fly-to step.
func (c *Controller) Update(frame InputFrame) FrameResult {
	var res FrameResult

	for _, target := range frame.Navigate {
		c.FlyTo.Request(target)
	}

	for _, ev := range frame.Hover {
		switch ev {
		case HoverEnter:
			c.hovering = true
		case HoverLeave:
			c.hovering = false
		}
	}

	for _, ev := range frame.Scroll {
		before := c.Pose.Position
		c.Pose = Zoom(c.Pose, ev, &c.Config)
		if c.Pose.Position != before {
			res.Zoomed = true
		}
	}

	if frame.LeftPressed {
		if c.hovering || !c.Config.DragRequiresHover {
			c.Pose = ApplyDrag(c.Pose, frame.DragDelta, &c.Config)
			res.Dragged = frame.DragDelta[0] != 0 || frame.DragDelta[1] != 0
		}
		return res
	}

	if c.FlyTo.Moving() {
		c.Pose, res.FlyToCompleted = c.FlyTo.Step(c.Pose, frame.DeltaSeconds, &c.Config)
		res.FlyToStepped = true
	}

	return res
}
