package libnav

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type ScrollUnit int

const (
	ScrollLine ScrollUnit = iota
	ScrollPixel
)

func (u ScrollUnit) String() string {
	switch u {
	case ScrollLine:
		return "line"
	case ScrollPixel:
		return "pixel"
	}
	return fmt.Sprintf("ScrollUnit(%d)", int(u))
}

func ParseScrollUnit(s string) (ScrollUnit, error) {
	switch s {
	case "line", "":
		return ScrollLine, nil
	case "pixel", "px":
		return ScrollPixel, nil
	}
	return ScrollLine, fmt.Errorf("%q is not a valid scroll unit; line or pixel", s)
}

// YawAxis selects the axis horizontal drags rotate around.
type YawAxis string

const (
	YawLocalUp YawAxis = "local"
	YawWorldUp YawAxis = "world"
)

// Termination selects how a fly-to decides it has arrived.
type Termination string

const (
	// TerminateCosine stops once the direction cosine exceeds FlyToCosine.
	TerminateCosine Termination = "cosine"
	// TerminateCosineOrDistance also stops when the camera is within FlyToDistance
	// of the target point at the current radius. The two checks disagree for small radii.
	TerminateCosineOrDistance Termination = "cosine-or-distance"
)

type Config struct {
	MinRadius float32 `yaml:"min_radius"`
	MaxRadius float32 `yaml:"max_radius"`

	PixelScrollDivisor float32 `yaml:"pixel_scroll_divisor"`
	LineScrollScale    float32 `yaml:"line_scroll_scale"`
	IgnoreLineScroll   bool    `yaml:"ignore_line_scroll"`

	DragSensitivity   float32    `yaml:"drag_sensitivity"`
	YawAxis           YawAxis    `yaml:"yaw_axis"`
	DragRequiresHover bool       `yaml:"drag_requires_hover"`
	WorldUp           mgl32.Vec3 `yaml:"world_up,flow"`

	FlyToSpeed       float32     `yaml:"fly_to_speed"`
	FlyToCosine      float32     `yaml:"fly_to_cosine"`
	FlyToDistance    float32     `yaml:"fly_to_distance"`
	FlyToTermination Termination `yaml:"fly_to_termination"`

	GlobeRadius float32    `yaml:"globe_radius"`
	Start       mgl32.Vec3 `yaml:"start,flow"`
	StartUp     mgl32.Vec3 `yaml:"start_up,flow"`
}

func DefaultConfig() Config {
	return Config{
		MinRadius:          0.9,
		MaxRadius:          3.0,
		PixelScrollDivisor: 300,
		LineScrollScale:    0.1,
		DragSensitivity:    0.005,
		YawAxis:            YawLocalUp,
		DragRequiresHover:  true,
		WorldUp:            mgl32.Vec3{0, 0, 1},
		FlyToSpeed:         3.0,
		FlyToCosine:        0.9999,
		FlyToDistance:      0.05,
		FlyToTermination:   TerminateCosine,
		GlobeRadius:        0.5,
		Start:              mgl32.Vec3{0, 0, 2},
		StartUp:            mgl32.Vec3{0, 1, 0},
	}
}

func (c Config) Validate() error {
	if c.MinRadius <= 0 {
		return fmt.Errorf("min radius must be positive, is %v", c.MinRadius)
	}
	if c.MaxRadius < c.MinRadius {
		return fmt.Errorf("max radius %v is smaller than min radius %v", c.MaxRadius, c.MinRadius)
	}
	if c.PixelScrollDivisor <= 0 {
		return fmt.Errorf("pixel scroll divisor must be positive, is %v", c.PixelScrollDivisor)
	}
	if c.DragSensitivity <= 0 {
		return fmt.Errorf("drag sensitivity must be positive, is %v", c.DragSensitivity)
	}
	if c.FlyToSpeed <= 0 {
		return fmt.Errorf("fly-to speed must be positive, is %v", c.FlyToSpeed)
	}
	if c.FlyToCosine <= 0 || c.FlyToCosine >= 1 {
		return fmt.Errorf("fly-to cosine must be in (0, 1), is %v", c.FlyToCosine)
	}
	switch c.YawAxis {
	case YawLocalUp, YawWorldUp:
	default:
		return fmt.Errorf("%q is not a valid yaw axis; local or world", c.YawAxis)
	}
	switch c.FlyToTermination {
	case TerminateCosine, TerminateCosineOrDistance:
	default:
		return fmt.Errorf("%q is not a valid fly-to termination; cosine or cosine-or-distance", c.FlyToTermination)
	}
	if c.Start.LenSqr() == 0 {
		return fmt.Errorf("start position must not be the origin")
	}
	return nil
}
