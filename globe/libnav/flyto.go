package libnav

import "github.com/go-gl/mathgl/mgl32"

// FlyTo animates the camera towards a geographic target over several frames.
// It is either idle or moving towards exactly one target; a new request replaces the old one.
type FlyTo struct {
	target GeoCoordinate
	moving bool
}

func (f *FlyTo) Request(target GeoCoordinate) {
	f.target = target
	f.moving = true
}

// SetActive starts or stops moving towards the last requested target.
func (f *FlyTo) SetActive(moving bool) {
	f.moving = moving
}

func (f *FlyTo) Moving() bool {
	return f.moving
}

func (f *FlyTo) Target() GeoCoordinate {
	return f.target
}

// Step advances one frame of dt seconds. The returned flag is true on the frame the
// fly-to arrives; the controller is idle afterwards.
func (f *FlyTo) Step(p CameraPose, dt float32, cfg *Config) (CameraPose, bool) {
	if !f.moving {
		return p, false
	}

	distance := p.Distance()
	if distance == 0 {
		f.moving = false
		return p, true
	}

	targetDir := ToCartesian(f.target.Lat, f.target.Lon, 1).Normalize()
	currentDir := p.Direction()

	if currentDir.Dot(targetDir) > cfg.FlyToCosine {
		f.moving = false
		return p, true
	}

	rotation := mgl32.QuatBetweenVectors(currentDir, targetDir)

	t := cfg.FlyToSpeed * dt
	if t > 1 {
		t = 1
	} else if t < 0 {
		t = 0
	}
	partial := mgl32.QuatSlerp(mgl32.QuatIdent(), rotation, t)
	p = p.Rotated(partial)

	if cfg.FlyToTermination == TerminateCosineOrDistance {
		targetPos := ToCartesian(f.target.Lat, f.target.Lon, distance)
		if p.Position.Sub(targetPos).Len() < cfg.FlyToDistance {
			f.moving = false
			return p, true
		}
	}

	return p, false
}
