package libnav

import "globe-viewer/globe/libutil"

type ScrollEvent struct {
	Delta float32
	Unit  ScrollUnit
}

// ApplyZoom maps one scroll event onto a new, clamped camera distance.
// Positive deltas move the camera towards the globe.
func ApplyZoom(distance float32, ev ScrollEvent, cfg *Config) float32 {
	var delta float32
	switch ev.Unit {
	case ScrollPixel:
		delta = ev.Delta / cfg.PixelScrollDivisor
	case ScrollLine:
		if cfg.IgnoreLineScroll {
			return distance
		}
		delta = ev.Delta * cfg.LineScrollScale
	default:
		return distance
	}
	return libutil.ClampF(distance-delta, cfg.MinRadius, cfg.MaxRadius)
}

// Zoom moves the pose along its direction to the distance ApplyZoom yields.
// A pose at the origin has no direction and is returned unchanged.
func Zoom(p CameraPose, ev ScrollEvent, cfg *Config) CameraPose {
	distance := p.Distance()
	if distance == 0 {
		return p
	}
	next := ApplyZoom(distance, ev, cfg)
	p.Position = p.Position.Mul(next / distance)
	return p
}
