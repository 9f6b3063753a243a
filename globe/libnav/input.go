package libnav

import "github.com/go-gl/mathgl/mgl32"

// Pointer is the raw mouse state sampled for one frame.
type Pointer struct {
	LeftDown  bool
	Delta     mgl32.Vec2
	Scroll    []ScrollEvent
	OverGlobe bool
}

// NewInputFrame builds the controller input for one frame.
// While the UI owns the pointer its motion and scrolling are withheld and the globe
// counts as not hovered, but a held left button still pauses a running fly-to.
func NewInputFrame(p Pointer, uiOwnsPointer bool, hover *HoverTracker, dt float32) InputFrame {
	frame := InputFrame{LeftPressed: p.LeftDown, DeltaSeconds: dt}
	if !uiOwnsPointer {
		frame.DragDelta = p.Delta
		frame.Scroll = p.Scroll
	}
	frame.Hover = append(frame.Hover, hover.Update(p.OverGlobe && !uiOwnsPointer))
	return frame
}
