package libio

import (
	"fmt"
	"image"
	"image/draw"
	"io"

	_ "image/jpeg"
	_ "image/png"
)

// DecodeImage decodes any registered image format into 8 bit RGBA with the
// first row at the top, which is how the globe shaders sample it.
func DecodeImage(r io.Reader) (*image.RGBA, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}

	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba, nil
	}

	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%s image is empty", format)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, src, b.Min, draw.Src)
	return rgba, nil
}
