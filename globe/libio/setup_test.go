package libio_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"testing"

	"globe-viewer/globe/libio"

	"github.com/pierrec/lz4/v4"
)

var testdata struct {
	root     string
	png      []byte
	pngLz4   []byte
	expected *image.RGBA
}

func TestMain(m *testing.M) {
	var err error
	testdata.root, err = os.MkdirTemp("", "globe-assets")
	check(err)

	// 4x2 gradient with a red top left corner
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 60), G: uint8(y * 200), B: 10, A: 255})
		}
	}
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	testdata.expected = image.NewRGBA(img.Rect)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			testdata.expected.Set(x, y, img.At(x, y))
		}
	}

	buf := bytes.Buffer{}
	check(png.Encode(&buf, img))
	testdata.png = buf.Bytes()

	lzBuf := bytes.Buffer{}
	_, err = libio.Compress(&lzBuf, bytes.NewReader(testdata.png), lz4.Fast)
	check(err)
	testdata.pngLz4 = lzBuf.Bytes()

	write("globe_default.png", testdata.png)
	write("globe/earth_01.png", testdata.png)
	write("globe/earth_02.png.lz4", testdata.pngLz4)
	write("globe/earth_03.png", []byte("not a png"))
	write("sky.png", testdata.png)

	code := m.Run()
	os.RemoveAll(testdata.root)
	os.Exit(code)
}

func write(name string, data []byte) {
	filename := filepath.Join(testdata.root, filepath.FromSlash(name))
	check(os.MkdirAll(filepath.Dir(filename), 0o755))
	check(os.WriteFile(filename, data, 0o644))
}

func check(err error) {
	if err != nil {
		log.Panic(err)
	}
}
