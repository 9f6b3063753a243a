package libio_test

import (
	"bytes"
	"errors"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"globe-viewer/globe/libio"

	"github.com/pierrec/lz4/v4"
)

func TestDecodeImage(t *testing.T) {
	img, err := libio.DecodeImage(bytes.NewReader(testdata.png))
	if err != nil {
		t.Fatal(err)
	}
	if img.Rect.Dx() != 4 || img.Rect.Dy() != 2 {
		t.Fatalf("size should be 4x2 but is %v", img.Rect)
	}
	if !bytes.Equal(img.Pix, testdata.expected.Pix) {
		t.Errorf("pixels differ")
	}
	if img.Pix[0] != 255 || img.Pix[1] != 0 {
		t.Errorf("first pixel should be red but is %v", img.Pix[0:4])
	}
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	_, err := libio.DecodeImage(strings.NewReader("garbage"))
	if err == nil {
		t.Errorf("garbage should not decode")
	}
}

func TestCompressRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("globe "), 1000)
	buf := bytes.Buffer{}
	n, err := libio.Compress(&buf, bytes.NewReader(payload), lz4.Level1)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(payload)) {
		t.Errorf("should consume %d bytes but consumed %d", len(payload), n)
	}
	if buf.Len() >= len(payload) {
		t.Errorf("repetitive payload should shrink, %d >= %d", buf.Len(), len(payload))
	}

	out, err := io.ReadAll(lz4.NewReader(&buf))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, payload) {
		t.Errorf("round trip changed the payload")
	}
}

func TestCompressFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "plain.png")
	if err := os.WriteFile(src, testdata.png, 0o644); err != nil {
		t.Fatal(err)
	}

	target, err := libio.CompressFile(src, lz4.Fast)
	if err != nil {
		t.Fatal(err)
	}
	if target != src+libio.CompressedExt {
		t.Errorf("target should be %s but is %s", src+libio.CompressedExt, target)
	}

	os.Remove(src)
	pack := libio.NewDirPack(dir)
	img, err := pack.LoadTextureImage("plain.png")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(img.Pix, testdata.expected.Pix) {
		t.Errorf("pixels differ after compression")
	}
}

func TestDirPackOpen(t *testing.T) {
	pack := libio.NewDirPack(testdata.root)

	for _, name := range []string{"globe_default.png", "globe/earth_01.png", "globe/earth_02.png"} {
		if !pack.Exists(name) {
			t.Errorf("%s should exist", name)
		}
		rc, err := pack.Open(name)
		if err != nil {
			t.Errorf("could not open %s: %v", name, err)
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Errorf("could not read %s: %v", name, err)
		}
		if !bytes.Equal(data, testdata.png) {
			t.Errorf("%s content differs", name)
		}
	}

	if pack.Exists("globe/earth_12.png") {
		t.Errorf("earth_12 should not exist")
	}
	if _, err := pack.Open("globe/earth_12.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing asset should report not exist, got %v", err)
	}
}

func TestDirPackIndex(t *testing.T) {
	pack := libio.NewDirPack(testdata.root)
	index := `{"textures": ["globe/*.lz4"]}`
	if err := pack.AddIndex(strings.NewReader(index), testdata.root); err != nil {
		t.Fatal(err)
	}

	var names []string
	for name := range pack.TextureIndex {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) != 1 || names[0] != "globe/earth_02.png" {
		t.Fatalf("index should alias globe/earth_02.png but has %v", names)
	}

	if _, err := pack.LoadTextureImage("globe/earth_02.png"); err != nil {
		t.Errorf("indexed compressed texture should load: %v", err)
	}
}

func TestTextureSet(t *testing.T) {
	ts := libio.NewTextureSet(libio.NewDirPack(testdata.root))
	ts.Request(libio.DefaultGlobeTexture, "globe/earth_01.png", "globe/earth_02.png", "globe/earth_03.png", "globe/earth_04.png")
	ts.Request("globe/earth_01.png")
	if ts.Pending() != 5 {
		t.Errorf("pending should be 5 but is %d", ts.Pending())
	}

	if _, ok := ts.Get(libio.DefaultGlobeTexture); ok {
		t.Errorf("nothing should be available before Poll")
	}

	ts.Wait()
	loaded := map[string]*image.RGBA{}
	n := ts.Poll(func(name string, img *image.RGBA) {
		loaded[name] = img
	})
	if n != 3 || len(loaded) != 3 {
		t.Errorf("3 textures should load but %d did", n)
	}
	if ts.Pending() != 0 {
		t.Errorf("pending should be 0 but is %d", ts.Pending())
	}

	for _, name := range []string{libio.DefaultGlobeTexture, "globe/earth_01.png", "globe/earth_02.png"} {
		img, ok := ts.Get(name)
		if !ok || img != loaded[name] {
			t.Errorf("%s should be available", name)
		}
	}
	for _, name := range []string{"globe/earth_03.png", "globe/earth_04.png"} {
		if _, ok := ts.Get(name); ok {
			t.Errorf("%s should not be available", name)
		}
		if ts.Err(name) == nil {
			t.Errorf("%s should have an error", name)
		}
	}
}

func TestTextureSetRelease(t *testing.T) {
	ts := libio.NewTextureSet(libio.NewDirPack(testdata.root))
	ts.Request(libio.SkyTexture)
	ts.Wait()
	ts.Poll(nil)

	ts.Release(libio.SkyTexture)
	if _, ok := ts.Get(libio.SkyTexture); ok {
		t.Errorf("released texture should not be returned")
	}
	if !ts.Loaded(libio.SkyTexture) {
		t.Errorf("released texture should still count as loaded")
	}
	ts.Request(libio.SkyTexture)
	if ts.Pending() != 0 {
		t.Errorf("loaded texture should not be requested again")
	}
}

func TestNextGlobeTexture(t *testing.T) {
	const march = "globe/earth_03.png"
	uploaded := map[string]bool{}
	ready := func(name string) bool { return uploaded[name] }

	if is := libio.NextGlobeTexture("", march, ready); is != "" {
		t.Errorf("nothing uploaded should show nothing but shows %q", is)
	}

	uploaded[libio.GlobeTexture] = true
	if is := libio.NextGlobeTexture("", march, ready); is != libio.GlobeTexture {
		t.Errorf("missing default should fall back to %q but shows %q", libio.GlobeTexture, is)
	}

	uploaded[libio.DefaultGlobeTexture] = true
	is := libio.NextGlobeTexture("", march, ready)
	if is != libio.DefaultGlobeTexture {
		t.Errorf("startup should show %q until the month is ready but shows %q", libio.DefaultGlobeTexture, is)
	}

	uploaded[march] = true
	if is = libio.NextGlobeTexture(is, march, ready); is != march {
		t.Errorf("the month should replace the default as soon as it is ready, shows %q", is)
	}

	if is = libio.NextGlobeTexture(is, "globe/earth_04.png", ready); is != march {
		t.Errorf("a month that is not ready should keep %q but shows %q", march, is)
	}
}
