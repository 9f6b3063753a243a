package libio

import (
	"image"
	"log"
	"sync"
)

const (
	DefaultGlobeTexture = "globe_default.png"
	GlobeTexture        = "globe.png"
	SkyTexture          = "sky.png"
)

type decoded struct {
	name string
	img  *image.RGBA
	err  error
}

// TextureSet decodes images on background goroutines. Decoded images are handed to
// the caller's goroutine by Poll, so that GL uploads stay on the render thread.
type TextureSet struct {
	pack    *DirPack
	wg      sync.WaitGroup
	mu      sync.Mutex
	done    []decoded
	images  map[string]*image.RGBA
	failed  map[string]error
	pending map[string]bool
}

func NewTextureSet(pack *DirPack) *TextureSet {
	return &TextureSet{
		pack:    pack,
		images:  map[string]*image.RGBA{},
		failed:  map[string]error{},
		pending: map[string]bool{},
	}
}

// Request starts decoding every name not already loaded or in flight.
func (ts *TextureSet) Request(names ...string) {
	for _, name := range names {
		if ts.pending[name] || ts.Loaded(name) {
			continue
		}
		delete(ts.failed, name)
		ts.pending[name] = true
		ts.wg.Add(1)
		go ts.decode(name)
	}
}

func (ts *TextureSet) decode(name string) {
	defer ts.wg.Done()
	img, err := ts.pack.LoadTextureImage(name)

	ts.mu.Lock()
	ts.done = append(ts.done, decoded{name: name, img: img, err: err})
	ts.mu.Unlock()
}

// Poll collects finished decodes without blocking and calls loaded for each
// image that became available. Failures are logged and remembered.
func (ts *TextureSet) Poll(loaded func(name string, img *image.RGBA)) int {
	ts.mu.Lock()
	done := ts.done
	ts.done = nil
	ts.mu.Unlock()

	n := 0
	for _, d := range done {
		delete(ts.pending, d.name)
		if d.err != nil {
			log.Printf("could not load texture %q: %v", d.name, d.err)
			ts.failed[d.name] = d.err
			continue
		}
		ts.images[d.name] = d.img
		n++
		if loaded != nil {
			loaded(d.name, d.img)
		}
	}
	return n
}

// Wait blocks until every requested decode finished. Results still have to be Polled.
func (ts *TextureSet) Wait() {
	ts.wg.Wait()
}

// Get returns a loaded image. Missing, failed, released and in-flight textures report false.
func (ts *TextureSet) Get(name string) (*image.RGBA, bool) {
	img := ts.images[name]
	return img, img != nil
}

func (ts *TextureSet) Err(name string) error {
	return ts.failed[name]
}

func (ts *TextureSet) Pending() int {
	return len(ts.pending)
}

// Release drops the CPU copy of an image once it lives on the GPU.
func (ts *TextureSet) Release(name string) {
	if _, ok := ts.images[name]; ok {
		ts.images[name] = nil
	}
}

// Loaded reports whether the texture was decoded, even if its pixels were released.
func (ts *TextureSet) Loaded(name string) bool {
	_, ok := ts.images[name]
	return ok
}

// NextGlobeTexture picks what the globe should show this frame. The wanted texture
// wins once ready; until then the current one stays, and an empty globe falls back
// to the default and then the plain globe texture. Nothing ready yields "".
func NextGlobeTexture(current, wanted string, ready func(string) bool) string {
	if ready(wanted) {
		return wanted
	}
	if current != "" {
		return current
	}
	for _, name := range []string{DefaultGlobeTexture, GlobeTexture} {
		if ready(name) {
			return name
		}
	}
	return ""
}
