package main

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"globe-viewer/globe/libnav"
	"globe-viewer/globe/libworld"

	"github.com/pierrec/lz4/v4"
)

func TestConvertGeo(t *testing.T) {
	out, err := convertGeo(geoArgs{lat: 90, lon: 0, radius: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	var x, y, z float64
	if _, err = fmt.Sscan(out, &x, &y, &z); err != nil {
		t.Fatalf("could not parse %q: %v", out, err)
	}
	if math.Abs(x) > 1e-6 || math.Abs(y) > 1e-6 || math.Abs(z-0.5) > 1e-6 {
		t.Errorf("north pole should be on +Z but is %q", out)
	}

	out, err = convertGeo(geoArgs{inverse: true, z: 2})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "90.0000/") {
		t.Errorf("+Z should be latitude 90 but is %q", out)
	}

	if _, err = convertGeo(geoArgs{lat: 91, radius: 0.5}); err == nil {
		t.Error("latitude 91 should be rejected")
	}
	if _, err = convertGeo(geoArgs{radius: 0}); err == nil {
		t.Error("radius 0 should be rejected")
	}
	if _, err = convertGeo(geoArgs{inverse: true}); err == nil {
		t.Error("the origin should be rejected")
	}
}

func TestCompressionLevel(t *testing.T) {
	cases := map[int]lz4.CompressionLevel{
		0: lz4.Fast,
		1: lz4.Level1,
		5: lz4.Level5,
		9: lz4.Level9,
	}
	for in, should := range cases {
		is, err := compressionLevel(in)
		if err != nil {
			t.Errorf("level %d: %v", in, err)
		}
		if is != should {
			t.Errorf("level %d should be %v but is %v", in, should, is)
		}
	}
	for _, in := range []int{-1, 10} {
		if _, err := compressionLevel(in); err == nil {
			t.Errorf("level %d should be rejected", in)
		}
	}
}

func TestSimulateFlyTo(t *testing.T) {
	ctrl := libnav.NewController(libnav.DefaultConfig())
	target := libnav.GeoCoordinate{Lat: 50.7024, Lon: 4.7281}
	frames := 0
	res := simulateFlyTo(ctrl, target, 60, 10000, func(int, libnav.CameraPose) { frames++ })

	if !res.Arrived {
		t.Fatalf("fly-to should arrive, stopped over %v after %d frames", res.Final, res.Frames)
	}
	if frames != res.Frames {
		t.Errorf("trace should be called %d times but was called %d times", res.Frames, frames)
	}
	if ctrl.FlyTo.Moving() {
		t.Error("controller should be idle after arrival")
	}
	dir := ctrl.Pose.Position.Normalize()
	should := target.Cartesian(1)
	if dir.Dot(should) < libnav.DefaultConfig().FlyToCosine {
		t.Errorf("camera should look down on %v but is over %v", target, res.Final)
	}
}

func TestSimulateFlyToGivesUp(t *testing.T) {
	ctrl := libnav.NewController(libnav.DefaultConfig())
	res := simulateFlyTo(ctrl, libnav.GeoCoordinate{Lat: -45, Lon: 120}, 60, 1, nil)
	if res.Arrived {
		t.Error("fly-to across the globe should not arrive in one frame")
	}
	if res.Frames != 1 {
		t.Errorf("simulation should stop after 1 frame but ran %d", res.Frames)
	}
}

func TestWritePlaces(t *testing.T) {
	places := libworld.DefaultPlaces()
	buf := bytes.Buffer{}
	writePlaces(&buf, places, true, 0.5)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != places.Len()+1 {
		t.Fatalf("should print a header and %d places but printed %d lines", places.Len(), len(lines))
	}
	if !strings.HasPrefix(lines[1], "Australia") {
		t.Errorf("sorted list should start with Australia but starts with %q", lines[1])
	}
}
