package libnav_test

import (
	"math"
	"testing"

	"globe-viewer/globe/libnav"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	belgium    = libnav.GeoCoordinate{Lat: 50.7024, Lon: 4.7281}
	madagascar = libnav.GeoCoordinate{Lat: -19.6587, Lon: 46.5245}
)

const frame60 = float32(1. / 60.)

func approx(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func approxVec(a, b mgl32.Vec3, eps float32) bool {
	return approx(a[0], b[0], eps) && approx(a[1], b[1], eps) && approx(a[2], b[2], eps)
}

func equatorPose(distance float32) libnav.CameraPose {
	return libnav.NewPose(libnav.ToCartesian(0, 0, distance), mgl32.Vec3{0, 0, 1})
}

func TestToCartesianOrigin(t *testing.T) {
	for _, r := range []float32{0.5, 1, 2, 3.5} {
		is := libnav.ToCartesian(0, 0, r)
		should := mgl32.Vec3{-r, 0, 0}
		if !approxVec(is, should, 1e-6) {
			t.Errorf("ToCartesian(0, 0, %v) should be %v but is %v", r, should, is)
		}
	}
}

func TestToCartesianPoles(t *testing.T) {
	north := libnav.ToCartesian(90, 37, 2)
	if !approxVec(north, mgl32.Vec3{0, 0, 2}, 1e-5) {
		t.Errorf("north pole should be on +Z but is %v", north)
	}
	south := libnav.ToCartesian(-90, -120, 2)
	if !approxVec(south, mgl32.Vec3{0, 0, -2}, 1e-5) {
		t.Errorf("south pole should be on -Z but is %v", south)
	}
}

func TestToCartesianMagnitude(t *testing.T) {
	for lat := float32(-90); lat <= 90; lat += 7.5 {
		for lon := float32(-180); lon <= 180; lon += 15 {
			for _, r := range []float32{0.5, 1, 2.25} {
				v := libnav.ToCartesian(lat, lon, r)
				if !approx(v.Len(), r, 1e-5) {
					t.Fatalf("|ToCartesian(%v, %v, %v)| should be %v but is %v", lat, lon, r, r, v.Len())
				}
			}
		}
	}
}

func TestFromCartesianRoundTrip(t *testing.T) {
	for lat := float32(-80); lat <= 80; lat += 20 {
		for lon := float32(-170); lon <= 170; lon += 34 {
			g := libnav.FromCartesian(libnav.ToCartesian(lat, lon, 1.7))
			if !approx(g.Lat, lat, 1e-3) || !approx(g.Lon, lon, 1e-3) {
				t.Errorf("round trip of %v/%v is %v", lat, lon, g)
			}
		}
	}
	if g := libnav.FromCartesian(mgl32.Vec3{}); g != (libnav.GeoCoordinate{}) {
		t.Errorf("zero vector should map to 0/0 but is %v", g)
	}
}

func TestGeoCoordinateValid(t *testing.T) {
	cases := []struct {
		g      libnav.GeoCoordinate
		should bool
	}{
		{libnav.GeoCoordinate{Lat: 0, Lon: 0}, true},
		{libnav.GeoCoordinate{Lat: 90, Lon: 180}, true},
		{libnav.GeoCoordinate{Lat: -90, Lon: -180}, true},
		{libnav.GeoCoordinate{Lat: 90.5, Lon: 0}, false},
		{libnav.GeoCoordinate{Lat: 0, Lon: -180.1}, false},
		{libnav.GeoCoordinate{Lat: 64.88, Lon: -18.4}, true},
	}
	for _, c := range cases {
		if is := c.g.Valid(); is != c.should {
			t.Errorf("%v.Valid() should be %v but is %v", c.g, c.should, is)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := libnav.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	broken := []func(c *libnav.Config){
		func(c *libnav.Config) { c.MinRadius = 0 },
		func(c *libnav.Config) { c.MaxRadius = c.MinRadius / 2 },
		func(c *libnav.Config) { c.PixelScrollDivisor = 0 },
		func(c *libnav.Config) { c.DragSensitivity = -1 },
		func(c *libnav.Config) { c.FlyToSpeed = 0 },
		func(c *libnav.Config) { c.FlyToCosine = 1 },
		func(c *libnav.Config) { c.YawAxis = "sideways" },
		func(c *libnav.Config) { c.FlyToTermination = "never" },
		func(c *libnav.Config) { c.Start = mgl32.Vec3{} },
	}
	for i, mutate := range broken {
		c := libnav.DefaultConfig()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("case %d should be rejected", i)
		}
	}
}

func TestParseScrollUnit(t *testing.T) {
	if u, err := libnav.ParseScrollUnit("pixel"); err != nil || u != libnav.ScrollPixel {
		t.Errorf("pixel should parse, got %v, %v", u, err)
	}
	if u, err := libnav.ParseScrollUnit("line"); err != nil || u != libnav.ScrollLine {
		t.Errorf("line should parse, got %v, %v", u, err)
	}
	if _, err := libnav.ParseScrollUnit("page"); err == nil {
		t.Errorf("page should not parse")
	}
}
