package libnav

import (
	"fmt"

	"globe-viewer/globe/libutil"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// GeoCoordinate is a latitude/longitude pair in degrees.
type GeoCoordinate struct {
	Lat float32 `yaml:"lat" json:"lat"`
	Lon float32 `yaml:"lon" json:"lon"`
}

func (g GeoCoordinate) String() string {
	return fmt.Sprintf("%.4f/%.4f", g.Lat, g.Lon)
}

// Valid reports whether the coordinate is within ±90° latitude and ±180° longitude.
func (g GeoCoordinate) Valid() bool {
	if math32.IsNaN(g.Lat) || math32.IsNaN(g.Lon) {
		return false
	}
	return g.Lat >= -90 && g.Lat <= 90 && g.Lon >= -180 && g.Lon <= 180
}

// Cartesian is a shorthand for ToCartesian(g.Lat, g.Lon, radius).
func (g GeoCoordinate) Cartesian(radius float32) mgl32.Vec3 {
	return ToCartesian(g.Lat, g.Lon, radius)
}

// ToCartesian maps a geographic coordinate onto a sphere around the origin.
// The negated x and y match the globe's texture mapping; the north pole is +Z.
func ToCartesian(latDeg, lonDeg, radius float32) mgl32.Vec3 {
	lat := latDeg * libutil.Deg2Rad
	lon := lonDeg * libutil.Deg2Rad
	cosLat := math32.Cos(lat)
	return mgl32.Vec3{
		-radius * cosLat * math32.Cos(lon),
		-radius * cosLat * math32.Sin(lon),
		radius * math32.Sin(lat),
	}
}

// FromCartesian is the inverse of ToCartesian for any non-zero vector.
// The zero vector maps to 0/0.
func FromCartesian(v mgl32.Vec3) GeoCoordinate {
	r := v.Len()
	if r == 0 {
		return GeoCoordinate{}
	}
	lat := math32.Asin(libutil.ClampF(v[2]/r, -1, 1))
	lon := math32.Atan2(-v[1], -v[0])
	return GeoCoordinate{Lat: lat * libutil.Rad2Deg, Lon: lon * libutil.Rad2Deg}
}
