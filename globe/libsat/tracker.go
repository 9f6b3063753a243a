package libsat

import (
	"fmt"
	"math"
	"time"

	"globe-viewer/globe/libnav"
	"globe-viewer/globe/libutil"

	satellite "github.com/joshuaferrara/go-satellite"
)

// Tracker propagates one satellite with SGP4 and reports where it is overhead.
type Tracker struct {
	Name string
	sat  satellite.Satellite
}

func NewTracker(tle TLE) (*Tracker, error) {
	if err := tle.Validate(); err != nil {
		return nil, err
	}
	return &Tracker{
		Name: tle.Name,
		sat:  satellite.TLEToSat(tle.Line1, tle.Line2, satellite.GravityWGS72),
	}, nil
}

// SubPoint returns the geodetic point below the satellite at t and its altitude in km.
func (tr *Tracker) SubPoint(t time.Time) (libnav.GeoCoordinate, float64, error) {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	posECI, _ := satellite.Propagate(tr.sat, year, int(month), day, hour, min, sec)
	if math.IsNaN(posECI.X) || math.IsNaN(posECI.Y) || math.IsNaN(posECI.Z) {
		return libnav.GeoCoordinate{}, 0, fmt.Errorf("could not propagate %s to %v", tr.Name, t)
	}
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	altitude, _, lla := satellite.ECIToLLA(posECI, gmst)

	lat := lla.Latitude * 180 / math.Pi
	lon := libutil.WrapDegrees(lla.Longitude * 180 / math.Pi)
	return libnav.GeoCoordinate{Lat: float32(lat), Lon: float32(lon)}, altitude, nil
}
