package libworld

import "globe-viewer/globe/libnav"

var (
	GeographicNorth = libnav.GeoCoordinate{Lat: 90, Lon: 0}
	GeographicSouth = libnav.GeoCoordinate{Lat: -90, Lon: 0}

	// dip pole estimates, WMM 2020 epoch
	MagneticNorth = libnav.GeoCoordinate{Lat: 86.5, Lon: 164.0}
	MagneticSouth = libnav.GeoCoordinate{Lat: -64.1, Lon: 135.9}
)
