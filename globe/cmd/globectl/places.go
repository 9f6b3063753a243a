package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"globe-viewer/globe/libnav"
	"globe-viewer/globe/libworld"

	"github.com/go-gl/mathgl/mgl32"
)

type placesArgs struct {
	commonArgs
	sorted bool
}

func createPlacesCommand() *command {
	args := placesArgs{}
	flags := flag.NewFlagSet("places", flag.ExitOnError)
	registerCommonFlags(flags, &args.commonArgs)
	flags.BoolVar(&args.sorted, "sort", args.sorted, "sort by name instead of panel order")

	return &command{
		Name: "places",
		Help: "list the fly-to presets of the places panel",
		Run: func(self *command) {
			cfg := loadConfig(&args.commonArgs)
			places, err := cfg.PlaceSet()
			harderr(err)
			writePlaces(os.Stdout, places, args.sorted, cfg.Navigation.GlobeRadius)
		},
		Flags: flags,
	}
}

func writePlaces(w io.Writer, places *libworld.Places, sorted bool, radius float32) {
	list := places.All()
	if sorted {
		list = places.Sorted()
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLAT\tLON\tPOSITION")
	for _, p := range list {
		pos := p.Coordinate.Cartesian(radius)
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t(%.4f, %.4f, %.4f)\n", p.Name, p.Coordinate.Lat, p.Coordinate.Lon, pos[0], pos[1], pos[2])
	}
	tw.Flush()
}

type geoArgs struct {
	lat, lon, radius float64
	inverse          bool
	x, y, z          float64
}

func createGeoCommand() *command {
	args := geoArgs{radius: 0.5}
	flags := flag.NewFlagSet("geo", flag.ExitOnError)
	flags.Float64Var(&args.lat, "lat", args.lat, "latitude in degrees")
	flags.Float64Var(&args.lon, "lon", args.lon, "longitude in degrees")
	flags.Float64Var(&args.radius, "r", args.radius, "sphere radius")
	flags.BoolVar(&args.inverse, "inverse", args.inverse, "convert -x -y -z back to latitude and longitude")
	flags.Float64Var(&args.x, "x", args.x, "")
	flags.Float64Var(&args.y, "y", args.y, "")
	flags.Float64Var(&args.z, "z", args.z, "")

	return &command{
		Name: "geo",
		Help: "convert between geographic and globe coordinates",
		Run: func(self *command) {
			out, err := convertGeo(args)
			if err != nil {
				softerr(err)
				printCommandUsage(self, "")
			}
			fmt.Println(out)
		},
		Flags: flags,
	}
}

func convertGeo(args geoArgs) (string, error) {
	if args.inverse {
		v := mgl32.Vec3{float32(args.x), float32(args.y), float32(args.z)}
		if v.LenSqr() == 0 {
			return "", fmt.Errorf("the origin has no geographic coordinate")
		}
		geo := libnav.FromCartesian(v)
		return geo.String(), nil
	}
	geo := libnav.GeoCoordinate{Lat: float32(args.lat), Lon: float32(args.lon)}
	if !geo.Valid() {
		return "", fmt.Errorf("%v is out of range", geo)
	}
	if args.radius <= 0 {
		return "", fmt.Errorf("radius must be positive, is %v", args.radius)
	}
	pos := geo.Cartesian(float32(args.radius))
	return fmt.Sprintf("%.6f %.6f %.6f", pos[0], pos[1], pos[2]), nil
}
