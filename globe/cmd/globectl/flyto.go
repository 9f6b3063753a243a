package main

import (
	"flag"
	"fmt"
	"time"

	"globe-viewer/globe/libnav"
)

type flyToArgs struct {
	commonArgs
	place     string
	lat, lon  float64
	fps       int
	maxFrames int
	trace     bool
}

func createFlyToCommand() *command {
	args := flyToArgs{fps: 60, maxFrames: 10000}
	flags := flag.NewFlagSet("flyto", flag.ExitOnError)
	registerCommonFlags(flags, &args.commonArgs)
	flags.StringVar(&args.place, "place", args.place, "a preset name, overrides -lat and -lon")
	flags.Float64Var(&args.lat, "lat", args.lat, "target latitude in degrees")
	flags.Float64Var(&args.lon, "lon", args.lon, "target longitude in degrees")
	flags.IntVar(&args.fps, "fps", args.fps, "simulated frame rate")
	flags.IntVar(&args.maxFrames, "max-frames", args.maxFrames, "give up after this many frames")
	flags.BoolVar(&args.trace, "trace", args.trace, "print the camera after every frame")

	return &command{
		Name: "flyto",
		Help: "simulate a fly-to from the start pose without a window",
		Run: func(self *command) {
			if args.fps <= 0 || args.maxFrames <= 0 {
				printCommandUsage(self, "")
			}
			cfg := loadConfig(&args.commonArgs)
			target := libnav.GeoCoordinate{Lat: float32(args.lat), Lon: float32(args.lon)}
			if args.place != "" {
				places, err := cfg.PlaceSet()
				harderr(err)
				place, ok := places.Lookup(args.place)
				if !ok {
					harderr(fmt.Errorf("unknown place %q", args.place))
				}
				target = place.Coordinate
			}
			if !target.Valid() {
				harderr(fmt.Errorf("target %v is out of range", target))
			}

			ctrl := libnav.NewController(cfg.Navigation)
			var trace func(frame int, p libnav.CameraPose)
			if args.trace {
				trace = func(frame int, p libnav.CameraPose) {
					fmt.Printf("%5d %v %.4f\n", frame, p.Geo(), p.Distance())
				}
			}
			res := simulateFlyTo(ctrl, target, args.fps, args.maxFrames, trace)
			if !res.Arrived {
				harderr(fmt.Errorf("no arrival after %d frames, camera over %v", res.Frames, res.Final))
			}
			if !args.quiet {
				fmt.Printf("arrived over %v after %d frames (%v)\n", res.Final, res.Frames, res.Duration)
			}
		},
		Flags: flags,
	}
}

type flyToResult struct {
	Arrived  bool
	Frames   int
	Duration time.Duration
	Final    libnav.GeoCoordinate
}

// simulateFlyTo steps the controller at a fixed rate until the fly-to completes.
func simulateFlyTo(ctrl *libnav.Controller, target libnav.GeoCoordinate, fps, maxFrames int, trace func(int, libnav.CameraPose)) flyToResult {
	dt := 1 / float32(fps)
	ctrl.Request(target)

	res := flyToResult{}
	for res.Frames < maxFrames {
		res.Frames++
		fr := ctrl.Update(libnav.InputFrame{DeltaSeconds: dt})
		if trace != nil {
			trace(res.Frames, ctrl.Pose)
		}
		if fr.FlyToCompleted {
			res.Arrived = true
			break
		}
	}
	res.Duration = time.Duration(res.Frames) * time.Second / time.Duration(fps)
	res.Final = ctrl.Pose.Geo()
	return res
}
