package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"globe-viewer/globe/libsat"
)

type satArgs struct {
	at    string
	steps int
	every time.Duration
}

func createSatCommand() *command {
	args := satArgs{steps: 1, every: time.Minute}
	flags := flag.NewFlagSet("sat", flag.ExitOnError)
	flags.StringVar(&args.at, "at", args.at, "RFC 3339 start time, default now")
	flags.IntVar(&args.steps, "n", args.steps, "number of positions to print")
	flags.DurationVar(&args.every, "every", args.every, "time between positions")

	return &command{
		Name: "sat",
		Help: "print where the satellites of a TLE file are overhead",
		Run: func(self *command) {
			if self.Flags.NArg() != 1 || args.steps < 1 || args.every <= 0 {
				printCommandUsage(self, " tle-file")
			}
			start := time.Now().UTC()
			if args.at != "" {
				var err error
				start, err = time.Parse(time.RFC3339, args.at)
				harderr(err)
			}
			tles, err := libsat.ReadTLEFile(self.Flags.Arg(0))
			harderr(err)
			failed := false
			for _, tle := range tles {
				if softerr(writeSubPoints(os.Stdout, tle, start, args.steps, args.every)) {
					failed = true
				}
			}
			if failed {
				os.Exit(1)
			}
		},
		Flags: flags,
	}
}

func writeSubPoints(w io.Writer, tle libsat.TLE, start time.Time, steps int, every time.Duration) error {
	tracker, err := libsat.NewTracker(tle)
	if err != nil {
		return fmt.Errorf("%s: %w", tle.Name, err)
	}
	for i := 0; i < steps; i++ {
		t := start.Add(time.Duration(i) * every)
		geo, alt, err := tracker.SubPoint(t)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%v\t%.1f km\n", tracker.Name, t.Format(time.RFC3339), geo, alt)
	}
	return nil
}
