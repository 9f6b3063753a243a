package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"globe-viewer/globe/libio"

	"github.com/pierrec/lz4/v4"
)

type compressArgs struct {
	level  int
	remove bool
	quiet  bool
}

func createCompressCommand() *command {
	args := compressArgs{level: 9}
	flags := flag.NewFlagSet("compress", flag.ExitOnError)
	flags.IntVar(&args.level, "level", args.level, "the compression level from 0 (fast) to 9 (high)")
	flags.IntVar(&args.level, "l", args.level, "shorthand for level")
	flags.BoolVar(&args.remove, "rm", args.remove, "remove the input file after compressing")
	flags.BoolVar(&args.quiet, "quiet", args.quiet, "disables informational logging")
	flags.BoolVar(&args.quiet, "q", args.quiet, "shorthand for quiet")

	return &command{
		Name: "compress",
		Help: "lz4 compress texture assets so the viewer loads the .lz4 variant",
		Run: func(self *command) {
			level, err := compressionLevel(args.level)
			if self.Flags.NArg() < 1 || err != nil {
				printCommandUsage(self, " file-glob...")
			}
			runCompress(args, level, gatherInputFiles(self.Flags.Args()))
		},
		Flags: flags,
	}
}

// compressionLevel maps 0..9 onto lz4.Fast and lz4.Level1 to lz4.Level9.
func compressionLevel(level int) (lz4.CompressionLevel, error) {
	switch {
	case level == 0:
		return lz4.Fast, nil
	case level >= 1 && level <= 9:
		return lz4.CompressionLevel(1 << (8 + level)), nil
	}
	return lz4.Fast, fmt.Errorf("compression level %d is not in 0..9", level)
}

func runCompress(args compressArgs, level lz4.CompressionLevel, inputFiles []string) {
	success := 0
	start := time.Now()
	for i, p := range inputFiles {
		if !args.quiet {
			fmt.Printf("Compressing file %d/%d %q ...\n", i+1, len(inputFiles), filepath.ToSlash(filepath.Clean(p)))
		}
		out, err := libio.CompressFile(p, level)
		if softerr(err) {
			continue
		}
		if args.remove {
			if softerr(os.Remove(p)) {
				continue
			}
		}
		if !args.quiet {
			fmt.Printf("Wrote %q\n", filepath.ToSlash(out))
		}
		success++
	}
	if !args.quiet {
		fmt.Printf("Compressed %d/%d files in %v\n", success, len(inputFiles), time.Since(start).Round(time.Millisecond))
	}
	if success != len(inputFiles) {
		os.Exit(1)
	}
}
