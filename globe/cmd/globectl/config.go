package main

import (
	"flag"
	"fmt"
	"os"

	"globe-viewer/globe/libcfg"
)

type configArgs struct {
	commonArgs
	env bool
}

func createConfigCommand() *command {
	args := configArgs{}
	flags := flag.NewFlagSet("config", flag.ExitOnError)
	registerCommonFlags(flags, &args.commonArgs)
	flags.BoolVar(&args.env, "env", args.env, "list the recognised environment variables instead")

	return &command{
		Name: "config",
		Help: "print the effective viewer configuration as YAML",
		Run: func(self *command) {
			if args.env {
				for _, key := range libcfg.EnvKeys() {
					fmt.Println(key)
				}
				return
			}
			cfg := loadConfig(&args.commonArgs)
			harderr(cfg.Encode(os.Stdout))
		},
		Flags: flags,
	}
}
