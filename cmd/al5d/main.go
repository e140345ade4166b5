package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Demo    DemoCommand    `command:"demo" description:"Run the fixed pick-and-place demonstration sequence"`
	Monitor MonitorCommand `command:"monitor" description:"Chart simulator joint states live"`
	Init    InitCommand    `command:"init" description:"Pick a serial port and write a starter calibration file"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "al5d - task-level control for the Lynxmotion AL5D robot arm"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
