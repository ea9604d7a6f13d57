// Copyright 2018 The hpsahba authors. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// hpsahba reports identity and HBA mode capability of HP/HPE Smart Array
// controllers.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cbork/hpsahba"
	"github.com/cbork/hpsahba/boarddb"
	"github.com/cbork/hpsahba/cciss"
)

// Optional board name database, consulted after the fixed report fields.
const boardDbPath = "/etc/hpsahba/boards.yaml"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL ERROR: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hpsahba", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	help := fs.Bool("h", false, "print help and exit")
	version := fs.Bool("v", false, "print version and exit")
	device := fs.String("i", "", "get information about a controller")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v, try running with -h", err)
	}
	if fs.NArg() > 0 {
		return errors.New("invalid argument in command line, try running with -h")
	}

	switch {
	case *help:
		printHelp(stderr)
	case *version:
		fmt.Fprintln(stdout, hpsahba.Version)
	case *device != "":
		return printInfo(*device, stdout, stderr)
	default:
		return errors.New("no option selected, try running with -h")
	}

	return nil
}

// printInfo queries the controller at path and writes the field report. On a
// command failure the full completion record is dumped before the fatal
// error; the device handle is deliberately left to process exit on failure
// paths.
func printInfo(path string, stdout, stderr io.Writer) error {
	dev, err := cciss.OpenDevice(path)
	if err != nil {
		return err
	}

	info, err := hpsahba.Query(dev)
	if err != nil {
		var statusErr *cciss.CommandStatusError
		if errors.As(err, &statusErr) {
			statusErr.Info.Dump(stderr)
		}
		return fmt.Errorf("%s: %w", path, err)
	}

	db, err := boarddb.OpenBoardDb(boardDbPath)
	if err != nil {
		return err
	}

	info.WriteReport(stdout, &db)

	return dev.Close()
}

func printHelp(w io.Writer) {
	exe := "hpsahba"
	fmt.Fprintf(w,
		"%s version %s\n"+
			"\n"+
			"Usage:\n"+
			"\t%s -h\n"+
			"\t%s -v\n"+
			"\t%s -i /dev/sgN\n"+
			"\n"+
			"Options:\n"+
			"\t-h\n"+
			"\t\tPrint this help message and exit.\n"+
			"\n"+
			"\t-v\n"+
			"\t\tPrint version number and exit.\n"+
			"\n"+
			"\t-i <device path>\n"+
			"\t\tGet information about HP Smart Array controller.\n",
		exe, hpsahba.Version, exe, exe, exe)
}
