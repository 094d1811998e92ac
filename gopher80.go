// This file is part of Gopher80.
//
// Gopher80 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher80 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher80.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/gopher80/console"
	"github.com/jetsetilly/gopher80/emulation"
	"github.com/jetsetilly/gopher80/hardware/cassette"
	"github.com/jetsetilly/gopher80/hardware/trs80"
	"github.com/jetsetilly/gopher80/logger"
	"github.com/jetsetilly/gopher80/statsview"
	"github.com/jetsetilly/gopher80/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	romPath := flag.String("rom", "", "path to a level II ROM image (empty for the built-in stand-in)")
	ramSize := flag.Int("ram", 0x4000, "installed RAM in bytes, up to 48K")
	casPath := flag.String("cassette", "", "tape image to attach at startup")
	casFormat := flag.String("format", "", "tape image format (cas, cpt, wav, mp3; empty to infer from the extension)")
	baud := flag.Int("baud", 500, "cassette baud rate (500 or 250)")
	lowercase := flag.Bool("lowercase", false, "lowercase display modification installed")
	logEcho := flag.Bool("log", false, "echo log entries to stderr as they happen")
	stats := flag.Bool("statsview", false, "run the statistics server")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		ver, rev := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, ver, rev)
		return 0
	}

	if *logEcho {
		logger.SetEcho(os.Stderr, true)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("statsview not available: rebuild with the statsview build tag")
		}
	}

	var rom []uint8
	if *romPath != "" {
		var err error
		rom, err = os.ReadFile(*romPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 10
		}
	}

	machine := trs80.NewTRS80(rom, *ramSize, *lowercase)

	if err := machine.Recorder.SetSpeed(*baud); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 10
	}

	// attaching before the emulation starts means the machine is still ours
	// to touch directly
	if *casPath != "" {
		name := *casFormat
		if name == "" {
			name = strings.TrimPrefix(filepath.Ext(*casPath), ".")
		}
		format, ok := cassette.ParseFormat(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "error: unrecognised tape format %q\n", name)
			return 10
		}
		if err := machine.Recorder.Attach(*casPath, format); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 10
		}
	}

	emu := emulation.NewEmulation(machine, nil)

	emulationError := make(chan error, 1)
	go func() {
		emulationError <- emu.Run()
	}()

	ver, _ := version.Version()
	fmt.Printf("%s %s. type help for commands; the machine starts paused\n",
		version.ApplicationName, ver)

	con := console.NewConsole(emu)
	consoleErr := con.Run()

	if err := <-emulationError; err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 10
	}
	if consoleErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", consoleErr)
		return 10
	}

	return 0
}
