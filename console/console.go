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

// Package console is the interactive control surface of the emulator. It
// reads commands a line at a time, turns them into emulation commands and
// waits for the response to each before prompting again.
//
// The console also keeps the bookkeeping for cross-wired keys: several key
// names share a matrix cell and the cell must stay held until the last of
// its names is released.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/emulation"
	"github.com/jetsetilly/gopher80/hardware/cassette"
	"github.com/jetsetilly/gopher80/hardware/keyboard"
	"github.com/jetsetilly/gopher80/logger"
)

// EmulationEnded is returned when the emulation loop has gone away while
// the console was waiting for a response.
const EmulationEnded = "console: emulation has ended"

// how long a typed key is held in the matrix. a few frames, so the ROM's
// keyboard scan cannot miss it.
const tapDuration = 60 * time.Millisecond

const prompt = "gopher80 > "

// Console is the line-based control surface.
type Console struct {
	emu *emulation.Emulation

	input  *os.File
	output io.Writer
	term   terminal

	nextID int

	// count of pressed names per matrix cell. the cell releases when the
	// count returns to zero
	held map[keyboard.Position]int
}

// NewConsole is the preferred method of initialisation for the Console
// type.
func NewConsole(emu *emulation.Emulation) *Console {
	return &Console{
		emu:    emu,
		input:  os.Stdin,
		output: os.Stdout,
		held:   make(map[keyboard.Position]int),
	}
}

// Run reads and executes console commands until quit or end of input. The
// emulation is told to end before Run returns.
func (con *Console) Run() error {
	if err := con.term.initialise(con.input); err != nil {
		return curated.Errorf("console: %v", err)
	}
	defer con.term.canonicalMode()

	scanner := bufio.NewScanner(con.input)

	for {
		fmt.Fprint(con.output, prompt)
		if !scanner.Scan() {
			break
		}

		quit, err := con.line(scanner.Text())
		if err != nil {
			if curated.Is(err, EmulationEnded) {
				return nil
			}
			fmt.Fprintf(con.output, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}

	// end of input. wind the emulation down as a quit command would
	_, err := con.do(emulation.Command{Op: emulation.OpQuit})
	if err != nil && !curated.Is(err, EmulationEnded) {
		return err
	}
	con.drain()
	return nil
}

// line executes a single console command.
func (con *Console) line(s string) (bool, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false, nil
	}

	switch strings.ToLower(fields[0]) {
	case "help":
		con.help()
		return false, nil

	case "pause":
		return false, con.simple(emulation.Command{Op: emulation.OpPause})

	case "resume", "run":
		return false, con.simple(emulation.Command{Op: emulation.OpResume})

	case "reset":
		hard := len(fields) > 1 && strings.ToLower(fields[1]) == "hard"
		return false, con.simple(emulation.Command{Op: emulation.OpReset, Hard: hard})

	case "cassette":
		return false, con.cassette(fields[1:])

	case "key":
		if len(fields) != 3 {
			return false, curated.Errorf("console: usage: key <name> press|release")
		}
		switch strings.ToLower(fields[2]) {
		case "press":
			return false, con.press(fields[1], true)
		case "release":
			return false, con.press(fields[1], false)
		}
		return false, curated.Errorf("console: usage: key <name> press|release")

	case "type":
		if len(fields) < 2 {
			return false, curated.Errorf("console: usage: type <text>")
		}
		return false, con.typeText(strings.Join(fields[1:], " "))

	case "kbd":
		return false, con.liveKeyboard()

	case "config":
		if len(fields) != 3 {
			return false, curated.Errorf("console: usage: config <key> <value>")
		}
		return false, con.simple(emulation.Command{Op: emulation.OpApplyConfig, Key: fields[1], Value: fields[2]})

	case "status":
		return false, con.simple(emulation.Command{Op: emulation.OpQueryStatus})

	case "dump":
		if len(fields) != 2 {
			return false, curated.Errorf("console: usage: dump <path>")
		}
		return false, con.simple(emulation.Command{Op: emulation.OpDumpState, Path: fields[1]})

	case "log":
		n := 20
		if len(fields) > 1 {
			var err error
			n, err = strconv.Atoi(fields[1])
			if err != nil {
				return false, curated.Errorf("console: %v", err)
			}
		}
		logger.Tail(con.output, n)
		return false, nil

	case "quit", "q":
		_, err := con.do(emulation.Command{Op: emulation.OpQuit})
		if err != nil && !curated.Is(err, EmulationEnded) {
			return true, err
		}
		con.drain()
		return true, nil
	}

	return false, curated.Errorf("console: unknown command %s (try help)", fields[0])
}

func (con *Console) cassette(fields []string) error {
	if len(fields) == 0 {
		return curated.Errorf("console: usage: cassette attach|detach|seek|rewind|erase")
	}

	switch strings.ToLower(fields[0]) {
	case "attach":
		if len(fields) < 2 {
			return curated.Errorf("console: usage: cassette attach <path> [format]")
		}
		path := fields[1]

		var format cassette.Format
		var ok bool
		if len(fields) > 2 {
			format, ok = cassette.ParseFormat(fields[2])
		} else {
			format, ok = cassette.ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
		}
		if !ok {
			return curated.Errorf("console: unrecognised tape format")
		}

		return con.simple(emulation.Command{Op: emulation.OpAttachCassette, Path: path, Format: format})

	case "detach":
		return con.simple(emulation.Command{Op: emulation.OpDetachCassette})

	case "seek":
		if len(fields) != 2 {
			return curated.Errorf("console: usage: cassette seek <pulse>")
		}
		offset, err := strconv.Atoi(fields[1])
		if err != nil {
			return curated.Errorf("console: %v", err)
		}
		return con.simple(emulation.Command{Op: emulation.OpSeekCassette, Offset: offset})

	case "rewind":
		return con.simple(emulation.Command{Op: emulation.OpRewindCassette})

	case "erase":
		return con.simple(emulation.Command{Op: emulation.OpEraseCassette})
	}

	return curated.Errorf("console: unknown cassette command %s", fields[0])
}

// do submits a command and waits for its response.
func (con *Console) do(cmd emulation.Command) (emulation.Response, error) {
	con.nextID++
	cmd.ID = con.nextID

	if err := con.emu.Submit(cmd); err != nil {
		return emulation.Response{}, err
	}

	r, ok := <-con.emu.Responses()
	if !ok {
		return emulation.Response{}, curated.Errorf(EmulationEnded)
	}
	return r, nil
}

// simple runs a command and prints the response.
func (con *Console) simple(cmd emulation.Command) error {
	r, err := con.do(cmd)
	if err != nil {
		return err
	}
	if r.OK {
		fmt.Fprintf(con.output, "%s\n", r.Message)
	} else {
		fmt.Fprintf(con.output, "error: %s\n", r.Message)
	}
	return nil
}

// drain the response channel after a quit, so the emulation loop is never
// left blocking on a full channel.
func (con *Console) drain() {
	for range con.emu.Responses() {
	}
}

// press or release a key by name, with the cross-wired alias bookkeeping.
func (con *Console) press(name string, pressed bool) error {
	pos, ok := keyboard.Lookup(name)
	if !ok {
		return curated.Errorf("console: unknown key %s", name)
	}

	if pressed {
		con.held[pos]++
		if con.held[pos] > 1 {
			// the cell is already held through another of its names
			return nil
		}
	} else {
		if con.held[pos] > 0 {
			con.held[pos]--
		}
		if con.held[pos] > 0 {
			return nil
		}
	}

	_, err := con.do(emulation.Command{
		Op:      emulation.OpSetKey,
		Row:     pos.Row,
		Col:     pos.Col,
		Pressed: pressed,
	})
	return err
}

// tap presses a key for long enough that the ROM's scan will see it.
func (con *Console) tap(name string, shifted bool) error {
	if shifted {
		if err := con.press("shift", true); err != nil {
			return err
		}
	}
	if err := con.press(name, true); err != nil {
		return err
	}
	time.Sleep(tapDuration)
	if err := con.press(name, false); err != nil {
		return err
	}
	if shifted {
		if err := con.press("shift", false); err != nil {
			return err
		}
	}
	time.Sleep(tapDuration)
	return nil
}

// the characters that need the shift key on the Model I keyboard, and the
// key they live on.
var shiftedChars = map[rune]string{
	'!': "1", '"': "2", '#': "3", '$': "4", '%': "5",
	'&': "6", '\'': "7", '(': "8", ')': "9",
	'*': ":", '+': ";", '<': ",", '=': "-", '>': ".", '?': "/",
}

// charKey resolves a typed character to a key name and shift state.
func charKey(c rune) (string, bool, bool) {
	if name, ok := shiftedChars[c]; ok {
		return name, true, true
	}

	name := strings.ToLower(string(c))
	if _, ok := keyboard.Lookup(name); ok {
		return name, false, true
	}
	return "", false, false
}

// typeText taps out each character of the text on the emulated keyboard.
func (con *Console) typeText(text string) error {
	for _, c := range text {
		name, shifted, ok := charKey(c)
		if !ok {
			return curated.Errorf("console: cannot type %q", c)
		}
		if err := con.tap(name, shifted); err != nil {
			return err
		}
	}
	return con.tap("enter", false)
}

// liveKeyboard passes keypresses through to the machine one at a time
// until ESC is pressed.
func (con *Console) liveKeyboard() error {
	fmt.Fprintln(con.output, "live keyboard: keys go to the machine, ESC returns to the console")

	con.term.cbreakMode()
	defer con.term.canonicalMode()

	buf := make([]byte, 1)
	for {
		n, err := con.input.Read(buf)
		if err != nil || n == 0 {
			return nil
		}

		var name string
		switch buf[0] {
		case 0x1b:
			return nil
		case '\r', '\n':
			name = "enter"
		case 0x7f, 0x08:
			name = "left"
		default:
			var ok bool
			var shifted bool
			name, shifted, ok = charKey(rune(buf[0]))
			if !ok {
				continue
			}
			if err := con.tap(name, shifted); err != nil {
				return err
			}
			continue
		}

		if err := con.tap(name, false); err != nil {
			return err
		}
	}
}

func (con *Console) help() {
	fmt.Fprint(con.output, `commands:
  pause / resume             stop and start the machine
  reset [hard]               reset the machine; hard also clears RAM
  cassette attach <path> [format]
  cassette detach
  cassette seek <pulse>
  cassette rewind
  cassette erase
  key <name> press|release   hold or release a key by name
  type <text>                tap out text followed by enter
  kbd                        live keyboard mode (ESC to leave)
  config <key> <value>       lowercase true|false, baud 500|250
  status                     machine and cassette status
  dump <path>                write machine state graph (graphviz)
  log [n]                    show recent log entries
  quit
`)
}
