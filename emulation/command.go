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

package emulation

import "github.com/jetsetilly/gopher80/hardware/cassette"

// Op is the kind of a Command.
type Op int

// List of command kinds. Each is applied atomically against the machine
// between CPU batches, never mid-instruction.
const (
	OpPause Op = iota
	OpResume
	OpReset
	OpAttachCassette
	OpDetachCassette
	OpSeekCassette
	OpRewindCassette
	OpEraseCassette
	OpSetKey
	OpApplyConfig
	OpQueryStatus
	OpDumpState
	OpQuit
)

func (op Op) String() string {
	switch op {
	case OpPause:
		return "pause"
	case OpResume:
		return "resume"
	case OpReset:
		return "reset"
	case OpAttachCassette:
		return "attach cassette"
	case OpDetachCassette:
		return "detach cassette"
	case OpSeekCassette:
		return "seek cassette"
	case OpRewindCassette:
		return "rewind cassette"
	case OpEraseCassette:
		return "erase cassette"
	case OpSetKey:
		return "set key"
	case OpApplyConfig:
		return "apply config"
	case OpQueryStatus:
		return "query status"
	case OpDumpState:
		return "dump state"
	case OpQuit:
		return "quit"
	}
	return "unknown"
}

// Command is a request from the control surface to the emulation loop.
// Only the fields relevant to the Op need be filled in. Commands are
// immutable once submitted.
type Command struct {
	// ID is chosen by the submitter and echoed in the Response
	ID int

	Op Op

	// OpReset
	Hard bool

	// OpAttachCassette and OpDumpState
	Path   string
	Format cassette.Format

	// OpSeekCassette
	Offset int

	// OpSetKey
	Row     int
	Col     int
	Pressed bool

	// OpApplyConfig
	Key   string
	Value string
}

// Response is the emulation loop's answer to a Command. Exactly one
// Response is emitted for every Command, in submission order.
type Response struct {
	ID      int
	Op      Op
	OK      bool
	Message string
}
