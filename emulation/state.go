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

// State indicates the emulation's run mode.
type State int

// List of possible emulation states.
//
// EmulatorStart is the default state and should never be entered once the
// emulator has begun.
//
// Halted means the CPU has executed a HALT with no interrupt pending.
// Machine time still elapses; the state returns to Running by itself when
// an interrupt arrives.
//
// Ending is terminal. Once entered no further commands are drained and the
// emulation loop exits at the next iteration boundary.
const (
	EmulatorStart State = iota
	Running
	Paused
	Halted
	Ending
)

func (s State) String() string {
	switch s {
	case EmulatorStart:
		return "not started"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Halted:
		return "halted"
	case Ending:
		return "ending"
	}
	return "unknown"
}
