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

// Package hardware is the root of the emulated TRS-80 Model I hardware. The
// machine itself is assembled in the trs80 sub-package; the other packages
// are the individual components:
//
//	z80        the CPU interpreter
//	memory     the 64K address space (ROM, RAM, mapped peripherals)
//	video      the 1K video RAM region
//	keyboard   the 8x8 key matrix
//	cassette   the cassette recorder and tape file codecs
//	bus        the interfaces connecting the CPU to everything else
//	clocks     timing constants for the Model I
package hardware
