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

// Package video implements the character generator RAM. The emulation core
// only stores the bytes; turning them into pixels is the business of the
// rendering layer, which takes a Snapshot once per frame.
package video

// MemSize is the span of the video RAM in the address space.
const MemSize = 0x0400

// screen geometry. in wide mode the beam only fetches every other byte so
// the column count halves.
const (
	ScreenRows  = 16
	ScreenCols  = 64
	WideCols    = 32
	GlyphWidth  = 8
	GlyphHeight = 12
)

// RAM is the memory behind the display.
//
// Machines without the lowercase modification only have seven bits of
// storage per cell; bit 6 is reconstructed by hardware from bits 5 and 7
// and that reconstruction happens here on the write side, so reads always
// see what the character generator would.
type RAM struct {
	memory [MemSize]uint8

	lowercaseMod bool

	// wide character mode, latched from bit 3 of the mode port
	modesel bool
}

// Snapshot is the view of the display handed to the rendering layer. The
// memory is a copy and safe to read from another goroutine.
type Snapshot struct {
	Memory  [MemSize]uint8
	Modesel bool
}

// NewRAM is the preferred method of initialisation for the RAM type.
func NewRAM(lowercaseMod bool) *RAM {
	return &RAM{lowercaseMod: lowercaseMod}
}

// Reset clears the video RAM and returns to 64 column mode.
func (ram *RAM) Reset() {
	ram.memory = [MemSize]uint8{}
	ram.modesel = false
}

// Read returns the byte at an offset into the video RAM.
func (ram *RAM) Read(offset uint16) uint8 {
	return ram.memory[offset&(MemSize-1)]
}

// Write stores a byte at an offset into the video RAM, reconstructing the
// missing bit 6 (b6 = !b5 & !b7) unless the lowercase mod is installed.
func (ram *RAM) Write(offset uint16, data uint8) {
	if !ram.lowercaseMod {
		if data&0b10100000 != 0 {
			data &^= 0b01000000
		} else {
			data |= 0b01000000
		}
	}
	ram.memory[offset&(MemSize-1)] = data
}

// SetLowercaseMod installs or removes the lowercase modification. Bytes
// already in the RAM are left as they were written.
func (ram *RAM) SetLowercaseMod(installed bool) {
	ram.lowercaseMod = installed
}

func (ram *RAM) LowercaseMod() bool {
	return ram.lowercaseMod
}

// SetModesel latches the wide character mode flag.
func (ram *RAM) SetModesel(wide bool) {
	ram.modesel = wide
}

func (ram *RAM) Modesel() bool {
	return ram.modesel
}

// Snapshot copies the current display state for the rendering layer.
func (ram *RAM) Snapshot() Snapshot {
	return Snapshot{
		Memory:  ram.memory,
		Modesel: ram.modesel,
	}
}
