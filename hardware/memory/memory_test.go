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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/hardware/memory"
	"github.com/jetsetilly/gopher80/test"
)

func TestROM(t *testing.T) {
	mem := memory.NewMemory([]uint8{0xc3, 0x00, 0x40}, 0x4000, false)

	test.Equate(t, mem.Read(0x0000), 0xc3)
	test.Equate(t, mem.Read(0x0001), 0x00)
	test.Equate(t, mem.Read(0x0002), 0x40)

	// ROM beyond the image pads with the bus float value
	test.Equate(t, mem.Read(0x0003), 0xff)
	test.Equate(t, mem.Read(0x2fff), 0xff)

	// writes to ROM fall off the bus
	mem.Write(0x0000, 0x00)
	test.Equate(t, mem.Read(0x0000), 0xc3)
}

func TestRAM(t *testing.T) {
	mem := memory.NewMemory(nil, 0x4000, false)
	test.Equate(t, mem.RAMSize(), 0x4000)

	mem.Write(0x4000, 0x12)
	mem.Write(0x7fff, 0x34)
	test.Equate(t, mem.Read(0x4000), 0x12)
	test.Equate(t, mem.Read(0x7fff), 0x34)

	// past the end of installed RAM the bus floats
	mem.Write(0x8000, 0x56)
	test.Equate(t, mem.Read(0x8000), 0xff)

	mem.Reset()
	test.Equate(t, mem.Read(0x4000), 0)
}

func TestRAMClamp(t *testing.T) {
	mem := memory.NewMemory(nil, 0x20000, false)
	test.Equate(t, mem.RAMSize(), 0xc000)

	mem.Write(0xffff, 0x99)
	test.Equate(t, mem.Read(0xffff), 0x99)

	mem = memory.NewMemory(nil, -1, false)
	test.Equate(t, mem.RAMSize(), 0)
}

func TestUnmappedGap(t *testing.T) {
	mem := memory.NewMemory(nil, 0x4000, false)

	// the space between ROM and the keyboard window is unmapped
	test.Equate(t, mem.Read(0x3000), 0xff)
	test.Equate(t, mem.Read(0x37ff), 0xff)
	mem.Write(0x3000, 0x00)
	test.Equate(t, mem.Read(0x3000), 0xff)
}

func TestKeyboardWindow(t *testing.T) {
	mem := memory.NewMemory(nil, 0x4000, false)

	// 'a' at row 0, column 1
	mem.Keyboard.SetKey(0, 1)
	test.Equate(t, mem.Read(0x3801), 0b00000010)
	test.Equate(t, mem.Read(0x3800), 0)

	// the keyboard window is read only
	mem.Write(0x3801, 0xff)
	test.Equate(t, mem.Read(0x3801), 0b00000010)
}

func TestVideoWindow(t *testing.T) {
	mem := memory.NewMemory(nil, 0x4000, false)

	// the bit 6 quirk applies through the bus
	mem.Write(0x3c00, 0x61)
	test.Equate(t, mem.Read(0x3c00), 0x21)

	mem.Write(0x3fff, 0x41)
	test.Equate(t, mem.Read(0x3fff), 0x41)

	snap := mem.Video.Snapshot()
	test.Equate(t, snap.Memory[0], 0x21)
	test.Equate(t, snap.Memory[0x3ff], 0x41)
}
