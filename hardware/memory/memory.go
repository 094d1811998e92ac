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

// Package memory implements the address space of the machine. The 64K
// space partitions into fixed regions that never move: ROM at the bottom,
// the keyboard and video windows in the middle, and up to 48K of RAM at
// the top. Reads of unmapped space float high and writes to ROM or
// unmapped space fall off the bus, the way they do on the real machine.
package memory

import (
	"github.com/jetsetilly/gopher80/hardware/keyboard"
	"github.com/jetsetilly/gopher80/hardware/video"
	"github.com/jetsetilly/gopher80/logger"
)

// region boundaries. RAM size is the only configurable quantity and even
// that is fixed at construction.
const (
	ROMOrigin      = 0x0000
	ROMSize        = 0x3000
	KeyboardOrigin = 0x3800
	VideoOrigin    = 0x3c00
	RAMOrigin      = 0x4000
	MaxRAM         = 0x10000 - RAMOrigin
)

// value seen on the data bus when nothing is driving it
const busFloat = 0xff

// Memory is the 64K address space. It implements bus.CPUBus.
type Memory struct {
	rom []uint8
	ram []uint8

	Keyboard *keyboard.Matrix
	Video    *video.RAM
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The ROM image is padded (or truncated) to the size of the ROM region and
// the RAM size clamps to the largest the address space allows.
func NewMemory(rom []uint8, ramSize int, lowercaseMod bool) *Memory {
	if ramSize < 0 {
		ramSize = 0
	}
	if ramSize > MaxRAM {
		logger.Logf("memory", "RAM size %d clamped to %d", ramSize, MaxRAM)
		ramSize = MaxRAM
	}
	if len(rom) > ROMSize {
		logger.Logf("memory", "ROM image of %d bytes truncated to %d", len(rom), ROMSize)
	}

	mem := &Memory{
		rom:      make([]uint8, ROMSize),
		ram:      make([]uint8, ramSize),
		Keyboard: keyboard.NewMatrix(),
		Video:    video.NewRAM(lowercaseMod),
	}

	for i := range mem.rom {
		mem.rom[i] = busFloat
	}
	copy(mem.rom, rom)

	return mem
}

// Reset clears RAM, the video RAM and the keyboard matrix. ROM contents
// survive, as they would a power cycle.
func (mem *Memory) Reset() {
	for i := range mem.ram {
		mem.ram[i] = 0
	}
	mem.Keyboard.Reset()
	mem.Video.Reset()
}

// RAMSize returns the installed RAM in bytes.
func (mem *Memory) RAMSize() int {
	return len(mem.ram)
}

// Read implements the bus.CPUBus interface.
func (mem *Memory) Read(addr uint16) uint8 {
	switch {
	case addr < ROMSize:
		return mem.rom[addr]

	case addr >= KeyboardOrigin && addr < KeyboardOrigin+keyboard.MemSize:
		return mem.Keyboard.ReadAddress(addr)

	case addr >= VideoOrigin && addr < VideoOrigin+video.MemSize:
		return mem.Video.Read(addr - VideoOrigin)

	case addr >= RAMOrigin && int(addr-RAMOrigin) < len(mem.ram):
		return mem.ram[addr-RAMOrigin]
	}

	return busFloat
}

// Write implements the bus.CPUBus interface. Writes that land in ROM, the
// keyboard window or unmapped space fall off the bus.
func (mem *Memory) Write(addr uint16, data uint8) {
	switch {
	case addr < ROMSize:
		logger.Logf("memory", "write of %#02x to ROM address %#04x discarded", data, addr)

	case addr >= KeyboardOrigin && addr < KeyboardOrigin+keyboard.MemSize:
		logger.Logf("memory", "write of %#02x to keyboard address %#04x discarded", data, addr)

	case addr >= VideoOrigin && addr < VideoOrigin+video.MemSize:
		mem.Video.Write(addr-VideoOrigin, data)

	case addr >= RAMOrigin && int(addr-RAMOrigin) < len(mem.ram):
		mem.ram[addr-RAMOrigin] = data

	default:
		logger.Logf("memory", "write of %#02x to unmapped address %#04x discarded", data, addr)
	}
}
