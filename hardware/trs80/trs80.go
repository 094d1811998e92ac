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

// Package trs80 assembles the components of the machine. The TRS80 type is
// the nexus of the emulation and the handle the emulation loop uses for
// everything: CPU stepping, port dispatch, cassette ticking and reset.
package trs80

import (
	"github.com/jetsetilly/gopher80/hardware/cassette"
	"github.com/jetsetilly/gopher80/hardware/memory"
	"github.com/jetsetilly/gopher80/hardware/z80"
	"github.com/jetsetilly/gopher80/logger"
)

// the cassette interface and the display mode latch share the one decoded
// I/O port on the Model I
const casModeselPort = 0xff

// TRS80 is the whole machine.
type TRS80 struct {
	CPU      *z80.CPU
	Mem      *memory.Memory
	Recorder *cassette.Recorder
}

// NewTRS80 is the preferred method of initialisation for the TRS80 type.
// A nil ROM image installs the built-in stand-in ROM.
func NewTRS80(rom []uint8, ramSize int, lowercaseMod bool) *TRS80 {
	if rom == nil {
		rom = StandInROM()
		logger.Log("trs80", "no ROM image, using built-in stand-in")
	}

	tr := &TRS80{
		Mem:      memory.NewMemory(rom, ramSize, lowercaseMod),
		Recorder: cassette.NewRecorder(),
	}
	tr.CPU = z80.NewCPU(tr.Mem, tr)
	tr.CPU.Reset()

	return tr
}

// Step executes one instruction (or accepts one interrupt) and advances the
// peripherals by the consumed cycles. Returns the number of cycles.
func (tr *TRS80) Step() (int, error) {
	before := tr.CPU.Cycles
	err := tr.CPU.Step()
	consumed := int(tr.CPU.Cycles - before)
	tr.Recorder.Tick(uint32(consumed))
	return consumed, err
}

// Reset returns the machine to its power-on state. A hard reset also clears
// RAM, as pulling the plug would. The cassette motor stops either way,
// flushing any recording in progress.
func (tr *TRS80) Reset(hard bool) {
	tr.Recorder.StopMotor()
	tr.CPU.Reset()
	tr.Mem.Video.SetModesel(false)
	if hard {
		tr.Mem.Reset()
	}
	logger.Logf("trs80", "machine reset (hard=%v)", hard)
}

// PortRead implements the bus.PortBus interface. The only decoded port
// reads the cassette input latch; bit 6 reflects the display mode latch
// when the machine is in 64 column mode.
func (tr *TRS80) PortRead(port uint8, timestamp uint64) uint8 {
	if port == casModeselPort {
		v := tr.Recorder.PortRead()
		if !tr.Mem.Video.Modesel() {
			v &= 0b10111111
		}
		return v
	}

	logger.Logf("trs80", "read of undecoded port %#02x", port)
	return 0xff
}

// PortWrite implements the bus.PortBus interface. The only decoded port
// drives the cassette output and motor relay, and latches the display mode
// from bit 3.
func (tr *TRS80) PortWrite(port uint8, data uint8, timestamp uint64) {
	if port == casModeselPort {
		tr.Mem.Video.SetModesel(data&0b00001000 != 0)
		tr.Recorder.PortWrite(data)
		return
	}

	logger.Logf("trs80", "write of %#02x to undecoded port %#02x", data, port)
}
