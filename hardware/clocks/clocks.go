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

// Package clocks defines the timing constants of the TRS-80 Model I. All
// other timing values in the emulation are derived from the master
// oscillator.
package clocks

// The Model I is clocked from a single 10.6445MHz crystal. The CPU clock is
// the master clock divided by six and the video circuit completes one frame
// every 177408 master ticks.
const (
	MasterHz = 10644480

	CPUHz         = MasterHz / 6
	NsPerCPUCycle = 1000000000 / CPUHz

	FrameRate  = MasterHz / 177408
	NsPerFrame = 1000000000 / FrameRate
)

// CPUMhz is the CPU clock expressed in MHz. Used for cycle<->microsecond
// conversion in the cassette codecs.
const CPUMhz = float32(CPUHz) / 1000000.0
