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

package trs80_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/hardware/trs80"
	"github.com/jetsetilly/gopher80/test"
)

func run(t *testing.T, tr *trs80.TRS80, steps int) {
	t.Helper()
	for i := 0; i < steps; i++ {
		_, err := tr.Step()
		test.DemandSuccess(t, err)
	}
}

func TestStandInROM(t *testing.T) {
	tr := trs80.NewTRS80(nil, 0x4000, false)

	// plenty of steps for the stand-in ROM to do its copying
	run(t, tr, 200)

	snap := tr.Mem.Video.Snapshot()
	want := "GOPHER80: NO ROM IMAGE LOADED"
	for i := 0; i < len(want); i++ {
		test.Equate(t, snap.Memory[i], want[i])
	}
}

func TestPortDispatch(t *testing.T) {
	tr := trs80.NewTRS80(nil, 0x4000, false)

	// 64 column mode masks bit 6 of the cassette port
	test.Equate(t, tr.PortRead(0xff, 0), 0b00111111)

	// bit 3 latches wide mode; the mask is then lifted
	tr.PortWrite(0xff, 0b00001000, 0)
	test.ExpectedSuccess(t, tr.Mem.Video.Modesel())
	test.Equate(t, tr.PortRead(0xff, 0), 0b01111111)

	// undecoded ports float high
	test.Equate(t, tr.PortRead(0x42, 0), 0xff)
	tr.PortWrite(0x42, 0x00, 0)
}

func TestReset(t *testing.T) {
	tr := trs80.NewTRS80(nil, 0x4000, false)
	run(t, tr, 200)

	tr.Mem.Write(0x5000, 0x12)
	tr.PortWrite(0xff, 0b00001000, 0)

	// a soft reset restarts the CPU but leaves RAM alone
	tr.Reset(false)
	test.Equate(t, tr.CPU.Regs.PC, 0x0000)
	test.Equate(t, tr.Mem.Read(0x5000), 0x12)
	test.ExpectedFailure(t, tr.Mem.Video.Modesel())

	// a hard reset clears RAM too
	tr.Mem.Write(0x5000, 0x34)
	tr.Reset(true)
	test.Equate(t, tr.Mem.Read(0x5000), 0)
}
