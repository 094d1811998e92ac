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

package video_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/hardware/video"
	"github.com/jetsetilly/gopher80/test"
)

func TestBitSixReconstruction(t *testing.T) {
	ram := video.NewRAM(false)

	// lowercase 'a' (0x61) loses bit 6 because bit 5 is set
	ram.Write(0, 0x61)
	test.Equate(t, ram.Read(0), 0x21)

	// uppercase 'A' (0x41) has neither bit 5 nor 7 so bit 6 is forced on
	ram.Write(1, 0x01)
	test.Equate(t, ram.Read(1), 0x41)
	ram.Write(2, 0x41)
	test.Equate(t, ram.Read(2), 0x41)

	// graphics characters (bit 7) lose bit 6
	ram.Write(3, 0xff)
	test.Equate(t, ram.Read(3), 0xbf)
}

func TestLowercaseMod(t *testing.T) {
	ram := video.NewRAM(true)

	// with the mod installed every byte stores unchanged
	for _, v := range []uint8{0x61, 0x41, 0x01, 0xff, 0x00} {
		ram.Write(0, v)
		test.Equate(t, ram.Read(0), v)
	}

	// removing the mod affects new writes only
	ram.Write(1, 0x61)
	ram.SetLowercaseMod(false)
	test.Equate(t, ram.Read(1), 0x61)
	ram.Write(2, 0x61)
	test.Equate(t, ram.Read(2), 0x21)
}

func TestSnapshot(t *testing.T) {
	ram := video.NewRAM(true)
	ram.Write(0, 0x48)
	ram.Write(1, 0x49)
	ram.SetModesel(true)

	snap := ram.Snapshot()
	test.Equate(t, snap.Memory[0], 0x48)
	test.Equate(t, snap.Memory[1], 0x49)
	test.ExpectedSuccess(t, snap.Modesel)

	// the snapshot is a copy, untouched by later writes
	ram.Write(0, 0x00)
	test.Equate(t, snap.Memory[0], 0x48)
}

func TestReset(t *testing.T) {
	ram := video.NewRAM(true)
	ram.Write(0, 0x48)
	ram.SetModesel(true)

	ram.Reset()
	test.Equate(t, ram.Read(0), 0)
	test.ExpectedFailure(t, ram.Modesel())
}
