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

package keyboard_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/hardware/keyboard"
	"github.com/jetsetilly/gopher80/test"
)

func TestMatrix(t *testing.T) {
	mat := keyboard.NewMatrix()

	mat.SetKey(0, 1)
	test.Equate(t, mat.ReadRow(0), 0b00000010)

	mat.SetKey(0, 7)
	test.Equate(t, mat.ReadRow(0), 0b10000010)

	mat.ClearKey(0, 1)
	test.Equate(t, mat.ReadRow(0), 0b10000000)

	// releasing an unpressed key changes nothing
	mat.ClearKey(0, 1)
	test.Equate(t, mat.ReadRow(0), 0b10000000)

	// out of range positions are inert
	mat.SetKey(8, 0)
	mat.SetKey(-1, 0)
	mat.SetKey(0, 8)
	for r := 0; r < 8; r++ {
		if r != 0 {
			test.Equate(t, mat.ReadRow(r), 0)
		}
	}

	mat.Reset()
	test.Equate(t, mat.ReadRow(0), 0)
}

func TestReadAddress(t *testing.T) {
	mat := keyboard.NewMatrix()

	// 'a' held
	mat.SetKey(0, 1)

	// 'enter' held
	mat.SetKey(6, 0)

	// row select lines are the low address bits
	test.Equate(t, mat.ReadAddress(0x3801), 0b00000010)
	test.Equate(t, mat.ReadAddress(0x3840), 0b00000001)

	// multiple selected rows OR together
	test.Equate(t, mat.ReadAddress(0x3841), 0b00000011)
	test.Equate(t, mat.ReadAddress(0x38ff), 0b00000011)

	// no rows selected
	test.Equate(t, mat.ReadAddress(0x3800), 0)
}

func TestCrossWiredKeys(t *testing.T) {
	ls, ok := keyboard.Lookup("left-shift")
	test.ExpectedSuccess(t, ok)
	rs, ok := keyboard.Lookup("right-shift")
	test.ExpectedSuccess(t, ok)
	test.Equate(t, ls == rs, true)

	// the number pad doubles the number row
	for _, k := range []string{"0", "5", "9"} {
		main, ok := keyboard.Lookup(k)
		test.ExpectedSuccess(t, ok)
		pad, ok := keyboard.Lookup("kp-" + k)
		test.ExpectedSuccess(t, ok)
		test.Equate(t, main == pad, true)
	}

	// pressing either twin has the same matrix effect
	mat := keyboard.NewMatrix()
	mat.SetKey(ls.Row, ls.Col)
	fromLeft := mat.ReadRow(7)
	mat.Reset()
	mat.SetKey(rs.Row, rs.Col)
	test.Equate(t, mat.ReadRow(7), fromLeft)
}

func TestLookup(t *testing.T) {
	// legends are case insensitive and space has a convenience spelling
	a, ok := keyboard.Lookup("A")
	test.ExpectedSuccess(t, ok)
	test.Equate(t, a == keyboard.Position{Row: 0, Col: 1}, true)

	sp, ok := keyboard.Lookup(" ")
	test.ExpectedSuccess(t, ok)
	test.Equate(t, sp == keyboard.Position{Row: 6, Col: 7}, true)

	_, ok = keyboard.Lookup("no-such-key")
	test.ExpectedFailure(t, ok)
}
