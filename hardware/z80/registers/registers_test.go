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

package registers_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/hardware/z80/registers"
	"github.com/jetsetilly/gopher80/test"
)

func TestPairAccess(t *testing.T) {
	r := registers.NewFile()

	r.BC = 0x1234
	test.Equate(t, r.B(), 0x12)
	test.Equate(t, r.C(), 0x34)

	r.SetB(0xab)
	test.Equate(t, r.BC, 0xab34)
	r.SetC(0xcd)
	test.Equate(t, r.BC, 0xabcd)

	r.IX = 0x55aa
	r.SetIXH(0x01)
	r.SetIXL(0x02)
	test.Equate(t, r.IX, 0x0102)
}

func TestFlags(t *testing.T) {
	r := registers.NewFile()
	r.F = 0

	r.SetFlag(registers.Carry, true)
	r.SetFlag(registers.Zero, true)
	test.Equate(t, uint8(r.F), 0x41)
	test.ExpectedSuccess(t, r.Flag(registers.Carry))
	test.ExpectedFailure(t, r.Flag(registers.Sign))

	r.SetFlag(registers.Carry, false)
	test.Equate(t, uint8(r.F), 0x40)

	r.A = 0x9f
	r.F = registers.Flag(0x01)
	test.Equate(t, r.AF(), 0x9f01)
	r.SetAF(0x12d7)
	test.Equate(t, r.A, 0x12)
	test.Equate(t, uint8(r.F), 0xd7)
}

func TestExchange(t *testing.T) {
	r := registers.NewFile()

	r.A = 0x01
	r.APrime = 0x02
	r.ExAF()
	test.Equate(t, r.A, 0x02)
	test.Equate(t, r.APrime, 0x01)

	r.BC = 0x1111
	r.BCPrime = 0x2222
	r.DE = 0x3333
	r.DEPrime = 0x4444
	r.HL = 0x5555
	r.HLPrime = 0x6666
	r.Exx()
	test.Equate(t, r.BC, 0x2222)
	test.Equate(t, r.DE, 0x4444)
	test.Equate(t, r.HL, 0x6666)
	test.Equate(t, r.BCPrime, 0x1111)
}

func TestRefreshRegister(t *testing.T) {
	r := registers.NewFile()

	r.R = 0x7f
	r.IncR()
	test.Equate(t, r.R, 0x00)

	// bit 7 is sticky
	r.R = 0xff
	r.IncR()
	test.Equate(t, r.R, 0x80)
}
