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

// Package registers implements the Z80 register file. The general purpose
// registers are stored as 16-bit pairs, the way the silicon treats them for
// the 16-bit arithmetic group, with accessor functions for the 8-bit halves.
package registers

import "fmt"

// Flag is a bit in the F register.
type Flag uint8

// The flag bits of the F register. UndocumentedY and UndocumentedX are the
// otherwise unused bits 5 and 3. They have no documented meaning but they
// are observable with PUSH AF and real software has been known to depend on
// them.
const (
	Carry          Flag = 0b00000001
	AddSub         Flag = 0b00000010
	ParityOverflow Flag = 0b00000100
	UndocumentedX  Flag = 0b00001000
	HalfCarry      Flag = 0b00010000
	UndocumentedY  Flag = 0b00100000
	Zero           Flag = 0b01000000
	Sign           Flag = 0b10000000
)

// File is the complete Z80 register file: the main and shadow banks, the
// index registers, stack pointer, program counter and the interrupt and
// refresh registers.
type File struct {
	A uint8
	F Flag

	BC uint16
	DE uint16
	HL uint16

	// the shadow bank. only ever touched by EX AF,AF' and EXX
	APrime  uint8
	FPrime  Flag
	BCPrime uint16
	DEPrime uint16
	HLPrime uint16

	IX uint16
	IY uint16
	SP uint16
	PC uint16

	// interrupt vector base and memory refresh
	I uint8
	R uint8
}

// NewFile returns a register file in the power-on state. Like the real chip
// the general purpose registers come up with all bits set.
func NewFile() File {
	return File{
		A: 0xff, F: Flag(0xff),
		BC: 0xffff, DE: 0xffff, HL: 0xffff,
		APrime: 0xff, FPrime: Flag(0xff),
		BCPrime: 0xffff, DEPrime: 0xffff, HLPrime: 0xffff,
		IX: 0xffff, IY: 0xffff,
		SP: 0xffff, PC: 0x0000,
		I: 0x00, R: 0xff,
	}
}

// Flag returns the state of a single flag bit.
func (r *File) Flag(flag Flag) bool {
	return r.F&flag != 0
}

// SetFlag sets or clears a single flag bit.
func (r *File) SetFlag(flag Flag, set bool) {
	if set {
		r.F |= flag
	} else {
		r.F &^= flag
	}
}

// AF returns the accumulator and flags as a 16-bit pair, as pushed by
// PUSH AF.
func (r *File) AF() uint16 {
	return uint16(r.A)<<8 | uint16(r.F)
}

// SetAF sets the accumulator and flags from a 16-bit pair.
func (r *File) SetAF(v uint16) {
	r.A = uint8(v >> 8)
	r.F = Flag(v)
}

func (r *File) B() uint8     { return uint8(r.BC >> 8) }
func (r *File) C() uint8     { return uint8(r.BC) }
func (r *File) D() uint8     { return uint8(r.DE >> 8) }
func (r *File) E() uint8     { return uint8(r.DE) }
func (r *File) H() uint8     { return uint8(r.HL >> 8) }
func (r *File) L() uint8     { return uint8(r.HL) }
func (r *File) IXH() uint8   { return uint8(r.IX >> 8) }
func (r *File) IXL() uint8   { return uint8(r.IX) }
func (r *File) IYH() uint8   { return uint8(r.IY >> 8) }
func (r *File) IYL() uint8   { return uint8(r.IY) }

func (r *File) SetB(v uint8)   { r.BC = r.BC&0x00ff | uint16(v)<<8 }
func (r *File) SetC(v uint8)   { r.BC = r.BC&0xff00 | uint16(v) }
func (r *File) SetD(v uint8)   { r.DE = r.DE&0x00ff | uint16(v)<<8 }
func (r *File) SetE(v uint8)   { r.DE = r.DE&0xff00 | uint16(v) }
func (r *File) SetH(v uint8)   { r.HL = r.HL&0x00ff | uint16(v)<<8 }
func (r *File) SetL(v uint8)   { r.HL = r.HL&0xff00 | uint16(v) }
func (r *File) SetIXH(v uint8) { r.IX = r.IX&0x00ff | uint16(v)<<8 }
func (r *File) SetIXL(v uint8) { r.IX = r.IX&0xff00 | uint16(v) }
func (r *File) SetIYH(v uint8) { r.IY = r.IY&0x00ff | uint16(v)<<8 }
func (r *File) SetIYL(v uint8) { r.IY = r.IY&0xff00 | uint16(v) }

// ExAF implements EX AF,AF'.
func (r *File) ExAF() {
	r.A, r.APrime = r.APrime, r.A
	r.F, r.FPrime = r.FPrime, r.F
}

// Exx implements EXX, exchanging BC, DE and HL with the shadow bank.
func (r *File) Exx() {
	r.BC, r.BCPrime = r.BCPrime, r.BC
	r.DE, r.DEPrime = r.DEPrime, r.DE
	r.HL, r.HLPrime = r.HLPrime, r.HL
}

// IncR increments the low seven bits of the refresh register. Bit 7 is
// only ever changed by LD R,A.
func (r *File) IncR() {
	r.R = r.R&0x80 | (r.R+1)&0x7f
}

func (r *File) String() string {
	s := fmt.Sprintf("PC=%04x SP=%04x AF=%04x BC=%04x DE=%04x HL=%04x IX=%04x IY=%04x",
		r.PC, r.SP, r.AF(), r.BC, r.DE, r.HL, r.IX, r.IY)

	flags := []struct {
		flag Flag
		r    rune
	}{
		{Sign, 's'}, {Zero, 'z'}, {UndocumentedY, 'y'}, {HalfCarry, 'h'},
		{UndocumentedX, 'x'}, {ParityOverflow, 'p'}, {AddSub, 'n'}, {Carry, 'c'},
	}

	f := make([]rune, 0, len(flags))
	for _, d := range flags {
		if r.Flag(d.flag) {
			f = append(f, d.r-32)
		} else {
			f = append(f, d.r)
		}
	}

	return fmt.Sprintf("%s [%s]", s, string(f))
}
