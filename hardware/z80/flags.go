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

package z80

import (
	"math/bits"

	"github.com/jetsetilly/gopher80/hardware/z80/instructions"
	"github.com/jetsetilly/gopher80/hardware/z80/registers"
)

// the arithmetic core. every function in this file both performs an
// operation and produces the complete flag byte for it, including the
// undocumented bits 3 and 5

func parity(v uint8) bool {
	return bits.OnesCount8(v)%2 == 0
}

// bits 7, 5 and 3 of the flag register line up with the value bits they
// mirror
const szyx = registers.Sign | registers.UndocumentedY | registers.UndocumentedX
const yx = registers.UndocumentedY | registers.UndocumentedX

func (cpu *CPU) add8(v uint8, withCarry bool) {
	a := cpu.Regs.A
	var c uint16
	if withCarry && cpu.Regs.Flag(registers.Carry) {
		c = 1
	}

	sum := uint16(a) + uint16(v) + c
	res := uint8(sum)

	f := registers.Flag(res) & szyx
	if res == 0 {
		f |= registers.Zero
	}
	if uint16(a&0x0f)+uint16(v&0x0f)+c > 0x0f {
		f |= registers.HalfCarry
	}
	if (^(a ^ v))&(a^res)&0x80 != 0 {
		f |= registers.ParityOverflow
	}
	if sum > 0xff {
		f |= registers.Carry
	}

	cpu.Regs.A = res
	cpu.Regs.F = f
}

// sub8 returns a-v, setting flags. used by SUB, SBC and NEG.
func (cpu *CPU) sub8(a uint8, v uint8, withCarry bool) uint8 {
	var c uint16
	if withCarry && cpu.Regs.Flag(registers.Carry) {
		c = 1
	}

	diff := uint16(a) - uint16(v) - c
	res := uint8(diff)

	f := registers.AddSub
	f |= registers.Flag(res) & szyx
	if res == 0 {
		f |= registers.Zero
	}
	if uint16(a&0x0f) < uint16(v&0x0f)+c {
		f |= registers.HalfCarry
	}
	if (a^v)&(a^res)&0x80 != 0 {
		f |= registers.ParityOverflow
	}
	if diff > 0xff {
		f |= registers.Carry
	}

	cpu.Regs.F = f
	return res
}

// cmp8 is sub8 without the store. the undocumented flag bits come from the
// operand, not the result.
func (cpu *CPU) cmp8(v uint8) {
	a := cpu.Regs.A
	_ = cpu.sub8(a, v, false)
	cpu.Regs.F = cpu.Regs.F&^yx | registers.Flag(v)&yx
}

func (cpu *CPU) logic8(res uint8, halfCarry bool) {
	f := registers.Flag(res) & szyx
	if res == 0 {
		f |= registers.Zero
	}
	if halfCarry {
		f |= registers.HalfCarry
	}
	if parity(res) {
		f |= registers.ParityOverflow
	}
	cpu.Regs.A = res
	cpu.Regs.F = f
}

func (cpu *CPU) incVal(v uint8) uint8 {
	res := v + 1
	f := cpu.Regs.F & registers.Carry
	f |= registers.Flag(res) & szyx
	if res == 0 {
		f |= registers.Zero
	}
	if res&0x0f == 0 {
		f |= registers.HalfCarry
	}
	if res == 0x80 {
		f |= registers.ParityOverflow
	}
	cpu.Regs.F = f
	return res
}

func (cpu *CPU) decVal(v uint8) uint8 {
	res := v - 1
	f := cpu.Regs.F&registers.Carry | registers.AddSub
	f |= registers.Flag(res) & szyx
	if res == 0 {
		f |= registers.Zero
	}
	if v&0x0f == 0 {
		f |= registers.HalfCarry
	}
	if v == 0x80 {
		f |= registers.ParityOverflow
	}
	cpu.Regs.F = f
	return res
}

// add16 implements the ADD HL group. sign, zero and parity survive.
func (cpu *CPU) add16(a, b uint16) uint16 {
	sum := uint32(a) + uint32(b)
	res := uint16(sum)

	f := cpu.Regs.F & (registers.Sign | registers.Zero | registers.ParityOverflow)
	f |= registers.Flag(uint8(res>>8)) & yx
	if a&0x0fff+b&0x0fff > 0x0fff {
		f |= registers.HalfCarry
	}
	if sum > 0xffff {
		f |= registers.Carry
	}

	cpu.Regs.F = f
	return res
}

func (cpu *CPU) adc16(a, b uint16) uint16 {
	var c uint32
	if cpu.Regs.Flag(registers.Carry) {
		c = 1
	}

	sum := uint32(a) + uint32(b) + c
	res := uint16(sum)

	var f registers.Flag
	f |= registers.Flag(uint8(res>>8)) & szyx
	if res == 0 {
		f |= registers.Zero
	}
	if uint32(a&0x0fff)+uint32(b&0x0fff)+c > 0x0fff {
		f |= registers.HalfCarry
	}
	if (^(a ^ b))&(a^res)&0x8000 != 0 {
		f |= registers.ParityOverflow
	}
	if sum > 0xffff {
		f |= registers.Carry
	}

	cpu.Regs.F = f
	return res
}

func (cpu *CPU) sbc16(a, b uint16) uint16 {
	var c uint32
	if cpu.Regs.Flag(registers.Carry) {
		c = 1
	}

	diff := uint32(a) - uint32(b) - c
	res := uint16(diff)

	f := registers.AddSub
	f |= registers.Flag(uint8(res>>8)) & szyx
	if res == 0 {
		f |= registers.Zero
	}
	if uint32(a&0x0fff) < uint32(b&0x0fff)+c {
		f |= registers.HalfCarry
	}
	if (a^b)&(a^res)&0x8000 != 0 {
		f |= registers.ParityOverflow
	}
	if diff > 0xffff {
		f |= registers.Carry
	}

	cpu.Regs.F = f
	return res
}

func (cpu *CPU) daa() {
	a := cpu.Regs.A
	carry := cpu.Regs.Flag(registers.Carry)
	half := cpu.Regs.Flag(registers.HalfCarry)
	neg := cpu.Regs.Flag(registers.AddSub)

	var adjust uint8
	if half || a&0x0f > 0x09 {
		adjust |= 0x06
	}
	if carry || a > 0x99 {
		adjust |= 0x60
		carry = true
	}

	var res uint8
	var halfOut bool
	if neg {
		res = a - adjust
		halfOut = half && a&0x0f < 0x06
	} else {
		res = a + adjust
		halfOut = a&0x0f > 0x09
	}

	f := registers.Flag(res) & szyx
	if res == 0 {
		f |= registers.Zero
	}
	if halfOut {
		f |= registers.HalfCarry
	}
	if parity(res) {
		f |= registers.ParityOverflow
	}
	if neg {
		f |= registers.AddSub
	}
	if carry {
		f |= registers.Carry
	}
	cpu.Regs.F = f
}

// rotate implements the CB prefix shift and rotate group, with the full
// flag treatment.
func (cpu *CPU) rotate(op instructions.Operation, v uint8) uint8 {
	var oldCarry uint8
	if cpu.Regs.Flag(registers.Carry) {
		oldCarry = 1
	}

	var res uint8
	var carry bool

	switch op {
	case instructions.RLC:
		res = v<<1 | v>>7
		carry = v&0x80 != 0
	case instructions.RRC:
		res = v>>1 | v<<7
		carry = v&0x01 != 0
	case instructions.RL:
		res = v<<1 | oldCarry
		carry = v&0x80 != 0
	case instructions.RR:
		res = v>>1 | oldCarry<<7
		carry = v&0x01 != 0
	case instructions.SLA:
		res = v << 1
		carry = v&0x80 != 0
	case instructions.SRA:
		res = v>>1 | v&0x80
		carry = v&0x01 != 0
	case instructions.SLL:
		// shifts in a one rather than a zero
		res = v<<1 | 0x01
		carry = v&0x80 != 0
	case instructions.SRL:
		res = v >> 1
		carry = v&0x01 != 0
	}

	f := registers.Flag(res) & szyx
	if res == 0 {
		f |= registers.Zero
	}
	if parity(res) {
		f |= registers.ParityOverflow
	}
	if carry {
		f |= registers.Carry
	}
	cpu.Regs.F = f

	return res
}

// rotateA implements the accumulator rotates RLCA, RLA, RRCA and RRA.
// Unlike the CB group, sign, zero and parity survive.
func (cpu *CPU) rotateA(op instructions.Operation) {
	keep := cpu.Regs.F & (registers.Sign | registers.Zero | registers.ParityOverflow)

	var rotOp instructions.Operation
	switch op {
	case instructions.RLCA:
		rotOp = instructions.RLC
	case instructions.RLA:
		rotOp = instructions.RL
	case instructions.RRCA:
		rotOp = instructions.RRC
	case instructions.RRA:
		rotOp = instructions.RR
	}

	cpu.Regs.A = cpu.rotate(rotOp, cpu.Regs.A)
	cpu.Regs.F = cpu.Regs.F&(registers.Carry|yx) | keep
}

func (cpu *CPU) bit(def instructions.Definition) {
	v := cpu.get8(def.Dest)
	zero := v&(1<<def.Value) == 0

	// for the indirect forms the undocumented bits leak from the address
	// calculation, not the operand
	var leak uint8
	switch def.Dest {
	case instructions.IndHL:
		leak = cpu.Regs.H()
	case instructions.IndIXD, instructions.IndIYD:
		leak = uint8(cpu.ea(def.Dest) >> 8)
	default:
		leak = v
	}

	f := cpu.Regs.F&registers.Carry | registers.HalfCarry
	f |= registers.Flag(leak) & yx
	if zero {
		f |= registers.Zero | registers.ParityOverflow
	} else if def.Value == 7 {
		f |= registers.Sign
	}
	cpu.Regs.F = f
}

// inFlags is the flag treatment shared by the IN r,(C) group.
func (cpu *CPU) inFlags(v uint8) {
	f := cpu.Regs.F & registers.Carry
	f |= registers.Flag(v) & szyx
	if v == 0 {
		f |= registers.Zero
	}
	if parity(v) {
		f |= registers.ParityOverflow
	}
	cpu.Regs.F = f
}

func (cpu *CPU) rldFlags() {
	a := cpu.Regs.A
	f := cpu.Regs.F & registers.Carry
	f |= registers.Flag(a) & szyx
	if a == 0 {
		f |= registers.Zero
	}
	if parity(a) {
		f |= registers.ParityOverflow
	}
	cpu.Regs.F = f
}

func (cpu *CPU) blockLD(dir int) {
	r := &cpu.Regs
	v := cpu.mem.Read(r.HL)
	cpu.mem.Write(r.DE, v)
	r.HL += uint16(dir)
	r.DE += uint16(dir)
	r.BC--

	n := v + r.A
	f := r.F & (registers.Sign | registers.Zero | registers.Carry)
	if n&0x02 != 0 {
		f |= registers.UndocumentedY
	}
	if n&0x08 != 0 {
		f |= registers.UndocumentedX
	}
	if r.BC != 0 {
		f |= registers.ParityOverflow
	}
	r.F = f
}

func (cpu *CPU) blockCP(dir int) {
	r := &cpu.Regs
	v := cpu.mem.Read(r.HL)
	r.HL += uint16(dir)
	r.BC--

	res := r.A - v
	half := r.A&0x0f < v&0x0f

	f := r.F&registers.Carry | registers.AddSub
	f |= registers.Flag(res) & registers.Sign
	if res == 0 {
		f |= registers.Zero
	}

	n := res
	if half {
		f |= registers.HalfCarry
		n--
	}
	if n&0x02 != 0 {
		f |= registers.UndocumentedY
	}
	if n&0x08 != 0 {
		f |= registers.UndocumentedX
	}
	if r.BC != 0 {
		f |= registers.ParityOverflow
	}
	r.F = f
}

// ioBlockFlags is the odd flag treatment the INI and OUTI groups share.
// k is the 9-bit intermediate sum described in the community reference.
func (cpu *CPU) ioBlockFlags(v uint8, b uint8, k uint16) {
	f := registers.Flag(b) & szyx
	if b == 0 {
		f |= registers.Zero
	}
	if v&0x80 != 0 {
		f |= registers.AddSub
	}
	if k > 0xff {
		f |= registers.HalfCarry | registers.Carry
	}
	if parity(uint8(k&0x07) ^ b) {
		f |= registers.ParityOverflow
	}
	cpu.Regs.F = f
}

func (cpu *CPU) blockIN(dir int) {
	r := &cpu.Regs
	v := cpu.ports.PortRead(r.C(), cpu.Cycles)
	cpu.mem.Write(r.HL, v)
	r.HL += uint16(dir)
	b := r.B() - 1
	r.SetB(b)

	k := uint16(v) + uint16(r.C()+uint8(dir))
	cpu.ioBlockFlags(v, b, k)
}

func (cpu *CPU) blockOUT(dir int) {
	r := &cpu.Regs
	v := cpu.mem.Read(r.HL)
	b := r.B() - 1
	r.SetB(b)
	cpu.ports.PortWrite(r.C(), v, cpu.Cycles)
	r.HL += uint16(dir)

	k := uint16(v) + uint16(r.L())
	cpu.ioBlockFlags(v, b, k)
}
