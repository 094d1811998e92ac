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
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/z80/instructions"
	"github.com/jetsetilly/gopher80/hardware/z80/registers"
)

// execute performs the decoded instruction, updates PC and adds the
// T-state cost to the ledger.
func (cpu *CPU) execute(def instructions.Definition) error {
	r := &cpu.Regs
	pc := r.PC
	nextPC := pc + uint16(def.Bytes)

	branched := false
	cycles := def.Cycles

	// taken evaluates the condition and charges the branch-taken cost
	taken := func() bool {
		if !cpu.cond(def.Condition) {
			return false
		}
		if def.AltCycles != 0 {
			cycles = def.AltCycles
		}
		return true
	}

	// repeat holds PC on the current instruction, re-executing it next step
	repeat := func(again bool) {
		if again {
			branched = true
			cycles = def.AltCycles
		}
	}

	switch def.Operation {
	case instructions.NOP, instructions.NONI:
		// nothing to do

	case instructions.LD8:
		cpu.set8(def.Dest, cpu.get8(def.Source))

	case instructions.LDAIR:
		v := cpu.get8(def.Source)
		r.A = v
		f := r.F & registers.Carry
		f |= registers.Flag(v) & (registers.Sign | registers.UndocumentedY | registers.UndocumentedX)
		if v == 0 {
			f |= registers.Zero
		}
		if cpu.IFF2 {
			f |= registers.ParityOverflow
		}
		r.F = f

	case instructions.LD16:
		cpu.set16(def.Dest, cpu.get16(def.Source))

	case instructions.PUSH:
		cpu.push16(cpu.get16(def.Dest))

	case instructions.POP:
		cpu.set16(def.Dest, cpu.pop16())

	case instructions.EXDEHL:
		r.DE, r.HL = r.HL, r.DE

	case instructions.EXAF:
		r.ExAF()

	case instructions.EXX:
		r.Exx()

	case instructions.EXSP:
		v := cpu.read16(r.SP)
		cpu.write16(r.SP, cpu.get16(def.Dest))
		cpu.set16(def.Dest, v)

	case instructions.ADD8:
		cpu.add8(cpu.get8(def.Source), false)
	case instructions.ADC8:
		cpu.add8(cpu.get8(def.Source), true)
	case instructions.SUB8:
		r.A = cpu.sub8(r.A, cpu.get8(def.Source), false)
	case instructions.SBC8:
		r.A = cpu.sub8(r.A, cpu.get8(def.Source), true)
	case instructions.AND:
		cpu.logic8(r.A&cpu.get8(def.Source), true)
	case instructions.XOR:
		cpu.logic8(r.A^cpu.get8(def.Source), false)
	case instructions.OR:
		cpu.logic8(r.A|cpu.get8(def.Source), false)
	case instructions.CP:
		cpu.cmp8(cpu.get8(def.Source))

	case instructions.INC8:
		cpu.set8(def.Dest, cpu.incVal(cpu.get8(def.Dest)))
	case instructions.DEC8:
		cpu.set8(def.Dest, cpu.decVal(cpu.get8(def.Dest)))

	case instructions.ADD16:
		cpu.set16(def.Dest, cpu.add16(cpu.get16(def.Dest), cpu.get16(def.Source)))
	case instructions.ADC16:
		cpu.set16(def.Dest, cpu.adc16(cpu.get16(def.Dest), cpu.get16(def.Source)))
	case instructions.SBC16:
		cpu.set16(def.Dest, cpu.sbc16(cpu.get16(def.Dest), cpu.get16(def.Source)))
	case instructions.INC16:
		cpu.set16(def.Dest, cpu.get16(def.Dest)+1)
	case instructions.DEC16:
		cpu.set16(def.Dest, cpu.get16(def.Dest)-1)

	case instructions.DAA:
		cpu.daa()

	case instructions.CPL:
		r.A = ^r.A
		f := r.F & (registers.Sign | registers.Zero | registers.ParityOverflow | registers.Carry)
		f |= registers.HalfCarry | registers.AddSub
		f |= registers.Flag(r.A) & (registers.UndocumentedY | registers.UndocumentedX)
		r.F = f

	case instructions.NEG:
		r.A = cpu.sub8(0, r.A, false)

	case instructions.CCF:
		f := r.F & (registers.Sign | registers.Zero | registers.ParityOverflow)
		if r.Flag(registers.Carry) {
			f |= registers.HalfCarry
		} else {
			f |= registers.Carry
		}
		f |= registers.Flag(r.A) & (registers.UndocumentedY | registers.UndocumentedX)
		r.F = f

	case instructions.SCF:
		f := r.F & (registers.Sign | registers.Zero | registers.ParityOverflow)
		f |= registers.Carry
		f |= registers.Flag(r.A) & (registers.UndocumentedY | registers.UndocumentedX)
		r.F = f

	case instructions.HALT:
		cpu.Halted = true

	case instructions.DI:
		cpu.IFF1 = false
		cpu.IFF2 = false

	case instructions.EI:
		cpu.IFF1 = true
		cpu.IFF2 = true
		cpu.pendingEI = true

	case instructions.IM:
		cpu.IM = def.Value

	case instructions.RLCA, instructions.RLA, instructions.RRCA, instructions.RRA:
		cpu.rotateA(def.Operation)

	case instructions.RLC, instructions.RRC, instructions.RL, instructions.RR,
		instructions.SLA, instructions.SRA, instructions.SLL, instructions.SRL:
		v := cpu.rotate(def.Operation, cpu.get8(def.Dest))
		cpu.set8(def.Dest, v)
		if def.Source != instructions.NoOperand {
			// doubly prefixed form copies the result to a register
			cpu.set8(def.Source, v)
		}

	case instructions.BIT:
		cpu.bit(def)

	case instructions.RES:
		v := cpu.get8(def.Dest) &^ (1 << def.Value)
		cpu.set8(def.Dest, v)
		if def.Source != instructions.NoOperand {
			cpu.set8(def.Source, v)
		}

	case instructions.SET:
		v := cpu.get8(def.Dest) | 1<<def.Value
		cpu.set8(def.Dest, v)
		if def.Source != instructions.NoOperand {
			cpu.set8(def.Source, v)
		}

	case instructions.JP:
		target := cpu.get16(def.Source)
		if taken() {
			r.PC = target
			branched = true
		}

	case instructions.JR:
		d := int8(cpu.get8(def.Source))
		if taken() {
			r.PC = nextPC + uint16(int16(d))
			branched = true
		}

	case instructions.DJNZ:
		d := int8(cpu.get8(def.Source))
		r.SetB(r.B() - 1)
		if r.B() != 0 {
			cycles = def.AltCycles
			r.PC = nextPC + uint16(int16(d))
			branched = true
		}

	case instructions.CALL:
		target := cpu.get16(def.Source)
		if taken() {
			cpu.push16(nextPC)
			r.PC = target
			branched = true
		}

	case instructions.RET:
		if taken() {
			r.PC = cpu.pop16()
			branched = true
		}

	case instructions.RETN, instructions.RETI:
		cpu.IFF1 = cpu.IFF2
		r.PC = cpu.pop16()
		branched = true

	case instructions.RST:
		cpu.push16(nextPC)
		r.PC = uint16(def.Value)
		branched = true

	case instructions.INA:
		r.A = cpu.ports.PortRead(cpu.get8(def.Source), cpu.Cycles)

	case instructions.INR:
		v := cpu.ports.PortRead(r.C(), cpu.Cycles)
		if def.Dest != instructions.NoOperand {
			cpu.set8(def.Dest, v)
		}
		cpu.inFlags(v)

	case instructions.OUTA:
		cpu.ports.PortWrite(cpu.get8(def.Dest), r.A, cpu.Cycles)

	case instructions.OUTR:
		var v uint8
		if def.Source != instructions.NoOperand {
			v = cpu.get8(def.Source)
		}
		cpu.ports.PortWrite(r.C(), v, cpu.Cycles)

	case instructions.RLD:
		v := cpu.mem.Read(r.HL)
		cpu.mem.Write(r.HL, v<<4|r.A&0x0f)
		r.A = r.A&0xf0 | v>>4
		cpu.rldFlags()

	case instructions.RRD:
		v := cpu.mem.Read(r.HL)
		cpu.mem.Write(r.HL, r.A<<4|v>>4)
		r.A = r.A&0xf0 | v&0x0f
		cpu.rldFlags()

	case instructions.LDI:
		cpu.blockLD(1)
	case instructions.LDD:
		cpu.blockLD(-1)
	case instructions.LDIR:
		cpu.blockLD(1)
		repeat(r.BC != 0)
	case instructions.LDDR:
		cpu.blockLD(-1)
		repeat(r.BC != 0)

	case instructions.CPI:
		cpu.blockCP(1)
	case instructions.CPD:
		cpu.blockCP(-1)
	case instructions.CPIR:
		cpu.blockCP(1)
		repeat(r.BC != 0 && !r.Flag(registers.Zero))
	case instructions.CPDR:
		cpu.blockCP(-1)
		repeat(r.BC != 0 && !r.Flag(registers.Zero))

	case instructions.INI:
		cpu.blockIN(1)
	case instructions.IND:
		cpu.blockIN(-1)
	case instructions.INIR:
		cpu.blockIN(1)
		repeat(r.B() != 0)
	case instructions.INDR:
		cpu.blockIN(-1)
		repeat(r.B() != 0)

	case instructions.OUTI:
		cpu.blockOUT(1)
	case instructions.OUTD:
		cpu.blockOUT(-1)
	case instructions.OTIR:
		cpu.blockOUT(1)
		repeat(r.B() != 0)
	case instructions.OTDR:
		cpu.blockOUT(-1)
		repeat(r.B() != 0)

	default:
		return curated.Errorf(UnimplementedInstruction, def)
	}

	if !branched {
		r.PC = nextPC
	}
	cpu.Cycles += uint64(cycles)
	cpu.LastResult = Result{
		Address:     pc,
		Defn:        def,
		Cycles:      cycles,
		BranchTaken: branched,
	}

	return nil
}

// effective address of an indexed operand
func (cpu *CPU) ea(o instructions.Operand) uint16 {
	if o == instructions.IndIXD {
		return cpu.Regs.IX + uint16(int16(cpu.disp))
	}
	return cpu.Regs.IY + uint16(int16(cpu.disp))
}

func (cpu *CPU) imm16() uint16 {
	return cpu.read16(cpu.immAddr)
}

func (cpu *CPU) get8(o instructions.Operand) uint8 {
	r := &cpu.Regs
	switch o {
	case instructions.RegA:
		return r.A
	case instructions.RegB:
		return r.B()
	case instructions.RegC:
		return r.C()
	case instructions.RegD:
		return r.D()
	case instructions.RegE:
		return r.E()
	case instructions.RegH:
		return r.H()
	case instructions.RegL:
		return r.L()
	case instructions.RegIXH:
		return r.IXH()
	case instructions.RegIXL:
		return r.IXL()
	case instructions.RegIYH:
		return r.IYH()
	case instructions.RegIYL:
		return r.IYL()
	case instructions.RegI:
		return r.I
	case instructions.RegR:
		return r.R
	case instructions.IndBC:
		return cpu.mem.Read(r.BC)
	case instructions.IndDE:
		return cpu.mem.Read(r.DE)
	case instructions.IndHL:
		return cpu.mem.Read(r.HL)
	case instructions.IndIXD, instructions.IndIYD:
		return cpu.mem.Read(cpu.ea(o))
	case instructions.Imm8:
		return cpu.mem.Read(cpu.immAddr)
	case instructions.IndImm16:
		return cpu.mem.Read(cpu.imm16())
	}
	return 0
}

func (cpu *CPU) set8(o instructions.Operand, v uint8) {
	r := &cpu.Regs
	switch o {
	case instructions.RegA:
		r.A = v
	case instructions.RegB:
		r.SetB(v)
	case instructions.RegC:
		r.SetC(v)
	case instructions.RegD:
		r.SetD(v)
	case instructions.RegE:
		r.SetE(v)
	case instructions.RegH:
		r.SetH(v)
	case instructions.RegL:
		r.SetL(v)
	case instructions.RegIXH:
		r.SetIXH(v)
	case instructions.RegIXL:
		r.SetIXL(v)
	case instructions.RegIYH:
		r.SetIYH(v)
	case instructions.RegIYL:
		r.SetIYL(v)
	case instructions.RegI:
		r.I = v
	case instructions.RegR:
		r.R = v
	case instructions.IndBC:
		cpu.mem.Write(r.BC, v)
	case instructions.IndDE:
		cpu.mem.Write(r.DE, v)
	case instructions.IndHL:
		cpu.mem.Write(r.HL, v)
	case instructions.IndIXD, instructions.IndIYD:
		cpu.mem.Write(cpu.ea(o), v)
	case instructions.IndImm16:
		cpu.mem.Write(cpu.imm16(), v)
	}
}

func (cpu *CPU) get16(o instructions.Operand) uint16 {
	r := &cpu.Regs
	switch o {
	case instructions.RegBC:
		return r.BC
	case instructions.RegDE:
		return r.DE
	case instructions.RegHL:
		return r.HL
	case instructions.RegSP:
		return r.SP
	case instructions.RegAF:
		return r.AF()
	case instructions.RegIX:
		return r.IX
	case instructions.RegIY:
		return r.IY
	case instructions.Imm16:
		return cpu.imm16()
	case instructions.IndImm16:
		return cpu.read16(cpu.imm16())
	}
	return 0
}

func (cpu *CPU) set16(o instructions.Operand, v uint16) {
	r := &cpu.Regs
	switch o {
	case instructions.RegBC:
		r.BC = v
	case instructions.RegDE:
		r.DE = v
	case instructions.RegHL:
		r.HL = v
	case instructions.RegSP:
		r.SP = v
	case instructions.RegAF:
		r.SetAF(v)
	case instructions.RegIX:
		r.IX = v
	case instructions.RegIY:
		r.IY = v
	case instructions.IndImm16:
		cpu.write16(cpu.imm16(), v)
	}
}

func (cpu *CPU) read16(addr uint16) uint16 {
	return uint16(cpu.mem.Read(addr)) | uint16(cpu.mem.Read(addr+1))<<8
}

func (cpu *CPU) write16(addr uint16, v uint16) {
	cpu.mem.Write(addr, uint8(v))
	cpu.mem.Write(addr+1, uint8(v>>8))
}

func (cpu *CPU) push16(v uint16) {
	cpu.Regs.SP -= 2
	cpu.write16(cpu.Regs.SP, v)
}

func (cpu *CPU) pop16() uint16 {
	v := cpu.read16(cpu.Regs.SP)
	cpu.Regs.SP += 2
	return v
}
