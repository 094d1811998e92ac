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

// Package z80 implements the Z80 processor at instruction granularity. Each
// call to Step executes one instruction (or accepts one interrupt) and adds
// the T-state cost to the cycle ledger. Memory and port access is through
// the bus interfaces, the CPU knows nothing about what is attached to it.
package z80

import (
	"github.com/jetsetilly/gopher80/hardware/bus"
	"github.com/jetsetilly/gopher80/hardware/z80/instructions"
	"github.com/jetsetilly/gopher80/hardware/z80/registers"
)

// sentinel errors returned by Step
const (
	UnimplementedInstruction = "z80: no implementation for %v"
)

// Result records the outcome of the most recent Step.
type Result struct {
	// address the instruction was fetched from
	Address uint16

	Defn instructions.Definition

	// T-states the instruction actually cost
	Cycles int

	// conditional branch was taken or a block instruction repeated
	BranchTaken bool
}

// CPU is an instance of the Z80 processor.
type CPU struct {
	Regs registers.File

	// true after HALT, until an interrupt
	Halted bool

	// interrupt mode and the two enable flip-flops
	IM   uint8
	IFF1 bool
	IFF2 bool

	// interrupts are not accepted until the instruction after EI has
	// completed
	pendingEI bool

	// nmiPending is an edge triggered latch. intLine is level sensitive
	nmiPending bool
	intLine    bool

	// the byte the interrupting device places on the data bus. used by
	// interrupt modes 0 and 2
	intData uint8

	// total T-states since the last reset
	Cycles uint64

	LastResult Result

	mem   bus.CPUBus
	ports bus.PortBus

	// decode state for the instruction being executed
	disp    int8
	immAddr uint16
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(mem bus.CPUBus, ports bus.PortBus) *CPU {
	return &CPU{
		Regs:    registers.NewFile(),
		intData: 0xff,
		mem:     mem,
		ports:   ports,
	}
}

// Reset emulates the /RESET line. The general purpose registers keep their
// values, everything the real chip clears is cleared.
func (cpu *CPU) Reset() {
	cpu.Regs.PC = 0x0000
	cpu.Regs.I = 0x00
	cpu.Regs.R = 0x00
	cpu.IM = 0
	cpu.IFF1 = false
	cpu.IFF2 = false
	cpu.pendingEI = false
	cpu.nmiPending = false
	cpu.Halted = false
	cpu.Cycles = 0
}

// NMI latches a non-maskable interrupt. It will be accepted at the next
// instruction boundary.
func (cpu *CPU) NMI() {
	cpu.nmiPending = true
}

// SetINT drives the maskable interrupt line. The line is level sensitive so
// the caller must release it once the interrupt has been serviced.
func (cpu *CPU) SetINT(assert bool) {
	cpu.intLine = assert
}

// SetINTData sets the byte the interrupting device will place on the data
// bus during interrupt acknowledge. Meaningful in modes 0 and 2. The
// default is 0xff.
func (cpu *CPU) SetINTData(data uint8) {
	cpu.intData = data
}

// Step executes a single instruction, or accepts a pending interrupt, and
// advances the cycle ledger by the T-states consumed.
func (cpu *CPU) Step() error {
	// EI shadows interrupt acceptance for exactly one instruction
	suppress := cpu.pendingEI
	cpu.pendingEI = false

	if cpu.nmiPending {
		cpu.nmiPending = false
		cpu.Halted = false
		cpu.IFF1 = false
		cpu.Regs.IncR()
		cpu.push16(cpu.Regs.PC)
		cpu.Regs.PC = 0x0066
		cpu.Cycles += 11
		return nil
	}

	if cpu.intLine && cpu.IFF1 && !suppress {
		cpu.Halted = false
		cpu.IFF1 = false
		cpu.IFF2 = false
		cpu.Regs.IncR()
		cpu.push16(cpu.Regs.PC)

		switch cpu.IM {
		case 2:
			vector := uint16(cpu.Regs.I)<<8 | uint16(cpu.intData)
			cpu.Regs.PC = cpu.read16(vector)
			cpu.Cycles += 19
		default:
			// mode 0 with the customary 0xff on the bus executes RST 38,
			// the same as mode 1
			cpu.Regs.PC = 0x0038
			cpu.Cycles += 13
		}
		return nil
	}

	if cpu.Halted {
		// the halted processor fetches NOPs
		cpu.Regs.IncR()
		cpu.Cycles += 4
		return nil
	}

	return cpu.execute(cpu.decode())
}

// decode reads the opcode at PC, following any prefix bytes, and returns
// the instruction definition. Displacement bytes and the position of any
// immediate operand are stashed in the CPU for the operand helpers.
func (cpu *CPU) decode() instructions.Definition {
	pc := cpu.Regs.PC
	opcode := cpu.mem.Read(pc)
	cpu.Regs.IncR()

	switch opcode {
	case 0xcb:
		cpu.Regs.IncR()
		cpu.immAddr = pc + 2
		return instructions.PrefixCB[cpu.mem.Read(pc+1)]

	case 0xed:
		cpu.Regs.IncR()
		cpu.immAddr = pc + 2
		return instructions.PrefixED[cpu.mem.Read(pc+1)]

	case 0xdd, 0xfd:
		cpu.Regs.IncR()
		next := cpu.mem.Read(pc + 1)

		switch next {
		case 0xcb:
			// displacement comes before the final opcode byte
			cpu.disp = int8(cpu.mem.Read(pc + 2))
			cpu.immAddr = pc + 4
			if opcode == 0xdd {
				return instructions.PrefixDDCB[cpu.mem.Read(pc+3)]
			}
			return instructions.PrefixFDCB[cpu.mem.Read(pc+3)]

		case 0xdd, 0xed, 0xfd:
			// a prefix followed by another prefix does nothing. the second
			// prefix is decoded afresh on the next step
			return instructions.Definition{
				OpCode: opcode, Operation: instructions.NOP,
				Bytes: 1, Cycles: 4, Undocumented: true,
			}
		}

		var def instructions.Definition
		if opcode == 0xdd {
			def = instructions.PrefixDD[next]
		} else {
			def = instructions.PrefixFD[next]
		}

		cpu.immAddr = pc + 2
		if usesDisplacement(def) {
			cpu.disp = int8(cpu.mem.Read(pc + 2))
			cpu.immAddr = pc + 3
		}
		return def
	}

	cpu.immAddr = pc + 1
	return instructions.Unprefixed[opcode]
}

func usesDisplacement(def instructions.Definition) bool {
	for _, o := range []instructions.Operand{def.Dest, def.Source} {
		if o == instructions.IndIXD || o == instructions.IndIYD {
			return true
		}
	}
	return false
}

// cond evaluates the definition's flag test. Unconditional instructions
// always pass.
func (cpu *CPU) cond(c instructions.Condition) bool {
	switch c {
	case instructions.CondNZ:
		return !cpu.Regs.Flag(registers.Zero)
	case instructions.CondZ:
		return cpu.Regs.Flag(registers.Zero)
	case instructions.CondNC:
		return !cpu.Regs.Flag(registers.Carry)
	case instructions.CondC:
		return cpu.Regs.Flag(registers.Carry)
	case instructions.CondPO:
		return !cpu.Regs.Flag(registers.ParityOverflow)
	case instructions.CondPE:
		return cpu.Regs.Flag(registers.ParityOverflow)
	case instructions.CondP:
		return !cpu.Regs.Flag(registers.Sign)
	case instructions.CondM:
		return cpu.Regs.Flag(registers.Sign)
	}
	return true
}

func (cpu *CPU) String() string {
	return cpu.Regs.String()
}
