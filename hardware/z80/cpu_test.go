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

package z80_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/hardware/z80"
	"github.com/jetsetilly/gopher80/hardware/z80/instructions"
	"github.com/jetsetilly/gopher80/hardware/z80/registers"
	"github.com/jetsetilly/gopher80/test"
)

// flat 64k of RAM with a trivial port map
type testMachine struct {
	ram   [0x10000]uint8
	ports [0x100]uint8
	out   []uint8
}

func (m *testMachine) Read(addr uint16) uint8 {
	return m.ram[addr]
}

func (m *testMachine) Write(addr uint16, data uint8) {
	m.ram[addr] = data
}

func (m *testMachine) PortRead(port uint8, _ uint64) uint8 {
	return m.ports[port]
}

func (m *testMachine) PortWrite(_ uint8, data uint8, _ uint64) {
	m.out = append(m.out, data)
}

const origin = 0x1000

// load a program at origin and return a CPU ready to run it
func startup(prog ...uint8) (*z80.CPU, *testMachine) {
	m := &testMachine{}
	copy(m.ram[origin:], prog)
	cpu := z80.NewCPU(m, m)
	cpu.Reset()
	cpu.Regs.PC = origin
	cpu.Regs.SP = 0x8000
	return cpu, m
}

func step(t *testing.T, cpu *z80.CPU, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		test.DemandSuccess(t, cpu.Step())
	}
}

// every opcode in every table executes, consumes its advertised number of
// cycles and, unless it branches, leaves PC on the next instruction
func TestTableConsistency(t *testing.T) {
	tables := []struct {
		prefix []uint8
		tbl    [256]instructions.Definition
		ddcb   bool
	}{
		{nil, instructions.Unprefixed, false},
		{[]uint8{0xcb}, instructions.PrefixCB, false},
		{[]uint8{0xed}, instructions.PrefixED, false},
		{[]uint8{0xdd}, instructions.PrefixDD, false},
		{[]uint8{0xfd}, instructions.PrefixFD, false},
		{[]uint8{0xdd, 0xcb}, instructions.PrefixDDCB, true},
		{[]uint8{0xfd, 0xcb}, instructions.PrefixFDCB, true},
	}

	for _, tc := range tables {
		for op := 0; op < 256; op++ {
			def := tc.tbl[op]
			if def.Operation == instructions.Prefix {
				continue
			}

			prog := append([]uint8{}, tc.prefix...)
			if tc.ddcb {
				// displacement comes before the opcode
				prog = append(prog, 0x01)
			}
			prog = append(prog, uint8(op))

			cpu, _ := startup(prog...)
			start := cpu.Cycles

			if err := cpu.Step(); err != nil {
				t.Fatalf("%v: %v", def, err)
			}

			consumed := int(cpu.Cycles - start)
			if consumed != def.Cycles && consumed != def.AltCycles {
				t.Errorf("%v: consumed %d cycles, expected %d or %d",
					def, consumed, def.Cycles, def.AltCycles)
			}

			if !cpu.LastResult.BranchTaken {
				if cpu.Regs.PC != origin+uint16(def.Bytes) {
					t.Errorf("%v: PC=%04x after %d byte instruction",
						def, cpu.Regs.PC, def.Bytes)
				}
			}
		}
	}
}

func TestArithmeticFlags(t *testing.T) {
	// ADD A,A with A=0x80 overflows and carries out
	cpu, _ := startup(0x87)
	cpu.Regs.A = 0x80
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.A, 0x00)
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.Zero))
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.Carry))
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.ParityOverflow))
	test.ExpectedFailure(t, cpu.Regs.Flag(registers.HalfCarry))
	test.ExpectedFailure(t, cpu.Regs.Flag(registers.AddSub))

	// SUB of equal values is zero without borrow
	cpu, _ = startup(0x90) // SUB B
	cpu.Regs.A = 0x3e
	cpu.Regs.SetB(0x3e)
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.A, 0x00)
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.Zero))
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.AddSub))
	test.ExpectedFailure(t, cpu.Regs.Flag(registers.Carry))

	// CP leaves A alone
	cpu, _ = startup(0xfe, 0x40) // CP 0x40
	cpu.Regs.A = 0x3f
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.A, 0x3f)
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.Carry))

	// INC wraps and sets overflow at the sign boundary
	cpu, _ = startup(0x3c) // INC A
	cpu.Regs.A = 0x7f
	cpu.Regs.SetFlag(registers.Carry, true)
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.A, 0x80)
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.ParityOverflow))
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.HalfCarry))
	// carry survives INC
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.Carry))
}

func TestDAA(t *testing.T) {
	// BCD addition: 15 + 27 = 42
	cpu, _ := startup(0xc6, 0x27, 0x27) // ADD A,0x27 / DAA
	cpu.Regs.A = 0x15
	step(t, cpu, 2)
	test.Equate(t, cpu.Regs.A, 0x42)
	test.ExpectedFailure(t, cpu.Regs.Flag(registers.Carry))

	// BCD subtraction: 20 - 5 = 15
	cpu, _ = startup(0xd6, 0x05, 0x27) // SUB 0x05 / DAA
	cpu.Regs.A = 0x20
	step(t, cpu, 2)
	test.Equate(t, cpu.Regs.A, 0x15)
}

func TestSixteenBitArithmetic(t *testing.T) {
	// ADD HL,DE preserves sign, zero and parity
	cpu, _ := startup(0x19)
	cpu.Regs.HL = 0x0fff
	cpu.Regs.DE = 0x0001
	cpu.Regs.F = registers.Sign | registers.Zero
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.HL, 0x1000)
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.HalfCarry))
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.Sign))
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.Zero))

	// SBC HL,BC computes the full flag set
	cpu, _ = startup(0xed, 0x42)
	cpu.Regs.HL = 0x1000
	cpu.Regs.BC = 0x1000
	cpu.Regs.F = 0
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.HL, 0x0000)
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.Zero))
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.AddSub))
}

func TestStack(t *testing.T) {
	cpu, m := startup(
		0x01, 0x34, 0x12, // LD BC,0x1234
		0xc5, // PUSH BC
		0xd1, // POP DE
	)
	step(t, cpu, 3)
	test.Equate(t, cpu.Regs.DE, 0x1234)
	test.Equate(t, cpu.Regs.SP, 0x8000)
	test.Equate(t, m.ram[0x7ffe], 0x34)
	test.Equate(t, m.ram[0x7fff], 0x12)
}

func TestControlFlow(t *testing.T) {
	// CALL / RET round trip
	cpu, m := startup(0xcd, 0x00, 0x20) // CALL 0x2000
	m.ram[0x2000] = 0xc9                // RET
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.PC, 0x2000)
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.PC, origin+3)
	test.Equate(t, cpu.Regs.SP, 0x8000)

	// conditional jump not taken costs the short path
	cpu, _ = startup(0x20, 0x10) // JR NZ,+0x10
	cpu.Regs.SetFlag(registers.Zero, true)
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.PC, origin+2)
	test.Equate(t, cpu.LastResult.Cycles, 7)

	// and taken costs the long path
	cpu, _ = startup(0x20, 0x10)
	cpu.Regs.SetFlag(registers.Zero, false)
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.PC, origin+2+0x10)
	test.Equate(t, cpu.LastResult.Cycles, 12)

	// backwards relative jump
	cpu, _ = startup(0x18, 0xfe) // JR -2, jump to self
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.PC, origin)

	// DJNZ loops B times
	cpu, _ = startup(
		0x06, 0x03, // LD B,3
		0x3c,       // INC A
		0x10, 0xfd, // DJNZ -3
	)
	cpu.Regs.A = 0
	step(t, cpu, 7)
	test.Equate(t, cpu.Regs.A, 0x03)
	test.Equate(t, cpu.Regs.B(), 0x00)
	test.Equate(t, cpu.Regs.PC, origin+5)

	// RST pushes the return address
	cpu, m = startup(0xff) // RST 38
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.PC, 0x0038)
	test.Equate(t, m.ram[0x7ffe], 0x01)
	test.Equate(t, m.ram[0x7fff], 0x10)
}

func TestIndexedAddressing(t *testing.T) {
	cpu, m := startup(
		0xdd, 0x21, 0x00, 0x30, // LD IX,0x3000
		0xdd, 0x36, 0x05, 0xaa, // LD (IX+5),0xaa
		0xdd, 0x7e, 0x05, // LD A,(IX+5)
		0xdd, 0x34, 0xfe, // INC (IX-2)
	)
	m.ram[0x2ffe] = 0x41
	step(t, cpu, 4)
	test.Equate(t, m.ram[0x3005], 0xaa)
	test.Equate(t, cpu.Regs.A, 0xaa)
	test.Equate(t, m.ram[0x2ffe], 0x42)

	// LD H,(IX+d) loads the real H register
	cpu, m = startup(
		0xfd, 0x21, 0x00, 0x30, // LD IY,0x3000
		0xfd, 0x66, 0x00, // LD H,(IY+0)
	)
	m.ram[0x3000] = 0x5a
	cpu.Regs.HL = 0x1122
	step(t, cpu, 2)
	test.Equate(t, cpu.Regs.H(), 0x5a)
	test.Equate(t, cpu.Regs.L(), 0x22)
}

func TestUndocumentedOpcodes(t *testing.T) {
	// SLL shifts in a one
	cpu, _ := startup(0xcb, 0x37) // SLL A
	cpu.Regs.A = 0x40
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.A, 0x81)
	test.ExpectedFailure(t, cpu.Regs.Flag(registers.Carry))

	// LD IXH,n
	cpu, _ = startup(0xdd, 0x26, 0x12) // LD IXH,0x12
	cpu.Regs.IX = 0x3456
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.IX, 0x1256)

	// ADD A,IXL
	cpu, _ = startup(0xdd, 0x85)
	cpu.Regs.A = 0x01
	cpu.Regs.IX = 0x0002
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.A, 0x03)

	// doubly prefixed rotate copies the result to a register
	cpu, m := startup(
		0xdd, 0x21, 0x00, 0x30, // LD IX,0x3000
		0xdd, 0xcb, 0x00, 0x00, // RLC (IX+0) -> B
	)
	m.ram[0x3000] = 0x81
	step(t, cpu, 2)
	test.Equate(t, m.ram[0x3000], 0x03)
	test.Equate(t, cpu.Regs.B(), 0x03)
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.Carry))
}

func TestBlockTransfer(t *testing.T) {
	cpu, m := startup(0xed, 0xb0) // LDIR
	copy(m.ram[0x3000:], []uint8{1, 2, 3, 4, 5})
	cpu.Regs.HL = 0x3000
	cpu.Regs.DE = 0x4000
	cpu.Regs.BC = 0x0005

	// one step per byte
	step(t, cpu, 4)
	test.Equate(t, cpu.Regs.PC, origin)
	test.Equate(t, cpu.LastResult.Cycles, 21)
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.PC, origin+2)
	test.Equate(t, cpu.LastResult.Cycles, 16)

	test.Equate(t, cpu.Regs.BC, 0x0000)
	test.Equate(t, cpu.Regs.HL, 0x3005)
	test.Equate(t, cpu.Regs.DE, 0x4005)
	for i := 0; i < 5; i++ {
		test.Equate(t, m.ram[0x4000+i], uint8(i+1))
	}
	test.ExpectedFailure(t, cpu.Regs.Flag(registers.ParityOverflow))
}

func TestBlockCompare(t *testing.T) {
	cpu, m := startup(0xed, 0xb1) // CPIR
	copy(m.ram[0x3000:], []uint8{0x10, 0x20, 0x30, 0x40})
	cpu.Regs.A = 0x30
	cpu.Regs.HL = 0x3000
	cpu.Regs.BC = 0x0004

	step(t, cpu, 3)
	test.Equate(t, cpu.Regs.PC, origin+2)
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.Zero))
	test.Equate(t, cpu.Regs.HL, 0x3003)
	test.Equate(t, cpu.Regs.BC, 0x0001)
}

func TestPortIO(t *testing.T) {
	cpu, m := startup(
		0xdb, 0x42, // IN A,(0x42)
		0xd3, 0x99, // OUT (0x99),A
	)
	m.ports[0x42] = 0x5a
	step(t, cpu, 2)
	test.Equate(t, cpu.Regs.A, 0x5a)
	test.Equate(t, len(m.out), 1)
	test.Equate(t, m.out[0], 0x5a)

	// IN r,(C) sets flags
	cpu, m = startup(0xed, 0x50) // IN D,(C)
	m.ports[0x10] = 0x80
	cpu.Regs.BC = 0x0010
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.D(), 0x80)
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.Sign))
	test.ExpectedFailure(t, cpu.Regs.Flag(registers.Zero))
}

func TestInterrupts(t *testing.T) {
	// IM 1 acceptance
	cpu, _ := startup(0xfb, 0x00, 0x00) // EI / NOP / NOP
	cpu.Regs.SP = 0x8000
	cpu.SetINT(true)

	step(t, cpu, 1) // EI
	// the instruction after EI runs before the interrupt is accepted
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.PC, origin+2)
	step(t, cpu, 1) // interrupt accepted
	test.Equate(t, cpu.Regs.PC, 0x0038)
	test.ExpectedFailure(t, cpu.IFF1)
	cpu.SetINT(false)

	// DI masks the line
	cpu, _ = startup(0xf3, 0x00) // DI / NOP
	cpu.SetINT(true)
	step(t, cpu, 2)
	test.Equate(t, cpu.Regs.PC, origin+2)

	// NMI is not maskable and vectors to 0x66
	cpu, _ = startup(0xf3, 0x00) // DI / NOP
	step(t, cpu, 1)
	cpu.NMI()
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.PC, 0x0066)
	test.ExpectedFailure(t, cpu.IFF1)

	// interrupts wake a halted processor
	cpu, _ = startup(0xfb, 0x76) // EI / HALT
	cpu.SetINT(true)
	step(t, cpu, 2)
	test.ExpectedSuccess(t, cpu.Halted)
	step(t, cpu, 1)
	test.ExpectedFailure(t, cpu.Halted)
	test.Equate(t, cpu.Regs.PC, 0x0038)

	// IM 2 reads the vector from the table at I
	cpu, m := startup(
		0xed, 0x5e, // IM 2
		0xfb,       // EI
		0x00, 0x00, // NOP NOP
	)
	cpu.Regs.I = 0x40
	cpu.SetINTData(0x10)
	m.ram[0x4010] = 0x00
	m.ram[0x4011] = 0x25
	cpu.SetINT(true)
	step(t, cpu, 4)
	test.Equate(t, cpu.Regs.PC, 0x2500)
}

func TestInterruptFlipFlops(t *testing.T) {
	// LD A,I copies IFF2 to the parity flag
	cpu, _ := startup(
		0xfb,       // EI
		0xed, 0x57, // LD A,I
	)
	step(t, cpu, 2)
	test.ExpectedSuccess(t, cpu.Regs.Flag(registers.ParityOverflow))

	// NMI clears IFF1 but leaves IFF2; RETN restores
	cpu, m := startup(0xfb, 0x00, 0x00) // EI / NOP / NOP
	m.ram[0x0066] = 0xed                // RETN
	m.ram[0x0067] = 0x45
	step(t, cpu, 2)
	cpu.NMI()
	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.PC, 0x0066)
	test.ExpectedFailure(t, cpu.IFF1)
	test.ExpectedSuccess(t, cpu.IFF2)
	step(t, cpu, 1) // RETN
	test.ExpectedSuccess(t, cpu.IFF1)
	test.Equate(t, cpu.Regs.PC, origin+2)
}

func TestHalt(t *testing.T) {
	cpu, _ := startup(0x76)
	step(t, cpu, 1)
	test.ExpectedSuccess(t, cpu.Halted)
	before := cpu.Cycles

	// the halted processor burns four cycles a step
	step(t, cpu, 3)
	test.Equate(t, cpu.Cycles-before, uint64(12))
	test.Equate(t, cpu.Regs.PC, origin+1)
}

func TestExchange(t *testing.T) {
	cpu, m := startup(
		0xeb, // EX DE,HL
		0xe3, // EX (SP),HL
	)
	cpu.Regs.HL = 0x1111
	cpu.Regs.DE = 0x2222
	m.ram[0x8000] = 0x44
	m.ram[0x8001] = 0x33
	cpu.Regs.SP = 0x8000

	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.HL, 0x2222)
	test.Equate(t, cpu.Regs.DE, 0x1111)

	step(t, cpu, 1)
	test.Equate(t, cpu.Regs.HL, 0x3344)
	test.Equate(t, m.ram[0x8000], 0x22)
	test.Equate(t, m.ram[0x8001], 0x22)
}

func TestRefreshCounting(t *testing.T) {
	cpu, _ := startup(0x00, 0xcb, 0x00, 0xdd, 0xcb, 0x01, 0x06)
	cpu.Regs.R = 0

	step(t, cpu, 1) // NOP
	test.Equate(t, cpu.Regs.R, 0x01)
	step(t, cpu, 1) // RLC B
	test.Equate(t, cpu.Regs.R, 0x03)
	step(t, cpu, 1) // RLC (IX+1)
	test.Equate(t, cpu.Regs.R, 0x05)
}
