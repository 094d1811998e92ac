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

package instructions

// The instruction tables. Indexed by the opcode byte that follows the
// prefix (or by the first byte in the case of Unprefixed). For the doubly
// prefixed groups the index is the fourth byte of the instruction, the one
// after the displacement.
var (
	Unprefixed [256]Definition
	PrefixCB   [256]Definition
	PrefixED   [256]Definition
	PrefixDD   [256]Definition
	PrefixFD   [256]Definition
	PrefixDDCB [256]Definition
	PrefixFDCB [256]Definition
)

// operand and condition lookups for the x/y/z/p/q builder
var (
	tabR   = [8]Operand{RegB, RegC, RegD, RegE, RegH, RegL, IndHL, RegA}
	tabRP  = [4]Operand{RegBC, RegDE, RegHL, RegSP}
	tabRP2 = [4]Operand{RegBC, RegDE, RegHL, RegAF}
	tabCC  = [8]Condition{CondNZ, CondZ, CondNC, CondC, CondPO, CondPE, CondP, CondM}
	tabALU = [8]Operation{ADD8, ADC8, SUB8, SBC8, AND, XOR, OR, CP}
	tabROT = [8]Operation{RLC, RRC, RL, RR, SLA, SRA, SLL, SRL}
)

func init() {
	buildUnprefixed()
	buildCB()
	buildED()
	buildIndexed(&PrefixDD, RegIX, RegIXH, RegIXL, IndIXD)
	buildIndexed(&PrefixFD, RegIY, RegIYH, RegIYL, IndIYD)
	buildIndexedCB(&PrefixDDCB, IndIXD)
	buildIndexedCB(&PrefixFDCB, IndIYD)
}

func buildUnprefixed() {
	for op := 0; op < 256; op++ {
		x := op >> 6
		y := (op >> 3) & 0x07
		z := op & 0x07
		p := y >> 1
		q := y & 0x01

		def := Definition{OpCode: uint8(op), Bytes: 1, Cycles: 4}

		switch x {
		case 0:
			switch z {
			case 0:
				switch y {
				case 0:
					def.Operation = NOP
				case 1:
					def.Operation = EXAF
				case 2:
					def.Operation = DJNZ
					def.Source = Imm8
					def.Bytes = 2
					def.Cycles = 8
					def.AltCycles = 13
				case 3:
					def.Operation = JR
					def.Source = Imm8
					def.Bytes = 2
					def.Cycles = 12
				default:
					def.Operation = JR
					def.Condition = tabCC[y-4]
					def.Source = Imm8
					def.Bytes = 2
					def.Cycles = 7
					def.AltCycles = 12
				}
			case 1:
				if q == 0 {
					def.Operation = LD16
					def.Dest = tabRP[p]
					def.Source = Imm16
					def.Bytes = 3
					def.Cycles = 10
				} else {
					def.Operation = ADD16
					def.Dest = RegHL
					def.Source = tabRP[p]
					def.Cycles = 11
				}
			case 2:
				def.Cycles = 7
				switch {
				case p == 0 && q == 0:
					def.Operation = LD8
					def.Dest = IndBC
					def.Source = RegA
				case p == 0 && q == 1:
					def.Operation = LD8
					def.Dest = RegA
					def.Source = IndBC
				case p == 1 && q == 0:
					def.Operation = LD8
					def.Dest = IndDE
					def.Source = RegA
				case p == 1 && q == 1:
					def.Operation = LD8
					def.Dest = RegA
					def.Source = IndDE
				case p == 2 && q == 0:
					def.Operation = LD16
					def.Dest = IndImm16
					def.Source = RegHL
					def.Bytes = 3
					def.Cycles = 16
				case p == 2 && q == 1:
					def.Operation = LD16
					def.Dest = RegHL
					def.Source = IndImm16
					def.Bytes = 3
					def.Cycles = 16
				case p == 3 && q == 0:
					def.Operation = LD8
					def.Dest = IndImm16
					def.Source = RegA
					def.Bytes = 3
					def.Cycles = 13
				case p == 3 && q == 1:
					def.Operation = LD8
					def.Dest = RegA
					def.Source = IndImm16
					def.Bytes = 3
					def.Cycles = 13
				}
			case 3:
				if q == 0 {
					def.Operation = INC16
				} else {
					def.Operation = DEC16
				}
				def.Dest = tabRP[p]
				def.Cycles = 6
			case 4, 5:
				if z == 4 {
					def.Operation = INC8
				} else {
					def.Operation = DEC8
				}
				def.Dest = tabR[y]
				if def.Dest == IndHL {
					def.Cycles = 11
				}
			case 6:
				def.Operation = LD8
				def.Dest = tabR[y]
				def.Source = Imm8
				def.Bytes = 2
				def.Cycles = 7
				if def.Dest == IndHL {
					def.Cycles = 10
				}
			case 7:
				def.Operation = [8]Operation{RLCA, RRCA, RLA, RRA, DAA, CPL, SCF, CCF}[y]
			}

		case 1:
			if y == 6 && z == 6 {
				def.Operation = HALT
			} else {
				def.Operation = LD8
				def.Dest = tabR[y]
				def.Source = tabR[z]
				if def.Dest == IndHL || def.Source == IndHL {
					def.Cycles = 7
				}
			}

		case 2:
			def.Operation = tabALU[y]
			def.Dest = RegA
			def.Source = tabR[z]
			if def.Source == IndHL {
				def.Cycles = 7
			}

		case 3:
			switch z {
			case 0:
				def.Operation = RET
				def.Condition = tabCC[y]
				def.Cycles = 5
				def.AltCycles = 11
			case 1:
				if q == 0 {
					def.Operation = POP
					def.Dest = tabRP2[p]
					def.Cycles = 10
				} else {
					switch p {
					case 0:
						def.Operation = RET
						def.Cycles = 10
					case 1:
						def.Operation = EXX
					case 2:
						def.Operation = JP
						def.Source = RegHL
					case 3:
						def.Operation = LD16
						def.Dest = RegSP
						def.Source = RegHL
						def.Cycles = 6
					}
				}
			case 2:
				def.Operation = JP
				def.Condition = tabCC[y]
				def.Source = Imm16
				def.Bytes = 3
				def.Cycles = 10
			case 3:
				switch y {
				case 0:
					def.Operation = JP
					def.Source = Imm16
					def.Bytes = 3
					def.Cycles = 10
				case 1:
					// 0xcb
					def.Operation = Prefix
				case 2:
					def.Operation = OUTA
					def.Dest = Imm8
					def.Source = RegA
					def.Bytes = 2
					def.Cycles = 11
				case 3:
					def.Operation = INA
					def.Dest = RegA
					def.Source = Imm8
					def.Bytes = 2
					def.Cycles = 11
				case 4:
					def.Operation = EXSP
					def.Dest = RegHL
					def.Cycles = 19
				case 5:
					def.Operation = EXDEHL
				case 6:
					def.Operation = DI
				case 7:
					def.Operation = EI
				}
			case 4:
				def.Operation = CALL
				def.Condition = tabCC[y]
				def.Source = Imm16
				def.Bytes = 3
				def.Cycles = 10
				def.AltCycles = 17
			case 5:
				if q == 0 {
					def.Operation = PUSH
					def.Dest = tabRP2[p]
					def.Cycles = 11
				} else {
					if p == 0 {
						def.Operation = CALL
						def.Source = Imm16
						def.Bytes = 3
						def.Cycles = 17
					} else {
						// 0xdd, 0xed, 0xfd
						def.Operation = Prefix
					}
				}
			case 6:
				def.Operation = tabALU[y]
				def.Dest = RegA
				def.Source = Imm8
				def.Bytes = 2
				def.Cycles = 7
			case 7:
				def.Operation = RST
				def.Value = uint8(y * 8)
				def.Cycles = 11
			}
		}

		Unprefixed[op] = def
	}
}

func buildCB() {
	for op := 0; op < 256; op++ {
		x := op >> 6
		y := (op >> 3) & 0x07
		z := op & 0x07

		def := Definition{OpCode: uint8(op), Bytes: 2, Cycles: 8}

		switch x {
		case 0:
			def.Operation = tabROT[y]
			def.Dest = tabR[z]
			if def.Dest == IndHL {
				def.Cycles = 15
			}
			if def.Operation == SLL {
				def.Undocumented = true
			}
		case 1:
			def.Operation = BIT
			def.Value = uint8(y)
			def.Dest = tabR[z]
			if def.Dest == IndHL {
				def.Cycles = 12
			}
		case 2, 3:
			if x == 2 {
				def.Operation = RES
			} else {
				def.Operation = SET
			}
			def.Value = uint8(y)
			def.Dest = tabR[z]
			if def.Dest == IndHL {
				def.Cycles = 15
			}
		}

		PrefixCB[op] = def
	}
}

func buildED() {
	for op := 0; op < 256; op++ {
		x := op >> 6
		y := (op >> 3) & 0x07
		z := op & 0x07
		p := y >> 1
		q := y & 0x01

		// the unused encodings behave as a two byte NOP
		def := Definition{
			OpCode: uint8(op), Operation: NONI,
			Bytes: 2, Cycles: 8, Undocumented: true,
		}

		switch x {
		case 1:
			switch z {
			case 0:
				def = Definition{OpCode: uint8(op), Operation: INR, Source: RegC, Bytes: 2, Cycles: 12}
				if y == 6 {
					// IN (C): input and set flags but store nowhere
					def.Undocumented = true
				} else {
					def.Dest = tabR[y]
				}
			case 1:
				def = Definition{OpCode: uint8(op), Operation: OUTR, Dest: RegC, Bytes: 2, Cycles: 12}
				if y == 6 {
					// OUT (C),0
					def.Undocumented = true
				} else {
					def.Source = tabR[y]
				}
			case 2:
				if q == 0 {
					def = Definition{OpCode: uint8(op), Operation: SBC16, Dest: RegHL, Source: tabRP[p], Bytes: 2, Cycles: 15}
				} else {
					def = Definition{OpCode: uint8(op), Operation: ADC16, Dest: RegHL, Source: tabRP[p], Bytes: 2, Cycles: 15}
				}
			case 3:
				if q == 0 {
					def = Definition{OpCode: uint8(op), Operation: LD16, Dest: IndImm16, Source: tabRP[p], Bytes: 4, Cycles: 20}
				} else {
					def = Definition{OpCode: uint8(op), Operation: LD16, Dest: tabRP[p], Source: IndImm16, Bytes: 4, Cycles: 20}
				}
			case 4:
				def = Definition{OpCode: uint8(op), Operation: NEG, Bytes: 2, Cycles: 8}
				def.Undocumented = y != 0
			case 5:
				if y == 1 {
					def = Definition{OpCode: uint8(op), Operation: RETI, Bytes: 2, Cycles: 14}
				} else {
					def = Definition{OpCode: uint8(op), Operation: RETN, Bytes: 2, Cycles: 14}
					def.Undocumented = y != 0
				}
			case 6:
				def = Definition{OpCode: uint8(op), Operation: IM, Bytes: 2, Cycles: 8}
				def.Value = [8]uint8{0, 0, 1, 2, 0, 0, 1, 2}[y]
				def.Undocumented = y != 0 && y != 2 && y != 3
			case 7:
				switch y {
				case 0:
					def = Definition{OpCode: uint8(op), Operation: LD8, Dest: RegI, Source: RegA, Bytes: 2, Cycles: 9}
				case 1:
					def = Definition{OpCode: uint8(op), Operation: LD8, Dest: RegR, Source: RegA, Bytes: 2, Cycles: 9}
				case 2:
					def = Definition{OpCode: uint8(op), Operation: LDAIR, Dest: RegA, Source: RegI, Bytes: 2, Cycles: 9}
				case 3:
					def = Definition{OpCode: uint8(op), Operation: LDAIR, Dest: RegA, Source: RegR, Bytes: 2, Cycles: 9}
				case 4:
					def = Definition{OpCode: uint8(op), Operation: RRD, Bytes: 2, Cycles: 18}
				case 5:
					def = Definition{OpCode: uint8(op), Operation: RLD, Bytes: 2, Cycles: 18}
				}
			}

		case 2:
			if z <= 3 && y >= 4 {
				bli := [4][4]Operation{
					{LDI, CPI, INI, OUTI},
					{LDD, CPD, IND, OUTD},
					{LDIR, CPIR, INIR, OTIR},
					{LDDR, CPDR, INDR, OTDR},
				}
				def = Definition{OpCode: uint8(op), Operation: bli[y-4][z], Bytes: 2, Cycles: 16}
				if y >= 6 {
					def.AltCycles = 21
				}
			}
		}

		PrefixED[op] = def
	}
}

// substOperand maps an operand to its indexed form. ind is IndIXD or IndIYD
// depending on the table being built.
func substOperand(o Operand, ixy, ixyh, ixyl, ind Operand) Operand {
	switch o {
	case RegHL:
		return ixy
	case RegH:
		return ixyh
	case RegL:
		return ixyl
	case IndHL:
		return ind
	}
	return o
}

// buildIndexed derives the DD or FD table from the unprefixed table. The
// prefix redirects HL to the index register. When the instruction uses
// (HL) only the indirection is redirected, the half registers stay as they
// are; LD H,(IX+d) really does load H.
func buildIndexed(table *[256]Definition, ixy, ixyh, ixyl, ind Operand) {
	for op := 0; op < 256; op++ {
		def := Unprefixed[op]

		if def.Operation == Prefix {
			table[op] = def
			continue
		}

		usesIndHL := def.Dest == IndHL || def.Source == IndHL
		usesHL := def.Dest == RegHL || def.Source == RegHL
		usesHalf := def.Dest == RegH || def.Source == RegH ||
			def.Dest == RegL || def.Source == RegL

		switch {
		case usesIndHL:
			if def.Dest == IndHL {
				def.Dest = ind
			}
			if def.Source == IndHL {
				def.Source = ind
			}
			def.Bytes += 2
			if def.Source == Imm8 {
				def.Cycles += 9
			} else {
				def.Cycles += 12
			}
		case usesHL:
			if def.Dest == RegHL {
				def.Dest = ixy
			}
			if def.Source == RegHL {
				def.Source = ixy
			}
			def.Bytes++
			def.Cycles += 4
		case usesHalf:
			def.Dest = substOperand(def.Dest, ixy, ixyh, ixyl, ind)
			def.Source = substOperand(def.Source, ixy, ixyh, ixyl, ind)
			def.Bytes++
			def.Cycles += 4
			def.Undocumented = true
		default:
			// the prefix has no effect on this opcode beyond the cost of
			// fetching it
			def.Bytes++
			def.Cycles += 4
			if def.AltCycles != 0 {
				def.AltCycles += 4
			}
			def.Undocumented = true
		}

		table[op] = def
	}
}

// buildIndexedCB derives the DD CB or FD CB table. Every opcode operates on
// (IX+d). For the shift/rotate and RES/SET groups the result is also copied
// to the register named by the low three bits, except when those bits name
// (HL). Only the (HL) column is documented.
func buildIndexedCB(table *[256]Definition, ind Operand) {
	for op := 0; op < 256; op++ {
		x := op >> 6
		y := (op >> 3) & 0x07
		z := op & 0x07

		def := Definition{OpCode: uint8(op), Dest: ind, Bytes: 4, Cycles: 23}
		def.Undocumented = z != 6

		switch x {
		case 0:
			def.Operation = tabROT[y]
			if def.Operation == SLL {
				def.Undocumented = true
			}
		case 1:
			def.Operation = BIT
			def.Value = uint8(y)
			def.Cycles = 20
		case 2:
			def.Operation = RES
			def.Value = uint8(y)
		case 3:
			def.Operation = SET
			def.Value = uint8(y)
		}

		// the register copy target
		if x != 1 && z != 6 {
			def.Source = tabR[z]
		}

		table[op] = def
	}
}
