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

import (
	"fmt"
	"strings"
)

// Operation is the behavioural class of an instruction. The z80 package
// switches on this value.
type Operation int

// List of operation classes. The block instructions each get their own
// class because their flag behaviour differs in detail.
const (
	Unknown Operation = iota

	// a prefix byte leading to another table. never executed as an
	// instruction
	Prefix

	NOP
	LD8
	LD16
	PUSH
	POP
	EXDEHL
	EXAF
	EXX
	EXSP

	ADD8
	ADC8
	SUB8
	SBC8
	AND
	XOR
	OR
	CP
	INC8
	DEC8

	ADD16
	ADC16
	SBC16
	INC16
	DEC16

	DAA
	CPL
	NEG
	CCF
	SCF
	HALT
	DI
	EI
	IM

	RLCA
	RLA
	RRCA
	RRA

	RLC
	RRC
	RL
	RR
	SLA
	SRA
	SLL
	SRL
	BIT
	RES
	SET

	JP
	JR
	DJNZ
	CALL
	RET
	RETN
	RETI
	RST

	INA  // IN A,(n)
	INR  // IN r,(C)
	OUTA // OUT (n),A
	OUTR // OUT (C),r

	LDAIR // LD A,I and LD A,R (the flag affecting loads)
	RLD
	RRD

	LDI
	LDIR
	LDD
	LDDR
	CPI
	CPIR
	CPD
	CPDR
	INI
	INIR
	IND
	INDR
	OUTI
	OTIR
	OUTD
	OTDR

	// the unused ED encodings. execute as an 8 T-state no-op
	NONI
)

func (op Operation) String() string {
	if s, ok := operationNames[op]; ok {
		return s
	}
	return "??"
}

var operationNames = map[Operation]string{
	Prefix: "PREFIX",
	NOP:    "NOP", LD8: "LD", LD16: "LD", PUSH: "PUSH", POP: "POP",
	EXDEHL: "EX", EXAF: "EX", EXX: "EXX", EXSP: "EX",
	ADD8: "ADD", ADC8: "ADC", SUB8: "SUB", SBC8: "SBC",
	AND: "AND", XOR: "XOR", OR: "OR", CP: "CP", INC8: "INC", DEC8: "DEC",
	ADD16: "ADD", ADC16: "ADC", SBC16: "SBC", INC16: "INC", DEC16: "DEC",
	DAA: "DAA", CPL: "CPL", NEG: "NEG", CCF: "CCF", SCF: "SCF",
	HALT: "HALT", DI: "DI", EI: "EI", IM: "IM",
	RLCA: "RLCA", RLA: "RLA", RRCA: "RRCA", RRA: "RRA",
	RLC: "RLC", RRC: "RRC", RL: "RL", RR: "RR",
	SLA: "SLA", SRA: "SRA", SLL: "SLL", SRL: "SRL",
	BIT: "BIT", RES: "RES", SET: "SET",
	JP: "JP", JR: "JR", DJNZ: "DJNZ", CALL: "CALL",
	RET: "RET", RETN: "RETN", RETI: "RETI", RST: "RST",
	INA: "IN", INR: "IN", OUTA: "OUT", OUTR: "OUT",
	LDAIR: "LD", RLD: "RLD", RRD: "RRD",
	LDI: "LDI", LDIR: "LDIR", LDD: "LDD", LDDR: "LDDR",
	CPI: "CPI", CPIR: "CPIR", CPD: "CPD", CPDR: "CPDR",
	INI: "INI", INIR: "INIR", IND: "IND", INDR: "INDR",
	OUTI: "OUTI", OTIR: "OTIR", OUTD: "OUTD", OTDR: "OTDR",
	NONI: "NONI",
}

// Operand specifies where an instruction's value comes from or goes to.
type Operand int

// List of operand specifiers.
const (
	NoOperand Operand = iota

	RegA
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL
	RegIXH
	RegIXL
	RegIYH
	RegIYL
	RegI
	RegR

	RegBC
	RegDE
	RegHL
	RegSP
	RegAF
	RegIX
	RegIY

	IndBC  // (BC)
	IndDE  // (DE)
	IndHL  // (HL)
	IndIXD // (IX+d)
	IndIYD // (IY+d)

	Imm8     // n
	Imm16    // nn
	IndImm16 // (nn)
)

func (o Operand) String() string {
	switch o {
	case NoOperand:
		return ""
	case RegA:
		return "A"
	case RegB:
		return "B"
	case RegC:
		return "C"
	case RegD:
		return "D"
	case RegE:
		return "E"
	case RegH:
		return "H"
	case RegL:
		return "L"
	case RegIXH:
		return "IXH"
	case RegIXL:
		return "IXL"
	case RegIYH:
		return "IYH"
	case RegIYL:
		return "IYL"
	case RegI:
		return "I"
	case RegR:
		return "R"
	case RegBC:
		return "BC"
	case RegDE:
		return "DE"
	case RegHL:
		return "HL"
	case RegSP:
		return "SP"
	case RegAF:
		return "AF"
	case RegIX:
		return "IX"
	case RegIY:
		return "IY"
	case IndBC:
		return "(BC)"
	case IndDE:
		return "(DE)"
	case IndHL:
		return "(HL)"
	case IndIXD:
		return "(IX+d)"
	case IndIYD:
		return "(IY+d)"
	case Imm8:
		return "n"
	case Imm16:
		return "nn"
	case IndImm16:
		return "(nn)"
	}
	return "??"
}

// Condition is the flag test attached to the conditional jump, call and
// return instructions.
type Condition int

// List of conditions. CondNone means the instruction is unconditional.
const (
	CondNone Condition = iota
	CondNZ
	CondZ
	CondNC
	CondC
	CondPO
	CondPE
	CondP
	CondM
)

func (c Condition) String() string {
	switch c {
	case CondNZ:
		return "NZ"
	case CondZ:
		return "Z"
	case CondNC:
		return "NC"
	case CondC:
		return "C"
	case CondPO:
		return "PO"
	case CondPE:
		return "PE"
	case CondP:
		return "P"
	case CondM:
		return "M"
	}
	return ""
}

// Definition describes one opcode in one of the instruction tables.
type Definition struct {
	// the final opcode byte, after any prefix
	OpCode uint8

	Operation Operation
	Dest      Operand
	Source    Operand
	Condition Condition

	// bit number for BIT/RES/SET, restart address for RST, mode for IM
	Value uint8

	// total instruction length in bytes, including prefix and operand bytes
	Bytes int

	// T-states consumed. AltCycles is the cost when a conditional branch is
	// taken or a block instruction repeats; zero when not applicable
	Cycles    int
	AltCycles int

	// opcode is not part of the documented instruction set
	Undocumented bool
}

// IsConditional returns true if the definition's cycle cost depends on a
// flag test or a repeat decision.
func (def Definition) IsConditional() bool {
	return def.AltCycles != 0
}

func (def Definition) String() string {
	s := strings.Builder{}
	s.WriteString(def.Operation.String())

	switch def.Operation {
	case BIT, RES, SET:
		s.WriteString(fmt.Sprintf(" %d", def.Value))
		if def.Dest != NoOperand {
			s.WriteString(fmt.Sprintf(",%s", def.Dest))
		}
		return s.String()
	case RST:
		s.WriteString(fmt.Sprintf(" &%02x", def.Value))
		return s.String()
	case IM:
		s.WriteString(fmt.Sprintf(" %d", def.Value))
		return s.String()
	}

	if def.Condition != CondNone {
		s.WriteString(fmt.Sprintf(" %s", def.Condition))
		if def.Dest != NoOperand || def.Source != NoOperand {
			s.WriteString(",")
		}
	} else if def.Dest != NoOperand || def.Source != NoOperand {
		s.WriteString(" ")
	}

	if def.Dest != NoOperand {
		s.WriteString(def.Dest.String())
		if def.Source != NoOperand {
			s.WriteString(",")
		}
	}
	if def.Source != NoOperand {
		s.WriteString(def.Source.String())
	}

	return s.String()
}
