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

// Package instructions defines the Z80 instruction set as data: one 256
// entry table for the unprefixed opcodes and one for each of the CB, ED, DD
// and FD prefixes. The doubly-prefixed DD CB and FD CB groups get their own
// derived tables.
//
// Each table entry is a Definition: the operation class, the operand
// specifiers, the instruction length and the T-state cost. The z80 package
// executes instructions by switching on the operation class; everything
// about an individual opcode that isn't behavioural lives here, where it
// can be inspected and tested entry by entry.
//
// There are no illegal encodings. Opcodes that Zilog left undocumented are
// defined with the behaviour established by the community reference ("The
// Undocumented Z80 Documented", Sean Young) and are marked with the
// Undocumented field.
//
// The tables are built programmatically from the bit-field structure of the
// instruction set (the x/y/z/p/q decomposition) rather than written out
// longhand. The builder runs once at package initialisation.
package instructions
