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

// Package keyboard implements the contact matrix of the keyboard. The keys
// are wired in an 8x8 grid which the running program scans through a 256
// byte window of the address space; the low byte of the address selects
// which rows take part in the read and the returned byte is the OR of the
// selected rows.
//
// The matrix holds instantaneous state only. There is no debouncing and no
// queueing; a key is either held or it isn't. Mapping from host keycodes to
// matrix positions is the business of whatever is driving the emulation.
package keyboard

// MemSize is the span of the keyboard in the address space. Much larger
// than 64 keys would suggest because of how the row select lines are wired
// to the address bus.
const MemSize = 0x0100

// Matrix is the 8x8 key grid.
type Matrix struct {
	rows [8]uint8
}

// NewMatrix is the preferred method of initialisation for the Matrix type.
// All keys start released.
func NewMatrix() *Matrix {
	return &Matrix{}
}

// Reset releases every key.
func (mat *Matrix) Reset() {
	mat.rows = [8]uint8{}
}

// SetKey marks a matrix position as held. Out of range positions are
// ignored, there is nothing there to press.
func (mat *Matrix) SetKey(row int, col int) {
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return
	}
	mat.rows[row] |= 1 << col
}

// ClearKey marks a matrix position as released.
func (mat *Matrix) ClearKey(row int, col int) {
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return
	}
	mat.rows[row] &^= 1 << col
}

// ReadRow returns the held state of a single row.
func (mat *Matrix) ReadRow(row int) uint8 {
	if row < 0 || row > 7 {
		return 0
	}
	return mat.rows[row]
}

// ReadAddress services a CPU read of the keyboard window. Each set bit in
// the low byte of the address selects a row; the result is the OR of every
// selected row.
func (mat *Matrix) ReadAddress(addr uint16) uint8 {
	sel := uint8(addr)

	var v uint8
	for r := 0; r < 8; r++ {
		if sel&(1<<r) != 0 {
			v |= mat.rows[r]
		}
	}
	return v
}
