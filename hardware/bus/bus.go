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

// Package bus defines the interfaces between the CPU and the rest of the
// machine. Defined in their own package to avoid an import cycle between the
// z80 and memory packages.
package bus

// CPUBus is the memory seen by the CPU. Neither function can fail: the
// entire 16-bit address space is always addressable. Reads of unmapped
// space return a fill value and writes to ROM or unmapped space are
// discarded, as on the real bus.
type CPUBus interface {
	Read(addr uint16) uint8
	Write(addr uint16, data uint8)
}

// PortBus is the I/O port space seen by the CPU. Port devices on the Model I
// are timing-sensitive so every access carries the CPU's cycle ledger at the
// time of the access.
type PortBus interface {
	PortRead(port uint8, timestamp uint64) uint8
	PortWrite(port uint8, data uint8, timestamp uint64)
}
