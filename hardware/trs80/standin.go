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

package trs80

// the message the stand-in ROM copies to the top of the screen
const standInMessage = "GOPHER80: NO ROM IMAGE LOADED"

// StandInROM builds a tiny ROM used when no real ROM image has been
// supplied. It writes a message to the video RAM and spins, which is enough
// to prove the machine works end to end.
func StandInROM() []uint8 {
	msg := []uint8(standInMessage)

	rom := []uint8{
		0xf3,             // DI
		0x31, 0xff, 0x4f, // LD SP,&4FFF
		0x21, 0x11, 0x00, // LD HL,&0011 (the message below)
		0x11, 0x00, 0x3c, // LD DE,&3C00
		0x01, uint8(len(msg)), 0x00, // LD BC,length
		0xed, 0xb0, // LDIR
		0x18, 0xfe, // JR -2
	}

	return append(rom, msg...)
}
