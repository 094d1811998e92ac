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

package cassette

import "github.com/jetsetilly/gopher80/curated"

// A CPT image is the pulse train itself. Each record is normally two bytes
// in little-endian order, packing the level in the low two bits and the
// microsecond delta in the remaining fourteen. Deltas too large for that
// are stored as an 0xffff escape followed by a level byte and a four byte
// little-endian delta.

const truncatedCPT = "truncated pulse record at byte %d"

func decodeCPT(data []byte) ([]Pulse, error) {
	conv := usToCycles{}
	pulses := make([]Pulse, 0, len(data)/2)

	i := 0
	for i < len(data) {
		if i+2 > len(data) {
			return nil, curated.Errorf(truncatedCPT, i)
		}

		code := uint16(data[i]) | uint16(data[i+1])<<8
		i += 2

		var level uint8
		var deltaUs uint32

		if code == 0xffff {
			if i+5 > len(data) {
				return nil, curated.Errorf(truncatedCPT, i)
			}
			level = data[i]
			deltaUs = uint32(data[i+1]) | uint32(data[i+2])<<8 |
				uint32(data[i+3])<<16 | uint32(data[i+4])<<24
			i += 5
		} else {
			level = uint8(code & 0x03)
			deltaUs = uint32(code >> 2)
		}

		pulses = append(pulses, Pulse{
			Level:    level,
			Duration: conv.convert(deltaUs),
		})
	}

	return pulses, nil
}

func encodeCPT(pulses []Pulse) []byte {
	conv := cyclesToUs{}
	out := make([]byte, 0, len(pulses)*2)

	for _, p := range pulses {
		deltaUs := conv.convert(p.Duration)

		if deltaUs < 0x3fff {
			code := uint32(p.Level) | deltaUs<<2
			out = append(out, uint8(code), uint8(code>>8))
		} else {
			out = append(out, 0xff, 0xff, p.Level,
				uint8(deltaUs), uint8(deltaUs>>8),
				uint8(deltaUs>>16), uint8(deltaUs>>24))
		}
	}

	return out
}
