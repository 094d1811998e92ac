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

import (
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/clocks"
)

// decode converts a tape image into the pulse stream. speed only matters
// for CAS images, the other formats carry their own timing.
func decode(data []byte, format Format, speed int) ([]Pulse, error) {
	switch format {
	case FormatCAS:
		return decodeCAS(data, speed), nil
	case FormatCPT:
		return decodeCPT(data)
	case FormatWAV:
		return decodeWAV(data)
	case FormatMP3:
		return decodeMP3(data)
	}
	return nil, curated.Errorf("cassette: unknown format")
}

// encode converts the pulse stream back into a tape image.
func encode(pulses []Pulse, format Format) ([]byte, error) {
	switch format {
	case FormatCAS:
		return encodeCAS(pulses), nil
	case FormatCPT:
		return encodeCPT(pulses), nil
	case FormatWAV:
		return encodeWAV(pulses)
	case FormatMP3:
		return nil, curated.Errorf(ReadOnlyFormat, FormatMP3)
	}
	return nil, curated.Errorf("cassette: unknown format")
}

// the CAS and CPT formats keep time in microseconds but the pulse stream
// keeps time in CPU cycles. the conversion is not integral so the rounding
// error is carried from one conversion to the next, keeping the stream in
// step with the original timing over any distance

type usToCycles struct {
	roundoff float32
}

func (c *usToCycles) convert(us uint32) uint32 {
	ts := float32(us)*clocks.CPUMhz - c.roundoff
	d := uint32(ts + 0.5)
	c.roundoff = float32(d) - ts
	return d
}

type cyclesToUs struct {
	roundoff float32
}

func (c *cyclesToUs) convert(cycles uint32) uint32 {
	us := float32(cycles)/clocks.CPUMhz - c.roundoff
	d := uint32(us + 0.5)
	c.roundoff = float32(d) - us
	return d
}
