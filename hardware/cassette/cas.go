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

import "github.com/jetsetilly/gopher80/hardware/clocks"

// A CAS image stores the recovered bit stream. Decoding synthesises the
// pulse train the cassette interface would produce for each bit: a clock
// pulse, then at 500 baud a data pulse for a one bit or silence for a zero
// bit. The shapes and the two timing kludges (the stretch after the last
// bit of a byte and the long pause after the 0xA5 sync byte, giving the
// BASIC CLEAR routine time to run) follow the xtrs lineage.

type pulseShape struct {
	deltaUs int32
	level   uint8
}

var shape500Zero = []pulseShape{
	{0, 1}, {128, 2}, {128, 0}, {1757, 0},
}

var shape500One = []pulseShape{
	{0, 1}, {128, 2}, {128, 0}, {748, 1}, {128, 2}, {128, 0}, {748, 0},
}

var shape250Zero = []pulseShape{
	{0, 1}, {125, 2}, {125, 0}, {3568, 0},
}

var shape250One = []pulseShape{
	{0, 1}, {128, 2}, {128, 0}, {1673, 1}, {128, 2}, {128, 0}, {1673, 0},
}

func decodeCAS(data []byte, speed int) []Pulse {
	conv := usToCycles{}
	pulses := make([]Pulse, 0, len(data)*8*5)

	for _, b := range data {
		for bit := 7; bit >= 0; bit-- {
			one := (b>>bit)&0x01 != 0

			var shape []pulseShape
			switch {
			case speed == 250 && one:
				shape = shape250One
			case speed == 250:
				shape = shape250Zero
			case one:
				shape = shape500One
			default:
				shape = shape500Zero
			}

			for i, ps := range shape {
				us := ps.deltaUs

				if speed == 500 {
					if !one && i == 3 && bit == 0 {
						// the gap after a byte's final zero bit is longer
						us += 114
					}
					if i == len(shape)-1 && b == 0xa5 {
						us += 1034
					}
				}

				pulses = append(pulses, Pulse{
					Level:    ps.level,
					Duration: conv.convert(uint32(us)),
				})
			}
		}
	}

	return pulses
}

// states for the encoding machine. the numbering leaves room for the 1500
// baud states of later models
const (
	stInitial   = 0
	st500GotClk = 1
	st500GotDat = 2
	st250       = 4
	st250GotClk = 5
	st250GotDat = 6
)

// microsecond thresholds separating a data pulse from the next clock
const (
	thresh500 = 1250.0
	thresh250 = 2500.0
)

// encodeCAS recovers the bit stream from a pulse train. Bits are sampled
// at the rising edges: a rising edge soon after the clock is a data pulse
// (a one bit), a late one is the next bit's clock (so the bit was zero). A
// very late one means the tape is at 250 baud.
func encodeCAS(pulses []Pulse) []byte {
	out := make([]byte, 0, len(pulses)/40)

	state := stInitial
	latch := uint8(LevelNeutral)
	var acc uint32

	var b uint8
	bitNum := 0

	for _, p := range pulses {
		acc += p.Duration
		if p.Level == latch {
			// not a transition. the time joins the next one
			continue
		}

		ddeltaUs := float32(acc) / clocks.CPUMhz
		acc = 0

		sample := uint8(2)
		switch state {
		case stInitial:
			if latch == 2 && p.Level == 0 {
				// end of the first pulse. assume it was a clock
				state = st500GotClk
			}
		case st500GotClk:
			if latch == 0 && p.Level == 1 {
				if ddeltaUs > thresh250 {
					sample = 0
					state = st250
				} else if ddeltaUs > thresh500 {
					sample = 0
					state = stInitial
				} else {
					sample = 1
					state = st500GotDat
				}
			}
		case st500GotDat:
			if latch == 2 && p.Level == 0 {
				state = stInitial
			}
		case st250:
			if latch == 2 && p.Level == 0 {
				state = st250GotClk
			}
		case st250GotClk:
			if latch == 0 && p.Level == 1 {
				if ddeltaUs > thresh250 {
					sample = 0
					state = st250
				} else {
					sample = 1
					state = st250GotDat
				}
			}
		case st250GotDat:
			if latch == 2 && p.Level == 0 {
				state = st250
			}
		}

		if sample != 2 {
			bitNum--
			if bitNum < 0 {
				bitNum = 7
			}
			b |= sample << bitNum
			if bitNum == 0 {
				out = append(out, b)
				b = 0
			}
		}

		latch = p.Level
	}

	// a partial final byte is padded with zero bits
	if bitNum != 0 {
		out = append(out, b)
	}

	return out
}
