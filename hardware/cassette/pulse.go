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

import "strings"

// The cassette output circuit produces three voltage levels from the two
// low bits of the output port.
const (
	LevelNeutral = 0
	LevelHigh    = 1
	LevelLow     = 2
)

// Pulse is one transition of the cassette signal. After Duration CPU
// cycles at the previous level, the line assumes Level.
type Pulse struct {
	Level    uint8
	Duration uint32
}

// Format identifies the on-disk encoding of a tape image.
type Format int

// List of tape image formats.
const (
	FormatCAS Format = iota
	FormatCPT
	FormatWAV
	FormatMP3
)

func (f Format) String() string {
	switch f {
	case FormatCAS:
		return "cas"
	case FormatCPT:
		return "cpt"
	case FormatWAV:
		return "wav"
	case FormatMP3:
		return "mp3"
	}
	return "unknown"
}

// ParseFormat converts a format name, as used by the control surface, to a
// Format value. The boolean indicates success.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "cas":
		return FormatCAS, true
	case "cpt":
		return FormatCPT, true
	case "wav":
		return FormatWAV, true
	case "mp3":
		return FormatMP3, true
	}
	return FormatCAS, false
}
