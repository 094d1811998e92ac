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

package keyboard

import "strings"

// Position is a cell in the key matrix.
type Position struct {
	Row int
	Col int
}

// positions of the keys by their keycap legend. several physical keys cross
// the same wires and so share a cell: both shift keys, and every key on the
// optional number pad doubles a key on the main board.
var positions = map[string]Position{
	"@": {0, 0},
	"a": {0, 1}, "b": {0, 2}, "c": {0, 3}, "d": {0, 4},
	"e": {0, 5}, "f": {0, 6}, "g": {0, 7},
	"h": {1, 0}, "i": {1, 1}, "j": {1, 2}, "k": {1, 3},
	"l": {1, 4}, "m": {1, 5}, "n": {1, 6}, "o": {1, 7},
	"p": {2, 0}, "q": {2, 1}, "r": {2, 2}, "s": {2, 3},
	"t": {2, 4}, "u": {2, 5}, "v": {2, 6}, "w": {2, 7},
	"x": {3, 0}, "y": {3, 1}, "z": {3, 2},
	"0": {4, 0}, "1": {4, 1}, "2": {4, 2}, "3": {4, 3},
	"4": {4, 4}, "5": {4, 5}, "6": {4, 6}, "7": {4, 7},
	"8": {5, 0}, "9": {5, 1},
	":": {5, 2}, ";": {5, 3}, ",": {5, 4},
	"-": {5, 5}, ".": {5, 6}, "/": {5, 7},
	"enter": {6, 0}, "clear": {6, 1}, "break": {6, 2},
	"up": {6, 3}, "down": {6, 4}, "left": {6, 5}, "right": {6, 6},
	"space": {6, 7},
	"shift": {7, 0},

	// cross-wired duplicates
	"left-shift":  {7, 0},
	"right-shift": {7, 0},
	"kp-0":        {4, 0},
	"kp-1":        {4, 1},
	"kp-2":        {4, 2},
	"kp-3":        {4, 3},
	"kp-4":        {4, 4},
	"kp-5":        {4, 5},
	"kp-6":        {4, 6},
	"kp-7":        {4, 7},
	"kp-8":        {5, 0},
	"kp-9":        {5, 1},
	"kp-enter":    {6, 0},
	"kp-period":   {5, 6},
	"backspace":   {6, 5},
}

// Lookup finds the matrix position of a key by its keycap legend. Legends
// are case-insensitive; " " is accepted for the space bar.
func Lookup(key string) (Position, bool) {
	if key == " " {
		key = "space"
	}
	p, ok := positions[strings.ToLower(key)]
	return p, ok
}

// Legends returns the recognised keycap legends, in no particular order.
func Legends() []string {
	l := make([]string, 0, len(positions))
	for k := range positions {
		l = append(l, k)
	}
	return l
}
