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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Errors are created with the Errorf() function. Like the Errorf() function
// in the fmt package it takes a formatting pattern and placeholder values,
// but the pattern also acts as the error's identity: the Is() function
// reports whether an error was created from a specific pattern and the Has()
// function reports whether a pattern occurs anywhere in a chain of wrapped
// curated errors.
//
//	e := curated.Errorf("cassette: %v: file truncated", path)
//
//	if curated.Is(e, "cassette: %v: file truncated") {
//		...
//	}
//
// The Error() function normalises the message chain, removing duplicate
// adjacent parts. This means functions can wrap errors on the way up the
// call stack without worrying about stuttering messages.
package curated
