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

package console

import (
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// terminal wraps "github.com/pkg/term/termios" with just the two modes the
// console needs: normal line-at-a-time input and cbreak for the live
// keyboard mode.
type terminal struct {
	input *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

func (tm *terminal) initialise(input *os.File) error {
	tm.input = input

	if err := termios.Tcgetattr(input.Fd(), &tm.canAttr); err != nil {
		return err
	}
	tm.cbreakAttr = tm.canAttr
	termios.Cfmakecbreak(&tm.cbreakAttr)

	return nil
}

// canonicalMode puts the terminal into normal, everyday canonical mode.
func (tm *terminal) canonicalMode() {
	_ = termios.Tcsetattr(tm.input.Fd(), termios.TCIFLUSH, &tm.canAttr)
}

// cbreakMode puts the terminal into cbreak mode, one keypress at a time.
func (tm *terminal) cbreakMode() {
	_ = termios.Tcsetattr(tm.input.Fd(), termios.TCIFLUSH, &tm.cbreakAttr)
}
