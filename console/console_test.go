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
	"io"
	"testing"

	"github.com/jetsetilly/gopher80/emulation"
	"github.com/jetsetilly/gopher80/hardware/keyboard"
	"github.com/jetsetilly/gopher80/hardware/trs80"
	"github.com/jetsetilly/gopher80/test"
)

func TestCharKey(t *testing.T) {
	name, shifted, ok := charKey('!')
	test.ExpectedSuccess(t, ok)
	test.Equate(t, name, "1")
	test.ExpectedSuccess(t, shifted)

	name, shifted, ok = charKey('A')
	test.ExpectedSuccess(t, ok)
	test.Equate(t, name, "a")
	test.ExpectedFailure(t, shifted)

	name, _, ok = charKey('@')
	test.ExpectedSuccess(t, ok)
	test.Equate(t, name, "@")

	name, shifted, ok = charKey('?')
	test.ExpectedSuccess(t, ok)
	test.Equate(t, name, "/")
	test.ExpectedSuccess(t, shifted)

	_, _, ok = charKey('~')
	test.ExpectedFailure(t, ok)
}

func newTestConsole() (*Console, *emulation.Emulation) {
	machine := trs80.NewTRS80(nil, 0x4000, false)
	emu := emulation.NewEmulation(machine, nil)
	emu.SetPacing(false)

	con := &Console{
		emu:    emu,
		output: io.Discard,
		held:   make(map[keyboard.Position]int),
	}
	return con, emu
}

func TestCrossWiredHold(t *testing.T) {
	con, emu := newTestConsole()

	go func() {
		_ = emu.Run()
	}()

	// both shift keys share a cell. releasing one of them must not release
	// the cell while the other is down
	test.DemandSuccess(t, con.press("left-shift", true))
	test.DemandSuccess(t, con.press("right-shift", true))
	test.DemandSuccess(t, con.press("left-shift", false))

	_, err := con.do(emulation.Command{Op: emulation.OpQuit})
	test.DemandSuccess(t, err)
	con.drain()

	test.Equate(t, emu.Machine().Mem.Keyboard.ReadRow(7), 0b00000001)
}

func TestCrossWiredRelease(t *testing.T) {
	con, emu := newTestConsole()

	go func() {
		_ = emu.Run()
	}()

	test.DemandSuccess(t, con.press("left-shift", true))
	test.DemandSuccess(t, con.press("right-shift", true))
	test.DemandSuccess(t, con.press("left-shift", false))
	test.DemandSuccess(t, con.press("right-shift", false))

	_, err := con.do(emulation.Command{Op: emulation.OpQuit})
	test.DemandSuccess(t, err)
	con.drain()

	test.Equate(t, emu.Machine().Mem.Keyboard.ReadRow(7), 0)
}
