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

package emulation

import "time"

// frameTimer paces the emulation loop against the wall clock, one tick per
// emulated frame. The loop is free to run ahead inside a frame; the timer
// sleeps away whatever is left of the frame interval.
type frameTimer struct {
	interval time.Duration
	last     time.Time

	// time the emulation is behind the wall clock. a machine that cannot
	// keep up accrues debt which later frames work off; the cap stops a
	// long stall turning into a runaway catch-up sprint
	debt time.Duration
}

const maxTimerDebt = time.Second

func newFrameTimer(frameRate int) *frameTimer {
	return &frameTimer{
		interval: time.Second / time.Duration(frameRate),
		last:     time.Now(),
	}
}

// reset the timer reference point. used when the emulation has been paused,
// which is time the machine should not try to make up.
func (tmr *frameTimer) reset() {
	tmr.last = time.Now()
	tmr.debt = 0
}

// wait until the wall clock catches up with the emulated frame.
func (tmr *frameTimer) wait() {
	now := time.Now()
	elapsed := now.Sub(tmr.last)
	tmr.last = now

	if elapsed < tmr.interval {
		slack := tmr.interval - elapsed

		// pay off debt before sleeping
		if tmr.debt >= slack {
			tmr.debt -= slack
			return
		}
		slack -= tmr.debt
		tmr.debt = 0

		time.Sleep(slack)
		tmr.last = tmr.last.Add(slack)
		return
	}

	tmr.debt += elapsed - tmr.interval
	if tmr.debt > maxTimerDebt {
		tmr.debt = maxTimerDebt
	}
}
