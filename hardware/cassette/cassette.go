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
	"os"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/logger"
)

// error patterns for the cassette package
const (
	LoadError      = "cassette: load %v: %v"
	SaveError      = "cassette: save %v: %v"
	MotorRunning   = "cassette: motor running: refusing to %v"
	NotAttached    = "cassette: no tape attached"
	ReadOnlyFormat = "cassette: %v images cannot be written"
	InvalidSpeed   = "cassette: invalid speed %d (want 500 or 250)"
)

// mode of the recorder. playback and recording are only distinguishable
// once the running program shows its hand.
type mode int

const (
	modeAudioOut mode = iota
	modeUncertain
	modePlayback
	modeRecording
)

// Recorder is the cassette deck. It is owned by the emulation goroutine
// and must never be touched from outside it.
type Recorder struct {
	attached bool
	path     string
	format   Format
	speed    int

	pulses []Pulse
	cursor int

	// cursor position when the motor last started. a recording overwrites
	// the tape from here
	backup int

	// pulse stream differs from the file on disk
	dirty bool

	mode  mode
	motor bool

	// port latches. a write access always clears the input latch
	inLatch   bool
	outLatch  uint8
	motorReq  bool
	readFlag  bool
	writeFlag bool

	// cycles since the last signal transition
	cpuDelta uint32
	latchLvl uint8
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. The deck starts empty at 500 baud.
func NewRecorder() *Recorder {
	return &Recorder{speed: 500}
}

// Attach loads a tape image, decoding it into the pulse stream. A file
// that does not exist yet is created empty, the way a blank tape would be
// put in the deck. On failure the previously attached tape, if any, is
// untouched.
func (rec *Recorder) Attach(path string, format Format) error {
	if rec.motor {
		return curated.Errorf(MotorRunning, "attach")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return curated.Errorf(LoadError, path, err)
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			return curated.Errorf(LoadError, path, err)
		}
		logger.Logf("cassette", "created blank tape %s", path)
		data = nil
	}

	pulses, err := decode(data, format, rec.speed)
	if err != nil {
		return curated.Errorf(LoadError, path, err)
	}

	if err := rec.Detach(); err != nil {
		return err
	}

	rec.attached = true
	rec.path = path
	rec.format = format
	rec.pulses = pulses
	rec.cursor = 0
	rec.backup = 0
	rec.dirty = false

	logger.Logf("cassette", "attached %s (%s, %d pulses)", path, format, len(pulses))
	return nil
}

// Detach flushes any unsaved recording and removes the tape from the deck.
// Detaching an empty deck is not an error.
func (rec *Recorder) Detach() error {
	if rec.motor {
		return curated.Errorf(MotorRunning, "detach")
	}
	if !rec.attached {
		return nil
	}
	if err := rec.Flush(); err != nil {
		return err
	}

	logger.Logf("cassette", "detached %s", rec.path)
	rec.attached = false
	rec.path = ""
	rec.pulses = nil
	rec.cursor = 0
	rec.backup = 0
	rec.dirty = false
	return nil
}

// Flush writes the pulse stream back to disk if it has changed since it
// was loaded. Called on motor stop, detach and shutdown.
func (rec *Recorder) Flush() error {
	if !rec.attached || !rec.dirty {
		return nil
	}

	data, err := encode(rec.pulses, rec.format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(rec.path, data, 0644); err != nil {
		return curated.Errorf(SaveError, rec.path, err)
	}

	rec.dirty = false
	logger.Logf("cassette", "saved %s (%d bytes)", rec.path, len(data))
	return nil
}

// SeekPulse repositions the tape. Offsets outside the pulse stream clamp
// to the nearest end.
func (rec *Recorder) SeekPulse(offset int) error {
	if rec.motor {
		return curated.Errorf(MotorRunning, "seek")
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(rec.pulses) {
		offset = len(rec.pulses)
	}
	rec.cursor = offset
	return nil
}

// Rewind returns the tape to the beginning.
func (rec *Recorder) Rewind() error {
	return rec.SeekPulse(0)
}

// Erase empties the pulse stream and rewrites the image file empty.
func (rec *Recorder) Erase() error {
	if rec.motor {
		return curated.Errorf(MotorRunning, "erase")
	}
	if !rec.attached {
		return curated.Errorf(NotAttached)
	}

	rec.pulses = rec.pulses[:0]
	rec.cursor = 0
	rec.dirty = false
	if err := os.WriteFile(rec.path, nil, 0644); err != nil {
		return curated.Errorf(SaveError, rec.path, err)
	}

	logger.Log("cassette", "tape erased")
	return nil
}

// SetSpeed selects the baud rate used to interpret CAS images. The change
// applies at the next attach.
func (rec *Recorder) SetSpeed(speed int) error {
	if speed != 500 && speed != 250 {
		return curated.Errorf(InvalidSpeed, speed)
	}
	rec.speed = speed
	return nil
}

// accessors for session persistence

func (rec *Recorder) IsAttached() bool {
	return rec.attached
}

func (rec *Recorder) Path() string {
	return rec.path
}

func (rec *Recorder) Format() Format {
	return rec.format
}

func (rec *Recorder) Speed() int {
	return rec.speed
}

// Position returns the pulse cursor.
func (rec *Recorder) Position() int {
	return rec.cursor
}

// Len returns the length of the pulse stream.
func (rec *Recorder) Len() int {
	return len(rec.pulses)
}

func (rec *Recorder) Motor() bool {
	return rec.motor
}

// PortWrite handles a CPU write to the cassette port. Bits 0 and 1 are the
// output level, bit 2 the motor relay. The input latch is cleared by any
// write access.
func (rec *Recorder) PortWrite(data uint8) {
	rec.motorReq = data&0b00000100 != 0
	rec.outLatch = data & 0x03
	rec.inLatch = false
	rec.writeFlag = true
}

// PortRead handles a CPU read of the cassette port. Bit 7 is the input
// latch, the remaining bits float high.
func (rec *Recorder) PortRead() uint8 {
	rec.readFlag = true
	if rec.inLatch {
		return 0b11111111
	}
	return 0b01111111
}

// Tick advances the tape by the given number of CPU cycles and acts on any
// port access since the previous tick. Called once per executed
// instruction.
func (rec *Recorder) Tick(cycles uint32) {
	if rec.motor {
		rec.cpuDelta += cycles
	}

	if rec.readFlag {
		// the program is polling the input latch, so the motor must be
		// running for playback
		if rec.motor && rec.mode == modeUncertain {
			rec.mode = modePlayback
			logger.Log("cassette", "playback started")
		}
		rec.readFlag = false
	} else if rec.writeFlag {
		lvl := rec.outLatch
		rec.updateMotor(rec.motorReq)

		if rec.motor {
			if rec.mode == modeUncertain && lvl != rec.latchLvl {
				// the program is driving the output, so this is a
				// recording. overwrite from where the motor started
				rec.cursor = rec.backup
				rec.pulses = rec.pulses[:rec.cursor]
				rec.mode = modeRecording
				rec.dirty = true
				logger.Logf("cassette", "recording started at pulse %d", rec.cursor)
			}
			if rec.mode == modeRecording {
				rec.transitionOut(lvl)
			}
		}
		rec.writeFlag = false
	}

	if rec.motor && (rec.mode == modePlayback || rec.mode == modeUncertain) {
		for rec.cursor < len(rec.pulses) && rec.cpuDelta >= rec.pulses[rec.cursor].Duration {
			p := rec.pulses[rec.cursor]

			// the input circuit latches on any excursion from neutral
			if p.Level != LevelNeutral && rec.latchLvl == LevelNeutral {
				rec.inLatch = true
			}

			rec.cpuDelta -= p.Duration
			rec.latchLvl = p.Level
			rec.cursor++
		}
	}
}

// transitionOut appends a pulse for a change of the output level. Writes
// that repeat the current level only lengthen the eventual pulse.
func (rec *Recorder) transitionOut(lvl uint8) {
	if lvl == rec.latchLvl {
		return
	}
	rec.pulses = append(rec.pulses, Pulse{Level: lvl, Duration: rec.cpuDelta})
	rec.cursor = len(rec.pulses)
	rec.cpuDelta = 0
	rec.latchLvl = lvl
}

func (rec *Recorder) updateMotor(on bool) {
	if rec.motor == on {
		return
	}

	if on {
		rec.motor = true
		rec.cpuDelta = 0
		rec.latchLvl = LevelNeutral
		rec.backup = rec.cursor
		rec.mode = modeUncertain
		logger.Logf("cassette", "motor started at pulse %d", rec.cursor)
		return
	}

	if rec.mode == modeRecording {
		if err := rec.Flush(); err != nil {
			logger.Log("cassette", err.Error())
		}
	}
	rec.motor = false
	rec.mode = modeAudioOut
	logger.Logf("cassette", "motor stopped at pulse %d", rec.cursor)
}

// StopMotor forces the motor off, flushing a recording in progress. Used
// on reset and shutdown.
func (rec *Recorder) StopMotor() {
	rec.updateMotor(false)
	rec.readFlag = false
	rec.writeFlag = false
	rec.inLatch = false
	rec.outLatch = 0
	rec.motorReq = false
	rec.cpuDelta = 0
	rec.latchLvl = LevelNeutral
}
