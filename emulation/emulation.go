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

// Package emulation runs the machine. The Emulation type owns the TRS80
// exclusively; the outside world steers it only through the bounded
// command/response channel pair, which keeps the machine single-writer
// without any locking.
//
// The Run loop works in frame-sized batches. Between batches it drains and
// applies every queued command, hands a snapshot of the video RAM to the
// sink, and then waits on the frame timer so the machine runs at the speed
// the real hardware would.
package emulation

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/trs80"
	"github.com/jetsetilly/gopher80/hardware/video"
	"github.com/jetsetilly/gopher80/logger"
)

// QueueFull is returned by Submit when the control surface gets too far
// ahead of the emulation loop.
const QueueFull = "emulation: command queue full"

// capacity of the command and response channels
const queueCapacity = 32

// VideoSink receives a snapshot of the video RAM once per emulated frame.
// NewFrame is called from the emulation goroutine; the snapshot is a copy
// and the sink may keep it.
type VideoSink interface {
	NewFrame(video.Snapshot)
}

// Emulation is the scheduler for a single machine.
type Emulation struct {
	machine *trs80.TRS80

	state State

	commands  chan Command
	responses chan Response

	sink VideoSink

	// wall clock pacing can be turned off, for tests and for runs that
	// should go as fast as they can
	pacing bool
	timer  *frameTimer
}

// NewEmulation is the preferred method of initialisation for the Emulation
// type. The machine is surrendered to the emulation: once Run has been
// called nothing else may touch it until Run returns.
func NewEmulation(machine *trs80.TRS80, sink VideoSink) *Emulation {
	return &Emulation{
		machine:   machine,
		state:     EmulatorStart,
		commands:  make(chan Command, queueCapacity),
		responses: make(chan Response, queueCapacity),
		sink:      sink,
		pacing:    true,
		timer:     newFrameTimer(clocks.FrameRate),
	}
}

// Machine returns the owned machine. For use by whatever started the
// emulation, and only before Run has been called or after it has returned.
func (emu *Emulation) Machine() *trs80.TRS80 {
	return emu.machine
}

// SetPacing turns wall clock pacing on or off. Call before Run.
func (emu *Emulation) SetPacing(pacing bool) {
	emu.pacing = pacing
}

// Submit enqueues a command for the emulation loop. It never blocks: if
// the queue is full the command is rejected and the caller should back off.
func (emu *Emulation) Submit(cmd Command) error {
	select {
	case emu.commands <- cmd:
		return nil
	default:
		return curated.Errorf(QueueFull)
	}
}

// Responses returns the channel on which command responses arrive, in
// submission order. The channel is closed when the emulation loop ends.
func (emu *Emulation) Responses() <-chan Response {
	return emu.responses
}

// Run is the emulation loop. It blocks until a quit command arrives or a
// fatal error occurs, flushing any cassette recording on the way out.
func (emu *Emulation) Run() error {
	emu.state = Paused
	defer func() {
		// the motor may still be running, which would make the deck refuse
		// the detach and lose any recording
		emu.machine.Recorder.StopMotor()
		if err := emu.machine.Recorder.Detach(); err != nil {
			logger.Log("emulation", err.Error())
		}
		close(emu.responses)
	}()

	cyclesPerFrame := clocks.CPUHz / clocks.FrameRate

	for emu.state != Ending {
		// apply every command that is waiting. while paused there is
		// nothing else to do so block for the next command rather than
		// spin
		if emu.state == Paused {
			emu.apply(<-emu.commands)
		}
		for emu.state != Ending {
			select {
			case cmd := <-emu.commands:
				emu.apply(cmd)
			default:
				goto stepping
			}
		}
	stepping:
		if emu.state != Running && emu.state != Halted {
			continue
		}

		// one frame's worth of machine time
		frame := 0
		for frame < int(cyclesPerFrame) {
			consumed, err := emu.machine.Step()
			if err != nil {
				return curated.Errorf("emulation: %v", err)
			}
			frame += consumed
		}

		if emu.machine.CPU.Halted {
			emu.state = Halted
		} else if emu.state == Halted {
			emu.state = Running
		}

		if emu.sink != nil {
			emu.sink.NewFrame(emu.machine.Mem.Video.Snapshot())
		}

		if emu.pacing {
			emu.timer.wait()
		}
	}

	return nil
}

// apply a single command to the machine, emitting exactly one response.
func (emu *Emulation) apply(cmd Command) {
	ok := true
	var msg string

	fail := func(err error) {
		ok = false
		msg = err.Error()
	}

	rec := emu.machine.Recorder

	switch cmd.Op {
	case OpPause:
		emu.state = Paused
		msg = "paused"

	case OpResume:
		emu.state = Running
		emu.timer.reset()
		msg = "running"

	case OpReset:
		emu.machine.Reset(cmd.Hard)
		if cmd.Hard {
			msg = "hard reset"
		} else {
			msg = "reset"
		}

	case OpAttachCassette:
		if err := rec.Attach(cmd.Path, cmd.Format); err != nil {
			fail(err)
		} else {
			msg = fmt.Sprintf("attached %s (%s, %d pulses)", cmd.Path, cmd.Format, rec.Len())
		}

	case OpDetachCassette:
		if err := rec.Detach(); err != nil {
			fail(err)
		} else {
			msg = "detached"
		}

	case OpSeekCassette:
		if err := rec.SeekPulse(cmd.Offset); err != nil {
			fail(err)
		} else {
			msg = fmt.Sprintf("at pulse %d of %d", rec.Position(), rec.Len())
		}

	case OpRewindCassette:
		if err := rec.Rewind(); err != nil {
			fail(err)
		} else {
			msg = "rewound"
		}

	case OpEraseCassette:
		if err := rec.Erase(); err != nil {
			fail(err)
		} else {
			msg = "erased"
		}

	case OpSetKey:
		if cmd.Pressed {
			emu.machine.Mem.Keyboard.SetKey(cmd.Row, cmd.Col)
		} else {
			emu.machine.Mem.Keyboard.ClearKey(cmd.Row, cmd.Col)
		}
		msg = fmt.Sprintf("key (%d,%d) pressed=%v", cmd.Row, cmd.Col, cmd.Pressed)

	case OpApplyConfig:
		if err := emu.applyConfig(cmd.Key, cmd.Value); err != nil {
			fail(err)
		} else {
			msg = fmt.Sprintf("%s = %s", cmd.Key, cmd.Value)
		}

	case OpQueryStatus:
		msg = emu.status()

	case OpDumpState:
		if err := emu.dumpState(cmd.Path); err != nil {
			fail(err)
		} else {
			msg = fmt.Sprintf("state graph written to %s", cmd.Path)
		}

	case OpQuit:
		emu.state = Ending
		msg = "ending"

	default:
		ok = false
		msg = fmt.Sprintf("unknown command kind %d", cmd.Op)
	}

	emu.responses <- Response{
		ID:      cmd.ID,
		Op:      cmd.Op,
		OK:      ok,
		Message: msg,
	}
}

func (emu *Emulation) applyConfig(key string, value string) error {
	switch key {
	case "lowercase":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return curated.Errorf("emulation: config: %v", err)
		}
		emu.machine.Mem.Video.SetLowercaseMod(v)

	case "baud":
		v, err := strconv.Atoi(value)
		if err != nil {
			return curated.Errorf("emulation: config: %v", err)
		}
		return emu.machine.Recorder.SetSpeed(v)

	default:
		return curated.Errorf("emulation: config: unknown key %s", key)
	}

	return nil
}

// status builds the QueryStatus message. Everything the configuration
// collaborator persists between sessions is in here.
func (emu *Emulation) status() string {
	rec := emu.machine.Recorder

	s := fmt.Sprintf("%s: pc=%#04x cycles=%d ram=%d",
		emu.state, emu.machine.CPU.Regs.PC, emu.machine.CPU.Cycles,
		emu.machine.Mem.RAMSize())

	if rec.IsAttached() {
		s = fmt.Sprintf("%s cassette=%s format=%s pulse=%d/%d baud=%d",
			s, rec.Path(), rec.Format(), rec.Position(), rec.Len(), rec.Speed())
	} else {
		s = fmt.Sprintf("%s cassette=none", s)
	}

	return s
}

// dumpState writes the object graph of the machine in graphviz form.
// Occasionally useful when chasing a state bug.
func (emu *Emulation) dumpState(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf("emulation: dump: %v", err)
	}
	defer f.Close()

	memviz.Map(f, emu.machine)
	return nil
}
