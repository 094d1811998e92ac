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
	"bytes"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/clocks"
)

// A WAV image is sampled audio of the cassette signal. Decoding squares
// the waveform up against a threshold at an eighth of full scale; writing
// synthesises a clean three level waveform at 44.1kHz.

const wavSampleRate = 44100
const wavAmplitude = 16384

// samplesToPulses converts a mono sample stream to the pulse stream.
// Sample counts convert to CPU cycles through a cumulative mapping so the
// timing cannot drift however long the recording.
func samplesToPulses(samples []int, fullScale int, sampleRate int) []Pulse {
	threshold := fullScale / 8

	cyclesAt := func(n int) uint64 {
		return uint64(n) * clocks.CPUHz / uint64(sampleRate)
	}

	pulses := make([]Pulse, 0, 1024)
	level := uint8(LevelNeutral)
	last := 0

	for i, s := range samples {
		var l uint8
		switch {
		case s > threshold:
			l = LevelHigh
		case s < -threshold:
			l = LevelLow
		default:
			l = LevelNeutral
		}

		if l != level {
			pulses = append(pulses, Pulse{
				Level:    l,
				Duration: uint32(cyclesAt(i) - cyclesAt(last)),
			})
			level = l
			last = i
		}
	}

	return pulses
}

func decodeWAV(data []byte) ([]Pulse, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if dec == nil || !dec.IsValidFile() {
		return nil, curated.Errorf("not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, curated.Errorf("wav: %v", err)
	}

	chans := buf.Format.NumChannels
	if chans < 1 {
		return nil, curated.Errorf("wav: no channels")
	}
	rate := buf.Format.SampleRate
	if rate <= 0 {
		return nil, curated.Errorf("wav: bad sample rate")
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}

	// average the channels down to mono
	mono := make([]int, 0, len(buf.Data)/chans)
	for i := 0; i+chans <= len(buf.Data); i += chans {
		var sum int
		for c := 0; c < chans; c++ {
			sum += buf.Data[i+c]
		}
		mono = append(mono, sum/chans)
	}

	return samplesToPulses(mono, 1<<(depth-1), rate), nil
}

func encodeWAV(pulses []Pulse) ([]byte, error) {
	sampleFor := func(level uint8) int {
		switch level {
		case LevelHigh:
			return wavAmplitude
		case LevelLow:
			return -wavAmplitude
		}
		return 0
	}

	data := make([]int, 0, 1024)
	level := uint8(LevelNeutral)
	var cycles uint64

	for _, p := range pulses {
		cycles += uint64(p.Duration)
		end := int(cycles * wavSampleRate / clocks.CPUHz)
		for len(data) < end {
			data = append(data, sampleFor(level))
		}
		level = p.Level
	}

	sb := &seekBuffer{}
	enc := wav.NewEncoder(sb, wavSampleRate, 16, 1, 1)
	err := enc.Write(&audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  wavSampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	})
	if err != nil {
		return nil, curated.Errorf("wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		return nil, curated.Errorf("wav: %v", err)
	}

	return sb.buf, nil
}

// seekBuffer is the minimal io.WriteSeeker the wav encoder needs, writing
// to memory so the recorder controls the file on disk itself.
type seekBuffer struct {
	buf []byte
	pos int
}

func (sb *seekBuffer) Write(p []byte) (int, error) {
	if sb.pos+len(p) > len(sb.buf) {
		sb.buf = append(sb.buf, make([]byte, sb.pos+len(p)-len(sb.buf))...)
	}
	copy(sb.buf[sb.pos:], p)
	sb.pos += len(p)
	return len(p), nil
}

func (sb *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(sb.pos) + offset
	case io.SeekEnd:
		pos = int64(len(sb.buf)) + offset
	}
	if pos < 0 {
		return 0, curated.Errorf("wav: seek before start of buffer")
	}
	sb.pos = int(pos)
	return pos, nil
}
