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

	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/gopher80/curated"
)

// An MP3 image is treated like a WAV image but is read only. The decoded
// stream is always 16bit little-endian stereo; only the left channel is
// used.
func decodeMP3(data []byte) ([]Pulse, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, curated.Errorf("mp3: %v", err)
	}

	samples := make([]int, 0, 1024)

	chunk := make([]byte, 4096)
	for {
		n, err := dec.Read(chunk)
		for i := 0; i+4 <= n; i += 4 {
			s := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
			samples = append(samples, int(s))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, curated.Errorf("mp3: %v", err)
		}
	}

	return samplesToPulses(samples, 1<<15, dec.SampleRate()), nil
}
