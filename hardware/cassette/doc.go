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

// Package cassette emulates the Model I cassette recorder. The tape is an
// ordered stream of signal transitions (Pulse values) with durations in CPU
// cycles. Attaching a tape image decodes the whole file into the pulse
// stream up front; playback and recording walk a cursor through it. The
// cursor position is the canonical notion of "where the tape is".
//
// Four image formats are understood. CAS is the recovered bit stream, CPT
// is an exact pulse train, and WAV and MP3 are sampled audio of the
// cassette signal (MP3 is read only).
//
// The recorder cannot see the motor relay directly. Like the real
// hardware, the running motor means either playback or recording and the
// recorder decides which from the program's behaviour: a read of the
// cassette port means playback, a change of the output level means
// recording. A recording overwrites the tape from the position the motor
// started at.
package cassette
