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

package logger_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopher80/logger"
	"github.com/jetsetilly/gopher80/test"
)

func TestLogEntries(t *testing.T) {
	logger.Clear()

	b := &strings.Builder{}
	logger.Write(b)
	test.Equate(t, b.Len(), 0)

	logger.Log("test", "this is a test")
	logger.Write(b)
	test.Equate(t, b.String(), "test: this is a test\n")

	b.Reset()
	logger.Logf("test", "this is test #%d", 2)
	logger.Tail(b, 1)
	test.Equate(t, b.String(), "test: this is test #2\n")
}

func TestRepeatFolding(t *testing.T) {
	logger.Clear()

	logger.Log("memory", "unmapped read")
	logger.Log("memory", "unmapped read")
	logger.Log("memory", "unmapped read")

	b := &strings.Builder{}
	logger.Write(b)
	test.Equate(t, b.String(), "memory: unmapped read (repeat x3)\n")
}
