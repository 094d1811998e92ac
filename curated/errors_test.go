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

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/test"
)

func TestIdentity(t *testing.T) {
	e := curated.Errorf("cassette: %v", "oops")
	test.ExpectedSuccess(t, curated.IsAny(e))
	test.ExpectedSuccess(t, curated.Is(e, "cassette: %v"))
	test.ExpectedFailure(t, curated.Is(e, "keyboard: %v"))

	// uncurated errors are never matched
	test.ExpectedFailure(t, curated.IsAny(errors.New("plain")))
	test.ExpectedFailure(t, curated.Is(nil, "cassette: %v"))
}

func TestChaining(t *testing.T) {
	e := curated.Errorf("cassette: %v", "file truncated")
	f := curated.Errorf("emulation: %v", e)

	test.ExpectedSuccess(t, curated.Has(f, "cassette: %v"))
	test.ExpectedFailure(t, curated.Is(f, "cassette: %v"))
	test.Equate(t, f.Error(), "emulation: cassette: file truncated")
}

func TestDeduplication(t *testing.T) {
	e := curated.Errorf("cassette: %v", "oops")
	f := curated.Errorf("cassette: %v", e)
	test.Equate(t, f.Error(), "cassette: oops")
}
