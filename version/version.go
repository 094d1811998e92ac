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

// Package version records which build of the application is running.
package version

import (
	"fmt"
	"runtime/debug"
)

// The name to use when referring to the application.
const ApplicationName = "Gopher80"

// set through the linker by the release build
var number string

// Version returns the version and vcs revision of the build. Manual builds
// report "unreleased"; a plain "go run ." with no vcs information at all
// reports "local".
func Version() (version string, revision string) {
	version = number
	revision = "no revision information"

	var vcs bool
	var modified bool

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				revision = v.Value
			case "vcs.modified":
				modified = v.Value == "true"
			}
		}
	}

	if modified {
		revision = fmt.Sprintf("%s+dirty", revision)
	}

	if version == "" {
		if vcs {
			version = "unreleased"
		} else {
			version = "local"
		}
	}

	return version, revision
}
