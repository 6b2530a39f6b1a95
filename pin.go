// seehuhn.de/go/instancer - create static instances of variable fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package instancer

import (
	"seehuhn.de/go/instancer/fvar"
)

// PinAxes decides the pinned value for every axis of the font which
// this package knows how to position.  The returned map contains an
// entry for each of the well-known axes present in axes:
//
//   - "wght" is pinned to the requested weight (no range check; useful
//     values are 100-900),
//   - "wdth" is pinned to 100 (normal width),
//   - "ital" is pinned to 1 or 0 depending on italic,
//   - "slnt" is pinned to -12 degrees for italic, 0 otherwise
//     (a typical italic slant, for fonts which use a slant axis
//     instead of an italic axis),
//   - "opsz" is pinned to the default optical size declared by the
//     font.
//
// Axes with other tags are not included in the map.
func PinAxes(axes []fvar.Axis, weight int, italic bool) map[string]float64 {
	limits := make(map[string]float64)
	for _, ax := range axes {
		switch ax.Tag {
		case "wght":
			limits["wght"] = float64(weight)
		case "wdth":
			limits["wdth"] = 100
		case "ital":
			if italic {
				limits["ital"] = 1
			} else {
				limits["ital"] = 0
			}
		case "slnt":
			if italic {
				limits["slnt"] = -12
			} else {
				limits["slnt"] = 0
			}
		case "opsz":
			limits["opsz"] = ax.Default
		}
	}
	return limits
}
