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

// Package instancer creates static instances of variable TrueType fonts.
//
// A variable font encodes a whole design space of weights, widths and
// styles in a single file.  Some consumers (PDF generators in
// particular) cannot use such fonts and need a static font where every
// variation axis is fixed ("pinned") to a single value.  This package
// reads a variable font, applies the variation deltas for a chosen
// design-space location to the glyph outlines and metrics, removes the
// variation tables, and writes the result as an ordinary static font.
//
// The main entry points are [PinAxes], which decides the pinned value
// for each axis from a requested weight and italic flag, and
// [Instantiate], which applies an axis-limits map to a font.
// [ConvertFile] combines the two for use by the convert-to-static
// command line tool.
package instancer
