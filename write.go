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
	"io"
	"os"

	"seehuhn.de/go/sfnt/header"
)

// Write writes the font as an sfnt file.
// This changes the checksum in the "head" table in place.
func (f *Font) Write(w io.Writer) (int64, error) {
	return header.Write(w, f.ScalerType, f.Tables)
}

// WriteFile writes the font to the named file, overwriting the file if
// it already exists.  The number of bytes written is returned.
func (f *Font) WriteFile(fname string) (int64, error) {
	fd, err := os.Create(fname)
	if err != nil {
		return 0, err
	}
	n, err := f.Write(fd)
	if e2 := fd.Close(); err == nil {
		err = e2
	}
	return n, err
}
