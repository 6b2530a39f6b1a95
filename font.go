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
	"encoding/binary"
	"os"

	"golang.org/x/exp/maps"
	"seehuhn.de/go/sfnt/header"
)

// Font is a font file, loaded into memory as a set of sfnt tables.
type Font struct {
	ScalerType uint32
	Tables     map[string][]byte
}

// Read loads all tables of an sfnt font file into memory.
func Read(fd *os.File) (*Font, error) {
	info, err := header.Read(fd)
	if err != nil {
		return nil, err
	}

	f := &Font{
		ScalerType: info.ScalerType,
		Tables:     make(map[string][]byte),
	}
	for name := range info.Toc {
		data, err := info.ReadTableBytes(fd, name)
		if err != nil {
			return nil, err
		}
		f.Tables[name] = data
	}
	return f, nil
}

// ReadFile loads a font file into memory.  The file is closed before
// the function returns.
func ReadFile(fname string) (*Font, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return Read(fd)
}

// Has returns true, if all the given tables are present in the font.
func (f *Font) Has(names ...string) bool {
	for _, name := range names {
		if _, ok := f.Tables[name]; !ok {
			return false
		}
	}
	return true
}

// IsVariable reports whether the font is a variable font.
func (f *Font) IsVariable() bool {
	return f.Has("fvar")
}

// clone returns a new Font sharing the table data of f.  Tables which
// the instancer modifies are replaced wholesale, so sharing the blobs
// is safe.
func (f *Font) clone() *Font {
	return &Font{
		ScalerType: f.ScalerType,
		Tables:     maps.Clone(f.Tables),
	}
}

// mutable returns the named table as a private copy, replacing the
// shared blob in the table map.  This keeps fonts cloned from the same
// source independent when tables are patched in place.  The result is
// nil if the table is not present.
func (f *Font) mutable(name string) []byte {
	data, ok := f.Tables[name]
	if !ok {
		return nil
	}
	cp := append([]byte(nil), data...)
	f.Tables[name] = cp
	return cp
}

// numGlyphs returns the glyph count from the "maxp" table.
func (f *Font) numGlyphs() (int, error) {
	maxp, ok := f.Tables["maxp"]
	if !ok || len(maxp) < 6 {
		return 0, &InvalidFontError{
			SubSystem: "instancer",
			Reason:    "missing or truncated maxp table",
		}
	}
	return int(binary.BigEndian.Uint16(maxp[4:6])), nil
}
