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

// Package glyf reads and writes the "glyf" and "loca" tables of a
// TrueType font at the level of individual outline points, so that
// variation deltas can be applied to the coordinates.
// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf
// https://docs.microsoft.com/en-us/typography/opentype/spec/loca
package glyf

import (
	"encoding/binary"
	"errors"
)

// Glyphs contains the information from a "glyf" table.  Entries are
// nil for glyphs without an outline.
type Glyphs []*Glyph

// Encoded holds the binary representation of the "glyf" and "loca"
// tables.  The value for LocaFormat corresponds to the
// indexToLocFormat entry in the "head" table.
type Encoded struct {
	GlyfData   []byte
	LocaData   []byte
	LocaFormat int16
}

// Decode converts the data from the "glyf" and "loca" tables into a
// slice of Glyphs.
func Decode(enc *Encoded) (Glyphs, error) {
	offs, err := decodeLoca(enc)
	if err != nil {
		return nil, err
	}

	numGlyphs := len(offs) - 1
	gg := make(Glyphs, numGlyphs)
	for i := range gg {
		if offs[i] > offs[i+1] || offs[i+1] > len(enc.GlyfData) {
			return nil, errInvalidGlyphData
		}
		g, err := decodeGlyph(enc.GlyfData[offs[i]:offs[i+1]])
		if err != nil {
			return nil, err
		}
		gg[i] = g
	}
	return gg, nil
}

// Encode encodes the Glyphs into a "glyf" and "loca" table.
func (gg Glyphs) Encode() (*Encoded, error) {
	var glyfData []byte
	offs := make([]int, 0, len(gg)+1)
	offs = append(offs, 0)
	for _, g := range gg {
		data, err := g.encode()
		if err != nil {
			return nil, err
		}
		glyfData = append(glyfData, data...)
		for len(glyfData)%2 != 0 {
			glyfData = append(glyfData, 0)
		}
		offs = append(offs, len(glyfData))
	}

	locaData, locaFormat := encodeLoca(offs)
	return &Encoded{
		GlyfData:   glyfData,
		LocaData:   locaData,
		LocaFormat: locaFormat,
	}, nil
}

// NumPoints returns the number of outline points of a simple glyph, or
// the number of components of a composite glyph.  Phantom points are
// not included.
func (g *Glyph) NumPoints() int {
	if g == nil {
		return 0
	}
	switch d := g.Data.(type) {
	case Simple:
		n := 0
		for _, c := range d.Contours {
			n += len(c)
		}
		return n
	case Composite:
		return len(d.Components)
	default:
		return 0
	}
}

func decodeLoca(enc *Encoded) ([]int, error) {
	data := enc.LocaData
	switch enc.LocaFormat {
	case 0:
		if len(data) < 2 || len(data)%2 != 0 {
			return nil, errInvalidLoca
		}
		offs := make([]int, len(data)/2)
		for i := range offs {
			offs[i] = 2 * int(binary.BigEndian.Uint16(data[2*i:]))
		}
		return offs, nil
	case 1:
		if len(data) < 4 || len(data)%4 != 0 {
			return nil, errInvalidLoca
		}
		offs := make([]int, len(data)/4)
		for i := range offs {
			offs[i] = int(binary.BigEndian.Uint32(data[4*i:]))
		}
		return offs, nil
	default:
		return nil, errInvalidLoca
	}
}

func encodeLoca(offs []int) ([]byte, int16) {
	last := offs[len(offs)-1]
	if last < 0x20000 {
		data := make([]byte, 2*len(offs))
		for i, off := range offs {
			binary.BigEndian.PutUint16(data[2*i:], uint16(off/2))
		}
		return data, 0
	}
	data := make([]byte, 4*len(offs))
	for i, off := range offs {
		binary.BigEndian.PutUint32(data[4*i:], uint32(off))
	}
	return data, 1
}

var (
	errInvalidLoca      = errors.New("glyf: invalid loca table")
	errInvalidGlyphData = errors.New("glyf: invalid glyph data")
)
