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
	"testing"

	"seehuhn.de/go/instancer/glyf"
	"seehuhn.de/go/instancer/name"
)

// makeTestFont constructs a small variable font with a single "wght"
// axis (100 to 900, default 400) and two glyphs: an empty .notdef and
// a square.  At the bold end of the axis the square moves 50 units to
// the right and the advance width grows by 100 units.
func makeTestFont(t *testing.T) *Font {
	t.Helper()

	square := &glyf.Glyph{
		XMin: 100, YMin: 0, XMax: 400, YMax: 400,
		Data: glyf.Simple{
			Contours: [][]glyf.Point{
				{
					{X: 100, Y: 0, OnCurve: true},
					{X: 400, Y: 0, OnCurve: true},
					{X: 400, Y: 400, OnCurve: true},
					{X: 100, Y: 400, OnCurve: true},
				},
			},
		},
	}
	glyphs := glyf.Glyphs{nil, square}
	enc, err := glyphs.Encode()
	if err != nil {
		t.Fatal(err)
	}

	head := make([]byte, 54)
	binary.BigEndian.PutUint32(head[0:4], 0x00010000)  // version
	binary.BigEndian.PutUint32(head[12:16], 0x5F0F3CF5) // magic
	binary.BigEndian.PutUint16(head[18:20], 1000)      // unitsPerEm
	binary.BigEndian.PutUint16(head[36:38], 100)       // xMin
	binary.BigEndian.PutUint16(head[40:42], 400)       // xMax
	binary.BigEndian.PutUint16(head[42:44], 400)       // yMax
	binary.BigEndian.PutUint16(head[50:52], uint16(enc.LocaFormat))

	descent := int16(-200)
	hhea := make([]byte, 36)
	binary.BigEndian.PutUint32(hhea[0:4], 0x00010000)
	binary.BigEndian.PutUint16(hhea[4:6], 800)             // ascent
	binary.BigEndian.PutUint16(hhea[6:8], uint16(descent)) // descent
	binary.BigEndian.PutUint16(hhea[10:12], 500)           // advanceWidthMax
	binary.BigEndian.PutUint16(hhea[18:20], 1)             // caretSlopeRise
	binary.BigEndian.PutUint16(hhea[34:36], 2)             // numberOfHMetrics

	hmtx := make([]byte, 8)
	binary.BigEndian.PutUint16(hmtx[0:2], 250) // gid 0 advance
	binary.BigEndian.PutUint16(hmtx[4:6], 500) // gid 1 advance
	binary.BigEndian.PutUint16(hmtx[6:8], 100) // gid 1 lsb

	maxp := make([]byte, 32)
	binary.BigEndian.PutUint32(maxp[0:4], 0x00010000)
	binary.BigEndian.PutUint16(maxp[4:6], 2) // numGlyphs

	os2 := make([]byte, 96)
	binary.BigEndian.PutUint16(os2[0:2], 4)      // version
	binary.BigEndian.PutUint16(os2[4:6], 400)    // usWeightClass
	binary.BigEndian.PutUint16(os2[6:8], 5)      // usWidthClass
	binary.BigEndian.PutUint16(os2[62:64], 0x40) // fsSelection: REGULAR

	post := make([]byte, 32)
	binary.BigEndian.PutUint32(post[0:4], 0x00030000)

	nameInfo := &name.Info{}
	nameInfo.Set(name.IDFamily, "Test")
	nameInfo.Set(name.IDSubfamily, "Regular")

	fv := make([]byte, 16+20)
	binary.BigEndian.PutUint16(fv[0:2], 1)  // majorVersion
	binary.BigEndian.PutUint16(fv[4:6], 16) // axesArrayOffset
	binary.BigEndian.PutUint16(fv[6:8], 2)
	binary.BigEndian.PutUint16(fv[8:10], 1)   // axisCount
	binary.BigEndian.PutUint16(fv[10:12], 20) // axisSize
	copy(fv[16:20], "wght")
	binary.BigEndian.PutUint32(fv[20:24], 100<<16) // min
	binary.BigEndian.PutUint32(fv[24:28], 400<<16) // default
	binary.BigEndian.PutUint32(fv[28:32], 900<<16) // max
	binary.BigEndian.PutUint16(fv[34:36], 256)     // axisNameID

	// One variation tuple for the square, peaking at the bold end of
	// the axis, with deltas for the 4 outline points and the 4 phantom
	// points.
	gv := make([]byte, 26)
	binary.BigEndian.PutUint16(gv[0:2], 1)    // majorVersion
	binary.BigEndian.PutUint16(gv[4:6], 1)    // axisCount
	binary.BigEndian.PutUint32(gv[8:12], 26)  // sharedTuplesOffset
	binary.BigEndian.PutUint16(gv[12:14], 2)  // glyphCount
	binary.BigEndian.PutUint32(gv[16:20], 26) // glyphVariationDataArrayOffset
	binary.BigEndian.PutUint16(gv[24:26], 10) // offset of glyph 2 data, halved
	gv = append(gv,
		0x00, 0x01, // tupleVariationCount
		0x00, 0x0A, // dataOffset
		0x00, 0x0A, // tupleVariationHeader: variationDataSize
		0x80, 0x00, // tupleIndex: embedded peak, no private points
		0x40, 0x00, // peak coordinate 1.0
		0x07, 50, 50, 50, 50, 0, 100, 0, 0, // x deltas
		0x87, // y deltas: eight zeros
	)

	return &Font{
		ScalerType: 0x00010000,
		Tables: map[string][]byte{
			"head": head,
			"hhea": hhea,
			"hmtx": hmtx,
			"maxp": maxp,
			"OS/2": os2,
			"post": post,
			"name": nameInfo.Encode(),
			"glyf": enc.GlyfData,
			"loca": enc.LocaData,
			"fvar": fv,
			"gvar": gv,
		},
	}
}
