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

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/instancer/glyf"
	"seehuhn.de/go/instancer/name"
)

func TestInstantiate(t *testing.T) {
	f := makeTestFont(t)

	static, err := Instantiate(f, map[string]float64{"wght": 900}, nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, tag := range []string{"fvar", "gvar", "avar", "HVAR", "MVAR", "STAT"} {
		if static.Has(tag) {
			t.Errorf("variation table %q not removed", tag)
		}
	}
	if static.IsVariable() {
		t.Error("result is still a variable font")
	}

	// the outline must have moved 50 units to the right
	head := static.Tables["head"]
	glyphs, err := glyf.Decode(&glyf.Encoded{
		GlyfData:   static.Tables["glyf"],
		LocaData:   static.Tables["loca"],
		LocaFormat: int16(binary.BigEndian.Uint16(head[50:52])),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(glyphs) != 2 {
		t.Fatalf("got %d glyphs, want 2", len(glyphs))
	}
	square := glyphs[1]
	wantContour := []glyf.Point{
		{X: 150, Y: 0, OnCurve: true},
		{X: 450, Y: 0, OnCurve: true},
		{X: 450, Y: 400, OnCurve: true},
		{X: 150, Y: 400, OnCurve: true},
	}
	simple := square.Data.(glyf.Simple)
	if d := cmp.Diff(wantContour, simple.Contours[0]); d != "" {
		t.Errorf("wrong outline: %s", d)
	}
	if square.XMin != 150 || square.XMax != 450 {
		t.Errorf("wrong bounding box: [%d, %d]", square.XMin, square.XMax)
	}

	// the phantom point deltas must have updated the advance width
	numGlyphs, err := static.numGlyphs()
	if err != nil {
		t.Fatal(err)
	}
	advances, lsbs, err := decodeHmtx(static, numGlyphs)
	if err != nil {
		t.Fatal(err)
	}
	if advances[1] != 600 {
		t.Errorf("advance width is %d, want 600", advances[1])
	}
	if lsbs[1] != 150 {
		t.Errorf("left side bearing is %d, want 150", lsbs[1])
	}
	if advances[0] != 250 {
		t.Errorf("advance width of empty glyph changed to %d", advances[0])
	}

	// font-wide bounding box and aggregate metrics
	if got := int16(binary.BigEndian.Uint16(head[36:38])); got != 150 {
		t.Errorf("head xMin is %d, want 150", got)
	}
	if got := int16(binary.BigEndian.Uint16(head[40:42])); got != 450 {
		t.Errorf("head xMax is %d, want 450", got)
	}
	hhea := static.Tables["hhea"]
	if got := binary.BigEndian.Uint16(hhea[10:12]); got != 600 {
		t.Errorf("advanceWidthMax is %d, want 600", got)
	}

	// style attributes
	os2 := static.Tables["OS/2"]
	if got := binary.BigEndian.Uint16(os2[4:6]); got != 900 {
		t.Errorf("usWeightClass is %d, want 900", got)
	}
	if got := binary.BigEndian.Uint16(os2[62:64]); got&0x01 != 0 || got&0x40 == 0 {
		t.Errorf("wrong fsSelection 0b%b", got)
	}

	// style names
	names, err := name.Decode(static.Tables["name"])
	if err != nil {
		t.Fatal(err)
	}
	wantNames := map[uint16]string{
		name.IDFamily:         "Test Black",
		name.IDSubfamily:      "Regular",
		name.IDFullName:       "Test Black",
		name.IDPostScriptName: "Test-Black",
		name.IDTypoFamily:     "Test",
		name.IDTypoSubfamily:  "Black",
	}
	for id, want := range wantNames {
		if got := names.Get(id); got != want {
			t.Errorf("name %d is %q, want %q", id, got, want)
		}
	}
}

func TestInstantiateDefault(t *testing.T) {
	// Axes missing from the limits map are pinned to their default
	// value, so an empty map keeps the outlines unchanged.
	f := makeTestFont(t)

	static, err := Instantiate(f, map[string]float64{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	head := static.Tables["head"]
	glyphs, err := glyf.Decode(&glyf.Encoded{
		GlyfData:   static.Tables["glyf"],
		LocaData:   static.Tables["loca"],
		LocaFormat: int16(binary.BigEndian.Uint16(head[50:52])),
	})
	if err != nil {
		t.Fatal(err)
	}
	square := glyphs[1]
	if square.XMin != 100 || square.XMax != 400 {
		t.Errorf("outline moved at the default location: [%d, %d]",
			square.XMin, square.XMax)
	}
	if static.IsVariable() {
		t.Error("result is still a variable font")
	}
}

func TestInstantiateInputUnchanged(t *testing.T) {
	f := makeTestFont(t)
	origHead := append([]byte(nil), f.Tables["head"]...)
	origHmtx := append([]byte(nil), f.Tables["hmtx"]...)

	_, err := Instantiate(f, map[string]float64{"wght": 900}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if d := cmp.Diff(origHead, f.Tables["head"]); d != "" {
		t.Errorf("input head table modified: %s", d)
	}
	if d := cmp.Diff(origHmtx, f.Tables["hmtx"]); d != "" {
		t.Errorf("input hmtx table modified: %s", d)
	}
	if !f.IsVariable() {
		t.Error("input font lost its variation tables")
	}
}

func TestInstantiateErrors(t *testing.T) {
	f := makeTestFont(t)
	delete(f.Tables, "fvar")
	_, err := Instantiate(f, nil, nil)
	if _, ok := err.(*InvalidFontError); !ok {
		t.Errorf("got %v, want InvalidFontError", err)
	}

	f = makeTestFont(t)
	f.Tables["CFF2"] = []byte{0}
	_, err = Instantiate(f, nil, nil)
	if _, ok := err.(*NotSupportedError); !ok {
		t.Errorf("got %v, want NotSupportedError", err)
	}

	f = makeTestFont(t)
	f.Tables["avar"] = []byte{0, 2, 0, 0, 0, 0, 0, 1} // avar version 2
	_, err = Instantiate(f, nil, nil)
	if _, ok := err.(*NotSupportedError); !ok {
		t.Errorf("got %v, want NotSupportedError", err)
	}
}
