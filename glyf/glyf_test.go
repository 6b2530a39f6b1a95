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

package glyf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoundTrip(t *testing.T) {
	simple := &Glyph{
		XMin: -10, YMin: 0, XMax: 500, YMax: 700,
		Data: Simple{
			Contours: [][]Point{
				{
					{X: -10, Y: 0, OnCurve: true},
					{X: 500, Y: 0, OnCurve: true},
					{X: 250, Y: 700, OnCurve: false},
				},
				{
					{X: 100, Y: 100, OnCurve: true},
					{X: 400, Y: 100, OnCurve: true},
					{X: 400, Y: 300, OnCurve: true},
					{X: 100, Y: 300, OnCurve: true},
				},
			},
			Instructions: []byte{0xB0, 0x00},
		},
	}
	composite := &Glyph{
		XMin: -10, YMin: 0, XMax: 520, YMax: 700,
		Data: Composite{
			Components: []Component{
				{
					Flags:      flagArgsAreXYValues,
					GlyphIndex: 1,
					Arg1:       0,
					Arg2:       0,
				},
				{
					Flags:      flagArgsAreXYValues,
					GlyphIndex: 1,
					Arg1:       20,
					Arg2:       -5,
				},
			},
		},
	}
	gg := Glyphs{nil, simple, composite}

	enc, err := gg.Encode()
	if err != nil {
		t.Fatal(err)
	}
	gg2, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}

	if len(gg2) != 3 {
		t.Fatalf("got %d glyphs, want 3", len(gg2))
	}
	if gg2[0] != nil {
		t.Error("empty glyph not preserved")
	}
	if d := cmp.Diff(simple, gg2[1]); d != "" {
		t.Errorf("simple glyph changed: %s", d)
	}
	got := gg2[2].Data.(Composite)
	want := composite.Data.(Composite)
	for i := range want.Components {
		if got.Components[i].Arg1 != want.Components[i].Arg1 ||
			got.Components[i].Arg2 != want.Components[i].Arg2 {
			t.Errorf("component %d moved to (%d, %d)", i,
				got.Components[i].Arg1, got.Components[i].Arg2)
		}
		if got.Components[i].GlyphIndex != want.Components[i].GlyphIndex {
			t.Errorf("component %d references glyph %d", i,
				got.Components[i].GlyphIndex)
		}
	}
}

func TestCompositeArgWidening(t *testing.T) {
	// Offsets which no longer fit into a byte must be re-encoded as
	// words.
	g := &Glyph{
		Data: Composite{
			Components: []Component{
				{
					Flags:      flagArgsAreXYValues,
					GlyphIndex: 3,
					Arg1:       300,
					Arg2:       -200,
				},
			},
		},
	}
	gg := Glyphs{g}

	enc, err := gg.Encode()
	if err != nil {
		t.Fatal(err)
	}
	gg2, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	c := gg2[0].Data.(Composite).Components[0]
	if c.Arg1 != 300 || c.Arg2 != -200 {
		t.Errorf("got offset (%d, %d), want (300, -200)", c.Arg1, c.Arg2)
	}
	if c.Flags&flagArg1And2AreWords == 0 {
		t.Error("word flag not set for wide offsets")
	}
}

func TestLocaFormat(t *testing.T) {
	// a glyph below the 128k boundary keeps the short loca format
	small := &Glyph{
		Data: Simple{
			Contours: [][]Point{
				{{X: 0, Y: 0, OnCurve: true}, {X: 1, Y: 1, OnCurve: true}},
			},
		},
	}
	enc, err := Glyphs{small}.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if enc.LocaFormat != 0 {
		t.Errorf("loca format is %d, want 0", enc.LocaFormat)
	}
	if len(enc.GlyfData)%2 != 0 {
		t.Error("glyf data not 2-byte aligned")
	}
}

func TestRecalcBounds(t *testing.T) {
	g := &Glyph{
		XMin: 0, YMin: 0, XMax: 0, YMax: 0,
		Data: Simple{
			Contours: [][]Point{
				{
					{X: -5, Y: 10, OnCurve: true},
					{X: 100, Y: -20, OnCurve: true},
					{X: 50, Y: 80, OnCurve: true},
				},
			},
		},
	}
	g.RecalcBounds()
	if g.XMin != -5 || g.YMin != -20 || g.XMax != 100 || g.YMax != 80 {
		t.Errorf("wrong bounds [%d, %d, %d, %d]",
			g.XMin, g.YMin, g.XMax, g.YMax)
	}
}

func TestNumPoints(t *testing.T) {
	var g *Glyph
	if got := g.NumPoints(); got != 0 {
		t.Errorf("nil glyph has %d points", got)
	}
	g = &Glyph{
		Data: Simple{
			Contours: [][]Point{make([]Point, 3), make([]Point, 4)},
		},
	}
	if got := g.NumPoints(); got != 7 {
		t.Errorf("got %d points, want 7", got)
	}
	g = &Glyph{
		Data: Composite{Components: make([]Component, 2)},
	}
	if got := g.NumPoints(); got != 2 {
		t.Errorf("got %d components, want 2", got)
	}
}
