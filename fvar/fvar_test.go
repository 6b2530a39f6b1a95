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

package fvar

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func makeTable(axes []Axis) []byte {
	data := make([]byte, 16+20*len(axes))
	binary.BigEndian.PutUint16(data[0:2], 1)
	binary.BigEndian.PutUint16(data[4:6], 16)
	binary.BigEndian.PutUint16(data[6:8], 2)
	binary.BigEndian.PutUint16(data[8:10], uint16(len(axes)))
	binary.BigEndian.PutUint16(data[10:12], 20)
	for i, ax := range axes {
		base := 16 + 20*i
		copy(data[base:base+4], ax.Tag)
		binary.BigEndian.PutUint32(data[base+4:], uint32(int32(ax.Min*65536)))
		binary.BigEndian.PutUint32(data[base+8:], uint32(int32(ax.Default*65536)))
		binary.BigEndian.PutUint32(data[base+12:], uint32(int32(ax.Max*65536)))
		binary.BigEndian.PutUint16(data[base+16:], ax.Flags)
		binary.BigEndian.PutUint16(data[base+18:], ax.NameID)
	}
	return data
}

func TestDecode(t *testing.T) {
	axes := []Axis{
		{Tag: "wght", Min: 100, Default: 400, Max: 900, NameID: 256},
		{Tag: "slnt", Min: -15, Default: 0, Max: 0, NameID: 257},
	}
	info, err := Decode(makeTable(axes))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(axes, info.Axes); d != "" {
		t.Errorf("wrong axes: %s", d)
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := [][]byte{
		nil,
		make([]byte, 4),
		makeTable([]Axis{{Tag: "wght", Min: 500, Default: 400, Max: 900}}),
	}
	for i, data := range cases {
		if _, err := Decode(data); err == nil {
			t.Errorf("%d: malformed table not detected", i)
		}
	}
}

func TestNormalize(t *testing.T) {
	ax := &Axis{Tag: "wght", Min: 100, Default: 400, Max: 900}
	cases := []struct {
		in, want float64
	}{
		{400, 0},
		{900, 1},
		{100, -1},
		{650, 0.5},
		{250, -0.5},
		{1000, 1},  // clamped to the axis maximum
		{50, -1},   // clamped to the axis minimum
	}
	for _, test := range cases {
		if got := ax.Normalize(test.in); got != test.want {
			t.Errorf("Normalize(%g)=%g, want %g", test.in, got, test.want)
		}
	}

	// an axis with default == max has no positive range
	ax = &Axis{Tag: "slnt", Min: -15, Default: 0, Max: 0}
	if got := ax.Normalize(0); got != 0 {
		t.Errorf("Normalize(0)=%g, want 0", got)
	}
	if got := ax.Normalize(-15); got != -1 {
		t.Errorf("Normalize(-15)=%g, want -1", got)
	}
}
