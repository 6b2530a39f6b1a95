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

package avar

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	// one axis, with a segment map bending the positive half of the
	// axis: -1 -> -1, 0 -> 0, 0.5 -> 0.25, 1 -> 1
	data := []byte{
		0, 1, 0, 0, // version 1.0
		0, 0, // reserved
		0, 1, // axisCount
		0, 4, // positionMapCount
		0xC0, 0x00, 0xC0, 0x00, // -1 -> -1
		0x00, 0x00, 0x00, 0x00, // 0 -> 0
		0x20, 0x00, 0x10, 0x00, // 0.5 -> 0.25
		0x40, 0x00, 0x40, 0x00, // 1 -> 1
	}
	info, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}

	want := &Info{
		Maps: [][]Mapping{
			{
				{From: -1, To: -1},
				{From: 0, To: 0},
				{From: 0.5, To: 0.25},
				{From: 1, To: 1},
			},
		},
	}
	if d := cmp.Diff(want, info); d != "" {
		t.Errorf("wrong segment maps: %s", d)
	}
}

func TestApply(t *testing.T) {
	info := &Info{
		Maps: [][]Mapping{
			{
				{From: -1, To: -1},
				{From: 0, To: 0},
				{From: 0.5, To: 0.25},
				{From: 1, To: 1},
			},
			{}, // empty map leaves the axis unchanged
		},
	}

	cases := []struct {
		in   []float64
		want []float64
	}{
		{[]float64{0, 0}, []float64{0, 0}},
		{[]float64{0.5, 0.5}, []float64{0.25, 0.5}},
		{[]float64{0.25, 0}, []float64{0.125, 0}},
		{[]float64{0.75, 0}, []float64{0.625, 0}},
		{[]float64{-0.5, -1}, []float64{-0.5, -1}},
		{[]float64{2, 0}, []float64{1, 0}}, // clamped to the last mapping
	}
	for _, test := range cases {
		got := info.Apply(test.in)
		if d := cmp.Diff(test.want, got); d != "" {
			t.Errorf("Apply(%v): %s", test.in, d)
		}
	}
}

func TestVersion2Rejected(t *testing.T) {
	data := []byte{0, 2, 0, 0, 0, 0, 0, 1}
	_, err := Decode(data)
	if !errors.Is(err, ErrVersion) {
		t.Errorf("got %v, want ErrVersion", err)
	}
}
