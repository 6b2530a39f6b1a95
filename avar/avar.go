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

// Package avar reads the "avar" (axis variations) table.
// The table modifies the normalized axis coordinates of a variable
// font with a piecewise linear mapping per axis.
// https://docs.microsoft.com/en-us/typography/opentype/spec/avar
package avar

import (
	"encoding/binary"
	"errors"
)

// Mapping is one segment-map correspondence point.
type Mapping struct {
	From, To float64
}

// Info contains the segment maps from an "avar" table, one per axis.
// An empty segment map leaves the axis coordinate unchanged.
type Info struct {
	Maps [][]Mapping
}

// Decode extracts the segment maps from the binary representation of
// an "avar" table.
func Decode(data []byte) (*Info, error) {
	if len(data) < 8 {
		return nil, errMalformed
	}
	majorVersion := binary.BigEndian.Uint16(data[0:2])
	axisCount := int(binary.BigEndian.Uint16(data[6:8]))
	if majorVersion != 1 {
		return nil, ErrVersion
	}

	info := &Info{
		Maps: make([][]Mapping, axisCount),
	}
	pos := 8
	for i := 0; i < axisCount; i++ {
		if pos+2 > len(data) {
			return nil, errMalformed
		}
		count := int(binary.BigEndian.Uint16(data[pos : pos+2]))
		pos += 2
		if pos+4*count > len(data) {
			return nil, errMalformed
		}
		mm := make([]Mapping, count)
		for j := range mm {
			mm[j] = Mapping{
				From: f2dot14(data[pos : pos+2]),
				To:   f2dot14(data[pos+2 : pos+4]),
			}
			pos += 4
		}
		info.Maps[i] = mm
	}
	return info, nil
}

// Apply maps the normalized design-space coordinates through the
// segment maps.  The input slice is not modified.
func (info *Info) Apply(coords []float64) []float64 {
	res := make([]float64, len(coords))
	for i, v := range coords {
		if i < len(info.Maps) {
			v = applyMap(info.Maps[i], v)
		}
		res[i] = v
	}
	return res
}

func applyMap(mm []Mapping, v float64) float64 {
	if len(mm) == 0 {
		return v
	}
	if v <= mm[0].From {
		return mm[0].To
	}
	for i := 1; i < len(mm); i++ {
		if v <= mm[i].From {
			prev, next := mm[i-1], mm[i]
			if next.From == prev.From {
				return next.To
			}
			t := (v - prev.From) / (next.From - prev.From)
			return prev.To + t*(next.To-prev.To)
		}
	}
	return mm[len(mm)-1].To
}

// f2dot14 decodes a 2.14 fixed-point number.
func f2dot14(buf []byte) float64 {
	return float64(int16(binary.BigEndian.Uint16(buf))) / 16384
}

var errMalformed = errors.New("avar: malformed table")

// ErrVersion indicates an "avar" table with a major version other than
// 1.  Version 2 adds an item variation store which this package does
// not support.
var ErrVersion = errors.New("avar: unsupported table version")
