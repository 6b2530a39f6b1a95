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

// Package fvar reads the "fvar" table of a variable font.
// This table lists the variation axes of the font, together with the
// named instances the designer considered useful.
// https://docs.microsoft.com/en-us/typography/opentype/spec/fvar
package fvar

import (
	"encoding/binary"
	"errors"
)

// Axis describes a single variation axis of a font.
type Axis struct {
	Tag     string // 4-character axis tag, e.g. "wght"
	Min     float64
	Default float64
	Max     float64
	Flags   uint16
	NameID  uint16
}

// Instance is a named instance from the "fvar" table.
type Instance struct {
	SubfamilyNameID  uint16
	PostScriptNameID uint16 // 0 if not present
	Coordinates      []float64
}

// Info contains the information from the "fvar" table.
type Info struct {
	Axes      []Axis
	Instances []Instance
}

// Decode extracts the axis and instance records from the binary
// representation of an "fvar" table.
func Decode(data []byte) (*Info, error) {
	if len(data) < 16 {
		return nil, errMalformed
	}
	majorVersion := binary.BigEndian.Uint16(data[0:2])
	axesArrayOffset := int(binary.BigEndian.Uint16(data[4:6]))
	axisCount := int(binary.BigEndian.Uint16(data[8:10]))
	axisSize := int(binary.BigEndian.Uint16(data[10:12]))
	instanceCount := int(binary.BigEndian.Uint16(data[12:14]))
	instanceSize := int(binary.BigEndian.Uint16(data[14:16]))

	if majorVersion != 1 {
		return nil, errMalformed
	}
	if axisCount == 0 || axisCount > 512 || axisSize < 20 {
		return nil, errMalformed
	}
	end := axesArrayOffset + axisCount*axisSize
	if axesArrayOffset < 16 || end > len(data) {
		return nil, errMalformed
	}

	info := &Info{
		Axes: make([]Axis, axisCount),
	}
	for i := range info.Axes {
		base := axesArrayOffset + i*axisSize
		rec := data[base : base+20]
		info.Axes[i] = Axis{
			Tag:     string(rec[0:4]),
			Min:     fixed(rec[4:8]),
			Default: fixed(rec[8:12]),
			Max:     fixed(rec[12:16]),
			Flags:   binary.BigEndian.Uint16(rec[16:18]),
			NameID:  binary.BigEndian.Uint16(rec[18:20]),
		}
		ax := &info.Axes[i]
		if ax.Min > ax.Default || ax.Default > ax.Max {
			return nil, errMalformed
		}
	}

	// Instance records are optional extra information; a malformed
	// instance array does not invalidate the axes.
	hasPSName := instanceSize == axisCount*4+6
	if instanceSize < axisCount*4+4 ||
		end+instanceCount*instanceSize > len(data) {
		return info, nil
	}
	for i := 0; i < instanceCount; i++ {
		base := end + i*instanceSize
		rec := data[base : base+instanceSize]
		inst := Instance{
			SubfamilyNameID: binary.BigEndian.Uint16(rec[0:2]),
			Coordinates:     make([]float64, axisCount),
		}
		for j := range inst.Coordinates {
			inst.Coordinates[j] = fixed(rec[4+4*j : 8+4*j])
		}
		if hasPSName {
			inst.PostScriptNameID = binary.BigEndian.Uint16(rec[instanceSize-2:])
		}
		info.Instances = append(info.Instances, inst)
	}

	return info, nil
}

// Normalize converts a design-space value on the axis to the
// normalized [-1, 1] scale used by the variation data.  Values outside
// the axis range are clamped.
func (ax *Axis) Normalize(v float64) float64 {
	if v < ax.Min {
		v = ax.Min
	} else if v > ax.Max {
		v = ax.Max
	}
	switch {
	case v < ax.Default && ax.Default > ax.Min:
		return -(ax.Default - v) / (ax.Default - ax.Min)
	case v > ax.Default && ax.Max > ax.Default:
		return (v - ax.Default) / (ax.Max - ax.Default)
	default:
		return 0
	}
}

// fixed decodes a 16.16 fixed-point number.
func fixed(buf []byte) float64 {
	return float64(int32(binary.BigEndian.Uint32(buf))) / 65536
}

var errMalformed = errors.New("fvar: malformed table")
