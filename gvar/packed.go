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

package gvar

import (
	"encoding/binary"
)

// decodePackedPoints reads a packed point number list.  A nil slice is
// returned if the deltas apply to all points of the glyph.
func decodePackedPoints(data []byte) ([]uint16, []byte, error) {
	if len(data) < 1 {
		return nil, nil, errMalformed
	}
	count := int(data[0])
	data = data[1:]
	if count == 0 {
		return nil, data, nil
	}
	if count&0x80 != 0 {
		if len(data) < 1 {
			return nil, nil, errMalformed
		}
		count = (count&0x7F)<<8 | int(data[0])
		data = data[1:]
	}

	points := make([]uint16, 0, count)
	var current uint16
	for len(points) < count {
		if len(data) < 1 {
			return nil, nil, errMalformed
		}
		control := data[0]
		data = data[1:]
		runLength := int(control&0x7F) + 1
		if control&0x80 != 0 { // points are words
			if len(data) < 2*runLength {
				return nil, nil, errMalformed
			}
			for i := 0; i < runLength && len(points) < count; i++ {
				current += binary.BigEndian.Uint16(data[2*i:])
				points = append(points, current)
			}
			data = data[2*runLength:]
		} else {
			if len(data) < runLength {
				return nil, nil, errMalformed
			}
			for i := 0; i < runLength && len(points) < count; i++ {
				current += uint16(data[i])
				points = append(points, current)
			}
			data = data[runLength:]
		}
	}
	return points, data, nil
}

// Flags in the control byte of a packed delta run.
const (
	deltasAreZero  = 0x80
	deltasAreWords = 0x40
	deltaRunMask   = 0x3F
)

// decodePackedDeltas reads count packed delta values.
func decodePackedDeltas(data []byte, count int) ([]int32, []byte, error) {
	deltas := make([]int32, 0, count)
	for len(deltas) < count {
		if len(data) < 1 {
			return nil, nil, errMalformed
		}
		control := data[0]
		data = data[1:]
		runLength := int(control&deltaRunMask) + 1

		switch {
		case control&deltasAreZero != 0:
			for i := 0; i < runLength && len(deltas) < count; i++ {
				deltas = append(deltas, 0)
			}
		case control&deltasAreWords != 0:
			if len(data) < 2*runLength {
				return nil, nil, errMalformed
			}
			for i := 0; i < runLength && len(deltas) < count; i++ {
				v := int16(binary.BigEndian.Uint16(data[2*i:]))
				deltas = append(deltas, int32(v))
			}
			data = data[2*runLength:]
		default:
			if len(data) < runLength {
				return nil, nil, errMalformed
			}
			for i := 0; i < runLength && len(deltas) < count; i++ {
				deltas = append(deltas, int32(int8(data[i])))
			}
			data = data[runLength:]
		}
	}
	return deltas, data, nil
}
