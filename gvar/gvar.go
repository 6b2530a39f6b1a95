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

// Package gvar reads the tuple variation stores of a variable font:
// the "gvar" table, which holds the variation deltas for the glyph
// outlines, and the "cvar" table, which holds deltas for the control
// value table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/gvar
// https://docs.microsoft.com/en-us/typography/opentype/spec/cvar
package gvar

import (
	"encoding/binary"
	"errors"
)

// A Tuple is one tuple variation: a region of the design space,
// described by its peak (and optionally an intermediate start/end
// region), together with the deltas which apply there.
//
// Points lists the point numbers the deltas apply to; a nil Points
// slice means the deltas apply to all points in order.  DeltasY is nil
// for "cvar" variations, which carry a single delta per entry.
type Tuple struct {
	Peak       []float64
	Start, End []float64 // nil unless an intermediate region is given
	Points     []uint16
	DeltasX    []int32
	DeltasY    []int32
}

// Info contains the information from a "gvar" table.
type Info struct {
	AxisCount  int
	Variations [][]Tuple // one slice of tuples per glyph
}

// Flags in the tupleVariationCount field.
const (
	sharedPointNumbers = 0x8000
	countMask          = 0x0FFF
)

// Flags in the tupleIndex field of a tuple variation header.
const (
	embeddedPeakTuple   = 0x8000
	intermediateRegion  = 0x4000
	privatePointNumbers = 0x2000
	tupleIndexMask      = 0x0FFF
)

// Decode reads a "gvar" table.  pointCounts gives the number of
// deltas per glyph: the number of outline points (or components) plus
// the four phantom points.
func Decode(data []byte, axisCount int, pointCounts []int) (*Info, error) {
	if len(data) < 20 {
		return nil, errMalformed
	}
	majorVersion := binary.BigEndian.Uint16(data[0:2])
	tableAxisCount := int(binary.BigEndian.Uint16(data[4:6]))
	sharedTupleCount := int(binary.BigEndian.Uint16(data[6:8]))
	sharedTuplesOffset := int(binary.BigEndian.Uint32(data[8:12]))
	glyphCount := int(binary.BigEndian.Uint16(data[12:14]))
	flags := binary.BigEndian.Uint16(data[14:16])
	dataArrayOffset := int(binary.BigEndian.Uint32(data[16:20]))

	if majorVersion != 1 {
		return nil, errMalformed
	}
	if tableAxisCount != axisCount {
		return nil, errMalformed
	}
	if glyphCount > len(pointCounts) {
		glyphCount = len(pointCounts)
	}

	// read the glyph variation data offsets
	offs := make([]int, glyphCount+1)
	if flags&0x0001 != 0 { // long offsets
		if len(data) < 20+4*(glyphCount+1) {
			return nil, errMalformed
		}
		for i := range offs {
			offs[i] = int(binary.BigEndian.Uint32(data[20+4*i:]))
		}
	} else {
		if len(data) < 20+2*(glyphCount+1) {
			return nil, errMalformed
		}
		for i := range offs {
			offs[i] = 2 * int(binary.BigEndian.Uint16(data[20+2*i:]))
		}
	}

	// read the shared tuples
	if sharedTuplesOffset+2*axisCount*sharedTupleCount > len(data) {
		return nil, errMalformed
	}
	shared := make([][]float64, sharedTupleCount)
	for i := range shared {
		base := sharedTuplesOffset + 2*axisCount*i
		shared[i] = decodeCoords(data[base:], axisCount)
	}

	info := &Info{
		AxisCount:  axisCount,
		Variations: make([][]Tuple, glyphCount),
	}
	for gid := 0; gid < glyphCount; gid++ {
		start := dataArrayOffset + offs[gid]
		end := dataArrayOffset + offs[gid+1]
		if start == end {
			continue
		}
		if start > end || end > len(data) {
			return nil, errMalformed
		}
		tuples, err := decodeTupleVariations(data[start:end], axisCount,
			shared, pointCounts[gid], false)
		if err != nil {
			return nil, err
		}
		info.Variations[gid] = tuples
	}
	return info, nil
}

// DecodeCvar reads a "cvar" table.  numValues is the number of entries
// in the font's control value table.
func DecodeCvar(data []byte, axisCount, numValues int) ([]Tuple, error) {
	if len(data) < 8 {
		return nil, errMalformed
	}
	majorVersion := binary.BigEndian.Uint16(data[0:2])
	if majorVersion != 1 {
		return nil, errMalformed
	}
	return decodeTupleVariations(data[4:], axisCount, nil, numValues, true)
}

// decodeTupleVariations reads a glyph variation data block (or the
// body of a "cvar" table).  Offsets inside the block are relative to
// its start.
func decodeTupleVariations(data []byte, axisCount int, shared [][]float64, numPoints int, single bool) ([]Tuple, error) {
	if len(data) < 4 {
		return nil, errMalformed
	}
	tupleCount := binary.BigEndian.Uint16(data[0:2])
	dataOffset := int(binary.BigEndian.Uint16(data[2:4]))
	count := int(tupleCount & countMask)
	if count == 0 {
		return nil, nil
	}
	if dataOffset > len(data) {
		return nil, errMalformed
	}

	type header struct {
		size  int
		index uint16
		peak  []float64
		start []float64
		end   []float64
	}
	headers := make([]header, count)
	pos := 4
	for i := range headers {
		if pos+4 > len(data) {
			return nil, errMalformed
		}
		h := header{
			size:  int(binary.BigEndian.Uint16(data[pos:])),
			index: binary.BigEndian.Uint16(data[pos+2:]),
		}
		pos += 4
		if h.index&embeddedPeakTuple != 0 {
			if pos+2*axisCount > len(data) {
				return nil, errMalformed
			}
			h.peak = decodeCoords(data[pos:], axisCount)
			pos += 2 * axisCount
		} else {
			idx := int(h.index & tupleIndexMask)
			if idx >= len(shared) {
				return nil, errMalformed
			}
			h.peak = shared[idx]
		}
		if h.index&intermediateRegion != 0 {
			if pos+4*axisCount > len(data) {
				return nil, errMalformed
			}
			h.start = decodeCoords(data[pos:], axisCount)
			h.end = decodeCoords(data[pos+2*axisCount:], axisCount)
			pos += 4 * axisCount
		}
		headers[i] = h
	}

	body := data[dataOffset:]
	var sharedPoints []uint16
	haveSharedPoints := tupleCount&sharedPointNumbers != 0
	if haveSharedPoints {
		pp, rest, err := decodePackedPoints(body)
		if err != nil {
			return nil, err
		}
		sharedPoints = pp
		body = rest
	}

	tuples := make([]Tuple, count)
	for i, h := range headers {
		if h.size > len(body) {
			return nil, errMalformed
		}
		tupleData := body[:h.size]
		body = body[h.size:]

		t := Tuple{
			Peak:  h.peak,
			Start: h.start,
			End:   h.end,
		}
		if h.index&privatePointNumbers != 0 {
			pp, rest, err := decodePackedPoints(tupleData)
			if err != nil {
				return nil, err
			}
			t.Points = pp
			tupleData = rest
		} else if haveSharedPoints {
			t.Points = sharedPoints
		}

		n := numPoints
		if t.Points != nil {
			n = len(t.Points)
		}
		dx, rest, err := decodePackedDeltas(tupleData, n)
		if err != nil {
			return nil, err
		}
		t.DeltasX = dx
		if !single {
			dy, _, err := decodePackedDeltas(rest, n)
			if err != nil {
				return nil, err
			}
			t.DeltasY = dy
		}
		tuples[i] = t
	}
	return tuples, nil
}

// Scalar computes the interpolation scalar of the tuple at the given
// normalized design-space location.  The result is zero if the
// location is outside the region of the tuple.
func (t *Tuple) Scalar(coords []float64) float64 {
	scalar := 1.0
	for i, peak := range t.Peak {
		if peak == 0 {
			continue
		}
		var v float64
		if i < len(coords) {
			v = coords[i]
		}
		if v == peak {
			continue
		}

		if t.Start == nil {
			// no intermediate region: the region spans from 0 to the
			// peak
			if v == 0 || v < min(0, peak) || v > max(0, peak) {
				return 0
			}
			scalar *= v / peak
			continue
		}

		start, end := t.Start[i], t.End[i]
		if start > peak || peak > end {
			continue
		}
		if start < 0 && end > 0 && peak != 0 {
			continue
		}
		if v < start || v > end {
			return 0
		}
		if v < peak {
			if peak != start {
				scalar *= (v - start) / (peak - start)
			}
		} else {
			if peak != end {
				scalar *= (end - v) / (end - peak)
			}
		}
	}
	return scalar
}

func decodeCoords(data []byte, axisCount int) []float64 {
	coords := make([]float64, axisCount)
	for i := range coords {
		coords[i] = float64(int16(binary.BigEndian.Uint16(data[2*i:]))) / 16384
	}
	return coords
}

var errMalformed = errors.New("gvar: malformed variation data")
