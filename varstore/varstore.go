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

// Package varstore reads item variation stores and delta-set index
// maps.  These structures are shared between the "HVAR", "VVAR" and
// "MVAR" tables of a variable font.
// https://docs.microsoft.com/en-us/typography/opentype/spec/otvarcommonformats
package varstore

import (
	"encoding/binary"
	"errors"
)

// RegionAxis is the contribution of one axis to a variation region.
type RegionAxis struct {
	Start, Peak, End float64
}

// Region is a region of the normalized design space.
type Region []RegionAxis

// Data is one item variation data subtable.
type Data struct {
	RegionIndexes []uint16
	Deltas        [][]int32 // indexed by item, then by region
}

// Store is an item variation store.
type Store struct {
	Regions []Region
	Data    []*Data
}

// Decode reads an item variation store.  The offsets in the store are
// interpreted relative to the start of data.
func Decode(data []byte) (*Store, error) {
	if len(data) < 8 {
		return nil, errMalformed
	}
	format := binary.BigEndian.Uint16(data[0:2])
	regionListOffset := int(binary.BigEndian.Uint32(data[2:6]))
	dataCount := int(binary.BigEndian.Uint16(data[6:8]))
	if format != 1 {
		return nil, errors.New("varstore: unsupported store format")
	}
	if len(data) < 8+4*dataCount {
		return nil, errMalformed
	}

	store := &Store{}

	// variation region list
	if regionListOffset+4 > len(data) {
		return nil, errMalformed
	}
	rl := data[regionListOffset:]
	axisCount := int(binary.BigEndian.Uint16(rl[0:2]))
	regionCount := int(binary.BigEndian.Uint16(rl[2:4]))
	if len(rl) < 4+6*axisCount*regionCount {
		return nil, errMalformed
	}
	store.Regions = make([]Region, regionCount)
	pos := 4
	for i := range store.Regions {
		region := make(Region, axisCount)
		for j := range region {
			region[j] = RegionAxis{
				Start: f2dot14(rl[pos:]),
				Peak:  f2dot14(rl[pos+2:]),
				End:   f2dot14(rl[pos+4:]),
			}
			pos += 6
		}
		store.Regions[i] = region
	}

	// item variation data subtables
	store.Data = make([]*Data, dataCount)
	for i := range store.Data {
		offs := int(binary.BigEndian.Uint32(data[8+4*i:]))
		if offs == 0 {
			continue
		}
		sub, err := decodeData(data, offs)
		if err != nil {
			return nil, err
		}
		store.Data[i] = sub
	}
	return store, nil
}

func decodeData(data []byte, offs int) (*Data, error) {
	if offs+6 > len(data) {
		return nil, errMalformed
	}
	d := data[offs:]
	itemCount := int(binary.BigEndian.Uint16(d[0:2]))
	wordDeltaCount := binary.BigEndian.Uint16(d[2:4])
	regionIndexCount := int(binary.BigEndian.Uint16(d[4:6]))

	longWords := wordDeltaCount&0x8000 != 0
	wordCount := int(wordDeltaCount & 0x7FFF)
	if wordCount > regionIndexCount {
		return nil, errMalformed
	}

	if len(d) < 6+2*regionIndexCount {
		return nil, errMalformed
	}
	sub := &Data{
		RegionIndexes: make([]uint16, regionIndexCount),
		Deltas:        make([][]int32, itemCount),
	}
	for i := range sub.RegionIndexes {
		sub.RegionIndexes[i] = binary.BigEndian.Uint16(d[6+2*i:])
	}

	// Each delta set row stores wordCount wide values followed by
	// regionIndexCount-wordCount narrow values.  With the long-words
	// flag the sizes are int32/int16, otherwise int16/int8.
	wide, narrow := 2, 1
	if longWords {
		wide, narrow = 4, 2
	}
	rowSize := wordCount*wide + (regionIndexCount-wordCount)*narrow
	pos := 6 + 2*regionIndexCount
	if len(d) < pos+itemCount*rowSize {
		return nil, errMalformed
	}
	for i := range sub.Deltas {
		row := make([]int32, regionIndexCount)
		for j := range row {
			if j < wordCount {
				if longWords {
					row[j] = int32(binary.BigEndian.Uint32(d[pos:]))
					pos += 4
				} else {
					row[j] = int32(int16(binary.BigEndian.Uint16(d[pos:])))
					pos += 2
				}
			} else {
				if longWords {
					row[j] = int32(int16(binary.BigEndian.Uint16(d[pos:])))
					pos += 2
				} else {
					row[j] = int32(int8(d[pos]))
					pos++
				}
			}
		}
		sub.Deltas[i] = row
	}
	return sub, nil
}

// Scalar computes the interpolation scalar of the region at the given
// normalized design-space location.
func (r Region) Scalar(coords []float64) float64 {
	scalar := 1.0
	for i, ax := range r {
		if ax.Start > ax.Peak || ax.Peak > ax.End {
			continue
		}
		if ax.Start < 0 && ax.End > 0 && ax.Peak != 0 {
			continue
		}
		if ax.Peak == 0 {
			continue
		}
		var v float64
		if i < len(coords) {
			v = coords[i]
		}
		if v == ax.Peak {
			continue
		}
		if v < ax.Start || v > ax.End {
			return 0
		}
		if v < ax.Peak {
			if ax.Peak != ax.Start {
				scalar *= (v - ax.Start) / (ax.Peak - ax.Start)
			}
		} else {
			if ax.Peak != ax.End {
				scalar *= (ax.End - v) / (ax.End - ax.Peak)
			}
		}
	}
	return scalar
}

// Delta computes the interpolated delta for the given delta-set index
// at the given normalized design-space location.
func (s *Store) Delta(outer, inner int, coords []float64) float64 {
	if outer < 0 || outer >= len(s.Data) || s.Data[outer] == nil {
		return 0
	}
	sub := s.Data[outer]
	if inner < 0 || inner >= len(sub.Deltas) {
		return 0
	}
	var delta float64
	for j, regionIdx := range sub.RegionIndexes {
		if int(regionIdx) >= len(s.Regions) {
			continue
		}
		scalar := s.Regions[regionIdx].Scalar(coords)
		if scalar != 0 {
			delta += scalar * float64(sub.Deltas[inner][j])
		}
	}
	return delta
}

// IndexMap is a delta-set index map.
type IndexMap struct {
	innerBits uint16
	entrySize int
	data      []byte
	count     int
}

// DecodeIndexMap reads a delta-set index map in format 0, as used in
// the "HVAR" table.
func DecodeIndexMap(data []byte) (*IndexMap, error) {
	if len(data) < 4 {
		return nil, errMalformed
	}
	entryFormat := binary.BigEndian.Uint16(data[0:2])
	mapCount := int(binary.BigEndian.Uint16(data[2:4]))

	m := &IndexMap{
		innerBits: entryFormat&0x000F + 1,
		entrySize: int(entryFormat>>4&0x0003) + 1,
		count:     mapCount,
	}
	if mapCount == 0 || len(data) < 4+m.entrySize*mapCount {
		return nil, errMalformed
	}
	m.data = data[4 : 4+m.entrySize*mapCount]
	return m, nil
}

// Lookup returns the outer and inner delta-set index for the given
// glyph.  Glyph IDs beyond the end of the map use the last entry.
func (m *IndexMap) Lookup(gid int) (int, int) {
	if gid >= m.count {
		gid = m.count - 1
	}
	var v uint32
	for i := 0; i < m.entrySize; i++ {
		v = v<<8 | uint32(m.data[gid*m.entrySize+i])
	}
	inner := v & (1<<m.innerBits - 1)
	outer := v >> m.innerBits
	return int(outer), int(inner)
}

func f2dot14(buf []byte) float64 {
	return float64(int16(binary.BigEndian.Uint16(buf))) / 16384
}

var errMalformed = errors.New("varstore: malformed data")
