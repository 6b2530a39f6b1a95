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

	"seehuhn.de/go/instancer/varstore"
)

// mvarTarget describes which font-wide metric a value tag of the
// "MVAR" table refers to: the table it lives in, the byte offset of
// the int16 field, and the minimum table length required for the
// field to exist.
type mvarTarget struct {
	table  string
	offset int
	minLen int
}

// The value tags this package knows how to apply.  Deltas for other
// tags are silently dropped, like renderers ignore tags they do not
// implement.
// https://docs.microsoft.com/en-us/typography/opentype/spec/mvar
var mvarTargets = map[string]mvarTarget{
	"hasc": {"OS/2", 68, 78}, // sTypoAscender
	"hdsc": {"OS/2", 70, 78}, // sTypoDescender
	"hlgp": {"OS/2", 72, 78}, // sTypoLineGap
	"hcla": {"OS/2", 74, 78}, // usWinAscent
	"hcld": {"OS/2", 76, 78}, // usWinDescent
	"sbxs": {"OS/2", 30, 78}, // ySubscriptXSize
	"sbys": {"OS/2", 32, 78}, // ySubscriptYSize
	"sbxo": {"OS/2", 34, 78}, // ySubscriptXOffset
	"sbyo": {"OS/2", 36, 78}, // ySubscriptYOffset
	"spxs": {"OS/2", 38, 78}, // ySuperscriptXSize
	"spys": {"OS/2", 40, 78}, // ySuperscriptYSize
	"spxo": {"OS/2", 42, 78}, // ySuperscriptXOffset
	"spyo": {"OS/2", 44, 78}, // ySuperscriptYOffset
	"strs": {"OS/2", 26, 78}, // yStrikeoutSize
	"stro": {"OS/2", 28, 78}, // yStrikeoutPosition
	"xhgt": {"OS/2", 86, 90}, // sxHeight, version 2 and up
	"cpht": {"OS/2", 88, 90}, // sCapHeight, version 2 and up
	"hcrs": {"hhea", 18, 36}, // caretSlopeRise
	"hcrn": {"hhea", 20, 36}, // caretSlopeRun
	"hcof": {"hhea", 22, 36}, // caretOffset
	"unds": {"post", 10, 32}, // underlineThickness
	"undo": {"post", 8, 32},  // underlinePosition
}

// unsigned metrics are clamped at zero instead of going negative
var mvarUnsigned = map[string]bool{
	"hcla": true,
	"hcld": true,
}

// applyMetricDeltas applies the "MVAR" variations to the font-wide
// metrics stored in "OS/2", "hhea" and "post".
func applyMetricDeltas(f *Font, coords []float64) error {
	data, ok := f.Tables["MVAR"]
	if !ok {
		return nil
	}
	if len(data) < 12 {
		return &InvalidFontError{
			SubSystem: "instancer",
			Reason:    "truncated MVAR table",
		}
	}
	majorVersion := binary.BigEndian.Uint16(data[0:2])
	recordSize := int(binary.BigEndian.Uint16(data[6:8]))
	recordCount := int(binary.BigEndian.Uint16(data[8:10]))
	storeOffset := int(binary.BigEndian.Uint16(data[10:12]))
	if majorVersion != 1 {
		return &NotSupportedError{
			SubSystem: "instancer",
			Feature:   "MVAR table version",
		}
	}
	if recordCount == 0 {
		return nil
	}
	if recordSize < 8 || 12+recordCount*recordSize > len(data) ||
		storeOffset == 0 || storeOffset >= len(data) {
		return &InvalidFontError{
			SubSystem: "instancer",
			Reason:    "invalid MVAR table",
		}
	}

	store, err := varstore.Decode(data[storeOffset:])
	if err != nil {
		return err
	}

	for i := 0; i < recordCount; i++ {
		base := 12 + i*recordSize
		tag := string(data[base : base+4])
		outer := int(binary.BigEndian.Uint16(data[base+4:]))
		inner := int(binary.BigEndian.Uint16(data[base+6:]))

		target, ok := mvarTargets[tag]
		if !ok {
			continue
		}
		tbl := f.Tables[target.table]
		if len(tbl) < target.minLen {
			continue
		}
		delta := store.Delta(outer, inner, coords)
		if delta == 0 {
			continue
		}

		tbl = f.mutable(target.table)
		var v int
		if mvarUnsigned[tag] {
			v = int(binary.BigEndian.Uint16(tbl[target.offset:])) +
				otRound(delta)
			if v < 0 {
				v = 0
			} else if v > 0xFFFF {
				v = 0xFFFF
			}
		} else {
			v = int(int16(binary.BigEndian.Uint16(tbl[target.offset:]))) +
				otRound(delta)
			if v < -32768 {
				v = -32768
			} else if v > 32767 {
				v = 32767
			}
		}
		binary.BigEndian.PutUint16(tbl[target.offset:], uint16(v))
	}
	return nil
}
