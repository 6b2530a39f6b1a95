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

// hvarInfo gives access to the horizontal metrics variations of the
// "HVAR" table.  The deltas stored there take precedence over the
// phantom point deltas in "gvar" when both are present.
type hvarInfo struct {
	store  *varstore.Store
	advMap *varstore.IndexMap // nil means implicit mapping by glyph ID
	lsbMap *varstore.IndexMap // nil if the table has no lsb deltas
}

func decodeHvar(data []byte) (*hvarInfo, error) {
	if len(data) < 20 {
		return nil, &InvalidFontError{
			SubSystem: "instancer",
			Reason:    "truncated HVAR table",
		}
	}
	majorVersion := binary.BigEndian.Uint16(data[0:2])
	storeOffset := int(binary.BigEndian.Uint32(data[4:8]))
	advOffset := int(binary.BigEndian.Uint32(data[8:12]))
	lsbOffset := int(binary.BigEndian.Uint32(data[12:16]))
	if majorVersion != 1 {
		return nil, &NotSupportedError{
			SubSystem: "instancer",
			Feature:   "HVAR table version",
		}
	}
	if storeOffset >= len(data) {
		return nil, &InvalidFontError{
			SubSystem: "instancer",
			Reason:    "invalid HVAR table",
		}
	}

	hv := &hvarInfo{}
	var err error
	hv.store, err = varstore.Decode(data[storeOffset:])
	if err != nil {
		return nil, err
	}
	if advOffset > 0 && advOffset < len(data) {
		hv.advMap, err = varstore.DecodeIndexMap(data[advOffset:])
		if err != nil {
			return nil, err
		}
	}
	if lsbOffset > 0 && lsbOffset < len(data) {
		hv.lsbMap, err = varstore.DecodeIndexMap(data[lsbOffset:])
		if err != nil {
			return nil, err
		}
	}
	return hv, nil
}

// advanceDelta returns the advance width delta for the given glyph at
// the given normalized design-space location.
func (hv *hvarInfo) advanceDelta(gid int, coords []float64) float64 {
	outer, inner := 0, gid
	if hv.advMap != nil {
		outer, inner = hv.advMap.Lookup(gid)
	}
	return hv.store.Delta(outer, inner, coords)
}

// lsbDelta returns the left side bearing delta for the given glyph, if
// the table contains one.
func (hv *hvarInfo) lsbDelta(gid int, coords []float64) (float64, bool) {
	if hv.lsbMap == nil {
		return 0, false
	}
	outer, inner := hv.lsbMap.Lookup(gid)
	return hv.store.Delta(outer, inner, coords), true
}
