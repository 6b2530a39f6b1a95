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
	"errors"
	"math"
	"time"

	"seehuhn.de/go/instancer/avar"
	"seehuhn.de/go/instancer/fvar"
)

// Options modifies the behaviour of Instantiate.
type Options struct {
	// UpdateNames rewrites the style-related entries of the "name"
	// table (family, subfamily, full and PostScript name) to match
	// the pinned design-space location.
	UpdateNames bool
}

var defaultOptions = &Options{
	UpdateNames: true,
}

// Instantiate creates a static instance of a variable font.
//
// The limits map gives the design-space value to pin each axis to,
// keyed by axis tag.  Axes of the font which are missing from the map
// are pinned to their default value.  Entries for axes the font does
// not have are ignored.
//
// The input font is not modified; the returned font shares table data
// with the input only for tables the instancer does not touch.
func Instantiate(f *Font, limits map[string]float64, opts *Options) (*Font, error) {
	if opts == nil {
		opts = defaultOptions
	}

	fvarData, ok := f.Tables["fvar"]
	if !ok {
		return nil, &InvalidFontError{
			SubSystem: "instancer",
			Reason:    "not a variable font (no fvar table)",
		}
	}
	fv, err := fvar.Decode(fvarData)
	if err != nil {
		return nil, err
	}
	if f.Has("CFF2") {
		return nil, &NotSupportedError{
			SubSystem: "instancer",
			Feature:   "CFF2 variable fonts",
		}
	}

	coords, err := pinnedLocation(f, fv, limits)
	if err != nil {
		return nil, err
	}

	res := f.clone()

	err = applyGlyphDeltas(res, coords, len(fv.Axes))
	if err != nil {
		return nil, err
	}
	err = applyCvtDeltas(res, coords, len(fv.Axes))
	if err != nil {
		return nil, err
	}
	err = applyMetricDeltas(res, coords)
	if err != nil {
		return nil, err
	}

	updateAttributes(res, limits)
	if opts.UpdateNames {
		err = updateNames(res, limits)
		if err != nil {
			return nil, err
		}
	}

	// The font is static now; remove the variation tables.  A
	// pre-existing digital signature would no longer be valid either.
	for _, tag := range []string{
		"fvar", "avar", "gvar", "cvar", "HVAR", "VVAR", "MVAR", "STAT",
		"DSIG",
	} {
		delete(res.Tables, tag)
	}

	touchModified(res)

	return res, nil
}

// pinnedLocation computes the normalized design-space location for the
// pinned instance: default normalization per axis, followed by the
// "avar" segment maps, rounded to F2Dot14 precision like the values
// stored in the variation data.
func pinnedLocation(f *Font, fv *fvar.Info, limits map[string]float64) ([]float64, error) {
	coords := make([]float64, len(fv.Axes))
	for i, ax := range fv.Axes {
		v := ax.Default
		if u, ok := limits[ax.Tag]; ok {
			v = u
		}
		coords[i] = ax.Normalize(v)
	}

	if avarData, ok := f.Tables["avar"]; ok {
		av, err := avar.Decode(avarData)
		if errors.Is(err, avar.ErrVersion) {
			return nil, &NotSupportedError{
				SubSystem: "avar",
				Feature:   "table version 2",
			}
		} else if err != nil {
			return nil, err
		}
		coords = av.Apply(coords)
	}

	for i, v := range coords {
		coords[i] = math.Floor(v*16384+0.5) / 16384
	}
	return coords, nil
}

// otRound rounds to the nearest integer, with ties away from zero
// rounded up.  This matches the rounding used for font values
// elsewhere in the OpenType ecosystem.
func otRound(x float64) int {
	return int(math.Floor(x + 0.5))
}

// touchModified sets the modification time in the "head" table to the
// current time.
func touchModified(f *Font) {
	head := f.mutable("head")
	if len(head) < 36 {
		return
	}
	epoch := time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
	seconds := time.Now().Unix() - epoch.Unix()
	binary.BigEndian.PutUint64(head[28:36], uint64(seconds))
}
