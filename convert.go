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
	"os"

	"seehuhn.de/go/instancer/fvar"
)

// A Summary describes the outcome of a conversion.
type Summary struct {
	// Static indicates that the input font had no variation axes and
	// was copied through unchanged.
	Static bool

	// Pinned gives the value each axis was pinned to.  This is nil
	// for static inputs.
	Pinned map[string]float64

	// Size is the size of the output file in bytes.
	Size int64
}

// ConvertFile converts a variable font file into a static instance at
// the given weight.  Static input fonts are copied to the output path
// unchanged.
func ConvertFile(inName, outName string, weight int, italic bool) (*Summary, error) {
	f, err := ReadFile(inName)
	if err != nil {
		return nil, err
	}

	if !f.IsVariable() {
		data, err := os.ReadFile(inName)
		if err != nil {
			return nil, err
		}
		err = os.WriteFile(outName, data, 0666)
		if err != nil {
			return nil, err
		}
		return &Summary{Static: true, Size: int64(len(data))}, nil
	}

	fv, err := fvar.Decode(f.Tables["fvar"])
	if err != nil {
		return nil, err
	}
	limits := PinAxes(fv.Axes, weight, italic)

	static, err := Instantiate(f, limits, nil)
	if err != nil {
		return nil, err
	}
	n, err := static.WriteFile(outName)
	if err != nil {
		return nil, err
	}
	return &Summary{Pinned: limits, Size: n}, nil
}
