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
	"seehuhn.de/go/instancer/glyf"
)

// interpolateUntouched fills in deltas for the points a sparse
// variation tuple does not mention, using the "interpolation of
// untouched points" algorithm from the OpenType specification.  The
// deltas of touched points are left unchanged.  Contour boundaries are
// taken from contours; dx, dy and touched cover the points of all
// contours in order.
// https://learn.microsoft.com/en-us/typography/opentype/spec/gvar#inferred-deltas-for-un-referenced-point-numbers
func interpolateUntouched(contours [][]glyf.Point, touched []bool, dx, dy []float64) {
	start := 0
	for _, contour := range contours {
		end := start + len(contour)
		iupContour(contour, touched[start:end], dx[start:end], dy[start:end])
		start = end
	}
}

func iupContour(points []glyf.Point, touched []bool, dx, dy []float64) {
	n := len(points)
	var refs []int
	for i, t := range touched {
		if t {
			refs = append(refs, i)
		}
	}
	switch len(refs) {
	case 0:
		// no deltas for this contour
		return
	case n:
		return
	case 1:
		// a single reference point moves the whole contour
		for i := range points {
			if !touched[i] {
				dx[i] = dx[refs[0]]
				dy[i] = dy[refs[0]]
			}
		}
		return
	}

	for i := range points {
		if touched[i] {
			continue
		}

		// nearest reference points before and after i, cyclically
		prev := refs[len(refs)-1]
		next := refs[0]
		for _, r := range refs {
			if r < i {
				prev = r
			}
			if r > i {
				next = r
				break
			}
		}

		dx[i] = inferDelta(points[i].X, points[prev].X, points[next].X,
			dx[prev], dx[next])
		dy[i] = inferDelta(points[i].Y, points[prev].Y, points[next].Y,
			dy[prev], dy[next])
	}
}

// inferDelta computes the delta for an untouched point coordinate from
// the two neighbouring touched coordinates.
func inferDelta(v, prev, next int16, prevDelta, nextDelta float64) float64 {
	lo, hi := prev, next
	loDelta, hiDelta := prevDelta, nextDelta
	if lo > hi {
		lo, hi = hi, lo
		loDelta, hiDelta = hiDelta, loDelta
	}

	switch {
	case lo == hi:
		if loDelta == hiDelta {
			return loDelta
		}
		return 0
	case v <= lo:
		return loDelta
	case v >= hi:
		return hiDelta
	default:
		t := float64(v-lo) / float64(hi-lo)
		return (1-t)*loDelta + t*hiDelta
	}
}
