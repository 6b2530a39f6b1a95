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

	"seehuhn.de/go/instancer/glyf"
	"seehuhn.de/go/instancer/gvar"
)

// applyGlyphDeltas moves the glyph outlines to the pinned design-space
// location and rebuilds the tables which depend on the outlines:
// "glyf", "loca", "hmtx", the aggregate fields of "hhea", and the
// bounding box in "head".
func applyGlyphDeltas(f *Font, coords []float64, axisCount int) error {
	if !f.Has("glyf", "loca", "head", "hhea", "hmtx", "maxp") {
		return &NotSupportedError{
			SubSystem: "instancer",
			Feature:   "variable fonts without TrueType outlines",
		}
	}

	numGlyphs, err := f.numGlyphs()
	if err != nil {
		return err
	}
	head := f.Tables["head"]
	if len(head) < 54 {
		return &InvalidFontError{
			SubSystem: "instancer",
			Reason:    "truncated head table",
		}
	}
	locaFormat := int16(binary.BigEndian.Uint16(head[50:52]))

	glyphs, err := glyf.Decode(&glyf.Encoded{
		GlyfData:   f.Tables["glyf"],
		LocaData:   f.Tables["loca"],
		LocaFormat: locaFormat,
	})
	if err != nil {
		return err
	}
	if len(glyphs) != numGlyphs {
		return &InvalidFontError{
			SubSystem: "instancer",
			Reason:    "loca table does not match glyph count",
		}
	}

	advances, lsbs, err := decodeHmtx(f, numGlyphs)
	if err != nil {
		return err
	}

	var hv *hvarInfo
	if hvarData, ok := f.Tables["HVAR"]; ok {
		hv, err = decodeHvar(hvarData)
		if err != nil {
			return err
		}
	}

	var gv *gvar.Info
	if gvarData, ok := f.Tables["gvar"]; ok {
		pointCounts := make([]int, numGlyphs)
		for i, g := range glyphs {
			pointCounts[i] = g.NumPoints() + 4
		}
		gv, err = gvar.Decode(gvarData, axisCount, pointCounts)
		if err != nil {
			return err
		}
	}
	if gv == nil && hv == nil {
		return nil
	}

	// The old glyph origins are needed below to convert the phantom
	// point deltas into left side bearings.
	origXMin := make([]int16, numGlyphs)
	for gid, g := range glyphs {
		if g != nil {
			origXMin[gid] = g.XMin
		}
	}

	// move the outlines
	phantomLeft := make([]float64, numGlyphs)
	phantomRight := make([]float64, numGlyphs)
	for gid, g := range glyphs {
		var tuples []gvar.Tuple
		if gv != nil && gid < len(gv.Variations) {
			tuples = gv.Variations[gid]
		}
		dx, dy := glyphDeltas(g, tuples, coords)
		if dx == nil {
			continue
		}
		npts := g.NumPoints()
		phantomLeft[gid] = dx[npts]
		phantomRight[gid] = dx[npts+1]

		if g == nil {
			continue
		}
		switch d := g.Data.(type) {
		case glyf.Simple:
			idx := 0
			for _, contour := range d.Contours {
				for i := range contour {
					contour[i].X = clamp16(float64(contour[i].X) + dx[idx])
					contour[i].Y = clamp16(float64(contour[i].Y) + dy[idx])
					idx++
				}
			}
			g.RecalcBounds()
		case glyf.Composite:
			for i := range d.Components {
				c := &d.Components[i]
				if !c.ArgsAreXY() {
					continue
				}
				c.Arg1 += int32(otRound(dx[i]))
				c.Arg2 += int32(otRound(dy[i]))
			}
		}
	}
	recalcCompositeBounds(glyphs)

	// horizontal metrics, from the phantom points or from "HVAR"
	for gid, g := range glyphs {
		adv := float64(advances[gid]) + phantomRight[gid] - phantomLeft[gid]
		lsb := float64(lsbs[gid])
		if g != nil {
			origin := float64(origXMin[gid]) - float64(lsbs[gid])
			lsb = float64(g.XMin) - origin - phantomLeft[gid]
		}
		if hv != nil {
			adv = float64(advances[gid]) + hv.advanceDelta(gid, coords)
			if d, ok := hv.lsbDelta(gid, coords); ok {
				lsb = float64(lsbs[gid]) + d
			}
		}
		a := otRound(adv)
		if a < 0 {
			a = 0
		} else if a > 0xFFFF {
			a = 0xFFFF
		}
		advances[gid] = uint16(a)
		lsbs[gid] = clamp16(lsb)
	}

	enc, err := glyphs.Encode()
	if err != nil {
		return err
	}
	f.Tables["glyf"] = enc.GlyfData
	f.Tables["loca"] = enc.LocaData
	encodeHmtx(f, advances, lsbs)
	updateBounds(f, glyphs, advances, lsbs, enc.LocaFormat)

	return nil
}

// glyphDeltas accumulates the deltas of all applicable variation
// tuples for one glyph, including the four phantom points.  Sparse
// tuples are completed using delta interpolation for simple glyphs.
// The result is nil if no tuple contributes at the given location.
func glyphDeltas(g *glyf.Glyph, tuples []gvar.Tuple, coords []float64) (dx, dy []float64) {
	n := g.NumPoints() + 4
	for ti := range tuples {
		t := &tuples[ti]
		scalar := t.Scalar(coords)
		if scalar == 0 {
			continue
		}

		tx := make([]float64, n)
		ty := make([]float64, n)
		if t.Points == nil {
			for i := range tx {
				if i < len(t.DeltasX) {
					tx[i] = float64(t.DeltasX[i])
					ty[i] = float64(t.DeltasY[i])
				}
			}
		} else {
			touched := make([]bool, n)
			for k, p := range t.Points {
				if int(p) >= n || k >= len(t.DeltasX) {
					continue
				}
				tx[p] += float64(t.DeltasX[k])
				ty[p] += float64(t.DeltasY[k])
				touched[p] = true
			}
			if g != nil {
				if s, ok := g.Data.(glyf.Simple); ok {
					npts := n - 4
					interpolateUntouched(s.Contours, touched[:npts],
						tx[:npts], ty[:npts])
				}
			}
		}

		if dx == nil {
			dx = make([]float64, n)
			dy = make([]float64, n)
		}
		for i := range tx {
			dx[i] += scalar * tx[i]
			dy[i] += scalar * ty[i]
		}
	}
	return dx, dy
}

// recalcCompositeBounds recomputes the bounding boxes of composite
// glyphs from their (already updated) components.  Glyphs using
// point-matching components keep their old bounding box.
func recalcCompositeBounds(glyphs glyf.Glyphs) {
	for gid, g := range glyphs {
		if g == nil {
			continue
		}
		if _, ok := g.Data.(glyf.Composite); !ok {
			continue
		}
		x0, y0, x1, y1, ok := glyphBBox(glyphs, gid, 0)
		if ok {
			g.XMin = clamp16(x0)
			g.YMin = clamp16(y0)
			g.XMax = clamp16(x1)
			g.YMax = clamp16(y1)
		}
	}
}

const maxComponentDepth = 8

func glyphBBox(glyphs glyf.Glyphs, gid, depth int) (x0, y0, x1, y1 float64, ok bool) {
	if depth > maxComponentDepth || gid < 0 || gid >= len(glyphs) {
		return 0, 0, 0, 0, false
	}
	g := glyphs[gid]
	if g == nil {
		return 0, 0, 0, 0, false
	}

	switch d := g.Data.(type) {
	case glyf.Simple:
		return float64(g.XMin), float64(g.YMin),
			float64(g.XMax), float64(g.YMax), len(d.Contours) > 0
	case glyf.Composite:
		first := true
		for i := range d.Components {
			c := &d.Components[i]
			if !c.ArgsAreXY() {
				return 0, 0, 0, 0, false
			}
			cx0, cy0, cx1, cy1, cok := glyphBBox(glyphs, int(c.GlyphIndex), depth+1)
			if !cok {
				continue
			}
			m := c.Matrix()
			for _, corner := range [4][2]float64{
				{cx0, cy0}, {cx1, cy0}, {cx0, cy1}, {cx1, cy1},
			} {
				x := m[0]*corner[0] + m[2]*corner[1] + float64(c.Arg1)
				y := m[1]*corner[0] + m[3]*corner[1] + float64(c.Arg2)
				if first || x < x0 {
					x0 = x
				}
				if first || y < y0 {
					y0 = y
				}
				if first || x > x1 {
					x1 = x
				}
				if first || y > y1 {
					y1 = y
				}
				first = false
			}
		}
		return x0, y0, x1, y1, !first
	}
	return 0, 0, 0, 0, false
}

// decodeHmtx reads the horizontal metrics of all glyphs.
func decodeHmtx(f *Font, numGlyphs int) ([]uint16, []int16, error) {
	hhea := f.Tables["hhea"]
	hmtx := f.Tables["hmtx"]
	if len(hhea) < 36 {
		return nil, nil, &InvalidFontError{
			SubSystem: "instancer",
			Reason:    "truncated hhea table",
		}
	}
	numH := int(binary.BigEndian.Uint16(hhea[34:36]))
	if numH < 1 || numH > numGlyphs ||
		len(hmtx) < 4*numH+2*(numGlyphs-numH) {
		return nil, nil, &InvalidFontError{
			SubSystem: "instancer",
			Reason:    "hmtx table does not match glyph count",
		}
	}

	advances := make([]uint16, numGlyphs)
	lsbs := make([]int16, numGlyphs)
	for i := 0; i < numH; i++ {
		advances[i] = binary.BigEndian.Uint16(hmtx[4*i:])
		lsbs[i] = int16(binary.BigEndian.Uint16(hmtx[4*i+2:]))
	}
	for i := numH; i < numGlyphs; i++ {
		advances[i] = advances[numH-1]
		lsbs[i] = int16(binary.BigEndian.Uint16(hmtx[4*numH+2*(i-numH):]))
	}
	return advances, lsbs, nil
}

// encodeHmtx writes a full set of long metrics and updates the metric
// count in "hhea" accordingly.
func encodeHmtx(f *Font, advances []uint16, lsbs []int16) {
	numGlyphs := len(advances)

	// trailing glyphs with a repeated advance can share it
	numH := numGlyphs
	for numH > 1 && advances[numH-2] == advances[numH-1] {
		numH--
	}

	hmtx := make([]byte, 4*numH+2*(numGlyphs-numH))
	for i := 0; i < numH; i++ {
		binary.BigEndian.PutUint16(hmtx[4*i:], advances[i])
		binary.BigEndian.PutUint16(hmtx[4*i+2:], uint16(lsbs[i]))
	}
	for i := numH; i < numGlyphs; i++ {
		binary.BigEndian.PutUint16(hmtx[4*numH+2*(i-numH):], uint16(lsbs[i]))
	}
	f.Tables["hmtx"] = hmtx

	hhea := f.mutable("hhea")
	binary.BigEndian.PutUint16(hhea[34:36], uint16(numH))
}

// updateBounds recomputes the font bounding box in "head" and the
// aggregate metrics in "hhea" from the updated outlines.
func updateBounds(f *Font, glyphs glyf.Glyphs, advances []uint16, lsbs []int16, locaFormat int16) {
	var xMin, yMin, xMax, yMax int16
	var advanceMax uint16
	var minLSB, minRSB, extentMax int
	firstBBox := true
	firstLSB := true

	for gid, g := range glyphs {
		if advances[gid] > advanceMax {
			advanceMax = advances[gid]
		}
		if g == nil {
			continue
		}
		if firstBBox || g.XMin < xMin {
			xMin = g.XMin
		}
		if firstBBox || g.YMin < yMin {
			yMin = g.YMin
		}
		if firstBBox || g.XMax > xMax {
			xMax = g.XMax
		}
		if firstBBox || g.YMax > yMax {
			yMax = g.YMax
		}
		firstBBox = false

		lsb := int(lsbs[gid])
		rsb := int(advances[gid]) - lsb - int(g.XMax-g.XMin)
		extent := lsb + int(g.XMax-g.XMin)
		if firstLSB || lsb < minLSB {
			minLSB = lsb
		}
		if firstLSB || rsb < minRSB {
			minRSB = rsb
		}
		if firstLSB || extent > extentMax {
			extentMax = extent
		}
		firstLSB = false
	}

	head := f.mutable("head")
	binary.BigEndian.PutUint16(head[36:38], uint16(xMin))
	binary.BigEndian.PutUint16(head[38:40], uint16(yMin))
	binary.BigEndian.PutUint16(head[40:42], uint16(xMax))
	binary.BigEndian.PutUint16(head[42:44], uint16(yMax))
	binary.BigEndian.PutUint16(head[50:52], uint16(locaFormat))

	hhea := f.mutable("hhea")
	binary.BigEndian.PutUint16(hhea[10:12], advanceMax)
	binary.BigEndian.PutUint16(hhea[12:14], uint16(int16(minLSB)))
	binary.BigEndian.PutUint16(hhea[14:16], uint16(int16(minRSB)))
	binary.BigEndian.PutUint16(hhea[16:18], uint16(int16(extentMax)))
}

// applyCvtDeltas applies the "cvar" variations to the control value
// table.
func applyCvtDeltas(f *Font, coords []float64, axisCount int) error {
	cvarData, ok := f.Tables["cvar"]
	if !ok {
		return nil
	}
	cvt, ok := f.Tables["cvt "]
	if !ok {
		return nil
	}
	numValues := len(cvt) / 2

	tuples, err := gvar.DecodeCvar(cvarData, axisCount, numValues)
	if err != nil {
		return err
	}

	total := make([]float64, numValues)
	changed := false
	for ti := range tuples {
		t := &tuples[ti]
		scalar := t.Scalar(coords)
		if scalar == 0 {
			continue
		}
		if t.Points == nil {
			for i := 0; i < numValues && i < len(t.DeltasX); i++ {
				total[i] += scalar * float64(t.DeltasX[i])
			}
		} else {
			for k, p := range t.Points {
				if int(p) >= numValues || k >= len(t.DeltasX) {
					continue
				}
				total[p] += scalar * float64(t.DeltasX[k])
			}
		}
		changed = true
	}
	if !changed {
		return nil
	}

	out := f.mutable("cvt ")
	for i := range total {
		v := int16(binary.BigEndian.Uint16(out[2*i:]))
		binary.BigEndian.PutUint16(out[2*i:], uint16(clamp16(float64(v)+total[i])))
	}
	return nil
}

func clamp16(x float64) int16 {
	v := otRound(x)
	if v < -32768 {
		v = -32768
	} else if v > 32767 {
		v = 32767
	}
	return int16(v)
}
