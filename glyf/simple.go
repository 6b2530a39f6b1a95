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

package glyf

import (
	"encoding/binary"
)

// Simple glyph point flags.
const (
	flagOnCurve = 0x01
	flagXShort  = 0x02
	flagYShort  = 0x04
	flagRepeat  = 0x08
	flagXSame   = 0x10 // also: x-short sign is positive
	flagYSame   = 0x20 // also: y-short sign is positive
)

func decodeSimple(numContours int, buf []byte) (*Simple, error) {
	if len(buf) < 2*numContours+2 {
		return nil, errInvalidGlyphData
	}
	endPts := make([]int, numContours)
	for i := range endPts {
		endPts[i] = int(binary.BigEndian.Uint16(buf[2*i:]))
		if i > 0 && endPts[i] <= endPts[i-1] {
			return nil, errInvalidGlyphData
		}
	}
	buf = buf[2*numContours:]
	numPoints := 0
	if numContours > 0 {
		numPoints = endPts[numContours-1] + 1
	}

	instrLen := int(binary.BigEndian.Uint16(buf[0:2]))
	if len(buf) < 2+instrLen {
		return nil, errInvalidGlyphData
	}
	instructions := buf[2 : 2+instrLen]
	buf = buf[2+instrLen:]

	// decode the flags
	ff := make([]byte, numPoints)
	i := 0
	for i < numPoints {
		if len(buf) < 1 {
			return nil, errInvalidGlyphData
		}
		flags := buf[0]
		buf = buf[1:]
		ff[i] = flags
		i++
		if flags&flagRepeat != 0 {
			if len(buf) < 1 {
				return nil, errInvalidGlyphData
			}
			count := buf[0]
			buf = buf[1:]
			for count > 0 && i < numPoints {
				ff[i] = flags
				i++
				count--
			}
		}
	}

	// decode the x-coordinates
	xx := make([]int16, numPoints)
	var x int16
	for i, flags := range ff {
		if flags&flagXShort != 0 {
			if len(buf) < 1 {
				return nil, errInvalidGlyphData
			}
			dx := int16(buf[0])
			buf = buf[1:]
			if flags&flagXSame != 0 {
				x += dx
			} else {
				x -= dx
			}
		} else if flags&flagXSame == 0 {
			if len(buf) < 2 {
				return nil, errInvalidGlyphData
			}
			x += int16(binary.BigEndian.Uint16(buf[0:2]))
			buf = buf[2:]
		}
		xx[i] = x
	}

	// decode the y-coordinates
	yy := make([]int16, numPoints)
	var y int16
	for i, flags := range ff {
		if flags&flagYShort != 0 {
			if len(buf) < 1 {
				return nil, errInvalidGlyphData
			}
			dy := int16(buf[0])
			buf = buf[1:]
			if flags&flagYSame != 0 {
				y += dy
			} else {
				y -= dy
			}
		} else if flags&flagYSame == 0 {
			if len(buf) < 2 {
				return nil, errInvalidGlyphData
			}
			y += int16(binary.BigEndian.Uint16(buf[0:2]))
			buf = buf[2:]
		}
		yy[i] = y
	}

	contours := make([][]Point, numContours)
	start := 0
	for i := 0; i < numContours; i++ {
		end := endPts[i] + 1
		pp := make([]Point, end-start)
		for j := start; j < end; j++ {
			pp[j-start] = Point{xx[j], yy[j], ff[j]&flagOnCurve != 0}
		}
		start = end
		contours[i] = pp
	}

	return &Simple{
		Contours:     contours,
		Instructions: instructions,
	}, nil
}

func (d Simple) append(buf []byte) ([]byte, error) {
	numPoints := 0
	for _, c := range d.Contours {
		if len(c) == 0 {
			return nil, errInvalidGlyphData
		}
		numPoints += len(c)
	}
	if numPoints > 0xFFFF {
		return nil, errInvalidGlyphData
	}

	// endPtsOfContours
	end := -1
	for _, c := range d.Contours {
		end += len(c)
		buf = append(buf, byte(end>>8), byte(end))
	}

	// instructions
	n := len(d.Instructions)
	buf = append(buf, byte(n>>8), byte(n))
	buf = append(buf, d.Instructions...)

	// flags and coordinate deltas
	flags := make([]byte, 0, numPoints)
	var xData, yData []byte
	var prevX, prevY int16
	for _, c := range d.Contours {
		for _, p := range c {
			var f byte
			if p.OnCurve {
				f |= flagOnCurve
			}

			dx := int32(p.X) - int32(prevX)
			switch {
			case dx == 0:
				f |= flagXSame
			case dx >= -255 && dx <= 255:
				f |= flagXShort
				if dx > 0 {
					f |= flagXSame
				} else {
					dx = -dx
				}
				xData = append(xData, byte(dx))
			default:
				xData = append(xData, byte(dx>>8), byte(dx))
			}

			dy := int32(p.Y) - int32(prevY)
			switch {
			case dy == 0:
				f |= flagYSame
			case dy >= -255 && dy <= 255:
				f |= flagYShort
				if dy > 0 {
					f |= flagYSame
				} else {
					dy = -dy
				}
				yData = append(yData, byte(dy))
			default:
				yData = append(yData, byte(dy>>8), byte(dy))
			}

			flags = append(flags, f)
			prevX, prevY = p.X, p.Y
		}
	}

	buf = append(buf, flags...)
	buf = append(buf, xData...)
	buf = append(buf, yData...)
	return buf, nil
}

// RecalcBounds updates the bounding box of a simple glyph from its
// points.  Composite glyph bounds depend on other glyphs and are
// handled by the caller.
func (g *Glyph) RecalcBounds() {
	d, ok := g.Data.(Simple)
	if !ok {
		return
	}
	first := true
	var xMin, yMin, xMax, yMax int16
	for _, c := range d.Contours {
		for _, p := range c {
			if first || p.X < xMin {
				xMin = p.X
			}
			if first || p.Y < yMin {
				yMin = p.Y
			}
			if first || p.X > xMax {
				xMax = p.X
			}
			if first || p.Y > yMax {
				yMax = p.Y
			}
			first = false
		}
	}
	g.XMin, g.YMin, g.XMax, g.YMax = xMin, yMin, xMax, yMax
}
