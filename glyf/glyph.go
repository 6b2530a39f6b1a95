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

// Glyph represents a single glyph in a TrueType font.
type Glyph struct {
	XMin, YMin, XMax, YMax int16
	Data                   interface{} // either Simple or Composite
}

// A Point is a point in a glyph outline.
type Point struct {
	X, Y    int16
	OnCurve bool
}

// Simple is a glyph described by its own contours.
type Simple struct {
	Contours     [][]Point
	Instructions []byte
}

// Composite is a glyph assembled from other glyphs.
type Composite struct {
	Components   []Component
	Instructions []byte // nil if the glyph has no instructions
}

// Component is a single component of a composite glyph.  Arg1 and Arg2
// are the x and y offset if ArgsAreXY returns true, and point numbers
// otherwise.  Transform holds the undecoded scale bytes, if any.
type Component struct {
	Flags      uint16
	GlyphIndex uint16
	Arg1, Arg2 int32
	Transform  []byte
}

// Composite glyph component flags.
const (
	flagArg1And2AreWords   = 0x0001
	flagArgsAreXYValues    = 0x0002
	flagWeHaveAScale       = 0x0008
	flagMoreComponents     = 0x0020
	flagWeHaveAnXAndYScale = 0x0040
	flagWeHaveATwoByTwo    = 0x0080
	flagWeHaveInstructions = 0x0100
)

// ArgsAreXY reports whether Arg1 and Arg2 are x and y offsets rather
// than point numbers.
func (c *Component) ArgsAreXY() bool {
	return c.Flags&flagArgsAreXYValues != 0
}

// Matrix returns the 2x2 transformation matrix of the component, in
// the order xx, xy, yx, yy.
func (c *Component) Matrix() [4]float64 {
	m := [4]float64{1, 0, 0, 1}
	t := c.Transform
	switch {
	case c.Flags&flagWeHaveAScale != 0 && len(t) >= 2:
		s := f2dot14(t)
		m = [4]float64{s, 0, 0, s}
	case c.Flags&flagWeHaveAnXAndYScale != 0 && len(t) >= 4:
		m = [4]float64{f2dot14(t), 0, 0, f2dot14(t[2:])}
	case c.Flags&flagWeHaveATwoByTwo != 0 && len(t) >= 8:
		m = [4]float64{f2dot14(t), f2dot14(t[2:]), f2dot14(t[4:]), f2dot14(t[6:])}
	}
	return m
}

func decodeGlyph(data []byte) (*Glyph, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < 10 {
		return nil, errInvalidGlyphData
	}

	numCont := int16(binary.BigEndian.Uint16(data[0:2]))
	g := &Glyph{
		XMin: int16(binary.BigEndian.Uint16(data[2:4])),
		YMin: int16(binary.BigEndian.Uint16(data[4:6])),
		XMax: int16(binary.BigEndian.Uint16(data[6:8])),
		YMax: int16(binary.BigEndian.Uint16(data[8:10])),
	}

	if numCont >= 0 {
		simple, err := decodeSimple(int(numCont), data[10:])
		if err != nil {
			return nil, err
		}
		g.Data = *simple
	} else {
		comp, err := decodeComposite(data[10:])
		if err != nil {
			return nil, err
		}
		g.Data = *comp
	}
	return g, nil
}

func (g *Glyph) encode() ([]byte, error) {
	if g == nil {
		return nil, nil
	}

	var numContours int16
	switch d := g.Data.(type) {
	case Simple:
		numContours = int16(len(d.Contours))
	case Composite:
		numContours = -1
	default:
		return nil, errInvalidGlyphData
	}

	buf := make([]byte, 10, 32)
	binary.BigEndian.PutUint16(buf[0:2], uint16(numContours))
	binary.BigEndian.PutUint16(buf[2:4], uint16(g.XMin))
	binary.BigEndian.PutUint16(buf[4:6], uint16(g.YMin))
	binary.BigEndian.PutUint16(buf[6:8], uint16(g.XMax))
	binary.BigEndian.PutUint16(buf[8:10], uint16(g.YMax))

	switch d := g.Data.(type) {
	case Simple:
		return d.append(buf)
	case Composite:
		return d.append(buf)
	}
	return buf, nil
}

func decodeComposite(data []byte) (*Composite, error) {
	var components []Component
	haveInstructions := false
	for {
		if len(data) < 4 {
			return nil, errInvalidGlyphData
		}
		flags := binary.BigEndian.Uint16(data[0:2])
		glyphIndex := binary.BigEndian.Uint16(data[2:4])
		data = data[4:]

		if flags&flagWeHaveInstructions != 0 {
			haveInstructions = true
		}

		var arg1, arg2 int32
		if flags&flagArg1And2AreWords != 0 {
			if len(data) < 4 {
				return nil, errInvalidGlyphData
			}
			if flags&flagArgsAreXYValues != 0 {
				arg1 = int32(int16(binary.BigEndian.Uint16(data[0:2])))
				arg2 = int32(int16(binary.BigEndian.Uint16(data[2:4])))
			} else {
				arg1 = int32(binary.BigEndian.Uint16(data[0:2]))
				arg2 = int32(binary.BigEndian.Uint16(data[2:4]))
			}
			data = data[4:]
		} else {
			if len(data) < 2 {
				return nil, errInvalidGlyphData
			}
			if flags&flagArgsAreXYValues != 0 {
				arg1 = int32(int8(data[0]))
				arg2 = int32(int8(data[1]))
			} else {
				arg1 = int32(data[0])
				arg2 = int32(data[1])
			}
			data = data[2:]
		}

		var transLen int
		if flags&flagWeHaveAScale != 0 {
			transLen = 2
		} else if flags&flagWeHaveAnXAndYScale != 0 {
			transLen = 4
		} else if flags&flagWeHaveATwoByTwo != 0 {
			transLen = 8
		}
		if len(data) < transLen {
			return nil, errInvalidGlyphData
		}
		var transform []byte
		if transLen > 0 {
			transform = data[:transLen]
		}
		data = data[transLen:]

		components = append(components, Component{
			Flags:      flags,
			GlyphIndex: glyphIndex,
			Arg1:       arg1,
			Arg2:       arg2,
			Transform:  transform,
		})

		if flags&flagMoreComponents == 0 {
			break
		}
	}

	var instructions []byte
	if haveInstructions && len(data) >= 2 {
		n := int(binary.BigEndian.Uint16(data[0:2]))
		data = data[2:]
		if n > len(data) {
			n = len(data)
		}
		instructions = data[:n]
	}

	return &Composite{
		Components:   components,
		Instructions: instructions,
	}, nil
}

func (d Composite) append(buf []byte) ([]byte, error) {
	for i := range d.Components {
		c := &d.Components[i]

		flags := c.Flags
		if i == len(d.Components)-1 {
			flags &^= flagMoreComponents
		} else {
			flags |= flagMoreComponents
		}
		if d.Instructions != nil && i == 0 {
			flags |= flagWeHaveInstructions
		} else {
			flags &^= flagWeHaveInstructions
		}

		// Offsets changed by the instancer may no longer fit into a
		// single byte.
		needWords := c.Arg1 < -128 || c.Arg1 > 127 ||
			c.Arg2 < -128 || c.Arg2 > 127
		if c.ArgsAreXY() {
			if c.Arg1 < -32768 || c.Arg1 > 32767 ||
				c.Arg2 < -32768 || c.Arg2 > 32767 {
				return nil, errInvalidGlyphData
			}
			if needWords {
				flags |= flagArg1And2AreWords
			}
		}

		buf = append(buf,
			byte(flags>>8), byte(flags),
			byte(c.GlyphIndex>>8), byte(c.GlyphIndex))
		if flags&flagArg1And2AreWords != 0 {
			buf = append(buf,
				byte(c.Arg1>>8), byte(c.Arg1),
				byte(c.Arg2>>8), byte(c.Arg2))
		} else {
			buf = append(buf, byte(c.Arg1), byte(c.Arg2))
		}
		buf = append(buf, c.Transform...)
	}
	if d.Instructions != nil {
		n := len(d.Instructions)
		buf = append(buf, byte(n>>8), byte(n))
		buf = append(buf, d.Instructions...)
	}
	return buf, nil
}

func f2dot14(buf []byte) float64 {
	return float64(int16(binary.BigEndian.Uint16(buf))) / 16384
}
