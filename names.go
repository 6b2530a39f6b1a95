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
	"math"
	"strings"

	"seehuhn.de/go/instancer/name"
)

// The standard style names for the usWeightClass values.
var weightNames = map[int]string{
	100: "Thin",
	200: "ExtraLight",
	300: "Light",
	400: "Regular",
	500: "Medium",
	600: "SemiBold",
	700: "Bold",
	800: "ExtraBold",
	900: "Black",
}

func weightName(weight int) string {
	w := (weight + 50) / 100 * 100
	if w < 100 {
		w = 100
	} else if w > 900 {
		w = 900
	}
	return weightNames[w]
}

// The usWidthClass values for the standard "wdth" axis positions.
var widthClasses = []struct {
	value float64
	class uint16
}{
	{50, 1},
	{62.5, 2},
	{75, 3},
	{87.5, 4},
	{100, 5},
	{112.5, 6},
	{125, 7},
	{150, 8},
	{200, 9},
}

func widthClass(width float64) uint16 {
	best := widthClasses[0]
	for _, w := range widthClasses[1:] {
		if math.Abs(w.value-width) < math.Abs(best.value-width) {
			best = w
		}
	}
	return best.class
}

// pinnedWeight returns the weight class of the instance: the pinned
// "wght" value if the font had a weight axis, and the weight class
// declared in "OS/2" otherwise.
func pinnedWeight(f *Font, limits map[string]float64) int {
	if w, ok := limits["wght"]; ok {
		return otRound(w)
	}
	if os2 := f.Tables["OS/2"]; len(os2) >= 6 {
		return int(binary.BigEndian.Uint16(os2[4:6]))
	}
	return 400
}

// pinnedItalic reports whether the pinned location is an italic style.
func pinnedItalic(limits map[string]float64) bool {
	if v, ok := limits["ital"]; ok && v >= 0.5 {
		return true
	}
	if v, ok := limits["slnt"]; ok && v < 0 {
		return true
	}
	return false
}

// updateAttributes patches the style-related fields of "OS/2", "head"
// and "post" to match the pinned design-space location.
func updateAttributes(f *Font, limits map[string]float64) {
	weight := pinnedWeight(f, limits)
	italic := pinnedItalic(limits)
	bold := weight == 700

	if os2 := f.mutable("OS/2"); len(os2) >= 64 {
		w := weight
		if w < 1 {
			w = 1
		} else if w > 1000 {
			w = 1000
		}
		binary.BigEndian.PutUint16(os2[4:6], uint16(w))
		if width, ok := limits["wdth"]; ok {
			binary.BigEndian.PutUint16(os2[6:8], widthClass(width))
		}

		const (
			fsItalic  = 1 << 0
			fsBold    = 1 << 5
			fsRegular = 1 << 6
		)
		sel := binary.BigEndian.Uint16(os2[62:64])
		sel &^= fsItalic | fsBold | fsRegular
		if italic {
			sel |= fsItalic
		}
		if bold {
			sel |= fsBold
		}
		if !italic && !bold {
			sel |= fsRegular
		}
		binary.BigEndian.PutUint16(os2[62:64], sel)
	}

	if head := f.mutable("head"); len(head) >= 54 {
		const (
			macBold   = 1 << 0
			macItalic = 1 << 1
		)
		macStyle := binary.BigEndian.Uint16(head[44:46])
		macStyle &^= macBold | macItalic
		if bold {
			macStyle |= macBold
		}
		if italic {
			macStyle |= macItalic
		}
		binary.BigEndian.PutUint16(head[44:46], macStyle)
	}

	if slant, ok := limits["slnt"]; ok {
		if post := f.mutable("post"); len(post) >= 8 {
			angle := int32(otRound(slant * 65536))
			binary.BigEndian.PutUint32(post[4:8], uint32(angle))
		}
	}
}

// updateNames rewrites the style-related entries of the "name" table
// for the pinned instance: the legacy family and subfamily (IDs 1
// and 2, restricted to the regular/bold/italic model), the full and
// PostScript names (IDs 4 and 6), and the typographic family and
// subfamily (IDs 16 and 17) when they differ from the legacy names.
func updateNames(f *Font, limits map[string]float64) error {
	nameData, ok := f.Tables["name"]
	if !ok {
		return nil
	}
	info, err := name.Decode(nameData)
	if err != nil {
		return err
	}

	weight := pinnedWeight(f, limits)
	italic := pinnedItalic(limits)
	bold := weight == 700
	wn := weightName(weight)

	family := info.Get(name.IDTypoFamily)
	if family == "" {
		family = info.Get(name.IDFamily)
	}
	if family == "" {
		family = "Unknown"
	}

	styleName := wn
	if italic {
		if wn == "Regular" {
			styleName = "Italic"
		} else {
			styleName = wn + " Italic"
		}
	}

	var legacySub string
	switch {
	case bold && italic:
		legacySub = "Bold Italic"
	case bold:
		legacySub = "Bold"
	case italic:
		legacySub = "Italic"
	default:
		legacySub = "Regular"
	}
	legacyFamily := family
	if !bold && wn != "Regular" {
		legacyFamily = family + " " + wn
	}

	fullName := family + " " + styleName
	psName := postScriptName(family, styleName)

	info.Set(name.IDFamily, legacyFamily)
	info.Set(name.IDSubfamily, legacySub)
	info.Set(name.IDFullName, fullName)
	info.Set(name.IDPostScriptName, psName)
	if legacyFamily != family || legacySub != styleName {
		info.Set(name.IDTypoFamily, family)
		info.Set(name.IDTypoSubfamily, styleName)
	} else {
		info.Remove(name.IDTypoFamily)
		info.Remove(name.IDTypoSubfamily)
	}

	f.Tables["name"] = info.Encode()
	return nil
}

// postScriptName assembles the name ID 6 value: family and style with
// the characters forbidden for PostScript names removed, joined by a
// hyphen, truncated to the 63 byte limit.
func postScriptName(family, style string) string {
	clean := func(s string) string {
		var b strings.Builder
		for _, r := range s {
			if r <= ' ' || r > '~' {
				continue
			}
			switch r {
			case '[', ']', '(', ')', '{', '}', '<', '>', '/', '%':
				continue
			}
			b.WriteRune(r)
		}
		return b.String()
	}
	res := clean(family) + "-" + clean(style)
	if len(res) > 63 {
		res = res[:63]
	}
	return res
}
