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

// Package name reads and writes OpenType "name" tables.
//
// Unlike a full localization layer, this package keeps every name
// record it does not understand byte-for-byte intact, so that
// rewriting a few style names does not lose information stored in
// other languages or encodings.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name
package name

import (
	"encoding/binary"
	"errors"
	"sort"
	"unicode/utf16"
)

// Standard name IDs used when restyling a font.
const (
	IDFamily         = 1
	IDSubfamily      = 2
	IDIdentifier     = 3
	IDFullName       = 4
	IDPostScriptName = 6
	IDTypoFamily     = 16
	IDTypoSubfamily  = 17
)

// Record is a single name record.  Value holds the string in the
// encoding implied by PlatformID and EncodingID.
type Record struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Value      []byte
}

// Info contains the records of a "name" table.
type Info struct {
	Records []Record
}

// Decode extracts the records from the binary representation of a
// "name" table.
func Decode(data []byte) (*Info, error) {
	if len(data) < 6 {
		return nil, errMalformed
	}
	version := binary.BigEndian.Uint16(data[0:2])
	numRec := int(binary.BigEndian.Uint16(data[2:4]))
	storageOffset := int(binary.BigEndian.Uint16(data[4:6]))
	if version > 1 {
		return nil, errMalformed
	}
	if 6+12*numRec > len(data) || storageOffset > len(data) {
		return nil, errMalformed
	}

	info := &Info{
		Records: make([]Record, 0, numRec),
	}
	for i := 0; i < numRec; i++ {
		base := 6 + 12*i
		rec := Record{
			PlatformID: binary.BigEndian.Uint16(data[base:]),
			EncodingID: binary.BigEndian.Uint16(data[base+2:]),
			LanguageID: binary.BigEndian.Uint16(data[base+4:]),
			NameID:     binary.BigEndian.Uint16(data[base+6:]),
		}
		length := int(binary.BigEndian.Uint16(data[base+8:]))
		offset := int(binary.BigEndian.Uint16(data[base+10:]))
		if storageOffset+offset+length > len(data) {
			return nil, errMalformed
		}
		rec.Value = data[storageOffset+offset : storageOffset+offset+length]
		info.Records = append(info.Records, rec)
	}
	return info, nil
}

// Encode converts the name table into its binary form.  Identical
// strings are stored only once.
func (info *Info) Encode() []byte {
	records := make([]Record, len(info.Records))
	copy(records, info.Records)
	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if a.PlatformID != b.PlatformID {
			return a.PlatformID < b.PlatformID
		}
		if a.EncodingID != b.EncodingID {
			return a.EncodingID < b.EncodingID
		}
		if a.LanguageID != b.LanguageID {
			return a.LanguageID < b.LanguageID
		}
		return a.NameID < b.NameID
	})

	var storage []byte
	idx := make(map[string]int)
	numRec := len(records)
	startOfStrings := 6 + 12*numRec
	res := make([]byte, startOfStrings)
	binary.BigEndian.PutUint16(res[2:4], uint16(numRec))
	binary.BigEndian.PutUint16(res[4:6], uint16(startOfStrings))
	for i, rec := range records {
		offset, ok := idx[string(rec.Value)]
		if !ok {
			offset = len(storage)
			idx[string(rec.Value)] = offset
			storage = append(storage, rec.Value...)
		}
		base := 6 + 12*i
		binary.BigEndian.PutUint16(res[base:], rec.PlatformID)
		binary.BigEndian.PutUint16(res[base+2:], rec.EncodingID)
		binary.BigEndian.PutUint16(res[base+4:], rec.LanguageID)
		binary.BigEndian.PutUint16(res[base+6:], rec.NameID)
		binary.BigEndian.PutUint16(res[base+8:], uint16(len(rec.Value)))
		binary.BigEndian.PutUint16(res[base+10:], uint16(offset))
	}
	return append(res, storage...)
}

// Get returns the value of the given name ID, preferring the Windows
// US-English record.  The empty string is returned if the name is not
// present in an encoding this package understands.
func (info *Info) Get(nameID uint16) string {
	var fallback string
	for _, rec := range info.Records {
		if rec.NameID != nameID {
			continue
		}
		switch {
		case rec.PlatformID == 3 && rec.EncodingID == 1:
			s := utf16Decode(rec.Value)
			if rec.LanguageID == 0x0409 {
				return s
			}
			if fallback == "" {
				fallback = s
			}
		case rec.PlatformID == 1 && rec.EncodingID == 0:
			if fallback == "" {
				fallback = macDecode(rec.Value)
			}
		}
	}
	return fallback
}

// Set replaces the value of the given name ID in all records with an
// encoding this package can write.  If no such record exists, a
// Windows US-English record is added.
func (info *Info) Set(nameID uint16, value string) {
	found := false
	for i := range info.Records {
		rec := &info.Records[i]
		if rec.NameID != nameID {
			continue
		}
		switch {
		case rec.PlatformID == 3 && rec.EncodingID == 1:
			rec.Value = utf16Encode(value)
			found = true
		case rec.PlatformID == 1 && rec.EncodingID == 0:
			rec.Value = macEncode(value)
			found = true
		}
	}
	if !found {
		info.Records = append(info.Records, Record{
			PlatformID: 3,
			EncodingID: 1,
			LanguageID: 0x0409,
			NameID:     nameID,
			Value:      utf16Encode(value),
		})
	}
}

// Remove deletes all records with the given name ID.
func (info *Info) Remove(nameID uint16) {
	res := info.Records[:0]
	for _, rec := range info.Records {
		if rec.NameID != nameID {
			res = append(res, rec)
		}
	}
	info.Records = res
}

func utf16Encode(s string) []byte {
	rr := utf16.Encode([]rune(s))
	res := make([]byte, 2*len(rr))
	for i, r := range rr {
		binary.BigEndian.PutUint16(res[2*i:], r)
	}
	return res
}

func utf16Decode(buf []byte) string {
	words := make([]uint16, len(buf)/2)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(buf[2*i:])
	}
	return string(utf16.Decode(words))
}

// The style names written by this package are plain ASCII, so the
// Macintosh Roman encoding reduces to a byte-range check.
func macEncode(s string) []byte {
	res := make([]byte, 0, len(s))
	for _, r := range s {
		if r < 0x80 {
			res = append(res, byte(r))
		} else {
			res = append(res, '?')
		}
	}
	return res
}

func macDecode(buf []byte) string {
	rr := make([]rune, 0, len(buf))
	for _, b := range buf {
		if b < 0x80 {
			rr = append(rr, rune(b))
		}
	}
	return string(rr)
}

var errMalformed = errors.New("name: malformed table")
