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
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWrite(t *testing.T) {
	f := makeTestFont(t)

	buf := &bytes.Buffer{}
	n, err := f.Write(buf)
	if err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	if n != int64(len(data)) {
		t.Errorf("reported %d bytes, wrote %d", n, len(data))
	}
	if len(data)%4 != 0 {
		t.Error("file length not a multiple of 4")
	}

	// The checkSumAdjustment in the "head" table makes the whole file
	// sum to the magic constant.
	if sum := fileChecksum(data); sum != 0xB1B0AFBA {
		t.Errorf("file checksum is %#08x", sum)
	}

	// The table directory must be sorted by tag, with valid offsets.
	numTables := int(binary.BigEndian.Uint16(data[4:6]))
	if numTables != len(f.Tables) {
		t.Errorf("directory lists %d tables, want %d",
			numTables, len(f.Tables))
	}
	var prevTag string
	for i := 0; i < numTables; i++ {
		base := 12 + 16*i
		tag := string(data[base : base+4])
		offset := binary.BigEndian.Uint32(data[base+8:])
		length := binary.BigEndian.Uint32(data[base+12:])

		if tag <= prevTag {
			t.Errorf("table %q out of order", tag)
		}
		prevTag = tag
		if offset%4 != 0 {
			t.Errorf("table %q not aligned", tag)
		}
		if int(offset)+int(length) > len(data) {
			t.Errorf("table %q extends beyond the file", tag)
		}
		if d := bytes.Compare(f.Tables[tag], data[offset:offset+length]); d != 0 {
			t.Errorf("table %q corrupted", tag)
		}
	}
}

// fileChecksum sums the data as big-endian uint32 values, with zero
// padding at the end.
func fileChecksum(data []byte) uint32 {
	var sum uint32
	for len(data) >= 4 {
		sum += binary.BigEndian.Uint32(data)
		data = data[4:]
	}
	if len(data) > 0 {
		var tail [4]byte
		copy(tail[:], data)
		sum += binary.BigEndian.Uint32(tail[:])
	}
	return sum
}
