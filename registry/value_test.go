// Copyright (c) 2021 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func utf16le(s string) []byte {
	var b []byte
	for _, r := range s {
		b = append(b, byte(r), byte(r>>8))
	}
	return b
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"String", Value{"InstallationDirectory", RegSz, utf16le("C:\\Program Files\\TeamViewer\x00")}, "C:\\Program Files\\TeamViewer"},
		{"String without terminator", Value{"Version", RegSz, utf16le("15.17.6")}, "15.17.6"},
		{"Expandable string", Value{"Path", RegExpandSz, utf16le("%ProgramFiles%\\TeamViewer\x00")}, "%ProgramFiles%\\TeamViewer"},
		{"Multi string leading terminator", Value{"LastMACUsed", RegMultiSz, utf16le("\x00001122334455\x00\x00")}, "[]"},
		{"Multi string entries", Value{"Dirs", RegMultiSz, utf16le("a\x00b\x00\x00")}, "[a, b]"},
		{"Dword", Value{"ClientID", RegDword, []byte{0x39, 0x30, 0x00, 0x00}}, "12345"},
		{"Dword unsigned", Value{"Flags", RegDword, []byte{0xff, 0xff, 0xff, 0xff}}, "4294967295"},
		{"Qword", Value{"Stamp", RegQword, []byte{0x01, 0, 0, 0, 0, 0, 0, 0}}, "1"},
		{"Short dword", Value{"ClientID", RegDword, []byte{0x39}}, "Raw: 39"},
		{"Binary", Value{"Key", RegBinary, []byte{0x00, 0x0a, 0xff, 0x80}}, "Raw: 00 0a ff 80"},
		{"Big endian dword", Value{"X", RegDwordBigEndian, []byte{0, 0, 0, 1}}, "Raw: 00 00 00 01"},
		{"Unknown type", Value{"X", ValueType(0x7fff), []byte{0xde, 0xad}}, "Raw: de ad"},
		{"Empty binary", Value{"X", RegBinary, nil}, "Raw:"},
		{"Odd string", Value{"X", RegSz, []byte{0x41, 0x00, 0x42}}, "Raw: 41 00 42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(tt.value))
		})
	}
}

func TestCoerce_hexDumpGroups(t *testing.T) {
	for n := 0; n < 300; n += 7 {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i * 31)
		}
		got := Coerce(Value{Name: "blob", Type: RegBinary, Data: data})
		assert.True(t, strings.HasPrefix(got, "Raw:"))
		groups := strings.Fields(strings.TrimPrefix(got, "Raw:"))
		assert.Len(t, groups, n)
		for _, group := range groups {
			assert.Len(t, group, 2)
			assert.Equal(t, strings.ToLower(group), group)
		}
	}
}

func TestValueType_String(t *testing.T) {
	assert.Equal(t, "REG_SZ", RegSz.String())
	assert.Equal(t, "REG_QWORD", RegQword.String())
	assert.Equal(t, "REG_UNKNOWN(99)", ValueType(99).String())
}
