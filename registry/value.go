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

// Package registry reads TeamViewer settings from offline Windows registry
// hives. It wraps the hive parser behind the small Key interface, converts
// typed values into display strings and flattens key trees into a single
// name to value mapping.
package registry

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// ValueType is the Windows registry value type code.
type ValueType uint32

// Registry value types as stored in the hive.
const (
	RegNone             ValueType = 0
	RegSz               ValueType = 1
	RegExpandSz         ValueType = 2
	RegBinary           ValueType = 3
	RegDword            ValueType = 4
	RegDwordBigEndian   ValueType = 5
	RegLink             ValueType = 6
	RegMultiSz          ValueType = 7
	RegResourceList     ValueType = 8
	RegFullResourceDesc ValueType = 9
	RegResourceReqList  ValueType = 10
	RegQword            ValueType = 11
)

var valueTypeNames = map[ValueType]string{
	RegNone:             "REG_NONE",
	RegSz:               "REG_SZ",
	RegExpandSz:         "REG_EXPAND_SZ",
	RegBinary:           "REG_BINARY",
	RegDword:            "REG_DWORD",
	RegDwordBigEndian:   "REG_DWORD_BIG_ENDIAN",
	RegLink:             "REG_LINK",
	RegMultiSz:          "REG_MULTI_SZ",
	RegResourceList:     "REG_RESOURCE_LIST",
	RegFullResourceDesc: "REG_FULL_RESOURCE_DESCRIPTOR",
	RegResourceReqList:  "REG_RESOURCE_REQUIREMENTS_LIST",
	RegQword:            "REG_QWORD",
}

func (t ValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("REG_UNKNOWN(%d)", uint32(t))
}

// Value is a single registry value with its raw data.
type Value struct {
	Name string
	Type ValueType
	Data []byte
}

const rawPrefix = "Raw: "

// Coerce converts a registry value into its string form. Strings are
// returned as stored, multi strings as "[a, b]", integers in decimal and
// everything else as a hex dump prefixed with "Raw: ". Coerce never fails;
// data that cannot be decoded for its declared type is hex dumped.
func Coerce(value Value) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = hexDump(value.Data)
		}
	}()

	switch value.Type {
	case RegSz, RegExpandSz:
		str, err := decodeString(value.Data)
		if err != nil {
			return hexDump(value.Data)
		}
		return str
	case RegMultiSz:
		list, err := decodeMultiString(value.Data)
		if err != nil {
			return hexDump(value.Data)
		}
		return "[" + strings.Join(list, ", ") + "]"
	case RegDword:
		if len(value.Data) < 4 {
			return hexDump(value.Data)
		}
		return strconv.FormatUint(uint64(binary.LittleEndian.Uint32(value.Data)), 10)
	case RegQword:
		if len(value.Data) < 8 {
			return hexDump(value.Data)
		}
		return strconv.FormatUint(binary.LittleEndian.Uint64(value.Data), 10)
	default:
		return hexDump(value.Data)
	}
}

func hexDump(data []byte) string {
	groups := make([]string, len(data))
	for i, b := range data {
		groups[i] = fmt.Sprintf("%02x", b)
	}
	return strings.TrimSpace(rawPrefix + strings.Join(groups, " "))
}

func decodeUTF16(data []byte) (string, error) {
	if len(data)%2 != 0 {
		if data[len(data)-1] != 0 {
			return "", fmt.Errorf("odd length utf-16 data (%d bytes)", len(data))
		}
		data = data[:len(data)-1]
	}
	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// decodeString returns the text up to the first NUL terminator.
func decodeString(data []byte) (string, error) {
	s, err := decodeUTF16(data)
	if err != nil {
		return "", err
	}
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return s, nil
}

// decodeMultiString splits NUL separated strings, the list ends at the first
// empty entry.
func decodeMultiString(data []byte) ([]string, error) {
	s, err := decodeUTF16(data)
	if err != nil {
		return nil, err
	}
	list := []string{}
	for _, entry := range strings.Split(s, "\x00") {
		if entry == "" {
			break
		}
		list = append(list, entry)
	}
	return list, nil
}
