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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticKey struct {
	name      string
	values    []Value
	subkeys   []*staticKey
	valueErr  error
	subkeyErr error
}

func (k *staticKey) Name() string { return k.name }

func (k *staticKey) Values() ([]Value, error) {
	return k.values, k.valueErr
}

func (k *staticKey) Subkeys() ([]Key, error) {
	if k.subkeyErr != nil {
		return nil, k.subkeyErr
	}
	keys := make([]Key, len(k.subkeys))
	for i, subkey := range k.subkeys {
		keys[i] = subkey
	}
	return keys, nil
}

func sz(name, value string) Value {
	return Value{Name: name, Type: RegSz, Data: utf16le(value + "\x00")}
}

func TestWalk(t *testing.T) {
	tests := []struct {
		name        string
		key         *staticKey
		want        ValueMap
		wantPartial []string
	}{
		{
			"Empty key",
			&staticKey{name: "TeamViewer"},
			ValueMap{},
			nil,
		},
		{
			"No subkeys",
			&staticKey{name: "TeamViewer", values: []Value{sz("ClientID", "1"), sz("Version", "15")}},
			ValueMap{"ClientID": "1", "Version": "15"},
			nil,
		},
		{
			"Subkey overrides parent",
			&staticKey{
				name:   "TeamViewer",
				values: []Value{sz("Username", "parent")},
				subkeys: []*staticKey{
					{name: "Child", values: []Value{sz("Username", "child")}},
				},
			},
			ValueMap{"Username": "child"},
			nil,
		},
		{
			"Later sibling wins",
			&staticKey{
				name: "TeamViewer",
				subkeys: []*staticKey{
					{name: "A", values: []Value{sz("X", "a")}},
					{name: "B", values: []Value{sz("X", "b")}, subkeys: []*staticKey{
						{name: "C", values: []Value{sz("Y", "c")}},
					}},
				},
			},
			ValueMap{"X": "b", "Y": "c"},
			nil,
		},
		{
			"Corrupt branch is skipped",
			&staticKey{
				name:   "TeamViewer",
				values: []Value{sz("ClientID", "7")},
				subkeys: []*staticKey{
					{name: "Broken", valueErr: errors.New("bad cell")},
					{name: "Good", values: []Value{sz("Version", "15")}},
				},
			},
			ValueMap{"ClientID": "7", "Version": "15"},
			[]string{"TeamViewer/Broken"},
		},
		{
			"Unreadable subkey list keeps own values",
			&staticKey{
				name:      "TeamViewer",
				values:    []Value{sz("ClientID", "7")},
				subkeyErr: errors.New("bad list"),
			},
			ValueMap{"ClientID": "7"},
			[]string{"TeamViewer"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, partial := Walk(tt.key)
			assert.Equal(t, tt.want, got)
			require.Len(t, partial, len(tt.wantPartial))
			for i, p := range partial {
				assert.Equal(t, tt.wantPartial[i], p.Path)
				assert.Error(t, p.Err)
			}
		})
	}
}

func TestWalk_binaryValues(t *testing.T) {
	key := &staticKey{name: "TeamViewer", values: []Value{
		{Name: "SecurityPasswordAES", Type: RegBinary, Data: []byte{0x01, 0xab}},
		{Name: "ClientID", Type: RegDword, Data: []byte{0x0a, 0, 0, 0}},
	}}
	got, partial := Walk(key)
	assert.Empty(t, partial)
	assert.Equal(t, ValueMap{"SecurityPasswordAES": "Raw: 01 ab", "ClientID": "10"}, got)
}

func TestPartialReadError(t *testing.T) {
	cause := errors.New("bad cell")
	err := &PartialReadError{Path: "TeamViewer/Broken", Err: cause}
	assert.Equal(t, "could not read registry key TeamViewer/Broken: bad cell", err.Error())
	assert.True(t, errors.Is(err, cause))
}
