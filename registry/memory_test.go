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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleHive() *MemoryHive {
	return &MemoryHive{Root: &MemoryKey{KeyName: "ROOT", Children: []*MemoryKey{
		{KeyName: "WOW6432Node", Children: []*MemoryKey{
			{KeyName: "TeamViewer", KeyValues: []Value{sz("ClientID", "1234")}, Children: []*MemoryKey{
				{KeyName: "Version14", KeyValues: []Value{sz("Version", "14.2")}},
			}},
		}},
	}}}
}

func TestMemoryHive_OpenKey(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"Nested", "WOW6432Node/TeamViewer", "TeamViewer", false},
		{"Case insensitive", "wow6432node/teamviewer/version14", "Version14", false},
		{"Surrounding slashes", "/WOW6432Node/", "WOW6432Node", false},
		{"Root", "", "ROOT", false},
		{"Missing", "TeamViewer", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := exampleHive().OpenKey(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OpenKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assert.Equal(t, ErrKeyNotFound, errors.Cause(err))
				return
			}
			assert.Equal(t, tt.want, key.Name())
		})
	}
}

func TestMemoryHive_Walk(t *testing.T) {
	key, err := exampleHive().OpenKey("WOW6432Node/TeamViewer")
	require.NoError(t, err)

	values, partial := Walk(key)
	assert.Empty(t, partial)
	assert.Equal(t, ValueMap{"ClientID": "1234", "Version": "14.2"}, values)
}
