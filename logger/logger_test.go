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

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantLevel zerolog.Level
		wantErr   bool
	}{
		{"default", Config{}, zerolog.InfoLevel, false},
		{"debug flag", Config{Debug: true, Level: "error"}, zerolog.DebugLevel, false},
		{"warn", Config{Level: "warn"}, zerolog.WarnLevel, false},
		{"invalid", Config{Level: "loud"}, zerolog.Disabled, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewWithWriter(tt.config, &bytes.Buffer{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewWithWriter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			assert.Equal(t, tt.wantLevel, l.GetLevel())
		})
	}
}

func TestNewWithWriter_output(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := NewWithWriter(Config{Level: "info"}, buf)
	require.NoError(t, err)

	l.Debug().Msg("hidden")
	l.Warn().Str("file", "/connections.txt").Msg("skipped")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "/connections.txt", entry["file"])
	assert.Equal(t, "skipped", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestWithComponent(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := NewWithWriter(Config{}, buf)
	require.NoError(t, err)
	globalLogger = l
	defer func() { globalLogger = zerolog.New(&bytes.Buffer{}) }()

	cl := WithComponent("analyzer")
	cl.Info().Msg("started")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "analyzer", entry["component"])
}
