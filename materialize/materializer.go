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

package materialize

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// DefaultSpoolSize is the number of bytes kept in memory per file.
const DefaultSpoolSize = 8 * 1024 * 1024

// Materializer copies source files into spools below Dir on Fs.
type Materializer struct {
	Fs        afero.Fs
	Dir       string
	SpoolSize int64
}

// Materialize copies name from src. The caller must Close the spool.
func (m *Materializer) Materialize(src afero.Fs, name string) (*Spool, error) {
	file, err := src.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", name)
	}
	defer file.Close()

	size := m.SpoolSize
	if size <= 0 {
		size = DefaultSpoolSize
	}
	spool := NewSpool(m.Fs, m.Dir, size)
	if _, err := io.Copy(spool, file); err != nil {
		spool.Close()
		return nil, errors.Wrapf(err, "could not copy %s", name)
	}
	return spool, nil
}
