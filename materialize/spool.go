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

// Package materialize copies files out of a source image into the scratch
// workspace. Small files stay in memory, larger ones are spooled to disk.
package materialize

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Spool is a write-once buffer that rolls over into a temporary file in
// Dir once more than maxSize bytes were written.
type Spool struct {
	fs         afero.Fs
	dir        string
	size       int64
	maxSize    int64
	buffer     *bytes.Buffer
	tempFile   afero.File
	rolledOver bool
}

// NewSpool creates an empty spool. Rollover files are created in dir on fs.
func NewSpool(fs afero.Fs, dir string, maxSize int64) *Spool {
	return &Spool{fs: fs, dir: dir, maxSize: maxSize, buffer: &bytes.Buffer{}}
}

func (s *Spool) Write(p []byte) (n int, err error) {
	if s.rolledOver {
		n, err = s.tempFile.Write(p)
		s.size += int64(n)
		return n, err
	}

	if s.size+int64(len(p)) > s.maxSize {
		if err := s.Rollover(); err != nil {
			return 0, err
		}
		n, err = s.tempFile.Write(p)
		s.size += int64(n)
		return n, err
	}

	s.size += int64(len(p))
	return s.buffer.Write(p)
}

// Rollover moves the buffered content into a temporary file.
func (s *Spool) Rollover() (err error) {
	if s.rolledOver {
		return nil
	}
	s.tempFile, err = afero.TempFile(s.fs, s.dir, "spool")
	if err != nil {
		return errors.Wrap(err, "could not create spool file")
	}
	s.rolledOver = true
	if _, err = io.Copy(s.tempFile, s.buffer); err != nil {
		return errors.Wrap(err, "could not fill spool file")
	}
	s.buffer.Reset()
	return nil
}

// ReadAt implements io.ReaderAt over everything written so far.
func (s *Spool) ReadAt(p []byte, off int64) (int, error) {
	if s.rolledOver {
		return s.tempFile.ReadAt(p, off)
	}
	return bytes.NewReader(s.buffer.Bytes()).ReadAt(p, off)
}

// Size returns the number of bytes written.
func (s *Spool) Size() int64 {
	return s.size
}

// RolledOver reports whether the content lives on disk.
func (s *Spool) RolledOver() bool {
	return s.rolledOver
}

// Lines splits the content into lines without their line terminators.
func (s *Spool) Lines() ([]string, error) {
	scanner := bufio.NewScanner(io.NewSectionReader(s, 0, s.size))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return lines, errors.Wrap(err, "could not read lines")
	}
	return lines, nil
}

// Close releases the buffer and removes the rollover file.
func (s *Spool) Close() error {
	if s.rolledOver {
		name := s.tempFile.Name()
		if err := s.tempFile.Close(); err != nil {
			return err
		}
		s.rolledOver = false
		return s.fs.Remove(name)
	}
	s.buffer.Reset()
	return nil
}
