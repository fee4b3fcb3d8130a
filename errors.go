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

package tvartifacts

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrSetup is returned when the analyzer could not prepare its workspace.
// It is the only error that stops a run.
var ErrSetup = errors.New("setup failed")

// InvalidFormatError is returned when a file does not start with the
// header of its format. The file is skipped.
type InvalidFormatError struct {
	Format string
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("not a valid %s: %s", e.Format, e.Reason)
}

// TimestampParseError is reported when connection times cannot be parsed.
// The connection is kept without times.
type TimestampParseError struct {
	Value string
	Err   error
}

func (e *TimestampParseError) Error() string {
	return fmt.Sprintf("could not parse time '%s': %s", e.Value, e.Err)
}

func (e *TimestampParseError) Unwrap() error { return e.Err }
