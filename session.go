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
	"strings"
)

const (
	sessionMagic       = "TVS"
	sessionHeaderLines = 6
)

// ParseSession reads the header of a TeamViewer session recording (*.tvs).
// The first line must be "TVS", the following six lines hold
// "<field> <value>" pairs.
func ParseSession(lines []string, src Source) (*Results, error) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != sessionMagic {
		return nil, &InvalidFormatError{Format: "session file", Reason: "missing TVS marker"}
	}

	results := &Results{}
	for i := 1; i <= sessionHeaderLines && i < len(lines); i++ {
		line := lines[i]
		results.add(ipAddresses(line, "Extracted from session file.", src, src.ParentID)...)
		if line == "" {
			break
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		fieldName := fields[0]
		description := fieldName + " extracted from Session File"
		switch {
		case fieldName == "ClientID" && len(fields) == 2:
			results.add(newTeamViewerID(fields[1], description, src, src.ParentID))
		case fieldName == "ServerID" && len(fields) >= 2:
			server := strings.TrimSpace(strings.ReplaceAll(line, "ServerID", ""))
			results.add(
				newTeamViewerID(server, description, src, src.ParentID),
				newUsername(server, description, src, src.ParentID),
			)
		}
	}
	return results, nil
}
