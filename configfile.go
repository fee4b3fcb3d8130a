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

import "strings"

const configHeader = "[TeamViewer Configuration]"

// ParseConfig reads a TeamViewer connection configuration file (*.tvc).
// Only the line after the section header is examined.
func ParseConfig(lines []string, src Source) (*Results, error) {
	if len(lines) == 0 || !strings.Contains(lines[0], configHeader) {
		return nil, &InvalidFormatError{Format: "configuration file", Reason: "missing " + configHeader + " header"}
	}

	results := &Results{}
	if len(lines) < 2 {
		return results, nil
	}

	line := lines[1]
	results.add(ipAddresses(line, "Extracted from configuration file.", src, src.ParentID)...)

	data := strings.Split(line, "=")
	if len(data) == 2 && data[0] == "targetID" {
		description := "Slave ID extracted from Configuration File"
		if strings.HasPrefix(data[1], "m") {
			description = "Meeting ID extracted from Configuration File"
		}
		results.add(newTeamViewerID(data[1], description, src, src.ParentID))
	}
	return results, nil
}
