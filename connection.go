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
	"strings"
	"time"

	"github.com/pkg/errors"
)

// minConnectionFields is the number of whitespace separated fields of a
// connection log line.
const minConnectionFields = 8

// Connection log times are day-month-year, the year may be abbreviated.
var connectionTimeLayouts = []string{
	"2-1-2006 15:04:05",
	"2-1-06 15:04:05",
}

// DirectionFromPath returns Incoming for connections_incoming.txt and
// Outgoing for every other connection log.
func DirectionFromPath(filePath string) Direction {
	if strings.Contains(strings.ToLower(filePath), "incoming") {
		return Incoming
	}
	return Outgoing
}

// ConnectionBuilder turns the fields of a connection log line into a
// Connection. Times are interpreted in Location, UTC if nil.
type ConnectionBuilder struct {
	Location *time.Location
}

// Build parses one line of a connection log.
//
// Outgoing lines are
//   <peer id> <start date> <start time> <end date> <end time> <windows user> <type> <session id>
// incoming lines additionally carry the peer display name after the id.
//
// Build returns nil when the first field is not a numeric id. If the times
// cannot be parsed the connection is returned without times together with a
// *TimestampParseError.
func (b ConnectionBuilder) Build(fields []string, direction Direction, src Source) (*Connection, error) {
	offset := 0
	if direction == Incoming {
		offset = 1
	}
	if len(fields) < minConnectionFields+offset-1 || !isDigits(fields[0]) {
		return nil, nil
	}

	connection := NewConnection()
	connection.Direction = direction
	connection.PeerID = fields[0]
	if direction == Incoming {
		connection.PeerDisplayName = fields[1]
	}
	start := fields[1+offset] + " " + fields[2+offset]
	end := fields[3+offset] + " " + fields[4+offset]
	connection.ConnectionType = fields[6+offset]
	connection.RawFields = append([]string{}, fields...)
	connection.Description = fmt.Sprintf("%s %s connection with %s from %s until %s.",
		capitalize(string(direction)), connection.ConnectionType, connection.PeerID, start, end)
	connection.Source = src.Path
	connection.AssociatedID = src.ParentID

	startTime, err := b.parseTime(start)
	if err != nil {
		return connection, err
	}
	endTime, err := b.parseTime(end)
	if err != nil {
		return connection, err
	}
	connection.StartTime = &startTime
	connection.EndTime = &endTime
	return connection, nil
}

func (b ConnectionBuilder) parseTime(value string) (time.Time, error) {
	location := b.Location
	if location == nil {
		location = time.UTC
	}

	var err error
	for _, layout := range connectionTimeLayouts {
		var t time.Time
		t, err = time.ParseInLocation(layout, value, location)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, &TimestampParseError{Value: value, Err: err}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseConnections reads a connections.txt or connections_incoming.txt log.
// Lines with fewer than eight fields are skipped.
func (b ConnectionBuilder) ParseConnections(lines []string, direction Direction, src Source) *Results {
	results := &Results{}
	for _, line := range lines {
		results.add(ipAddresses(line, "Extracted from connection file.", src, src.ParentID)...)

		fields := strings.Fields(line)
		if len(fields) < minConnectionFields {
			continue
		}

		connection, err := b.Build(fields, direction, src)
		if connection == nil {
			continue
		}

		results.add(newTeamViewerID(connection.PeerID, fmt.Sprintf("Extracted from %s connection File.", direction), src, src.ParentID))
		if direction == Incoming {
			results.add(newUsername(connection.PeerDisplayName, "Extracted from incoming connection file", src, src.ParentID))
		}
		results.add(connection)

		if err != nil {
			results.warn(errors.Wrapf(err, "connection %s", strings.Join(fields, "|")))
		}
	}
	return results
}
