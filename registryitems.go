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
	"regexp"
	"sort"
	"strings"

	"github.com/forensicanalysis/tvartifacts/registry"
)

// DefaultMinTransferEntryLength is the shortest FT_Start_Directories entry
// that is parsed, shorter entries are noise.
const DefaultMinTransferEntryLength = 6

// registryValueName is a TeamViewer registry value with dedicated handling.
type registryValueName int

const (
	otherValue registryValueName = iota
	installationDirectoryValue
	clientIDValue
	transferDirectoriesValue
	usernameValue
	meetingUsernameValue
	lastMACValue
)

func classifyValue(name string) registryValueName {
	switch name {
	case "InstallationDirectory":
		return installationDirectoryValue
	case "ClientID":
		return clientIDValue
	case "FT_Start_Directories":
		return transferDirectoriesValue
	case "Username":
		return usernameValue
	case "Meeting_UserName":
		return meetingUsernameValue
	case "LastMACUsed":
		return lastMACValue
	default:
		return otherValue
	}
}

var (
	digits     = regexp.MustCompile(`[0-9]+`)
	macAddress = regexp.MustCompile(`[0-9A-Fa-f]{12}`)
)

// RegistryInterpreter derives records from the values of a TeamViewer
// registry key.
type RegistryInterpreter struct {
	MinTransferEntryLength int
}

// Interpret emits a RegistryItem for every value, IP addresses found in the
// values and typed records for known value names. Values are processed in
// name order.
func (ri RegistryInterpreter) Interpret(values registry.ValueMap, src Source) *Results {
	results := &Results{}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := values[name]

		item := NewRegistryItem()
		item.Name = name
		item.Value = value
		item.Source = src.Path
		item.AssociatedID = src.ParentID
		results.add(item)

		results.add(ipAddresses(value, fmt.Sprintf("Extracted from %s Registry key.", name), src, item.ID)...)

		switch classifyValue(name) {
		case installationDirectoryValue:
			program := NewInstalledProgram()
			program.Name = "TeamViewer"
			program.Path = value
			program.Version = values["Version"]
			program.Source = src.Path
			program.AssociatedID = item.ID
			results.add(program)
		case clientIDValue:
			results.add(newTeamViewerID(value, "ID of the Client from Registry", src, item.ID))
		case transferDirectoriesValue:
			results.add(ri.transferDirectories(value, src, item.ID)...)
		case usernameValue:
			results.add(newUsername(value, "Display Name from Registry", src, item.ID))
		case meetingUsernameValue:
			results.add(newUsername(value, "Meeting Username from Registry", src, item.ID))
		case lastMACValue:
			for _, match := range macAddress.FindAllString(value, -1) {
				mac := NewMACAddress()
				mac.Value = match
				mac.Source = src.Path
				mac.AssociatedID = item.ID
				results.add(mac)
			}
		case otherValue:
		}
	}
	return results
}

// transferDirectories parses entries of the form
// <peer id>?<local directory>|<remote directory>, separated by commas inside
// square brackets.
func (ri RegistryInterpreter) transferDirectories(value string, src Source, associatedID string) []Record {
	minLength := ri.MinTransferEntryLength
	if minLength <= 0 {
		minLength = DefaultMinTransferEntryLength
	}

	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "[")
	value = strings.TrimSuffix(value, "]")

	var records []Record
	for _, entry := range strings.Split(value, ",") {
		// the separator space of the rendered list counts towards the length
		if len(entry) < minLength {
			continue
		}
		entry = strings.TrimSpace(entry)

		directory := ParseTransferDirectory(entry)
		directory.Source = src.Path
		directory.AssociatedID = associatedID
		records = append(records, directory)

		if directory.PeerID != "" {
			records = append(records, newTeamViewerID(directory.PeerID, "Extracted from File Transfer Registry Key", src, directory.ID))
		}
	}
	return records
}

// ParseTransferDirectory parses a single FT_Start_Directories entry. Fields
// that cannot be recovered stay empty.
func ParseTransferDirectory(entry string) *FileTransferDirectory {
	directory := NewFileTransferDirectory()
	directory.PeerID = digits.FindString(entry)

	paths := strings.Split(entry, "|")
	if len(paths) > 1 {
		directory.RemotePath = paths[1]
		if i := strings.Index(paths[0], "?"); i >= 0 {
			directory.LocalPath = paths[0][i+1:]
		}
	}
	return directory
}
