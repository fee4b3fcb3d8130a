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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forensicanalysis/tvartifacts/registry"
)

var hiveSource = Source{Path: "/Windows/System32/config/SOFTWARE", ParentID: "file--hive"}

func TestParseTransferDirectory(t *testing.T) {
	tests := []struct {
		name       string
		entry      string
		peerID     string
		localPath  string
		remotePath string
	}{
		{"Complete", `958223731?C:\Users\Controller\Desktop|C:/Users/Slave/Desktop`, "958223731", `C:\Users\Controller\Desktop`, "C:/Users/Slave/Desktop"},
		{"Missing pipe", `958223731?C:\Users\Controller\Desktop`, "958223731", "", ""},
		{"Missing question mark", `958223731C:\Temp|D:\Temp`, "958223731", "", `D:\Temp`},
		{"No id", `?C:\a|D:\b`, "", `C:\a`, `D:\b`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTransferDirectory(tt.entry)
			assert.Equal(t, tt.peerID, got.PeerID)
			assert.Equal(t, tt.localPath, got.LocalPath)
			assert.Equal(t, tt.remotePath, got.RemotePath)
		})
	}
}

func TestRegistryInterpreter_Interpret(t *testing.T) {
	values := registry.ValueMap{
		"InstallationDirectory": `C:\Program Files\TeamViewer`,
		"Version":               "15.17.6",
		"ClientID":              "1234567890",
		"Username":              "Controller",
		"Meeting_UserName":      "Meeting Host",
		"LastMACUsed":           "[, 0A1B2C3D4E5F, 001122334455]",
		"FT_Start_Directories":  `[958223731?C:\Users\Controller\Desktop|C:/Users/Slave/Desktop, x, ?C:\a|D:\b]`,
		"Proxy_IP":              "10.20.30.40:8080",
		"Always_Online":         "1",
	}

	results := RegistryInterpreter{MinTransferEntryLength: DefaultMinTransferEntryLength}.Interpret(values, hiveSource)
	assert.Empty(t, results.Warnings)

	var items []*RegistryItem
	var programs []*InstalledProgram
	var macs []*MACAddress
	var directories []*FileTransferDirectory
	for _, record := range results.Records {
		switch r := record.(type) {
		case *RegistryItem:
			items = append(items, r)
		case *InstalledProgram:
			programs = append(programs, r)
		case *MACAddress:
			macs = append(macs, r)
		case *FileTransferDirectory:
			directories = append(directories, r)
		}
	}

	require.Len(t, items, len(values))
	itemIDs := map[string]string{}
	for _, item := range items {
		assert.Equal(t, values[item.Name], item.Value)
		assert.Equal(t, "file--hive", item.AssociatedID)
		itemIDs[item.Name] = item.ID
	}

	require.Len(t, programs, 1)
	assert.Equal(t, "TeamViewer", programs[0].Name)
	assert.Equal(t, `C:\Program Files\TeamViewer`, programs[0].Path)
	assert.Equal(t, "15.17.6", programs[0].Version)
	assert.Equal(t, itemIDs["InstallationDirectory"], programs[0].AssociatedID)

	ids := teamViewerIDs(results.Records)
	require.Len(t, ids, 2)
	assert.Equal(t, "1234567890", ids[0].Value)
	assert.Equal(t, "ID of the Client from Registry", ids[0].Description)
	assert.Equal(t, "958223731", ids[1].Value)
	assert.Equal(t, "Extracted from File Transfer Registry Key", ids[1].Description)

	require.Len(t, directories, 2)
	assert.Equal(t, "958223731", directories[0].PeerID)
	assert.Equal(t, `C:\Users\Controller\Desktop`, directories[0].LocalPath)
	assert.Equal(t, "C:/Users/Slave/Desktop", directories[0].RemotePath)
	assert.Equal(t, itemIDs["FT_Start_Directories"], directories[0].AssociatedID)
	assert.Equal(t, directories[0].ID, ids[1].AssociatedID)
	assert.Equal(t, "", directories[1].PeerID)
	assert.Equal(t, `C:\a`, directories[1].LocalPath)

	names := usernames(results.Records)
	require.Len(t, names, 2)
	assert.Equal(t, "Meeting Host", names[0].Value)
	assert.Equal(t, "Meeting Username from Registry", names[0].Description)
	assert.Equal(t, "Controller", names[1].Value)
	assert.Equal(t, "Display Name from Registry", names[1].Description)

	require.Len(t, macs, 2)
	assert.Equal(t, "0A1B2C3D4E5F", macs[0].Value)
	assert.Equal(t, "001122334455", macs[1].Value)

	ips := ipAddressRecords(results.Records)
	require.Len(t, ips, 1)
	assert.Equal(t, "10.20.30.40", ips[0].Value)
	assert.Equal(t, "Extracted from Proxy_IP Registry key.", ips[0].Description)
	assert.Equal(t, itemIDs["Proxy_IP"], ips[0].AssociatedID)
}

func TestRegistryInterpreter_noVersion(t *testing.T) {
	results := RegistryInterpreter{}.Interpret(registry.ValueMap{"InstallationDirectory": `D:\TV`}, hiveSource)
	require.Len(t, results.Records, 2)
	program, ok := results.Records[1].(*InstalledProgram)
	require.True(t, ok)
	assert.Equal(t, "", program.Version)
}

func TestRegistryInterpreter_idempotent(t *testing.T) {
	values := registry.ValueMap{
		"ClientID":             "1",
		"FT_Start_Directories": `[958223731?C:\x|D:\y]`,
		"Proxy":                "1.2.3.4",
	}
	ri := RegistryInterpreter{}
	first := ri.Interpret(values, hiveSource)
	second := ri.Interpret(values, hiveSource)
	assert.Equal(t, withoutIDs(t, first.Records), withoutIDs(t, second.Records))
}

func TestRegistryInterpreter_transferEntryLength(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"first entry too short", `[?ab|c]`, nil},
		{"entry after separator", `[?ab|c, ?ab|d]`, []string{"d"}},
		{"noise", `[x, ab]`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := RegistryInterpreter{}.transferDirectories(tt.value, hiveSource, "teamviewer-registry-item--x")
			var remotes []string
			for _, record := range records {
				directory, ok := record.(*FileTransferDirectory)
				require.True(t, ok)
				assert.Equal(t, "ab", directory.LocalPath)
				remotes = append(remotes, directory.RemotePath)
			}
			assert.Equal(t, tt.want, remotes)
		})
	}
}
