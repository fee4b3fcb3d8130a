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
	"time"

	"github.com/google/uuid"
)

// Record is an element extracted from TeamViewer traces.
type Record interface {
	RecordID() string
}

// File is a located TeamViewer evidence file or registry hive.
type File struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Pattern     string                 `json:"pattern,omitempty"`
	Size        int64                  `json:"size,omitempty"`
	Origin      map[string]interface{} `json:"origin,omitempty"`
	Errors      []interface{}          `json:"errors,omitempty"`
}

func NewFile() *File {
	return &File{ID: "file--" + uuid.New().String(), Type: "file"}
}

func (i *File) AddError(err string) *File {
	i.Errors = append(i.Errors, err)
	return i
}

func (i *File) RecordID() string { return i.ID }

// RegistryItem is a value found below a TeamViewer registry key.
type RegistryItem struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Name         string `json:"name"`
	Value        string `json:"value,omitempty"`
	Source       string `json:"source,omitempty"`
	AssociatedID string `json:"associated_id,omitempty"`
}

func NewRegistryItem() *RegistryItem {
	return &RegistryItem{ID: "teamviewer-registry-item--" + uuid.New().String(), Type: "teamviewer-registry-item"}
}

func (i *RegistryItem) RecordID() string { return i.ID }

// InstalledProgram is a TeamViewer installation found in the registry.
type InstalledProgram struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Name         string `json:"name"`
	Path         string `json:"path,omitempty"`
	Version      string `json:"version,omitempty"`
	Source       string `json:"source,omitempty"`
	AssociatedID string `json:"associated_id,omitempty"`
}

func NewInstalledProgram() *InstalledProgram {
	return &InstalledProgram{ID: "teamviewer-installed-program--" + uuid.New().String(), Type: "teamviewer-installed-program"}
}

func (i *InstalledProgram) RecordID() string { return i.ID }

// TeamViewerID is a numeric TeamViewer ID or a meeting ID (prefixed m).
type TeamViewerID struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Value        string `json:"value,omitempty"`
	Description  string `json:"description,omitempty"`
	Source       string `json:"source,omitempty"`
	AssociatedID string `json:"associated_id,omitempty"`
}

func NewTeamViewerID() *TeamViewerID {
	return &TeamViewerID{ID: "teamviewer-id--" + uuid.New().String(), Type: "teamviewer-id"}
}

func (i *TeamViewerID) RecordID() string { return i.ID }

// Username is a display name or meeting username.
type Username struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Value        string `json:"value,omitempty"`
	Description  string `json:"description,omitempty"`
	Source       string `json:"source,omitempty"`
	AssociatedID string `json:"associated_id,omitempty"`
}

func NewUsername() *Username {
	return &Username{ID: "teamviewer-username--" + uuid.New().String(), Type: "teamviewer-username"}
}

func (i *Username) RecordID() string { return i.ID }

// IPAddress is an IPv4 address mentioned in a log line or registry value.
// Text holds the full text the address was found in.
type IPAddress struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Value        string `json:"value"`
	Description  string `json:"description,omitempty"`
	Pattern      string `json:"pattern,omitempty"`
	Text         string `json:"text,omitempty"`
	Source       string `json:"source,omitempty"`
	AssociatedID string `json:"associated_id,omitempty"`
}

func NewIPAddress() *IPAddress {
	return &IPAddress{ID: "teamviewer-ip-address--" + uuid.New().String(), Type: "teamviewer-ip-address"}
}

func (i *IPAddress) RecordID() string { return i.ID }

// MACAddress is a network adapter address stored by TeamViewer.
type MACAddress struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Value        string `json:"value"`
	Source       string `json:"source,omitempty"`
	AssociatedID string `json:"associated_id,omitempty"`
}

func NewMACAddress() *MACAddress {
	return &MACAddress{ID: "teamviewer-mac-address--" + uuid.New().String(), Type: "teamviewer-mac-address"}
}

func (i *MACAddress) RecordID() string { return i.ID }

// FileTransferDirectory is one entry of the FT_Start_Directories value.
type FileTransferDirectory struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	PeerID       string `json:"peer_id,omitempty"`
	LocalPath    string `json:"local_path,omitempty"`
	RemotePath   string `json:"remote_path,omitempty"`
	Source       string `json:"source,omitempty"`
	AssociatedID string `json:"associated_id,omitempty"`
}

func NewFileTransferDirectory() *FileTransferDirectory {
	return &FileTransferDirectory{ID: "teamviewer-ft-start-directory--" + uuid.New().String(), Type: "teamviewer-ft-start-directory"}
}

func (i *FileTransferDirectory) RecordID() string { return i.ID }

// Direction of a TeamViewer connection as seen from the examined machine.
type Direction string

const (
	Incoming Direction = "incoming"
	Outgoing Direction = "outgoing"
)

// Connection is a single line of a TeamViewer connection log. StartTime and
// EndTime are nil when the log times could not be parsed, PeerDisplayName
// is only set for incoming connections.
type Connection struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	Direction       Direction  `json:"direction"`
	PeerID          string     `json:"peer_id"`
	PeerDisplayName string     `json:"peer_display_name,omitempty"`
	ConnectionType  string     `json:"connection_type,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty" structs:",omitnested"`
	EndTime         *time.Time `json:"end_time,omitempty" structs:",omitnested"`
	Description     string     `json:"description,omitempty"`
	RawFields       []string   `json:"raw_fields,omitempty"`
	Source          string     `json:"source,omitempty"`
	AssociatedID    string     `json:"associated_id,omitempty"`
}

func NewConnection() *Connection {
	return &Connection{ID: "teamviewer-connection--" + uuid.New().String(), Type: "teamviewer-connection"}
}

func (i *Connection) RecordID() string { return i.ID }
