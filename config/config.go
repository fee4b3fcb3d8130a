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

// Package config holds the settings of an extraction run. A Config is built
// once, merged over Default and then only read.
package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"

	"github.com/forensicanalysis/tvartifacts/logger"
)

// Kind selects the parser of a located file.
type Kind string

const (
	KindConnections Kind = "connections"
	KindLog         Kind = "log"
	KindSession     Kind = "session"
	KindConfig      Kind = "config"
	KindDatabase    Kind = "database"
)

// FilePattern describes evidence files to locate. Pattern is a file name
// glob, Parent an optional directory substring.
type FilePattern struct {
	Pattern     string `json:"pattern"`
	Parent      string `json:"parent,omitempty"`
	Description string `json:"description"`
	Kind        Kind   `json:"kind"`
}

// HiveLocation names a hive file and the directory it is expected in.
type HiveLocation struct {
	Name   string `json:"name"`
	Parent string `json:"parent"`
}

type Config struct {
	Workspace              string        `json:"workspace"`
	Timezone               string        `json:"timezone"`
	SpoolSize              int64         `json:"spool_size"`
	MinTransferEntryLength int           `json:"min_transfer_entry_length"`
	MachineHive            HiveLocation  `json:"machine_hive"`
	UserHive               HiveLocation  `json:"user_hive"`
	RegistryKeyPaths       []string      `json:"registry_key_paths"`
	UserKeyPrefix          string        `json:"user_key_prefix"`
	Files                  []FilePattern `json:"files"`
	Log                    logger.Config `json:"log"`
}

// Default returns the settings used for values a configuration file does
// not set.
func Default() Config {
	return Config{
		Workspace:              filepath.Join(os.TempDir(), "tvartifacts"),
		Timezone:               "UTC",
		SpoolSize:              8 * 1024 * 1024,
		MinTransferEntryLength: 6,
		MachineHive:            HiveLocation{Name: "SOFTWARE", Parent: "windows/system32/config"},
		UserHive:               HiveLocation{Name: "NTUSER.DAT", Parent: "users"},
		RegistryKeyPaths:       []string{"TeamViewer", "WOW6432Node/TeamViewer"},
		UserKeyPrefix:          "SOFTWARE",
		Files: []FilePattern{
			{Pattern: "connections_incoming.txt", Description: "Incoming TeamViewer Connections", Kind: KindConnections},
			{Pattern: "connections.txt", Description: "Outgoing TeamViewer Connections", Kind: KindConnections},
			{Pattern: "TeamViewer*.log", Description: "TeamViewer Program Log", Kind: KindLog},
			{Pattern: "*.tvs", Description: "TeamViewer Session Recording", Kind: KindSession},
			{Pattern: "*.tvc", Description: "TeamViewer Configuration File", Kind: KindConfig},
			{Pattern: "tvprint*.db", Description: "TeamViewer Print Database", Kind: KindDatabase},
			{Pattern: "tvchatfile*.db", Description: "TeamViewer Chat Database", Kind: KindDatabase},
		},
		Log: logger.Config{Level: "info", Output: "stderr"},
	}
}

// Load reads a JSON configuration from r and fills unset fields from
// Default.
func Load(r io.Reader) (Config, error) {
	var cfg Config
	if err := json.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "could not decode config")
	}
	if err := mergo.Merge(&cfg, Default()); err != nil {
		return Config{}, errors.Wrap(err, "could not merge default config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile loads the configuration at path, or Default if path is empty.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path) // #nosec
	if err != nil {
		return Config{}, errors.Wrap(err, "could not open config")
	}
	defer f.Close()
	return Load(f)
}

// Validate checks the values that cannot be repaired by defaults.
func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.MinTransferEntryLength < 0 {
		return errors.New("min_transfer_entry_length must not be negative")
	}
	for _, file := range c.Files {
		switch file.Kind {
		case KindConnections, KindLog, KindSession, KindConfig, KindDatabase:
		default:
			return errors.Errorf("unknown kind '%s' for pattern %s", file.Kind, file.Pattern)
		}
	}
	return nil
}

// Location returns the time zone connection logs are written in.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid timezone %s", c.Timezone)
	}
	return loc, nil
}
