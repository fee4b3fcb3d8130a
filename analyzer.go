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
	"io"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/forensicanalysis/tvartifacts/config"
	"github.com/forensicanalysis/tvartifacts/materialize"
	"github.com/forensicanalysis/tvartifacts/registry"
)

// Sink persists extracted records. *store.Store implements it.
type Sink interface {
	InsertStruct(element interface{}) (string, error)
}

// Summary counts what a run processed.
type Summary struct {
	Hives    int `json:"hives"`
	Files    int `json:"files"`
	Records  int `json:"records"`
	Warnings int `json:"warnings"`
	Failures int `json:"failures"`
}

// HiveOpener opens the hive stored in r.
type HiveOpener func(r io.ReaderAt) (registry.KeyOpener, error)

func openHive(r io.ReaderAt) (registry.KeyOpener, error) {
	return registry.OpenHive(r)
}

// Analyzer extracts TeamViewer artifacts from a source image.
type Analyzer struct {
	config    config.Config
	source    afero.Fs
	sink      Sink
	log       zerolog.Logger
	workspace afero.Fs
	openHive  HiveOpener

	location     *time.Location
	materializer *materialize.Materializer
	ready        bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithWorkspaceFs sets the filesystem the scratch workspace lives on. The
// default is the operating system filesystem.
func WithWorkspaceFs(fs afero.Fs) Option {
	return func(a *Analyzer) { a.workspace = fs }
}

// WithHiveOpener replaces the hive reader.
func WithHiveOpener(opener HiveOpener) Option {
	return func(a *Analyzer) { a.openHive = opener }
}

// NewAnalyzer creates an analyzer reading from source and writing records
// to sink. Setup must be called before Process.
func NewAnalyzer(cfg config.Config, source afero.Fs, sink Sink, log zerolog.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		config:    cfg,
		source:    source,
		sink:      sink,
		log:       log,
		workspace: afero.NewOsFs(),
		openHive:  openHive,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Setup prepares the scratch workspace. Any error wraps ErrSetup.
func (a *Analyzer) Setup() error {
	location, err := a.config.Location()
	if err != nil {
		return errors.Wrap(ErrSetup, err.Error())
	}
	if err := a.workspace.MkdirAll(a.config.Workspace, 0750); err != nil {
		return errors.Wrapf(ErrSetup, "could not create workspace %s: %v", a.config.Workspace, err)
	}

	a.location = location
	a.materializer = &materialize.Materializer{
		Fs:        a.workspace,
		Dir:       a.config.Workspace,
		SpoolSize: a.config.SpoolSize,
	}
	a.ready = true
	a.log.Info().Str("workspace", a.config.Workspace).Msg("setup done")
	return nil
}

// Process extracts all artifacts. Registry hives are processed first, then
// the located evidence files. Problems with single files are logged and
// counted, only a missing Setup returns an error.
func (a *Analyzer) Process() (Summary, error) {
	summary := Summary{}
	if !a.ready {
		return summary, errors.Wrap(ErrSetup, "analyzer is not set up")
	}

	a.log.Info().Msg("beginning analysis")
	a.processHives(&summary)
	a.processFiles(&summary)
	a.log.Info().
		Int("hives", summary.Hives).
		Int("files", summary.Files).
		Int("records", summary.Records).
		Int("warnings", summary.Warnings).
		Int("failures", summary.Failures).
		Msg("analysis finished")
	return summary, nil
}

func (a *Analyzer) locate(pattern, parent string, summary *Summary) []string {
	paths, err := Locate(a.source, pattern, parent)
	if err != nil {
		a.log.Warn().Err(err).Str("pattern", pattern).Msg("could not locate files")
		summary.Warnings++
	}
	return paths
}

func (a *Analyzer) processHives(summary *Summary) {
	machineHives := a.locate(a.config.MachineHive.Name, a.config.MachineHive.Parent, summary)
	userHives := a.locate(a.config.UserHive.Name, a.config.UserHive.Parent, summary)
	a.log.Info().Int("count", len(machineHives)+len(userHives)).Msg("found registry hives")

	for _, hivePath := range machineHives {
		a.processHive(hivePath, "", summary)
	}
	for _, hivePath := range userHives {
		a.processHive(hivePath, a.config.UserKeyPrefix, summary)
	}
}

func (a *Analyzer) processHive(hivePath, keyPrefix string, summary *Summary) {
	log := a.log.With().Str("hive", hivePath).Logger()
	log.Info().Msg("processing hive")
	summary.Hives++

	file := a.fileElement(hivePath, "Registry Hive", path.Base(hivePath))

	spool, err := a.materializer.Materialize(a.source, hivePath)
	if err != nil {
		a.fail(log, file, err, summary)
		return
	}
	defer spool.Close()

	hive, err := a.openHive(spool)
	if err != nil {
		a.fail(log, file, err, summary)
		return
	}

	results := &Results{}
	for _, keyPath := range a.config.RegistryKeyPaths {
		if keyPrefix != "" {
			keyPath = path.Join(keyPrefix, keyPath)
		}

		key, err := hive.OpenKey(keyPath)
		if errors.Is(err, registry.ErrKeyNotFound) {
			log.Info().Str("key", keyPath).Msg("key not found in hive")
			continue
		}
		var parseErr *registry.HiveParseError
		if errors.As(err, &parseErr) {
			log.Info().Err(err).Str("key", keyPath).Msg("key not readable in hive")
			continue
		}
		if err != nil {
			log.Warn().Err(err).Str("key", keyPath).Msg("could not open key")
			file.AddError(err.Error())
			summary.Warnings++
			continue
		}

		values, partial := registry.Walk(key)
		for _, partialErr := range partial {
			results.warn(partialErr)
		}
		interpreter := RegistryInterpreter{MinTransferEntryLength: a.config.MinTransferEntryLength}
		results.merge(interpreter.Interpret(values, Source{Path: hivePath, ParentID: file.ID}))
	}

	a.persist(log, file, results, summary)
}

type locatedFile struct {
	path    string
	pattern config.FilePattern
}

func (a *Analyzer) processFiles(summary *Summary) {
	seen := map[string]bool{}
	var files []locatedFile
	for _, pattern := range a.config.Files {
		for _, filePath := range a.locate(pattern.Pattern, pattern.Parent, summary) {
			if seen[filePath] {
				continue
			}
			seen[filePath] = true
			files = append(files, locatedFile{path: filePath, pattern: pattern})
		}
	}
	a.log.Info().Int("count", len(files)).Msg("found evidence files")

	for _, file := range files {
		a.processFile(file, summary)
	}
}

func (a *Analyzer) processFile(located locatedFile, summary *Summary) {
	log := a.log.With().Str("file", located.path).Str("kind", string(located.pattern.Kind)).Logger()
	log.Debug().Msg("processing file")
	summary.Files++

	file := a.fileElement(located.path, located.pattern.Description, located.pattern.Pattern)
	if located.pattern.Kind == config.KindDatabase {
		a.persist(log, file, &Results{}, summary)
		return
	}

	spool, err := a.materializer.Materialize(a.source, located.path)
	if err != nil {
		a.fail(log, file, err, summary)
		return
	}
	defer spool.Close()

	lines, err := spool.Lines()
	if err != nil {
		a.fail(log, file, err, summary)
		return
	}

	src := Source{Path: located.path, ParentID: file.ID}
	var results *Results
	switch located.pattern.Kind {
	case config.KindConnections:
		results = ConnectionBuilder{Location: a.location}.ParseConnections(lines, DirectionFromPath(located.path), src)
	case config.KindLog:
		results = ParseLog(lines, src)
	case config.KindSession:
		results, err = ParseSession(lines, src)
	case config.KindConfig:
		results, err = ParseConfig(lines, src)
	}
	if err != nil {
		log.Warn().Err(err).Msg("skipping file content")
		file.AddError(err.Error())
		summary.Warnings++
	}
	if results == nil {
		results = &Results{}
	}

	a.persist(log, file, results, summary)
}

func (a *Analyzer) fileElement(filePath, description, pattern string) *File {
	file := NewFile()
	file.Name = path.Base(filePath)
	file.Description = description
	file.Pattern = pattern
	file.Origin = map[string]interface{}{"path": filePath}
	if info, err := a.source.Stat(filePath); err == nil {
		file.Size = info.Size()
	}
	return file
}

// fail stores the file element with the error that stopped its processing.
func (a *Analyzer) fail(log zerolog.Logger, file *File, err error, summary *Summary) {
	log.Warn().Err(err).Msg("could not process")
	file.AddError(err.Error())
	summary.Warnings++
	a.insert(log, file, summary)
}

// persist stores the file element followed by its records in creation
// order. Warnings of the parse are logged.
func (a *Analyzer) persist(log zerolog.Logger, file *File, results *Results, summary *Summary) {
	for _, warning := range results.Warnings {
		log.Warn().Err(warning).Msg("partial result")
		summary.Warnings++
	}

	a.insert(log, file, summary)
	for _, record := range results.Records {
		a.insert(log, record, summary)
	}
}

func (a *Analyzer) insert(log zerolog.Logger, record Record, summary *Summary) {
	if _, err := a.sink.InsertStruct(record); err != nil {
		log.Error().Err(err).Str("record", record.RecordID()).Msg("could not store record")
		summary.Failures++
		return
	}
	summary.Records++
}
