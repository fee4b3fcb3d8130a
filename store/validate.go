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

package store

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sync"

	"github.com/forensicanalysis/stixgo"
	"github.com/pkg/errors"
	"github.com/qri-io/jsonschema"
	"github.com/tidwall/gjson"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	stixObservableURL = "http://raw.githubusercontent.com/oasis-open/cti-stix2-json-schemas/stix2.1/schemas/observables/%s.json"
	elementSchemaURL  = "https://forensicanalysis.github.io/tvartifacts/schemas/%s.json"
)

var (
	setupOnce sync.Once
	setupErr  error
)

func setupSchemaValidation() error {
	setupOnce.Do(func() {
		setupErr = registerSchemas()
	})
	return setupErr
}

func registerSchemas() error {
	registry := jsonschema.GetSchemaRegistry()
	for name, content := range stixgo.FS {
		// convert to draft/2019-09
		content = bytes.ReplaceAll(content, []byte(`"definitions"`), []byte(`"$defs"`))
		content = bytes.ReplaceAll(content, []byte(`"#/definitions/`), []byte(`"#/$defs/`))
		content = bytes.ReplaceAll(content,
			[]byte(`"$schema": "http://json-schema.org/draft-07/schema#",`),
			[]byte(`"$schema": "https://json-schema.org/draft/2019-09/schema#",`),
		)
		if err := register(registry, content); err != nil {
			return errors.Wrapf(err, "could not load %s", name)
		}
	}

	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		content, err := schemaFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			return err
		}
		if err := register(registry, content); err != nil {
			return errors.Wrapf(err, "could not load %s", entry.Name())
		}
	}
	return nil
}

func register(registry *jsonschema.SchemaRegistry, content []byte) error {
	schema := &jsonschema.Schema{}
	if err := json.Unmarshal(content, schema); err != nil {
		return err
	}
	id, ok := schema.JSONProp("$id").(*jsonschema.ID)
	if !ok {
		return errors.New("schema has no $id")
	}
	schema.Resolve(nil, string(*id))
	registry.Register(schema)
	return nil
}

func schemaFor(elementType string) *jsonschema.Schema {
	registry := jsonschema.GetSchemaRegistry()
	if schema := registry.GetKnown(fmt.Sprintf(elementSchemaURL, elementType)); schema != nil {
		return schema
	}
	return registry.GetKnown(fmt.Sprintf(stixObservableURL, elementType))
}

// validateSchema checks an element against the schema of its type.
// Elements of types without a schema only need a type.
func validateSchema(element JSONElement) (flaws []string, err error) {
	if err := setupSchemaValidation(); err != nil {
		return nil, err
	}

	elementType := gjson.GetBytes(element, discriminator)
	if !elementType.Exists() {
		return []string{"element needs to have a type"}, nil
	}

	schema := schemaFor(elementType.String())
	if schema == nil {
		return nil, nil
	}

	errs, err := schema.ValidateBytes(context.Background(), element)
	if err != nil {
		return nil, err
	}
	for _, verr := range errs {
		flaws = append(flaws, fmt.Sprintf("failed to validate element: %s", verr))
	}
	return flaws, nil
}
