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

package registry

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"www.velocidex.com/golang/regparser"
)

// ErrKeyNotFound is returned when a key path does not exist in a hive.
var ErrKeyNotFound = errors.New("registry key not found")

// HiveParseError is returned when the hive container cannot be read.
type HiveParseError struct {
	Err error
}

func (e *HiveParseError) Error() string {
	return fmt.Sprintf("could not parse hive: %s", e.Err)
}

func (e *HiveParseError) Unwrap() error { return e.Err }

// PartialReadError marks a subtree that could not be enumerated. Path is
// the slash separated key path that was reached.
type PartialReadError struct {
	Path string
	Err  error
}

func (e *PartialReadError) Error() string {
	return fmt.Sprintf("could not read registry key %s: %s", e.Path, e.Err)
}

func (e *PartialReadError) Unwrap() error { return e.Err }

// Key is a node in a registry tree.
type Key interface {
	Name() string
	Values() ([]Value, error)
	Subkeys() ([]Key, error)
}

// Hive is an opened offline registry hive.
type Hive struct {
	registry *regparser.Registry
}

// OpenHive parses the hive header from r.
func OpenHive(r io.ReaderAt) (hive *Hive, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			hive, err = nil, &HiveParseError{Err: fmt.Errorf("%v", rec)}
		}
	}()

	reg, err := regparser.NewRegistry(r)
	if err != nil {
		return nil, &HiveParseError{Err: err}
	}
	return &Hive{registry: reg}, nil
}

// OpenKey opens a key by its slash separated path relative to the hive
// root, e.g. "SOFTWARE/WOW6432Node/TeamViewer".
func (h *Hive) OpenKey(keyPath string) (key Key, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			key, err = nil, &HiveParseError{Err: fmt.Errorf("%s: %v", keyPath, rec)}
		}
	}()

	segments := strings.Split(strings.Trim(keyPath, "/"), "/")
	node := h.registry.OpenKey("\\" + strings.Join(segments, "\\"))
	if node == nil {
		return nil, errors.Wrap(ErrKeyNotFound, keyPath)
	}
	return &hiveKey{node: node}, nil
}

type hiveKey struct {
	node *regparser.CM_KEY_NODE
}

func (k *hiveKey) Name() string {
	return k.node.Name()
}

func (k *hiveKey) Values() (values []Value, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			values, err = nil, fmt.Errorf("corrupt value list: %v", rec)
		}
	}()

	for _, value := range k.node.Values() {
		data := value.ValueData()
		values = append(values, Value{
			Name: value.ValueName(),
			Type: ValueType(data.Type),
			Data: data.Data,
		})
	}
	return values, nil
}

func (k *hiveKey) Subkeys() (subkeys []Key, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			subkeys, err = nil, fmt.Errorf("corrupt subkey list: %v", rec)
		}
	}()

	for _, subkey := range k.node.Subkeys() {
		subkeys = append(subkeys, &hiveKey{node: subkey})
	}
	return subkeys, nil
}
