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
	"strings"

	"github.com/pkg/errors"
)

// KeyOpener resolves key paths inside a hive. *Hive and *MemoryHive
// implement it.
type KeyOpener interface {
	OpenKey(keyPath string) (Key, error)
}

// MemoryKey is a registry key held in memory. It is used to build
// registry trees without a hive file.
type MemoryKey struct {
	KeyName   string
	KeyValues []Value
	Children  []*MemoryKey
}

func (k *MemoryKey) Name() string { return k.KeyName }

func (k *MemoryKey) Values() ([]Value, error) { return k.KeyValues, nil }

func (k *MemoryKey) Subkeys() ([]Key, error) {
	keys := make([]Key, len(k.Children))
	for i, child := range k.Children {
		keys[i] = child
	}
	return keys, nil
}

// MemoryHive wraps a MemoryKey as hive root.
type MemoryHive struct {
	Root *MemoryKey
}

// OpenKey follows keyPath from the root. Key names compare case
// insensitive, as in a hive.
func (h *MemoryHive) OpenKey(keyPath string) (Key, error) {
	key := h.Root
	for _, segment := range strings.Split(strings.Trim(keyPath, "/"), "/") {
		if segment == "" {
			continue
		}
		var next *MemoryKey
		if key != nil {
			for _, child := range key.Children {
				if strings.EqualFold(child.KeyName, segment) {
					next = child
					break
				}
			}
		}
		if next == nil {
			return nil, errors.Wrap(ErrKeyNotFound, keyPath)
		}
		key = next
	}
	if key == nil {
		return nil, errors.Wrap(ErrKeyNotFound, keyPath)
	}
	return key, nil
}
