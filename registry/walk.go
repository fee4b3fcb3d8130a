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

import "path"

// ValueMap maps value names to their coerced string form, aggregated over a
// key and all of its descendants.
type ValueMap map[string]string

// Walk collects every value below key. Values of a key are visited before
// its subkeys, subkeys in enumeration order, and later values overwrite
// earlier ones with the same name. A branch that cannot be enumerated is
// skipped and reported, the rest of the tree is still walked.
func Walk(key Key) (ValueMap, []*PartialReadError) {
	values := ValueMap{}
	var partial []*PartialReadError
	walk(key, key.Name(), values, &partial)
	return values, partial
}

func walk(key Key, keyPath string, values ValueMap, partial *[]*PartialReadError) {
	keyValues, err := key.Values()
	if err != nil {
		*partial = append(*partial, &PartialReadError{Path: keyPath, Err: err})
		return
	}
	for _, value := range keyValues {
		values[value.Name] = Coerce(value)
	}

	subkeys, err := key.Subkeys()
	if err != nil {
		*partial = append(*partial, &PartialReadError{Path: keyPath, Err: err})
		return
	}
	for _, subkey := range subkeys {
		walk(subkey, path.Join(keyPath, subkey.Name()), values, partial)
	}
}
