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
	"path"
	"sort"
	"strings"
	"unicode"

	"github.com/forensicanalysis/fsdoublestar"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// maxDepth is the number of directory levels searched below the root. A
// bare ** only descends three levels.
const maxDepth = 64

// Locate finds all files below the root of fs whose name matches pattern.
// Matching ignores case. If parent is set, only files whose directory
// contains parent are returned. Returned paths are absolute and sorted.
func Locate(fs afero.Fs, pattern, parent string) ([]string, error) {
	fsys := afero.NewIOFS(afero.NewBasePathFs(fs, "/"))
	matches, err := fsdoublestar.Glob(fsys, fmt.Sprintf("**%d/%s", maxDepth, caseInsensitive(pattern)))
	if err != nil {
		return nil, errors.Wrapf(err, "could not glob %s", pattern)
	}

	parent = strings.ToLower(strings.Trim(parent, "/"))
	seen := map[string]bool{}
	var found []string
	for _, match := range matches {
		name := "/" + strings.TrimPrefix(match, "/")
		if seen[name] {
			continue
		}
		if parent != "" && !strings.Contains(strings.ToLower(path.Dir(name))+"/", "/"+parent+"/") {
			continue
		}
		info, err := fs.Stat(name)
		if err != nil || info.IsDir() {
			continue
		}
		seen[name] = true
		found = append(found, name)
	}
	sort.Strings(found)
	return found, nil
}

// caseInsensitive turns every letter of a glob into a character class of
// its upper and lower case form.
func caseInsensitive(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		lower, upper := unicode.ToLower(r), unicode.ToUpper(r)
		if lower == upper {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('[')
		b.WriteRune(upper)
		b.WriteRune(lower)
		b.WriteRune(']')
	}
	return b.String()
}
