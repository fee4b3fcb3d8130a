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

// Source describes where parsed content came from.
type Source struct {
	// Path of the file or hive inside the examined image.
	Path string
	// ParentID is the id of the element the content was extracted from.
	ParentID string
}

// Results holds the records of one parse in creation order together with
// problems that did not stop the parse.
type Results struct {
	Records  []Record
	Warnings []error
}

func (r *Results) add(records ...Record) {
	r.Records = append(r.Records, records...)
}

func (r *Results) warn(err error) {
	r.Warnings = append(r.Warnings, err)
}

func (r *Results) merge(other *Results) {
	r.Records = append(r.Records, other.Records...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

func newTeamViewerID(value, description string, src Source, associatedID string) *TeamViewerID {
	id := NewTeamViewerID()
	id.Value = value
	id.Description = description
	id.Source = src.Path
	id.AssociatedID = associatedID
	return id
}

func newUsername(value, description string, src Source, associatedID string) *Username {
	username := NewUsername()
	username.Value = value
	username.Description = description
	username.Source = src.Path
	username.AssociatedID = associatedID
	return username
}
