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
	"encoding/json"
	"testing"
)

// withoutIDs converts records to maps without generated identifiers so that
// two parses of the same input can be compared.
func withoutIDs(t *testing.T, records []Record) []map[string]interface{} {
	var elements []map[string]interface{}
	for _, record := range records {
		b, err := json.Marshal(record)
		if err != nil {
			t.Fatal(err)
		}
		element := map[string]interface{}{}
		if err := json.Unmarshal(b, &element); err != nil {
			t.Fatal(err)
		}
		delete(element, "id")
		delete(element, "associated_id")
		elements = append(elements, element)
	}
	return elements
}

func teamViewerIDs(records []Record) []*TeamViewerID {
	var ids []*TeamViewerID
	for _, record := range records {
		if id, ok := record.(*TeamViewerID); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func usernames(records []Record) []*Username {
	var names []*Username
	for _, record := range records {
		if name, ok := record.(*Username); ok {
			names = append(names, name)
		}
	}
	return names
}

func ipAddressRecords(records []Record) []*IPAddress {
	var ips []*IPAddress
	for _, record := range records {
		if ip, ok := record.(*IPAddress); ok {
			ips = append(ips, ip)
		}
	}
	return ips
}

func connections(records []Record) []*Connection {
	var conns []*Connection
	for _, record := range records {
		if conn, ok := record.(*Connection); ok {
			conns = append(conns, conn)
		}
	}
	return conns
}
