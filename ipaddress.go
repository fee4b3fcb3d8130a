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

import "regexp"

// IPv4Pattern matches dotted quads. Octets are not range checked, so
// 999.1.2.3 is reported as well.
const IPv4Pattern = `\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`

var ipv4 = regexp.MustCompile(IPv4Pattern)

// ScanIPv4 returns every IPv4 address in text in order of appearance.
func ScanIPv4(text string) []string {
	return ipv4.FindAllString(text, -1)
}

// ipAddresses creates an IPAddress record for every address in text.
func ipAddresses(text, description string, src Source, associatedID string) []Record {
	var records []Record
	for _, address := range ScanIPv4(text) {
		ip := NewIPAddress()
		ip.Value = address
		ip.Description = description
		ip.Pattern = IPv4Pattern
		ip.Text = text
		ip.Source = src.Path
		ip.AssociatedID = associatedID
		records = append(records, ip)
	}
	return records
}
