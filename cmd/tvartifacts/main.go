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

// Package tvartifacts implements the tvartifacts command line tool.
//     extract   Extract TeamViewer artifacts from a mounted image
//     element   Read elements of a store (get, select, all, search)
//     types     List element types and their fields
//
// Usage
//
// Extract artifacts
//     tvartifacts extract --source /mnt/image --store case.db
//     tvartifacts extract --source /mnt/image --store case.db --config tvartifacts.json --debug
// Read results
//     tvartifacts element select teamviewer-connection case.db
//     tvartifacts element select teamviewer-id case.db --filter value=123% --field value
//     tvartifacts element search Alice case.db
package main

import (
	"fmt"
	"os"

	"github.com/forensicanalysis/tvartifacts/cmd"
)

func main() {
	if err := cmd.Root().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
