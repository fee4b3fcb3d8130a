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

// Package tvartifacts extracts TeamViewer traces from the file system of a
// Windows disk image and stores them as json elements.
//
// Sources
//
// The analyzer reads the following traces:
//     - TeamViewer keys of the SOFTWARE hive and of every NTUSER.DAT hive.
//     - Connections_incoming.txt and Connections.txt connection logs.
//     - TeamViewer*_Logfile.log program logs, which are scanned for IP addresses.
//     - *.tvs session recordings and *.tvc configuration files.
//     - tvprint*.db and tvchatfile*.db databases, which are recorded but not parsed.
//
// Elements
//
// Every located file is stored as a STIX file element. Elements extracted
// from a file refer to it by their associated_id attribute. Element types are
// file, teamviewer-id, teamviewer-username, teamviewer-ip-address,
// teamviewer-mac-address, teamviewer-connection, teamviewer-installed-program,
// teamviewer-registry-item and teamviewer-ft-start-directory. A file element
// carries an errors attribute if its content could not be read completely.
//
// Usage
//
//     cfg, _ := config.LoadFile("tvartifacts.json")
//     artifactStore, _ := store.New("case.db")
//     defer artifactStore.Close()
//     analyzer := tvartifacts.NewAnalyzer(cfg, afero.NewBasePathFs(afero.NewOsFs(), "/mnt/image"), artifactStore, log)
//     if err := analyzer.Setup(); err != nil {
//         return err
//     }
//     summary, err := analyzer.Process()
package tvartifacts
