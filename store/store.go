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

// Package store persists extracted elements in a SQLite database.
//
// Every element is a JSON object with an id and a type discriminator. The
// elements are kept in a single full text indexed table, for each element
// type a view with one column per field is created when the store is closed.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"crawshaw.io/sqlite"
	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const storeVersion = 1
const storeApplicationID = 1953915252
const discriminator = "type"

// JSONElement is a single element in its JSON encoding.
type JSONElement []byte

var ErrStoreExists = errors.New("store already exists")
var ErrStoreNotExists = errors.New("store does not exist")

// Store holds the elements of one extraction run.
type Store struct {
	conn      *sqlite.Conn
	connMutex sync.Mutex
	types     *typeMap
}

// New creates a new store at url.
func New(url string) (*Store, error) {
	return open(url, true)
}

// Open opens an existing store.
func Open(url string) (*Store, error) {
	return open(url, false)
}

func pragma(conn *sqlite.Conn, name string) (int64, error) {
	stmt, err := conn.Prepare("PRAGMA " + name)
	if err != nil {
		return 0, err
	}
	if _, err = stmt.Step(); err != nil {
		return 0, err
	}
	i := stmt.GetInt64(name)
	return i, stmt.Finalize()
}

func setPragma(conn *sqlite.Conn, name string, i int64) error {
	stmt, err := conn.Prepare("PRAGMA " + name + " = " + fmt.Sprint(i))
	if err != nil {
		return err
	}
	if _, err = stmt.Step(); err != nil {
		return err
	}
	return stmt.Finalize()
}

func open(url string, create bool) (*Store, error) { // nolint:gocyclo
	url = strings.TrimRight(url, "/")

	exists := true
	if _, err := os.Stat(url); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		exists = false
	}

	if create && exists {
		return nil, ErrStoreExists
	}
	if !create && !exists {
		return nil, ErrStoreNotExists
	}

	if create {
		if err := os.MkdirAll(path.Dir(url), 0750); err != nil {
			return nil, err
		}
		log.Debug().Str("store", url).Msg("creating store")
	}

	conn, err := sqlite.OpenConn(url, 0)
	if err != nil {
		return nil, errors.Wrap(err, "could not open database")
	}
	store := &Store{conn: conn, types: newTypeMap()}

	if create {
		if err := store.initialize(); err != nil {
			conn.Close()
			return nil, err
		}
	} else if err := store.checkFormat(); err != nil {
		conn.Close()
		return nil, err
	}

	if err := store.setupTypes(); err != nil {
		conn.Close()
		return nil, err
	}
	return store, nil
}

func (store *Store) initialize() error {
	if err := setPragma(store.conn, "application_id", storeApplicationID); err != nil {
		return err
	}
	if err := setPragma(store.conn, "user_version", storeVersion); err != nil {
		return err
	}
	return store.exec("CREATE VIRTUAL TABLE `elements` " +
		"USING fts5(id UNINDEXED, json, insert_time UNINDEXED, tokenize=\"unicode61 tokenchars '/.:-'\")")
}

func (store *Store) checkFormat() error {
	applicationID, err := pragma(store.conn, "application_id")
	if err != nil {
		return err
	}
	if applicationID != storeApplicationID {
		return fmt.Errorf("wrong file format (application_id is %d, requires %d)", applicationID, storeApplicationID)
	}

	version, err := pragma(store.conn, "user_version")
	if err != nil {
		return err
	}
	if version != storeVersion {
		return fmt.Errorf("wrong file format (user_version is %d, requires %d)", version, storeVersion)
	}
	return nil
}

/* ################################
#   API
################################ */

// Insert validates and adds a single element. An id is assigned if the
// element has none.
func (store *Store) Insert(element JSONElement) (string, error) {
	nestedElement := map[string]interface{}{}
	if err := json.Unmarshal(element, &nestedElement); err != nil {
		return "", err
	}

	elementType, ok := nestedElement[discriminator].(string)
	if !ok || elementType == "" {
		return "", errors.New("element requires type")
	}
	id, ok := nestedElement["id"].(string)
	if !ok || id == "" {
		id = elementType + "--" + uuid.New().String()
		nestedElement["id"] = id

		var err error
		element, err = json.Marshal(nestedElement)
		if err != nil {
			return "", err
		}
	}

	flaws, err := validateSchema(element)
	if err != nil {
		return "", errors.Wrap(err, "validation failed")
	}
	if len(flaws) > 0 {
		return "", fmt.Errorf("element could not be validated [%s]", strings.Join(flaws, ","))
	}

	flatElement := flatten(nestedElement)
	store.types.addAll(elementType, flatElement)

	store.connMutex.Lock()
	defer store.connMutex.Unlock()

	stmt, err := store.conn.Prepare("INSERT INTO `elements` (id, json, insert_time) VALUES ($id, $json, $time)")
	if err != nil {
		return "", errors.Wrap(err, "could not prepare insert")
	}
	stmt.SetText("$id", id)
	stmt.SetText("$json", string(element))
	stmt.SetText("$time", time.Now().UTC().Format("2006-01-02T15:04:05.000Z"))
	if _, err = stmt.Step(); err != nil {
		return "", errors.Wrap(err, "could not insert element")
	}
	return id, nil
}

// InsertStruct converts a Go struct to a map with snake case keys, drops
// empty fields and inserts it.
func (store *Store) InsertStruct(element interface{}) (string, error) {
	m := structs.Map(element)
	b, err := json.Marshal(lower(m))
	if err != nil {
		return "", err
	}
	return store.Insert(b)
}

// Get retrieves a single element.
func (store *Store) Get(id string) (JSONElement, error) {
	store.connMutex.Lock()
	defer store.connMutex.Unlock()

	stmt, err := store.conn.Prepare("SELECT json FROM `elements` WHERE id = $id")
	if err != nil {
		return nil, err
	}
	stmt.SetText("$id", id)

	elements, err := rowsToElements(stmt)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, errors.Errorf("element %s does not exist", id)
	}
	return elements[0], nil
}

// Select retrieves all elements of a type. Every condition is a set of
// field LIKE value comparisons that must all hold, an element is returned if
// any condition holds.
func (store *Store) Select(elementType string, conditions []map[string]string) ([]JSONElement, error) {
	query := "SELECT json FROM `elements` WHERE json_extract(json, '$." + discriminator + "') = ?"
	args := []string{elementType}

	var ors []string
	for _, condition := range conditions {
		keys := make([]string, 0, len(condition))
		for key := range condition {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		var ands []string
		for _, key := range keys {
			ands = append(ands, "json_extract(json, ?) LIKE ?")
			args = append(args, jsonPath(key), condition[key])
		}
		if len(ands) > 0 {
			ors = append(ors, "("+strings.Join(ands, " AND ")+")")
		}
	}
	if len(ors) > 0 {
		query += " AND (" + strings.Join(ors, " OR ") + ")"
	}
	query += " ORDER BY rowid"

	return store.query(query, args...)
}

// Search runs a full text query over all elements.
func (store *Store) Search(q string) ([]JSONElement, error) {
	return store.query("SELECT json FROM `elements` WHERE elements = ? ORDER BY rank", q)
}

// All returns every element in insert order.
func (store *Store) All() ([]JSONElement, error) {
	return store.query("SELECT json FROM `elements` ORDER BY rowid")
}

// Types lists the element types and their fields.
func (store *Store) Types() map[string][]string {
	types := map[string][]string{}
	for name, fields := range store.types.all() {
		for field := range fields {
			types[name] = append(types[name], field)
		}
		sort.Strings(types[name])
	}
	return types
}

// Close creates the type views and closes the database.
func (store *Store) Close() error {
	store.connMutex.Lock()
	defer store.connMutex.Unlock()

	if store.types.changed {
		if err := store.createViews(); err != nil {
			log.Error().Err(err).Msg("could not create views")
		}
	}
	return store.conn.Close()
}

/* ################################
#   Intern
################################ */

func (store *Store) query(query string, args ...string) ([]JSONElement, error) {
	store.connMutex.Lock()
	defer store.connMutex.Unlock()

	stmt, err := store.conn.Prepare(query)
	if err != nil {
		return nil, err
	}
	for i, arg := range args {
		stmt.BindText(i+1, arg)
	}
	return rowsToElements(stmt)
}

func rowsToElements(stmt *sqlite.Stmt) ([]JSONElement, error) {
	elements := []JSONElement{}
	for {
		if hasRow, err := stmt.Step(); err != nil {
			stmt.Reset() // nolint:errcheck
			return nil, err
		} else if !hasRow {
			break
		}
		elements = append(elements, JSONElement(stmt.GetText("json")))
	}
	return elements, stmt.Reset()
}

func (store *Store) createViews() error {
	for typeName, fields := range store.types.all() {
		if err := store.exec(fmt.Sprintf("DROP VIEW IF EXISTS %s", quote(typeName))); err != nil {
			return err
		}
		var columns []string
		for field := range fields {
			columns = append(columns, fmt.Sprintf("json_extract(json, '%s') AS %s", jsonPath(field), quote(field)))
		}
		sort.Strings(columns)
		err := store.exec(fmt.Sprintf(
			"CREATE VIEW %s AS SELECT %s FROM elements WHERE json_extract(json, '$.%s') = '%s'",
			quote(typeName), strings.Join(columns, ", "), discriminator, typeName,
		))
		if err != nil {
			return err
		}
	}
	return nil
}

func (store *Store) setupTypes() error {
	stmt, err := store.conn.Prepare("SELECT name FROM sqlite_master WHERE type = 'view'")
	if err != nil {
		return err
	}

	var views []string
	for {
		if hasRow, err := stmt.Step(); err != nil {
			return err
		} else if !hasRow {
			break
		}
		views = append(views, stmt.GetText("name"))
	}
	if err := stmt.Finalize(); err != nil {
		return err
	}

	for _, view := range views {
		pragmaStmt, err := store.conn.Prepare(fmt.Sprintf("PRAGMA table_info (%s)", quote(view)))
		if err != nil {
			return err
		}
		for {
			if hasRow, err := pragmaStmt.Step(); err != nil {
				return err
			} else if !hasRow {
				break
			}
			store.types.add(view, pragmaStmt.GetText("name"))
		}
		if err := pragmaStmt.Finalize(); err != nil {
			return err
		}
	}
	store.types.changed = false
	return nil
}

func (store *Store) exec(query string) error {
	stmt, err := store.conn.Prepare(query)
	if err != nil {
		return err
	}
	if _, err = stmt.Step(); err != nil {
		return err
	}
	return stmt.Finalize()
}

// jsonPath converts a flattened field name like origin.path into a SQLite
// JSON path.
func jsonPath(field string) string {
	var b strings.Builder
	b.WriteString("$")
	for _, segment := range strings.Split(field, ".") {
		b.WriteString(`."`)
		b.WriteString(strings.ReplaceAll(segment, `"`, `""`))
		b.WriteString(`"`)
	}
	return b.String()
}

func quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}
