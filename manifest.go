// Copyright (c) 2026, the nodegen contributors
//
// SPDX-License-Identifier: Apache-2.0

package nodegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// OrderedMap is a string to string mapping that remembers insertion order.
// Unlike a plain Go map it serializes its keys in a stable order: insertion
// order by default, lexicographic order when created with NewSortedMap.
type OrderedMap struct {
	keys   []string
	values map[string]string
	sorted bool
}

// Pair is a single key/value entry in iteration order.
type Pair struct {
	Key   string
	Value string
}

// NewOrderedMap creates an empty map that serializes in insertion order
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: map[string]string{}}
}

// NewSortedMap creates an empty map that serializes with lexicographically
// sorted keys regardless of insertion order
func NewSortedMap() *OrderedMap {
	return &OrderedMap{values: map[string]string{}, sorted: true}
}

// Set stores a value, updating an existing key keeps its original position
func (m *OrderedMap) Set(key string, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get retrieves a value
func (m *OrderedMap) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len reports the number of entries
func (m *OrderedMap) Len() int { return len(m.keys) }

// Keys returns the keys in serialization order. The returned slice is a copy,
// sorting for serialization never reorders the map itself.
func (m *OrderedMap) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	if m.sorted {
		sort.Strings(keys)
	}

	return keys
}

// Pairs returns the entries in serialization order, mainly for iteration from
// templates
func (m *OrderedMap) Pairs() []Pair {
	pairs := make([]Pair, 0, len(m.keys))
	for _, k := range m.Keys() {
		pairs = append(pairs, Pair{Key: k, Value: m.values[k]})
	}

	return pairs
}

// MarshalJSON implements json.Marshaler preserving key order, something the
// standard map type cannot do
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBufferString("{")

	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		val, err := marshalNoEscape(m.values[k])
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// marshalNoEscape marshals without HTML escaping so shell operators in
// scripts survive serialization verbatim
func marshalNoEscape(v any) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	err := enc.Encode(v)
	if err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Manifest models the package.json descriptor of the generated application.
//
// Dependencies always serialize with lexicographically sorted keys, mirroring
// what package managers write back. Scripts and DevDependencies keep their
// insertion order.
type Manifest struct {
	Name            string      `json:"name"`
	Version         string      `json:"version"`
	Private         bool        `json:"private"`
	Main            string      `json:"main"`
	Scripts         *OrderedMap `json:"scripts"`
	Dependencies    *OrderedMap `json:"dependencies"`
	DevDependencies *OrderedMap `json:"devDependencies"`
}

// NewManifest creates the baseline manifest every generated application
// starts from
func NewManifest(name string) *Manifest {
	m := &Manifest{
		Name:            name,
		Version:         "0.0.0",
		Private:         true,
		Main:            "server.js",
		Scripts:         NewOrderedMap(),
		Dependencies:    NewSortedMap(),
		DevDependencies: NewOrderedMap(),
	}

	m.AddScript("start", "node server.js")
	m.AddScript("dev", "nodemon server.js")
	m.AddScript("lint", "eslint .")
	m.AddScript("lint:fix", "eslint . --fix")
	m.AddScript("test", `echo "Error: no test specified" && exit 1`)

	m.AddDependency("express", "^4.18.2")
	m.AddDependency("chalk", "^4.1.2")

	m.AddDevDependency("eslint", "^8.52.0")
	m.AddDevDependency("eslint-config-prettier", "^9.0.0")
	m.AddDevDependency("eslint-plugin-prettier", "^5.0.1")
	m.AddDevDependency("prettier", "^3.0.3")
	m.AddDevDependency("nodemon", "^3.0.1")

	return m
}

// AddDependency records a runtime dependency with its semver range
func (m *Manifest) AddDependency(name string, version string) {
	m.Dependencies.Set(name, version)
}

// AddDevDependency records a development-time dependency with its semver range
func (m *Manifest) AddDevDependency(name string, version string) {
	m.DevDependencies.Set(name, version)
}

// AddScript records a package script
func (m *Manifest) AddScript(name string, command string) {
	m.Scripts.Set(name, command)
}

// Serialize renders the manifest as pretty-printed JSON with 2 space
// indentation and a single trailing newline, ready to be written as
// package.json
func (m *Manifest) Serialize() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	err := enc.Encode(m)
	if err != nil {
		return nil, fmt.Errorf("cannot serialize manifest: %w", err)
	}

	return buf.Bytes(), nil
}
