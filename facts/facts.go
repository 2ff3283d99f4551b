// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package facts provides read access to node inventory data, the equivalent
// of Salt grains, stored in a JSON or YAML file
package facts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Facts is a loaded set of inventory data
type Facts struct {
	source string
	data   []byte
	log    *logrus.Entry
}

// Load reads facts from file, files ending in .yaml or .yml are parsed as YAML
func Load(file string, log *logrus.Entry) (*Facts, error) {
	if file == "" {
		return nil, fmt.Errorf("cannot load facts, no file configured")
	}

	j, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read facts file %s: %w", file, err)
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		j, err = yaml.YAMLToJSON(j)
		if err != nil {
			return nil, fmt.Errorf("could not parse facts file %s as YAML: %w", file, err)
		}
	}

	if !gjson.ValidBytes(j) {
		return nil, fmt.Errorf("facts file %s does not contain valid JSON", file)
	}

	f := New(j, log)
	f.source = file
	f.log = f.log.WithField("facts_source", file)
	f.log.Debugf("Loaded %d bytes of facts", len(j))

	return f, nil
}

// New creates facts from JSON data
func New(data json.RawMessage, log *logrus.Entry) *Facts {
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}

	return &Facts{
		data: data,
		log:  log.WithField("component", "facts"),
	}
}

// Source is the file the facts were loaded from
func (f *Facts) Source() string {
	return f.source
}

// JSON returns the raw facts data
func (f *Facts) JSON() json.RawMessage {
	return json.RawMessage(f.data)
}

// Lookup retrieves a fact using a gjson query, false when the fact does not exist
func (f *Facts) Lookup(query string) (any, bool) {
	res := gjson.GetBytes(f.data, query)
	if !res.Exists() {
		return nil, false
	}

	return res.Value(), true
}

// String retrieves a fact as a string, false when the fact does not exist
func (f *Facts) String(query string) (string, bool) {
	res := gjson.GetBytes(f.data, query)
	if !res.Exists() {
		return "", false
	}

	return res.String(), true
}

// Strings retrieves a fact as a list of strings, a scalar fact becomes a single item list
func (f *Facts) Strings(query string) []string {
	res := gjson.GetBytes(f.data, query)
	if !res.Exists() {
		return []string{}
	}

	if !res.IsArray() {
		return []string{res.String()}
	}

	var list []string
	for _, i := range res.Array() {
		list = append(list, i.String())
	}

	return list
}
