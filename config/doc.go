// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"github.com/mattfoxxx/salt-checkmk/confkey"
)

// Doc describes a single configuration item
type Doc struct {
	ds         string
	configKey  string
	dflt       string
	env        string
	vtype      string
	validation string
}

// ConfigKey is the key to place within the configuration to set the item
func (d *Doc) ConfigKey() string {
	return d.configKey
}

// Type is the type of data to store in the item
func (d *Doc) Type() string {
	return d.vtype
}

// Description is a description of the item, Undocumented when not set
func (d *Doc) Description() string {
	if d.ds == "" {
		return "Undocumented"
	}

	return d.ds
}

// Default is the default value as a string
func (d *Doc) Default() string {
	return d.dflt
}

// Validation is the configured validation
func (d *Doc) Validation() string {
	return d.validation
}

// Environment is an environment variable that can set this item, empty when not settable
func (d *Doc) Environment() string {
	return d.env
}

// DocForConfigKey documents the item k, nil when no such item exist
func (c *Config) DocForConfigKey(k string) *Doc {
	vtype, err := confkey.Type(c, k)
	if err != nil {
		return nil
	}

	d := &Doc{
		ds:        docStrings[k],
		configKey: k,
		vtype:     vtype,
	}

	d.dflt, _ = confkey.KeyTag(c, k, "default")
	d.env, _ = confkey.KeyTag(c, k, "environment")
	d.validation, _ = confkey.KeyTag(c, k, "validate")

	return d
}

// ConfigKeys retrieves all known configuration keys matching re
func (c *Config) ConfigKeys(re string) ([]string, error) {
	return confkey.FindFields(c, re)
}
