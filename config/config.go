// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fatih/color"

	"github.com/mattfoxxx/salt-checkmk/build"
	"github.com/mattfoxxx/salt-checkmk/confkey"
)

// PluginPrefix is the prefix for all plugin specific configuration keys
const PluginPrefix = "plugin.checkmk"

// Config represents the CheckMK agent plugin configuration
type Config struct {
	// The file to write logs to, when set to an empty string logging will be to the console, when set to 'discard' logging will be disabled
	LogFile string `confkey:"logfile" type:"path_string"`

	// The lowest level log to add to the logfile
	LogLevel string `confkey:"loglevel" default:"info" validate:"enum=debug,info,warn,error,fatal"`

	// The identity this machine is known as when the inventory does not supply an id
	Identity string `confkey:"identity"`

	// Disables or enable CLI color
	Color bool `confkey:"color" default:"true"`

	// Where the cmk-update-agent binary is downloaded to and executed from
	UpdaterPath string `confkey:"plugin.checkmk.updater_path" default:"/usr/bin/cmk-update-agent" environment:"CHECKMK_UPDATER" validate:"regex=^/"`

	// Where the installed CheckMK agent binary is expected
	AgentPath string `confkey:"plugin.checkmk.agent_path" default:"/usr/bin/check_mk_agent" environment:"CHECKMK_AGENT" validate:"regex=^/"`

	// The JSON or YAML file holding node inventory like id and roles
	FactsFile string `confkey:"plugin.checkmk.facts" default:"/etc/choria/facts.json" type:"path_string" environment:"CHECKMK_FACTS"`

	// The inventory role that activates the plugin
	Role string `confkey:"plugin.checkmk.role" default:"checkmk_agent"`

	// How long a download of the updater may take, 0 disables the timeout
	DownloadTimeout time.Duration `confkey:"plugin.checkmk.download_timeout" type:"duration" default:"60s"`

	// How long updater commands may run, 0 disables the timeout
	CommandTimeout time.Duration `confkey:"plugin.checkmk.command_timeout" type:"duration" default:"300s"`

	// A CA bundle used to verify the CheckMK site, system roots when unset
	CAFile string `confkey:"plugin.checkmk.ca_file" type:"path_string"`

	// Disables TLS verification of the CheckMK site
	Insecure bool `confkey:"plugin.checkmk.insecure" default:"false"`

	// List of allowed cipher suites when connecting to the CheckMK site, all Go supported suites when empty
	CipherSuites []string `confkey:"plugin.checkmk.cipher_suites" type:"comma_split"`

	// List of allowed ECC curves when connecting to the CheckMK site
	ECCCurves []string `confkey:"plugin.checkmk.ecc_curves" type:"comma_split"`

	// How often a download that could not connect to the CheckMK site is retried
	DownloadRetries int `confkey:"plugin.checkmk.download_retries" default:"0"`

	// When set action statistics are written here in the Prometheus text format
	MetricsTextfile string `confkey:"plugin.checkmk.metrics_textfile" type:"path_string"`

	// ConfigFile is the main configuration that was used, empty when defaults were used
	ConfigFile string

	// ParsedFiles is a list of all files parsed to create the current config
	ParsedFiles []string

	rawOpts map[string]string
}

// NewConfig parses a config file and, when present, the plugin.d/checkmk.cfg next
// to it. A missing main configuration file results in a default configuration.
func NewConfig(path string) (*Config, error) {
	c := newConfig()

	if path == "" {
		path = build.DefaultConfigFile
	}

	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	err := parseConfig(path, c, "", c.rawOpts)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		c.ConfigFile = path
	}

	err = parseConfig(filepath.Join(filepath.Dir(path), "plugin.d", "checkmk.cfg"), c, PluginPrefix, c.rawOpts)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	err = c.normalize()
	if err != nil {
		return nil, err
	}

	return c, nil
}

// NewDefaultConfig creates a configuration with only defaults applied
func NewDefaultConfig() (*Config, error) {
	c := newConfig()

	err := c.normalize()
	if err != nil {
		return nil, err
	}

	return c, nil
}

// NewConfigForTests creates a configuration for use in testing tools
func NewConfigForTests() *Config {
	c := newConfig()
	c.Identity = "ginkgo.example.net"
	c.LogLevel = "fatal"
	c.LogFile = "discard"
	c.Color = false

	return c
}

// HasOption determines if a specific option was set from a config key.
// The option given would be something like `plugin.checkmk.updater_path`
// and true would indicate that it was set by config vs using defaults
func (c *Config) HasOption(option string) bool {
	_, ok := c.rawOpts[option]

	return ok
}

// Option retrieves the raw string representation of a given option
// from that was loaded from the configuration
func (c *Config) Option(option string, deflt string) string {
	v, ok := c.rawOpts[option]
	if !ok {
		return deflt
	}

	return v
}

// SetOption sets a configuration key and records it as set by config
func (c *Config) SetOption(option string, value string) error {
	err := confkey.SetStructFieldWithKey(c, option, value)
	if err != nil {
		return err
	}

	c.rawOpts[option] = value

	return nil
}

func (c *Config) normalize() error {
	if c.Identity == "" {
		hn, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("could not determine hostname: %w", err)
		}

		c.Identity = hn
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if runtime.GOOS == "windows" {
		c.Color = false
	}

	if !c.Color {
		color.NoColor = true
	}

	return confkey.Validate(c)
}

func newConfig() *Config {
	c := &Config{
		rawOpts: make(map[string]string),
	}

	err := confkey.SetStructDefaults(c)
	if err != nil {
		// defaults are static so this only happens on a programming error
		panic(fmt.Sprintf("config creation failed: %s", err))
	}

	return c
}
