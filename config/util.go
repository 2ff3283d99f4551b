// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/mattfoxxx/salt-checkmk/confkey"
)

var (
	itemRe = regexp.MustCompile(`(.+?)\s*=\s*(.+)`)
	skipRe = regexp.MustCompile(`^#|^$`)
)

// parse a config file and fill in the given config structure based on its tags
func parseConfig(path string, c *Config, prefix string, found map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	c.ParsedFiles = append(c.ParsedFiles, path)

	return parseConfigContents(file, c, prefix, found)
}

func parseConfigContents(content io.Reader, c *Config, prefix string, found map[string]string) error {
	scanner := bufio.NewScanner(content)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if skipRe.MatchString(line) {
			continue
		}

		matches := itemRe.FindStringSubmatch(line)
		if matches == nil {
			continue
		}

		key := strings.TrimSpace(matches[1])
		if prefix != "" {
			key = prefix + "." + key
		}

		found[key] = matches[2]

		// the main file also carries settings for choria and other plugins, those are not errors
		if _, ok := confkey.KeyTag(c, key, "confkey"); !ok {
			continue
		}

		err := confkey.SetStructFieldWithKey(c, key, matches[2])
		if err != nil {
			return err
		}
	}

	return scanner.Err()
}
