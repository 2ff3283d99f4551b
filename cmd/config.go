// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/mattfoxxx/salt-checkmk/confkey"
)

type configCommand struct {
	key  string
	list bool

	command
}

func (c *configCommand) Setup() error {
	c.cmd = cli.app.Command("config", "Show documentation for a configuration item")
	c.cmd.Arg("key", "The configuration keys to look up, supports regular expressions").Required().StringVar(&c.key)
	c.cmd.Flag("list", "Only list matching config keys").Short('l').UnNegatableBoolVar(&c.list)

	return nil
}

func (c *configCommand) Configure() error {
	return commonConfigure()
}

func (c *configCommand) Run(wg *sync.WaitGroup) error {
	defer wg.Done()

	keys, err := cfg.ConfigKeys(c.key)
	if err != nil {
		return err
	}

	if len(keys) == 0 {
		return fmt.Errorf("no configuration keys declared matching %q", c.key)
	}

	if c.list {
		for _, k := range keys {
			fmt.Println(k)
		}
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()

	cols := 70
	if v, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && v > 0 {
		cols = min(v, 100)
	}

	for _, key := range keys {
		doc := cfg.DocForConfigKey(key)
		if doc == nil {
			continue
		}

		fmt.Printf("Configuration item: %s\n\n", bold(doc.ConfigKey()))
		fmt.Printf("    Data Type: %s\n", doc.Type())
		if doc.Validation() != "" {
			fmt.Printf("   Validation: %s\n", doc.Validation())
		}
		if doc.Default() != "" {
			fmt.Printf("      Default: %s\n", doc.Default())
		}
		if doc.Environment() != "" {
			fmt.Printf("  Environment: %s\n", doc.Environment())
		}
		if cfg.HasOption(key) {
			fmt.Printf("   Configured: %s\n", cfg.Option(key, ""))
		}
		fmt.Printf("      Current: %s\n", confkey.StringWithKey(cfg, key))
		fmt.Println()
		fmt.Println(wordWrap(doc.Description(), cols))
		fmt.Println()
	}

	return nil
}

func wordWrap(text string, lineWidth int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	wrapped := words[0]
	spaceLeft := lineWidth - len(wrapped)
	for _, word := range words[1:] {
		if len(word)+1 > spaceLeft {
			wrapped += "\n" + word
			spaceLeft = lineWidth - len(word)
		} else {
			wrapped += " " + word
			spaceLeft -= 1 + len(word)
		}
	}

	return wrapped
}

func init() {
	cli.commands = append(cli.commands, &configCommand{})
}
