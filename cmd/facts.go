// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/tidwall/pretty"
)

type factsCommand struct {
	query string

	command
}

func (f *factsCommand) Setup() error {
	f.cmd = cli.app.Command("facts", "Shows the node inventory")
	f.cmd.Arg("query", "A gjson query selecting a single value like roles or os.family").StringVar(&f.query)

	return nil
}

func (f *factsCommand) Configure() error {
	return commonConfigure()
}

func (f *factsCommand) Run(wg *sync.WaitGroup) error {
	defer wg.Done()

	inventory, err := loadFacts()
	if err != nil {
		return err
	}

	if inventory.Source() != "" {
		fmt.Fprintf(os.Stderr, "Inventory loaded from %s\n", inventory.Source())
	}

	if f.query == "" {
		fmt.Print(string(pretty.Pretty(inventory.JSON())))
		return nil
	}

	v, ok := inventory.Lookup(f.query)
	if !ok {
		return fmt.Errorf("no value found for %s in %s", f.query, cfg.FactsFile)
	}

	switch v.(type) {
	case map[string]any, []any:
		return printJSON(v)
	}

	s, _ := inventory.String(f.query)
	fmt.Println(s)

	return nil
}

func init() {
	cli.commands = append(cli.commands, &factsCommand{})
}
