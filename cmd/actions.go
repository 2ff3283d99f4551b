// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fatih/color"

	iu "github.com/mattfoxxx/salt-checkmk/internal/util"
)

type actionsCommand struct {
	command
}

func (a *actionsCommand) Setup() error {
	a.cmd = cli.app.Command("actions", "Lists the actions and their arguments")

	return nil
}

func (a *actionsCommand) Configure() error {
	return commonConfigure()
}

func (a *actionsCommand) Run(wg *sync.WaitGroup) error {
	defer wg.Done()

	agent, activation, _, err := agentFactory()
	if err != nil {
		return err
	}

	meta := agent.Metadata()
	table := iu.NewUTF8TableWithTitle(fmt.Sprintf("%s version %s", meta.Name, meta.Version), "Action", "Arguments", "Description")

	for _, name := range agent.ActionNames() {
		desc, _ := agent.ActionDescription(name)

		var args []string
		for _, i := range desc.Inputs {
			if i.Optional {
				args = append(args, fmt.Sprintf("[%s]", i.Name))
			} else {
				args = append(args, i.Name)
			}
		}

		table.AddRow(name, strings.Join(args, " "), desc.Description)
	}

	fmt.Println(table.Render())

	if agent.ShouldActivate() {
		fmt.Printf("Activated as %s\n", color.GreenString(activation.Message))
	} else {
		fmt.Printf("Not active: %s\n", color.RedString(activation.Message))
	}

	return nil
}

func init() {
	cli.commands = append(cli.commands, &actionsCommand{})
}
