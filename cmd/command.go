// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"sync"

	"github.com/choria-io/fisk"
)

type command struct {
	cmd *fisk.CmdClause
}

type runableCmd interface {
	Setup() error
	Configure() error
	Run(wg *sync.WaitGroup) error
	FullCommand() string
	Cmd() *fisk.CmdClause
}

func (c *command) FullCommand() string {
	return c.Cmd().FullCommand()
}

func (c *command) Cmd() *fisk.CmdClause {
	return c.cmd
}
