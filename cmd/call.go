// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/tidwall/pretty"

	"github.com/mattfoxxx/salt-checkmk/checkmk"
	"github.com/mattfoxxx/salt-checkmk/mcorpc"
)

type callCommand struct {
	action string
	args   []string
	quiet  bool

	command
}

func (c *callCommand) Setup() error {
	c.cmd = cli.app.Command("call", "Invokes a CheckMK agent action")
	c.cmd.Arg("action", "The action to invoke").Required().StringVar(&c.action)
	c.cmd.Arg("args", "Arguments in positional order, key=value pairs for declared inputs have to come first").StringsVar(&c.args)
	c.cmd.Flag("quiet", "Only show the JSON result").Short('q').UnNegatableBoolVar(&c.quiet)

	return nil
}

func (c *callCommand) Configure() error {
	return commonConfigure()
}

func (c *callCommand) Run(wg *sync.WaitGroup) error {
	defer wg.Done()

	agent, activation, stats, err := agentFactory()
	if err != nil {
		return err
	}

	if !agent.ShouldActivate() {
		c.summary(false, "%s is not active on this node", agent.Name())
		return c.show(activation, true)
	}

	desc, _ := agent.ActionDescription(c.action)
	positional, named := parseCallArgs(c.args, desc)

	req := mcorpc.NewRequest(agent.Name(), c.action, positional...)
	req.Data, err = json.Marshal(named)
	if err != nil {
		return err
	}

	reply := agent.HandleRequest(ctx, req)

	err = stats.WriteTextfile(cfg.MetricsTextfile)
	if err != nil {
		log.Errorf("Could not write statistics: %s", err)
	}

	if reply.Statuscode != mcorpc.OK {
		c.summary(false, "%s#%s failed: %s", agent.Name(), c.action, reply.Statusmsg)
		return ErrFailed
	}

	failed := false
	if res, ok := reply.Data.(checkmk.Result); ok && res.Err() != nil {
		failed = true
		c.summary(false, "%s#%s failed: %s", agent.Name(), c.action, res.Kind)
	} else {
		c.summary(true, "%s#%s completed", agent.Name(), c.action)
	}

	return c.show(reply.Data, failed)
}

func (c *callCommand) summary(ok bool, format string, a ...any) {
	if c.quiet {
		return
	}

	if ok {
		fmt.Fprintln(os.Stderr, color.GreenString(format, a...))
	} else {
		fmt.Fprintln(os.Stderr, color.RedString(format, a...))
	}
}

func (c *callCommand) show(data any, failed bool) error {
	err := printJSON(data)
	if err != nil {
		return err
	}

	if failed {
		return ErrFailed
	}

	return nil
}

// splits arguments into leading key=value pairs naming a declared input and
// positional ones, once a positional argument is seen all that follow are positional
func parseCallArgs(args []string, desc mcorpc.ActionDescription) ([]string, map[string]string) {
	inputs := map[string]bool{}
	for _, i := range desc.Inputs {
		inputs[i.Name] = true
	}

	positional := []string{}
	named := map[string]string{}

	for _, arg := range args {
		if len(positional) == 0 {
			k, v, found := strings.Cut(arg, "=")
			if found && inputs[k] {
				named[k] = v
				continue
			}
		}

		positional = append(positional, arg)
	}

	return positional, named
}

// prints data as indented JSON, colored when color is enabled
func printJSON(data any) error {
	j, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("could not encode result: %w", err)
	}

	j = pretty.Pretty(j)
	if !color.NoColor {
		j = pretty.Color(j, nil)
	}

	fmt.Print(string(j))

	return nil
}

func init() {
	cli.commands = append(cli.commands, &callCommand{})
}
