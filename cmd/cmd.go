// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package cmd is the checkmk-agent command line
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/choria-io/fisk"
	"github.com/sirupsen/logrus"

	agent "github.com/mattfoxxx/salt-checkmk/agents/checkmk"
	"github.com/mattfoxxx/salt-checkmk/build"
	"github.com/mattfoxxx/salt-checkmk/checkmk"
	"github.com/mattfoxxx/salt-checkmk/config"
	"github.com/mattfoxxx/salt-checkmk/facts"
	"github.com/mattfoxxx/salt-checkmk/host"
	iu "github.com/mattfoxxx/salt-checkmk/internal/util"
	"github.com/mattfoxxx/salt-checkmk/logger"
	"github.com/mattfoxxx/salt-checkmk/mcorpc"
	"github.com/mattfoxxx/salt-checkmk/statistics"
)

type application struct {
	app      *fisk.Application
	command  string
	commands []runableCmd
}

// ErrFailed indicates a command completed but reported a failure, the
// details were already shown to the user
var ErrFailed = errors.New("command reported a failure")

var (
	cli        = application{}
	debug      = false
	configFile = ""
	factsFile  = ""
	cfg        *config.Config
	log        *logrus.Logger
	ctx        context.Context
	cancel     func()
	wg         *sync.WaitGroup
)

// ParseCLI parses the command line and configures the selected command
func ParseCLI() (err error) {
	cli.app = fisk.New("checkmk-agent", "CheckMK agent lifecycle management")
	cli.app.Version(build.Version)
	cli.app.Author("R.I.Pienaar <rip@devco.net>")
	cli.app.UsageTemplate(fisk.CompactMainUsageTemplate)

	cli.app.Flag("debug", "Enable debug logging").Short('d').UnNegatableBoolVar(&debug)
	cli.app.Flag("config", "Config file to use").PlaceHolder("FILE").StringVar(&configFile)
	cli.app.Flag("facts", "Facts file holding the node inventory").PlaceHolder("FILE").StringVar(&factsFile)

	for _, cmd := range cli.commands {
		err = cmd.Setup()
		if err != nil {
			return err
		}
	}

	cli.command = fisk.MustParse(cli.app.Parse(os.Args[1:]))

	for _, cmd := range cli.commands {
		if cmd.FullCommand() == cli.command {
			err = cmd.Configure()
			if err != nil {
				return fmt.Errorf("%s failed to configure: %w", cmd.FullCommand(), err)
			}
		}
	}

	return nil
}

func commonConfigure() (err error) {
	cfg, err = config.NewConfig(configFile)
	if err != nil {
		return fmt.Errorf("could not parse configuration: %w", err)
	}

	if factsFile != "" {
		err = cfg.SetOption(config.PluginPrefix+".facts", factsFile)
		if err != nil {
			return err
		}
	}

	log, err = logger.New(cfg, debug)
	if err != nil {
		return err
	}

	if debug {
		log.Debug("Logging at debug level due to CLI override")
	}

	return nil
}

// Run runs the command selected during ParseCLI
func Run() (err error) {
	wg = &sync.WaitGroup{}
	ran := false

	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()

	go interruptWatcher()

	for _, cmd := range cli.commands {
		if cmd.FullCommand() == cli.command {
			ran = true

			wg.Add(1)
			err = cmd.Run(wg)
		}
	}

	if !ran {
		err = fmt.Errorf("could not run the CLI: invalid command %s", cli.command)
	}

	if err != nil {
		cancel()
	}

	wg.Wait()

	return err
}

// loads the facts, a missing facts file results in an empty inventory
func loadFacts() (*facts.Facts, error) {
	flog := logger.Component(log, "facts")

	if !iu.FileExist(cfg.FactsFile) {
		flog.Warnf("Facts file %s does not exist, using an empty inventory", cfg.FactsFile)
		return facts.New(nil, flog), nil
	}

	return facts.Load(cfg.FactsFile, flog)
}

// agentFactory creates the agent commands interact with
var agentFactory = newAgent

// creates the checkmk agent bound to the local host
func newAgent() (*mcorpc.Agent, checkmk.Result, *statistics.Stats, error) {
	f, err := loadFacts()
	if err != nil {
		return nil, checkmk.Result{}, nil, err
	}

	h, err := host.New(cfg, f, logger.Component(log, "host"))
	if err != nil {
		return nil, checkmk.Result{}, nil, fmt.Errorf("could not create host: %w", err)
	}

	stats := statistics.New(logger.Component(log, "statistics"))
	err = stats.LoadTextfile(cfg.MetricsTextfile)
	if err != nil {
		log.Warnf("Could not load previous statistics, starting afresh: %s", err)
	}

	a, activation := agent.New(ctx, h, cfg, logger.Component(log, "agent"))
	a.SetRecorder(stats)

	return a, activation, stats, nil
}

func interruptWatcher() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case sig := <-sigs:
			log.Infof("Shutting down on %s", sig)
			cancel()
		case <-ctx.Done():
			return
		}
	}
}
