// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

//go:generate mockgen -destination inter/imocks/host.go -package imock github.com/mattfoxxx/salt-checkmk/inter Host
//go:generate go run config/gen.go

import (
	"errors"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/mattfoxxx/salt-checkmk/cmd"
)

func main() {
	err := cmd.ParseCLI()
	if err != nil {
		log.Fatalf("Could not configure checkmk-agent: %s", err)
	}

	err = cmd.Run()
	switch {
	case errors.Is(err, cmd.ErrFailed):
		os.Exit(1)
	case err != nil:
		log.Fatalf("Could not run checkmk-agent: %s", err)
	}
}
