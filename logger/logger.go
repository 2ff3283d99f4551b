// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mattfoxxx/salt-checkmk/config"
)

// New configures logging based on config directives, only file and console
// behaviours are supported. When debug is true the level is forced to debug.
func New(cfg *config.Config, debug bool) (*logrus.Logger, error) {
	log := logrus.New()
	log.Out = os.Stderr

	switch cfg.LogFile {
	case "":
	case "discard":
		log.Out = io.Discard

	default:
		log.Formatter = &logrus.JSONFormatter{}

		file, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err != nil {
			return nil, fmt.Errorf("could not set up logging: %w", err)
		}

		log.Out = file
	}

	switch cfg.LogLevel {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	case "fatal":
		log.SetLevel(logrus.FatalLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}

	if debug {
		log.SetLevel(logrus.DebugLevel)
	}

	return log, nil
}

// Component creates a new logrus entry for a named component
func Component(log *logrus.Logger, component string) *logrus.Entry {
	return log.WithFields(logrus.Fields{"component": component})
}
