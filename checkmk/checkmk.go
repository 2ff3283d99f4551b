// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package checkmk manages the CheckMK agent on a node using the vendor supplied
// cmk-update-agent binary.
//
// A Wrapper is created by Activate, which only succeeds on nodes whose
// inventory carries the checkmk_agent role. Every operation performs one or
// two host primitive calls and reports the outcome as a Result.
package checkmk

import (
	"context"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/mattfoxxx/salt-checkmk/inter"
)

const (
	// VirtualName is the name the module is known by once activated
	VirtualName = "check-mk-agent"

	// DefaultRole is the inventory role that activates the module
	DefaultRole = "checkmk_agent"

	// DefaultUpdaterPath is where cmk-update-agent is downloaded to
	DefaultUpdaterPath = "/usr/bin/cmk-update-agent"

	// DefaultAgentPath is where the installed agent is expected
	DefaultAgentPath = "/usr/bin/check_mk_agent"
)

// Wrapper performs CheckMK agent lifecycle operations on a host
type Wrapper struct {
	host    inter.Host
	id      string
	role    string
	updater string
	agent   string
	log     *logrus.Entry
}

// Option configures a Wrapper
type Option func(*Wrapper)

// WithUpdaterPath overrides where the cmk-update-agent binary lives
func WithUpdaterPath(path string) Option {
	return func(w *Wrapper) {
		if path != "" {
			w.updater = path
		}
	}
}

// WithAgentPath overrides where the CheckMK agent binary is expected
func WithAgentPath(path string) Option {
	return func(w *Wrapper) {
		if path != "" {
			w.agent = path
		}
	}
}

// WithRole overrides the inventory role that activates the module
func WithRole(role string) Option {
	return func(w *Wrapper) {
		if role != "" {
			w.role = role
		}
	}
}

// Activate checks the inventory roles of host and when the activation role is
// present returns a Wrapper bound to the host id. Otherwise the returned
// Wrapper is nil and the Result explains why.
func Activate(_ context.Context, host inter.Host, log *logrus.Entry, opts ...Option) (*Wrapper, Result) {
	w := &Wrapper{
		host:    host,
		role:    DefaultRole,
		updater: DefaultUpdaterPath,
		agent:   DefaultAgentPath,
		log:     log.WithField("module", VirtualName),
	}

	for _, opt := range opts {
		opt(w)
	}

	if !slices.Contains(w.inventoryStrings("roles"), w.role) {
		return nil, messageResult(false, Inactive, fmt.Sprintf("The check-mk-web-api python module could not be loaded or the minion is missing the role '%s'.", w.role))
	}

	id := w.inventoryStrings("id")
	if len(id) != 1 || id[0] == "" {
		return nil, messageResult(false, Inactive, "The minion id could not be determined from the inventory.")
	}

	w.id = id[0]
	w.log.Debugf("checkmk: id was set to %s", w.id)

	return w, messageResult(true, NoError, VirtualName)
}

// ID is the host identifier resolved during activation
func (w *Wrapper) ID() string {
	return w.id
}

// UpdaterPath is the location of the cmk-update-agent binary
func (w *Wrapper) UpdaterPath() string {
	return w.updater
}

// AgentPath is the location of the CheckMK agent binary
func (w *Wrapper) AgentPath() string {
	return w.agent
}

func (w *Wrapper) inventoryStrings(key string) []string {
	v, ok := w.host.Inventory(key)
	if !ok || v == nil {
		return nil
	}

	switch val := v.(type) {
	case string:
		return []string{val}
	case []string:
		return val
	case []any:
		res := make([]string, 0, len(val))
		for _, i := range val {
			res = append(res, fmt.Sprint(i))
		}
		return res
	default:
		return []string{fmt.Sprint(val)}
	}
}
