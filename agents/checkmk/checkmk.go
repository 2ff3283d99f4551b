// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package checkmk exposes the CheckMK agent lifecycle operations as named actions
package checkmk

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mattfoxxx/salt-checkmk/build"
	"github.com/mattfoxxx/salt-checkmk/checkmk"
	"github.com/mattfoxxx/salt-checkmk/config"
	"github.com/mattfoxxx/salt-checkmk/inter"
	"github.com/mattfoxxx/salt-checkmk/mcorpc"
)

// InstallRequest is the input to install_update_agent
type InstallRequest struct {
	CMKURL string `mapstructure:"cmk_url" validate:"shellsafe"`
	Proto  string `mapstructure:"proto" validate:"enum=http,https"`
	Site   string `mapstructure:"site" validate:"shellsafe"`
}

// RegisterRequest is the input to register_update_agent
type RegisterRequest struct {
	InstallRequest `mapstructure:",squash"`

	AutomationUser   string `mapstructure:"automation_user" validate:"shellsafe"`
	AutomationSecret string `mapstructure:"automation_secret"`
}

var siteInputs = []mcorpc.Input{
	{Name: "cmk_url", Description: "Host name of the CheckMK site"},
	{Name: "proto", Description: "Protocol used to reach the site, http or https"},
	{Name: "site", Description: "Name of the CheckMK site"},
}

type agent struct {
	w          *checkmk.Wrapper
	activation checkmk.Result
}

// New creates the checkmk agent, the agent only activates when the host
// inventory carries the configured role.
//
// The activation result is returned so callers can report why the agent is
// not active.
func New(ctx context.Context, host inter.Host, cfg *config.Config, log *logrus.Entry) (*mcorpc.Agent, checkmk.Result) {
	metadata := &mcorpc.Metadata{
		Name:        "checkmk",
		Description: "Manages the CheckMK agent using cmk-update-agent",
		Author:      "R.I.Pienaar <rip@devco.net>",
		Version:     build.Version,
		License:     build.License,
		Timeout:     int((cfg.DownloadTimeout + cfg.CommandTimeout).Seconds()),
		URL:         "https://checkmk.com",
	}

	a := &agent{}
	a.w, a.activation = checkmk.Activate(ctx, host, log,
		checkmk.WithRole(cfg.Role),
		checkmk.WithUpdaterPath(cfg.UpdaterPath),
		checkmk.WithAgentPath(cfg.AgentPath))

	rpc := mcorpc.New(metadata.Name, metadata, log)
	rpc.SetActivationChecker(func() bool { return a.w != nil })

	rpc.MustRegisterAction(mcorpc.ActionDescription{
		Name:        "current_updater_state",
		Description: "Reports if cmk-update-agent is installed",
	}, a.currentUpdaterStateAction)

	rpc.MustRegisterAction(mcorpc.ActionDescription{
		Name:        "current_agent_state",
		Description: "Reports if the CheckMK agent is installed",
	}, a.currentAgentStateAction)

	rpc.MustRegisterAction(mcorpc.ActionDescription{
		Name:        "install_update_agent",
		Description: "Downloads cmk-update-agent from the CheckMK site",
		Inputs:      siteInputs,
	}, a.installUpdateAgentAction)

	rpc.MustRegisterAction(mcorpc.ActionDescription{
		Name:        "register_update_agent",
		Description: "Registers the host with the CheckMK site for agent updates",
		Inputs: append(append([]mcorpc.Input{}, siteInputs...),
			mcorpc.Input{Name: "automation_user", Description: "CheckMK automation user"},
			mcorpc.Input{Name: "automation_secret", Description: "Secret of the automation user"},
		),
	}, a.registerUpdateAgentAction)

	rpc.MustRegisterAction(mcorpc.ActionDescription{
		Name:        "install_checkmk_agent",
		Description: "Installs the CheckMK agent baked for this host",
	}, a.installCheckMKAgentAction)

	return rpc, a.activation
}

// inactive aborts the reply with the activation result when the agent did not activate
func (a *agent) inactive(reply *mcorpc.Reply) bool {
	if a.w != nil {
		return false
	}

	reply.Statuscode = mcorpc.Aborted
	reply.Statusmsg = a.activation.Message
	reply.Data = a.activation

	return true
}

func (a *agent) currentUpdaterStateAction(ctx context.Context, _ *mcorpc.Request, reply *mcorpc.Reply, _ *mcorpc.Agent) {
	if a.inactive(reply) {
		return
	}

	reply.Data = a.w.CurrentUpdaterState(ctx)
}

func (a *agent) currentAgentStateAction(ctx context.Context, _ *mcorpc.Request, reply *mcorpc.Reply, _ *mcorpc.Agent) {
	if a.inactive(reply) {
		return
	}

	reply.Data = a.w.CurrentAgentState(ctx)
}

func (a *agent) installUpdateAgentAction(ctx context.Context, req *mcorpc.Request, reply *mcorpc.Reply, _ *mcorpc.Agent) {
	if a.inactive(reply) {
		return
	}

	args := &InstallRequest{}
	if !mcorpc.ParseRequestData(args, req, reply) {
		return
	}

	reply.Data = a.w.InstallUpdateAgent(ctx, args.CMKURL, args.Proto, args.Site)
}

func (a *agent) registerUpdateAgentAction(ctx context.Context, req *mcorpc.Request, reply *mcorpc.Reply, _ *mcorpc.Agent) {
	if a.inactive(reply) {
		return
	}

	args := &RegisterRequest{}
	if !mcorpc.ParseRequestData(args, req, reply) {
		return
	}

	reply.Data = a.w.RegisterUpdateAgent(ctx, args.CMKURL, args.Proto, args.Site, args.AutomationUser, args.AutomationSecret)
}

func (a *agent) installCheckMKAgentAction(ctx context.Context, _ *mcorpc.Request, reply *mcorpc.Reply, _ *mcorpc.Agent) {
	if a.inactive(reply) {
		return
	}

	reply.Data = a.w.InstallCheckMKAgent(ctx)
}
