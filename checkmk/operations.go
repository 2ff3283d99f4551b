// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package checkmk

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/mattfoxxx/salt-checkmk/host"
	"github.com/mattfoxxx/salt-checkmk/inter"
)

const (
	successPattern          = `Successfully installed agent .*\.`
	noAgentAvailablePattern = `No agent available for us.`
)

var (
	successRe          = regexp.MustCompile(successPattern)
	noAgentAvailableRe = regexp.MustCompile(noAgentAvailablePattern)
)

// UpdaterURL is where a CheckMK site publishes the cmk-update-agent plugin
func UpdaterURL(cmkURL string, proto string, site string) string {
	return fmt.Sprintf("%s://%s/%s/check_mk/agents/plugins/cmk-update-agent", proto, cmkURL, site)
}

// CurrentUpdaterState reports if the cmk-update-agent binary is present
func (w *Wrapper) CurrentUpdaterState(ctx context.Context) Result {
	if !w.host.FileExists(ctx, w.updater) {
		return infoResult(false, MissingBinary, map[string]string{"updater_binary": fmt.Sprintf("%s not found", w.updater)})
	}

	return infoResult(true, NoError, map[string]string{"updater_binary": fmt.Sprintf("%s found", w.updater)})
}

// CurrentAgentState reports if the CheckMK agent binary is present.
//
// Both outcomes carry the same "not found" text, callers have always relied
// on the boolean only.
func (w *Wrapper) CurrentAgentState(ctx context.Context) Result {
	if !w.host.FileExists(ctx, w.agent) {
		return infoResult(false, MissingBinary, map[string]string{"agent_binary": "CheckMK agent binary not found"})
	}

	return infoResult(true, NoError, map[string]string{"agent_binary": "CheckMK agent binary not found"})
}

// InstallUpdateAgent downloads cmk-update-agent from the CheckMK site and makes it executable
func (w *Wrapper) InstallUpdateAgent(ctx context.Context, cmkURL string, proto string, site string) Result {
	updaterURL := UpdaterURL(cmkURL, proto, site)

	ok, err := w.host.Download(ctx, updaterURL, w.updater)
	switch {
	case errors.Is(err, host.ErrTLSVerification):
		w.log.Debugf("CHECKMK: %s", err)
		return messageResult(false, TLSVerificationFailure, fmt.Sprintf("The URL %s could not be verified by %s", updaterURL, w.updater))

	case errors.Is(err, host.ErrConnection):
		w.log.Debugf("CHECKMK: %s", err)
		return messageResult(false, ConnectionFailure, fmt.Sprintf("The URL %s could not be found by %s", updaterURL, w.updater))

	case err != nil || !ok:
		if err != nil {
			w.log.Debugf("CHECKMK: %s", err)
		}
		return messageResult(false, DownloadFailure, fmt.Sprintf("The cmk-update-agent file could not be downloaded from %s!", updaterURL))
	}

	if !w.host.SetMode(ctx, w.updater, "0755") {
		return messageResult(false, PermissionChangeFailure, fmt.Sprintf("Could not set mode on %s!", w.updater))
	}

	return messageResult(true, NoError, "")
}

// RegisterUpdateAgent registers this host with the CheckMK site for automatic agent updates.
//
// Success is reported as a bare true rather than a pair.
func (w *Wrapper) RegisterUpdateAgent(ctx context.Context, cmkURL string, proto string, site string, automationUser string, automationSecret string) Result {
	cmd := fmt.Sprintf("%s register -H %s -s %s -p %s -i %s -U %s -S %s", w.updater, w.id, cmkURL, proto, site, automationUser, automationSecret)

	out, err := w.host.Run(ctx, cmd, inter.RunOptions{RaiseOnError: true, Redact: []string{automationSecret}})
	if err != nil {
		w.log.Debugf("CHECKMK: %s", err)
		return messageResult(false, RegistrationFailure, fmt.Sprintf("The host %s could not be registered by %s", w.id, w.updater))
	}

	w.log.Debugf("CHECKMK: %s", out)

	return bareResult()
}

// InstallCheckMKAgent asks cmk-update-agent to fetch and install the agent baked for this host.
//
// Output matching neither the success nor the no agent pattern produces an
// empty result of kind UnrecognizedOutput.
func (w *Wrapper) InstallCheckMKAgent(ctx context.Context) Result {
	out, err := w.host.Run(ctx, fmt.Sprintf("%s -G -f -v", w.updater), inter.RunOptions{RaiseOnError: true})
	if err != nil {
		w.log.Debugf("CHECKMK: %s", err)
		return messageResult(false, InstallFailure, fmt.Sprintf("The agent could not be installed by %s, see debug log for details.", w.updater))
	}

	w.log.Debugf("CHECKMK: %s", out)

	switch {
	case successRe.MatchString(out):
		return messageResult(true, NoError, "Agent successfully installed.")
	case noAgentAvailableRe.MatchString(out):
		return messageResult(false, NoAgentAvailable, fmt.Sprintf("The agent could not be installed: %s", noAgentAvailablePattern))
	}

	return emptyResult(UnrecognizedOutput)
}
