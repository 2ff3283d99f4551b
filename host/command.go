// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package host

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/mattfoxxx/salt-checkmk/inter"
)

const redacted = "[REDACTED]"

// Run splits command into words and executes it without a shell, returning the
// combined output with trailing new lines removed.
//
// A command that could not be started always returns a *CommandError, a non
// zero exit only does when opts.RaiseOnError is set.
func (h *Host) Run(ctx context.Context, command string, opts inter.RunOptions) (string, error) {
	parts, err := shlex.Split(command)
	if err != nil {
		return "", fmt.Errorf("could not parse command: %w", err)
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no command given")
	}

	safe := Redact(parts, opts.Redact)

	timeoutCtx, cancel := withTimeout(ctx, h.cfg.CommandTimeout)
	defer cancel()

	h.log.Debugf("Running %s", safe)

	cmd := exec.CommandContext(timeoutCtx, parts[0], parts[1:]...)
	out, err := cmd.CombinedOutput()
	output := strings.TrimRight(string(out), "\r\n")

	if err == nil {
		return output, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		h.log.Debugf("Command %s exited with code %d", safe, exitErr.ExitCode())

		if !opts.RaiseOnError {
			return output, nil
		}

		return output, &CommandError{Command: safe, ExitCode: exitErr.ExitCode(), Output: output, Err: err}
	}

	return output, &CommandError{Command: safe, ExitCode: -1, Output: output, Err: err}
}

// Redact quotes words into a shell command line with any word containing a secret masked
func Redact(words []string, secrets []string) string {
	safe := make([]string, len(words))

	for i, w := range words {
		safe[i] = w
		for _, s := range secrets {
			if s != "" {
				safe[i] = strings.ReplaceAll(safe[i], s, redacted)
			}
		}
	}

	return shellquote.Join(safe...)
}
