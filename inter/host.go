// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package inter

import (
	"context"
)

// RunOptions adjusts how Host.Run executes a command
type RunOptions struct {
	// RaiseOnError turns a non zero exit code into an error
	RaiseOnError bool

	// Redact lists values that must never be written to logs
	Redact []string
}

// Host is the set of primitives the managed host provides to plugins
type Host interface {
	// FileExists checks if path exists
	FileExists(ctx context.Context, path string) bool

	// Download fetches url into dest, false without error indicates the server did not supply the file
	Download(ctx context.Context, url string, dest string) (bool, error)

	// SetMode sets the permissions of path given as an octal string like 0755
	SetMode(ctx context.Context, path string, mode string) bool

	// Run executes command and returns its combined output
	Run(ctx context.Context, command string, opts RunOptions) (string, error)

	// Inventory looks up a inventory item like id or roles
	Inventory(key string) (any, bool)
}
