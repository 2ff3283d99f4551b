// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package host implements the primitives a managed node offers to plugins
// using the local file system, HTTP and process execution
package host

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mattfoxxx/salt-checkmk/config"
	"github.com/mattfoxxx/salt-checkmk/facts"
	"github.com/mattfoxxx/salt-checkmk/internal/util"
	"github.com/mattfoxxx/salt-checkmk/inter"
	"github.com/mattfoxxx/salt-checkmk/tlssetup"
)

// Host is the local node
type Host struct {
	cfg    *config.Config
	facts  *facts.Facts
	client *http.Client
	log    *logrus.Entry
}

var _ inter.Host = (*Host)(nil)

// New creates a Host using cfg for timeouts and TLS settings and f for inventory lookups
func New(cfg *config.Config, f *facts.Facts, log *logrus.Entry) (*Host, error) {
	tlsc, err := tlsConfig(cfg)
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsc

	return &Host{
		cfg:    cfg,
		facts:  f,
		client: &http.Client{Transport: transport},
		log:    log.WithField("component", "host"),
	}, nil
}

// FileExists checks if path is a regular file, symlinks are followed
func (h *Host) FileExists(_ context.Context, path string) bool {
	return util.FileIsRegular(path)
}

// SetMode sets the permissions of path, mode is a octal string like 0755
func (h *Host) SetMode(_ context.Context, path string, mode string) bool {
	m, err := strconv.ParseUint(mode, 8, 32)
	if err != nil {
		h.log.Errorf("Invalid file mode %q: %s", mode, err)
		return false
	}

	err = os.Chmod(path, os.FileMode(m))
	if err != nil {
		h.log.Errorf("Could not set mode %s on %s: %s", mode, path, err)
		return false
	}

	h.log.Debugf("Set mode %s on %s", mode, path)

	return true
}

// Inventory looks up key in the facts, the configured identity stands in for a missing id
func (h *Host) Inventory(key string) (any, bool) {
	if h.facts != nil {
		if v, ok := h.facts.Lookup(key); ok {
			return v, true
		}
	}

	if key == "id" && h.cfg.Identity != "" {
		return h.cfg.Identity, true
	}

	return nil, false
}

func tlsConfig(cfg *config.Config) (*tls.Config, error) {
	suites, err := tlssetup.TLSConfig(cfg)
	if err != nil {
		return nil, err
	}

	tlsc := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: cfg.Insecure,
		CipherSuites:       suites.CipherSuites,
		CurvePreferences:   suites.CurvePreferences,
	}

	if cfg.CAFile == "" {
		return tlsc, nil
	}

	pem, err := os.ReadFile(cfg.CAFile)
	if err != nil {
		return nil, fmt.Errorf("could not read CA %s: %w", cfg.CAFile, err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in CA %s", cfg.CAFile)
	}

	tlsc.RootCAs = pool

	return tlsc, nil
}

// bounds ctx by timeout, a timeout of 0 or less leaves ctx unbounded
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}
