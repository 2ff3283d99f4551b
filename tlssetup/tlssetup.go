// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package tlssetup selects cipher suites and ECC curves for connections to the CheckMK site
package tlssetup

import (
	"crypto/tls"
	"fmt"

	"github.com/mattfoxxx/salt-checkmk/config"
)

// Config holds the crypto/tls values the configured names were translated to
type Config struct {
	// CipherSuites is the uint16 values from the crypto/tls library which CipherList is translated to
	CipherSuites []uint16

	// CurvePreferences is a list of curve preferences for ECC
	CurvePreferences []tls.CurveID
}

// CurvePreferenceMap is a list of supported ECC Curves, optimized for performance
var CurvePreferenceMap = map[string]tls.CurveID{
	"X25519":    tls.X25519,
	"CurveP256": tls.CurveP256,
	"CurveP384": tls.CurveP384,
	"CurveP521": tls.CurveP521,
}

// TLSConfig translates the cipher suite and curve names in c, defaults are used for empty lists
func TLSConfig(c *config.Config) (*Config, error) {
	cfg := &Config{
		CipherSuites:     DefaultCipherSuites(),
		CurvePreferences: DefaultCurvePreferences(),
	}

	if c == nil {
		return cfg, nil
	}

	if len(c.CipherSuites) > 0 {
		cfg.CipherSuites = []uint16{}
		for _, cipher := range c.CipherSuites {
			cs := findCipherSuite(cipher)
			if cs == nil {
				return nil, fmt.Errorf("unknown cipher suite %s", cipher)
			}
			cfg.CipherSuites = append(cfg.CipherSuites, cs.ID)
		}
	}

	if len(c.ECCCurves) > 0 {
		cfg.CurvePreferences = []tls.CurveID{}
		for _, curve := range c.ECCCurves {
			id, ok := CurvePreferenceMap[curve]
			if !ok {
				return nil, fmt.Errorf("unknown ECC curve %s", curve)
			}
			cfg.CurvePreferences = append(cfg.CurvePreferences, id)
		}
	}

	return cfg, nil
}

// DefaultCurvePreferences returns a sorted list of ECC curves,
// reordered to default to the highest level of security.
func DefaultCurvePreferences() []tls.CurveID {
	return []tls.CurveID{
		tls.X25519,
		tls.CurveP256,
		tls.CurveP384,
		tls.CurveP521,
	}
}

// DefaultCipherSuites is every cipher suite crypto/tls considers secure
func DefaultCipherSuites() []uint16 {
	suites := make([]uint16, len(tls.CipherSuites()))
	for x, cipher := range tls.CipherSuites() {
		suites[x] = cipher.ID
	}

	return suites
}

func findCipherSuite(cipher string) *tls.CipherSuite {
	for _, cs := range tls.CipherSuites() {
		if cs.Name == cipher {
			return cs
		}
	}

	return nil
}
