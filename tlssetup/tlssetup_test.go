// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package tlssetup

import (
	"crypto/tls"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mattfoxxx/salt-checkmk/config"
)

func TestTLSSetup(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TLSSetup")
}

var _ = Describe("TLSConfig", func() {
	var cfg *config.Config

	BeforeEach(func() {
		cfg = config.NewConfigForTests()
	})

	It("Should use defaults", func() {
		tc, err := TLSConfig(cfg)
		Expect(err).ToNot(HaveOccurred())
		Expect(tc.CipherSuites).To(Equal(DefaultCipherSuites()))
		Expect(tc.CurvePreferences).To(Equal(DefaultCurvePreferences()))

		tc, err = TLSConfig(nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(tc.CurvePreferences).To(Equal(DefaultCurvePreferences()))
	})

	It("Should translate configured names", func() {
		cfg.CipherSuites = []string{"TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384"}
		cfg.ECCCurves = []string{"CurveP384"}

		tc, err := TLSConfig(cfg)
		Expect(err).ToNot(HaveOccurred())
		Expect(tc.CipherSuites).To(Equal([]uint16{tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384}))
		Expect(tc.CurvePreferences).To(Equal([]tls.CurveID{tls.CurveP384}))
	})

	It("Should reject unknown names", func() {
		cfg.CipherSuites = []string{"TLS_NOPE"}
		_, err := TLSConfig(cfg)
		Expect(err).To(MatchError("unknown cipher suite TLS_NOPE"))

		cfg.CipherSuites = nil
		cfg.ECCCurves = []string{"CurveP1"}
		_, err = TLSConfig(cfg)
		Expect(err).To(MatchError("unknown ECC curve CurveP1"))
	})
})
