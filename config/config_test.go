// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config")
}

var _ = Describe("Config", func() {
	var td string

	BeforeEach(func() {
		td = GinkgoT().TempDir()
		os.Unsetenv("CHECKMK_FACTS")
		os.Unsetenv("CHECKMK_UPDATER")
		os.Unsetenv("CHECKMK_AGENT")
	})

	Describe("NewDefaultConfig", func() {
		It("Should have the well known defaults", func() {
			c, err := NewDefaultConfig()
			Expect(err).ToNot(HaveOccurred())
			Expect(c.UpdaterPath).To(Equal("/usr/bin/cmk-update-agent"))
			Expect(c.AgentPath).To(Equal("/usr/bin/check_mk_agent"))
			Expect(c.FactsFile).To(Equal("/etc/choria/facts.json"))
			Expect(c.Role).To(Equal("checkmk_agent"))
			Expect(c.DownloadTimeout).To(Equal(time.Minute))
			Expect(c.CommandTimeout).To(Equal(5 * time.Minute))
			Expect(c.LogLevel).To(Equal("info"))
			Expect(c.Insecure).To(BeFalse())
			Expect(c.DownloadRetries).To(Equal(0))
			Expect(c.Identity).ToNot(BeEmpty())
		})

		It("Should support environment overrides", func() {
			os.Setenv("CHECKMK_UPDATER", "/opt/cmk/cmk-update-agent")
			defer os.Unsetenv("CHECKMK_UPDATER")

			c, err := NewDefaultConfig()
			Expect(err).ToNot(HaveOccurred())
			Expect(c.UpdaterPath).To(Equal("/opt/cmk/cmk-update-agent"))
		})
	})

	Describe("NewConfig", func() {
		It("Should use defaults when the file does not exist", func() {
			c, err := NewConfig(filepath.Join(td, "missing.conf"))
			Expect(err).ToNot(HaveOccurred())
			Expect(c.ConfigFile).To(Equal(""))
			Expect(c.UpdaterPath).To(Equal("/usr/bin/cmk-update-agent"))
		})

		It("Should parse the main file and the plugin.d file", func() {
			cfile := filepath.Join(td, "server.conf")
			Expect(os.WriteFile(cfile, []byte(`# comment
identity = node1.example.net
loglevel = debug
collectives = mcollective
plugin.choria.srv_domain = example.net
plugin.checkmk.agent_path = /opt/bin/check_mk_agent
plugin.checkmk.download_timeout = 10
`), 0600)).To(Succeed())

			Expect(os.Mkdir(filepath.Join(td, "plugin.d"), 0700)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(td, "plugin.d", "checkmk.cfg"), []byte(`
updater_path = /opt/bin/cmk-update-agent
insecure = true
download_retries = 3
ecc_curves = X25519, CurveP256
`), 0600)).To(Succeed())

			c, err := NewConfig(cfile)
			Expect(err).ToNot(HaveOccurred())
			Expect(c.ConfigFile).To(Equal(cfile))
			Expect(c.ParsedFiles).To(HaveLen(2))
			Expect(c.Identity).To(Equal("node1.example.net"))
			Expect(c.LogLevel).To(Equal("debug"))
			Expect(c.AgentPath).To(Equal("/opt/bin/check_mk_agent"))
			Expect(c.UpdaterPath).To(Equal("/opt/bin/cmk-update-agent"))
			Expect(c.DownloadTimeout).To(Equal(10 * time.Second))
			Expect(c.Insecure).To(BeTrue())
			Expect(c.DownloadRetries).To(Equal(3))
			Expect(c.ECCCurves).To(Equal([]string{"X25519", "CurveP256"}))
			Expect(c.CipherSuites).To(BeEmpty())

			Expect(c.HasOption("plugin.choria.srv_domain")).To(BeTrue())
			Expect(c.Option("plugin.choria.srv_domain", "")).To(Equal("example.net"))
			Expect(c.HasOption("plugin.checkmk.updater_path")).To(BeTrue())
			Expect(c.Option("plugin.checkmk.role", "x")).To(Equal("x"))
		})

		It("Should fail on invalid values", func() {
			cfile := filepath.Join(td, "server.conf")
			Expect(os.WriteFile(cfile, []byte("loglevel = chatty\n"), 0600)).To(Succeed())

			_, err := NewConfig(cfile)
			Expect(err).To(MatchError(ContainSubstring("'chatty' is not in the allowed list")))
		})
	})

	Describe("SetOption", func() {
		It("Should set known options", func() {
			c := NewConfigForTests()
			Expect(c.SetOption("plugin.checkmk.role", "monitoring")).To(Succeed())
			Expect(c.Role).To(Equal("monitoring"))
			Expect(c.HasOption("plugin.checkmk.role")).To(BeTrue())

			Expect(c.SetOption("plugin.checkmk.unknown", "x")).To(HaveOccurred())
		})
	})

	Describe("DocForConfigKey", func() {
		It("Should document known keys", func() {
			c := NewConfigForTests()

			doc := c.DocForConfigKey("plugin.checkmk.updater_path")
			Expect(doc).ToNot(BeNil())
			Expect(doc.ConfigKey()).To(Equal("plugin.checkmk.updater_path"))
			Expect(doc.Type()).To(Equal("string"))
			Expect(doc.Default()).To(Equal("/usr/bin/cmk-update-agent"))
			Expect(doc.Environment()).To(Equal("CHECKMK_UPDATER"))
			Expect(doc.Validation()).To(Equal("regex=^/"))
			Expect(doc.Description()).To(Equal("Where the cmk-update-agent binary is downloaded to and executed from"))

			doc = c.DocForConfigKey("plugin.checkmk.download_timeout")
			Expect(doc.Type()).To(Equal("duration"))
			Expect(doc.Environment()).To(BeEmpty())

			Expect(c.DocForConfigKey("plugin.checkmk.unknown")).To(BeNil())
		})

		It("Should have a description for every key", func() {
			c := NewConfigForTests()
			keys, err := c.ConfigKeys(".")
			Expect(err).ToNot(HaveOccurred())

			for _, k := range keys {
				Expect(c.DocForConfigKey(k).Description()).ToNot(Equal("Undocumented"), k)
			}
		})
	})

	Describe("ConfigKeys", func() {
		It("Should find matching keys", func() {
			c := NewConfigForTests()

			keys, err := c.ConfigKeys("timeout$")
			Expect(err).ToNot(HaveOccurred())
			Expect(keys).To(Equal([]string{"plugin.checkmk.command_timeout", "plugin.checkmk.download_timeout"}))

			_, err = c.ConfigKeys("(")
			Expect(err).To(HaveOccurred())
		})
	})
})
