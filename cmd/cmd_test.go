// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fatih/color"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"go.uber.org/mock/gomock"

	agent "github.com/mattfoxxx/salt-checkmk/agents/checkmk"
	"github.com/mattfoxxx/salt-checkmk/checkmk"
	"github.com/mattfoxxx/salt-checkmk/config"
	imock "github.com/mattfoxxx/salt-checkmk/inter/imocks"
	"github.com/mattfoxxx/salt-checkmk/mcorpc"
	"github.com/mattfoxxx/salt-checkmk/statistics"
)

func TestCmd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cmd")
}

var _ = Describe("Cmd", func() {
	Describe("parseCallArgs", func() {
		desc := mcorpc.ActionDescription{
			Name: "register_update_agent",
			Inputs: []mcorpc.Input{
				{Name: "cmk_url"},
				{Name: "proto"},
				{Name: "site"},
				{Name: "automation_user"},
				{Name: "automation_secret"},
			},
		}

		It("Should keep positional arguments in order", func() {
			positional, named := parseCallArgs([]string{"cmk.example.net", "https", "prod"}, desc)
			Expect(positional).To(Equal([]string{"cmk.example.net", "https", "prod"}))
			Expect(named).To(BeEmpty())
		})

		It("Should support leading key=value arguments for declared inputs", func() {
			positional, named := parseCallArgs([]string{"automation_secret=a=b", "site=prod", "cmk.example.net", "other=x"}, desc)
			Expect(positional).To(Equal([]string{"cmk.example.net", "other=x"}))
			Expect(named).To(Equal(map[string]string{"automation_secret": "a=b", "site": "prod"}))
		})

		It("Should treat key=value looking values after positional arguments as positional", func() {
			positional, named := parseCallArgs([]string{"cmk.example.net", "https", "prod", "automation", "site=abc"}, desc)
			Expect(positional).To(Equal([]string{"cmk.example.net", "https", "prod", "automation", "site=abc"}))
			Expect(named).To(BeEmpty())
		})

		It("Should treat everything as positional for unknown actions", func() {
			positional, named := parseCallArgs([]string{"site=prod"}, mcorpc.ActionDescription{})
			Expect(positional).To(Equal([]string{"site=prod"}))
			Expect(named).To(BeEmpty())
		})
	})

	Describe("call", func() {
		var (
			mockctl *gomock.Controller
			h       *imock.MockHost
			wg      *sync.WaitGroup
		)

		BeforeEach(func() {
			mockctl = gomock.NewController(GinkgoT())
			cfg = config.NewConfigForTests()
			log = logrus.New()
			log.SetOutput(io.Discard)
			ctx = context.Background()
			color.NoColor = true
			wg = &sync.WaitGroup{}

			DeferCleanup(func() { agentFactory = newAgent })
		})

		withInventory := func(inventory map[string]any) {
			h = imock.NewHostForTests(mockctl, inventory)

			agentFactory = func() (*mcorpc.Agent, checkmk.Result, *statistics.Stats, error) {
				stats := statistics.New(logrus.NewEntry(log))
				a, activation := agent.New(ctx, h, cfg, logrus.NewEntry(log))
				a.SetRecorder(stats)

				return a, activation, stats, nil
			}
		}

		active := map[string]any{"id": "web1.example.net", "roles": []any{"checkmk_agent"}}

		run := func(action string, args ...string) error {
			wg.Add(1)
			c := &callCommand{action: action, args: args, quiet: true}
			return c.Run(wg)
		}

		It("Should fail on inactive nodes", func() {
			withInventory(map[string]any{"id": "web1.example.net", "roles": []any{"webserver"}})
			Expect(run("current_agent_state")).To(MatchError(ErrFailed))
		})

		It("Should fail when the reply is not ok", func() {
			withInventory(active)
			Expect(run("install_update_agent", "cmk.example.net")).To(MatchError(ErrFailed))
			Expect(run("missing")).To(MatchError(ErrFailed))
		})

		It("Should fail when the result reports a failure", func() {
			withInventory(active)
			h.EXPECT().FileExists(gomock.Any(), "/usr/bin/cmk-update-agent").Return(false)

			Expect(run("current_updater_state")).To(MatchError(ErrFailed))
		})

		It("Should succeed for successful results", func() {
			withInventory(active)
			h.EXPECT().FileExists(gomock.Any(), "/usr/bin/check_mk_agent").Return(true)

			Expect(run("current_agent_state")).To(Succeed())
		})

		It("Should succeed for a bare true registration", func() {
			withInventory(active)
			h.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Return("registered", nil)

			Expect(run("register_update_agent", "automation_secret=a=b", "cmk.example.net", "https", "prod", "automation")).To(Succeed())
		})
	})

	Describe("loadFacts", func() {
		BeforeEach(func() {
			cfg = config.NewConfigForTests()
			log = logrus.New()
			log.SetOutput(io.Discard)
		})

		It("Should use an empty inventory for missing files", func() {
			cfg.FactsFile = filepath.Join(GinkgoT().TempDir(), "facts.json")

			f, err := loadFacts()
			Expect(err).ToNot(HaveOccurred())
			Expect(f.Source()).To(BeEmpty())
			Expect(string(f.JSON())).To(Equal("{}"))
		})

		It("Should load existing files", func() {
			cfg.FactsFile = filepath.Join(GinkgoT().TempDir(), "facts.json")
			Expect(os.WriteFile(cfg.FactsFile, []byte(`{"id":"web1.example.net"}`), 0600)).To(Succeed())

			f, err := loadFacts()
			Expect(err).ToNot(HaveOccurred())
			Expect(f.Source()).To(Equal(cfg.FactsFile))
			id, ok := f.String("id")
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal("web1.example.net"))
		})
	})

	Describe("wordWrap", func() {
		It("Should wrap on word boundaries", func() {
			Expect(wordWrap("How often a download is retried", 12)).To(Equal("How often a\ndownload is\nretried"))
			Expect(wordWrap("  ", 10)).To(BeEmpty())
		})
	})

	It("Should register all commands", func() {
		Expect(cli.commands).To(HaveLen(5))
	})
})
