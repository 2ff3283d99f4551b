// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package statistics

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
)

func TestStatistics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Statistics")
}

var _ = Describe("Stats", func() {
	var stats *Stats

	BeforeEach(func() {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		stats = New(logrus.NewEntry(logger))
	})

	Describe("RecordAction", func() {
		It("Should count actions by outcome", func() {
			stats.RecordAction("checkmk", "install_checkmk_agent", "ok", time.Second)
			stats.RecordAction("checkmk", "install_checkmk_agent", "ok", time.Second)
			stats.RecordAction("checkmk", "install_checkmk_agent", "failed", time.Second)

			Expect(testutil.ToFloat64(stats.actions.WithLabelValues("install_checkmk_agent", "ok"))).To(Equal(2.0))
			Expect(testutil.ToFloat64(stats.actions.WithLabelValues("install_checkmk_agent", "failed"))).To(Equal(1.0))
			Expect(testutil.ToFloat64(stats.duration.WithLabelValues("install_checkmk_agent"))).To(Equal(1.0))
			Expect(testutil.ToFloat64(stats.timestamp.WithLabelValues("install_checkmk_agent"))).To(BeNumerically(">", 0))
		})
	})

	Describe("WriteTextfile", func() {
		It("Should do nothing without a path", func() {
			Expect(stats.WriteTextfile("")).To(Succeed())
		})

		It("Should write the registry", func() {
			path := filepath.Join(GinkgoT().TempDir(), "metrics", "checkmk.prom")
			stats.RecordAction("checkmk", "current_agent_state", "ok", 10*time.Millisecond)

			Expect(stats.WriteTextfile(path)).To(Succeed())

			out, err := os.ReadFile(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(out)).To(ContainSubstring(`checkmk_agent_action_total{action="current_agent_state",outcome="ok"} 1`))
			Expect(string(out)).To(ContainSubstring("checkmk_agent_build_info"))
		})
	})

	Describe("LoadTextfile", func() {
		var path string

		newStats := func() *Stats {
			logger := logrus.New()
			logger.SetOutput(io.Discard)
			return New(logrus.NewEntry(logger))
		}

		BeforeEach(func() {
			path = filepath.Join(GinkgoT().TempDir(), "checkmk.prom")
		})

		It("Should ignore empty paths and missing files", func() {
			Expect(stats.LoadTextfile("")).To(Succeed())
			Expect(stats.LoadTextfile(path)).To(Succeed())
			Expect(testutil.CollectAndCount(stats.actions)).To(Equal(0))
		})

		It("Should accumulate across invocations", func() {
			for i := 0; i < 3; i++ {
				s := newStats()
				Expect(s.LoadTextfile(path)).To(Succeed())
				s.RecordAction("checkmk", "install_checkmk_agent", "ok", time.Second)
				Expect(s.WriteTextfile(path)).To(Succeed())
			}

			s := newStats()
			Expect(s.LoadTextfile(path)).To(Succeed())
			s.RecordAction("checkmk", "current_agent_state", "failed", 2*time.Second)
			Expect(s.WriteTextfile(path)).To(Succeed())

			out, err := os.ReadFile(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(out)).To(ContainSubstring(`checkmk_agent_action_total{action="install_checkmk_agent",outcome="ok"} 3`))
			Expect(string(out)).To(ContainSubstring(`checkmk_agent_action_total{action="current_agent_state",outcome="failed"} 1`))
			Expect(string(out)).To(ContainSubstring(`checkmk_agent_last_action_duration_seconds{action="install_checkmk_agent"} 1`))
			Expect(string(out)).To(ContainSubstring(`checkmk_agent_last_action_duration_seconds{action="current_agent_state"} 2`))
			Expect(strings.Count(string(out), "checkmk_agent_build_info{")).To(Equal(1))
		})

		It("Should fail on corrupt files", func() {
			Expect(os.WriteFile(path, []byte("checkmk_agent_action_total{ nope\n"), 0644)).To(Succeed())
			Expect(stats.LoadTextfile(path)).To(MatchError(ContainSubstring("could not parse statistics")))
		})
	})
})
