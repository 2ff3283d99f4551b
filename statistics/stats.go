// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package statistics keeps Prometheus statistics about handled actions
// and writes them for the node_exporter textfile collector.
//
// Every invocation is a short lived process so the previous textfile is
// loaded before recording, counters keep growing across invocations and
// the last run gauges of actions not invoked this time are kept.
package statistics

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"

	"github.com/mattfoxxx/salt-checkmk/build"
)

const (
	actionsName   = "checkmk_agent_action_total"
	durationName  = "checkmk_agent_last_action_duration_seconds"
	timestampName = "checkmk_agent_last_action_timestamp_seconds"
)

// Stats holds action statistics on a private registry
type Stats struct {
	registry  *prometheus.Registry
	actions   *prometheus.CounterVec
	duration  *prometheus.GaugeVec
	timestamp *prometheus.GaugeVec
	info      *prometheus.GaugeVec

	log *logrus.Entry
	mu  sync.Mutex
}

// New creates a Stats instance with all collectors registered
func New(log *logrus.Entry) *Stats {
	s := &Stats{
		registry: prometheus.NewRegistry(),
		log:      log.WithField("component", "statistics"),

		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: actionsName,
			Help: "The number of actions handled by outcome",
		}, []string{"action", "outcome"}),

		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: durationName,
			Help: "How long the last invocation of an action took to complete",
		}, []string{"action"}),

		timestamp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: timestampName,
			Help: "When an action was last invoked",
		}, []string{"action"}),

		info: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "checkmk_agent_build_info",
			Help: "Build information about the running plugin",
		}, []string{"version", "sha"}),
	}

	s.registry.MustRegister(s.actions, s.duration, s.timestamp, s.info)
	s.info.WithLabelValues(build.Version, build.SHA).Set(1)

	return s
}

// RecordAction records the outcome of a handled action
func (s *Stats) RecordAction(_ string, action string, outcome string, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.actions.WithLabelValues(action, outcome).Inc()
	s.duration.WithLabelValues(action).Set(duration.Seconds())
	s.timestamp.WithLabelValues(action).SetToCurrentTime()
}

// Registry is the registry all collectors are registered on
func (s *Stats) Registry() *prometheus.Registry {
	return s.registry
}

// LoadTextfile seeds the action statistics from a textfile written by an
// earlier invocation, an empty path or a missing file is a noop
func (s *Stats) LoadTextfile(path string) error {
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	var parser expfmt.TextParser // zero value validates names with model.NameValidationScheme (UTF8Validation) in prometheus/common v0.63
	families, err := parser.TextToMetricFamilies(f)
	if err != nil {
		return fmt.Errorf("could not parse statistics in %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range families[actionsName].GetMetric() {
		labels := labelValues(m)
		s.actions.WithLabelValues(labels["action"], labels["outcome"]).Add(m.GetCounter().GetValue())
	}

	for _, m := range families[durationName].GetMetric() {
		s.duration.WithLabelValues(labelValues(m)["action"]).Set(m.GetGauge().GetValue())
	}

	for _, m := range families[timestampName].GetMetric() {
		s.timestamp.WithLabelValues(labelValues(m)["action"]).Set(m.GetGauge().GetValue())
	}

	s.log.Debugf("Loaded statistics from %s", path)

	return nil
}

// WriteTextfile writes the statistics in the Prometheus text format, an empty path is a noop
func (s *Stats) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return fmt.Errorf("could not create statistics directory: %w", err)
	}

	err = prometheus.WriteToTextfile(path, s.registry)
	if err != nil {
		return fmt.Errorf("could not write statistics to %s: %w", path, err)
	}

	s.log.Debugf("Wrote statistics to %s", path)

	return nil
}

func labelValues(m *dto.Metric) map[string]string {
	labels := map[string]string{}
	for _, l := range m.GetLabel() {
		labels[l.GetName()] = l.GetValue()
	}

	return labels
}
