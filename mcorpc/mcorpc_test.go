// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package mcorpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

func TestMcoRPC(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "McoRPC")
}

type recorded struct {
	agent   string
	action  string
	outcome string
}

type testRecorder struct {
	calls []recorded
}

func (r *testRecorder) RecordAction(agent string, action string, outcome string, _ time.Duration) {
	r.calls = append(r.calls, recorded{agent, action, outcome})
}

type failingData struct{}

func (failingData) Err() error { return errors.New("simulated") }

var _ = Describe("McoRPC", func() {
	var (
		agent *Agent
		rec   *testRecorder
		ctx   context.Context
	)

	BeforeEach(func() {
		logger := logrus.New()
		logger.SetOutput(io.Discard)

		rec = &testRecorder{}
		ctx = context.Background()
		agent = New("test", &Metadata{Name: "test", Version: "1.0.0"}, logrus.NewEntry(logger))
		agent.SetRecorder(rec)
	})

	Describe("StatusCode", func() {
		It("Should have snake case names", func() {
			Expect(OK.String()).To(Equal("ok"))
			Expect(MissingData.String()).To(Equal("missing_data"))
			Expect(StatusCode(20).String()).To(Equal("status_20"))
		})
	})

	Describe("NewRequest", func() {
		It("Should create a request with an id", func() {
			req := NewRequest("test", "ping", "a", "b")
			Expect(req.RequestID).To(HaveLen(32))
			Expect(req.Args).To(Equal([]string{"a", "b"}))
			Expect(req.CallerID).To(HavePrefix("user="))
		})
	})

	Describe("RegisterAction", func() {
		It("Should not allow duplicate actions", func() {
			desc := ActionDescription{Name: "ping"}
			Expect(agent.RegisterAction(desc, nil)).To(Succeed())
			Expect(agent.RegisterAction(desc, nil)).To(MatchError("cannot register action ping, it already exist"))
		})

		It("Should require a name", func() {
			Expect(agent.RegisterAction(ActionDescription{}, nil)).To(HaveOccurred())
			Expect(func() { agent.MustRegisterAction(ActionDescription{}, nil) }).To(Panic())
		})

		It("Should list actions sorted", func() {
			agent.MustRegisterAction(ActionDescription{Name: "zulu"}, nil)
			agent.MustRegisterAction(ActionDescription{Name: "alpha"}, nil)
			Expect(agent.ActionNames()).To(Equal([]string{"alpha", "zulu"}))

			desc, ok := agent.ActionDescription("alpha")
			Expect(ok).To(BeTrue())
			Expect(desc.Name).To(Equal("alpha"))

			_, ok = agent.ActionDescription("missing")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("ShouldActivate", func() {
		It("Should default to active", func() {
			Expect(agent.ShouldActivate()).To(BeTrue())
			agent.SetActivationChecker(func() bool { return false })
			Expect(agent.ShouldActivate()).To(BeFalse())
		})
	})

	Describe("HandleRequest", func() {
		var site struct {
			Site  string `mapstructure:"site" validate:"shellsafe"`
			Proto string `mapstructure:"proto"`
		}

		BeforeEach(func() {
			agent.MustRegisterAction(ActionDescription{
				Name: "install",
				Inputs: []Input{
					{Name: "site"},
					{Name: "proto", Optional: true},
				},
			}, func(_ context.Context, req *Request, reply *Reply, _ *Agent) {
				if !ParseRequestData(&site, req, reply) {
					return
				}
				reply.Data = map[string]string{"site": site.Site}
			})
		})

		It("Should handle unknown actions", func() {
			reply := agent.HandleRequest(ctx, NewRequest("test", "missing"))
			Expect(reply.Statuscode).To(Equal(UnknownAction))
			Expect(reply.Statusmsg).To(Equal("Unknown action missing for agent test"))
			Expect(rec.calls).To(Equal([]recorded{{"test", "missing", "unknown_action"}}))
		})

		It("Should map positional arguments onto inputs", func() {
			reply := agent.HandleRequest(ctx, NewRequest("test", "install", "prod", "https"))
			Expect(reply.Statuscode).To(Equal(OK))
			Expect(reply.Data).To(Equal(map[string]string{"site": "prod"}))
			Expect(site.Proto).To(Equal("https"))
			Expect(rec.calls).To(Equal([]recorded{{"test", "install", "ok"}}))
		})

		It("Should accept named arguments", func() {
			req := NewRequest("test", "install")
			req.Data = json.RawMessage(`{"site":"staging"}`)

			reply := agent.HandleRequest(ctx, req)
			Expect(reply.Statuscode).To(Equal(OK))
			Expect(reply.Data).To(Equal(map[string]string{"site": "staging"}))
		})

		It("Should detect too many arguments", func() {
			reply := agent.HandleRequest(ctx, NewRequest("test", "install", "a", "b", "c"))
			Expect(reply.Statuscode).To(Equal(InvalidData))
			Expect(reply.Statusmsg).To(Equal("test#install takes 2 arguments but 3 were given"))
		})

		It("Should detect missing required inputs", func() {
			reply := agent.HandleRequest(ctx, NewRequest("test", "install"))
			Expect(reply.Statuscode).To(Equal(MissingData))
			Expect(reply.Statusmsg).To(Equal("Missing required inputs for test#install: site"))
			Expect(rec.calls).To(Equal([]recorded{{"test", "install", "missing_data"}}))
		})

		It("Should detect invalid request data", func() {
			req := NewRequest("test", "install")
			req.Data = json.RawMessage(`[1,`)

			reply := agent.HandleRequest(ctx, req)
			Expect(reply.Statuscode).To(Equal(InvalidData))
		})

		It("Should validate request data", func() {
			reply := agent.HandleRequest(ctx, NewRequest("test", "install", "prod;reboot"))
			Expect(reply.Statuscode).To(Equal(InvalidData))
			Expect(reply.Statusmsg).To(HavePrefix("Validation failed: "))
			Expect(rec.calls).To(Equal([]recorded{{"test", "install", "invalid_data"}}))
		})

		It("Should record failed data as failed", func() {
			agent.MustRegisterAction(ActionDescription{Name: "fail"}, func(_ context.Context, _ *Request, reply *Reply, _ *Agent) {
				reply.Data = failingData{}
			})

			reply := agent.HandleRequest(ctx, NewRequest("test", "fail"))
			Expect(reply.Statuscode).To(Equal(OK))
			Expect(rec.calls).To(Equal([]recorded{{"test", "fail", "failed"}}))
		})
	})
})
