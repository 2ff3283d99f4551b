// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package mcorpc

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Action is a function that implements a RPC Action
type Action func(context.Context, *Request, *Reply, *Agent)

// ActivationChecker is a function that can determine if an agent should be activated
type ActivationChecker func() bool

// Recorder receives the outcome of every handled request
type Recorder interface {
	RecordAction(agent string, action string, outcome string, duration time.Duration)
}

// Metadata describes an agent at a high level and is required for any agent
type Metadata struct {
	License     string `json:"license"`
	Author      string `json:"author"`
	Timeout     int    `json:"timeout"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Input describes an argument an action accepts
type Input struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
}

// ActionDescription describes an action and its inputs, inputs are listed in positional order
type ActionDescription struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Inputs      []Input `json:"inputs"`
}

type action struct {
	desc ActionDescription
	f    Action
}

// Agent is an instance of the MCollective compatible RPC agents
type Agent struct {
	Log *logrus.Entry

	activationCheck ActivationChecker
	meta            *Metadata
	actions         map[string]*action
	recorder        Recorder
}

// New creates a new MCollective SimpleRPC compatible agent
func New(name string, metadata *Metadata, log *logrus.Entry) *Agent {
	return &Agent{
		meta:            metadata,
		Log:             log.WithFields(logrus.Fields{"agent": name}),
		actions:         make(map[string]*action),
		activationCheck: func() bool { return true },
	}
}

// ShouldActivate checks if the agent should be active using the method set in SetActivationChecker
func (a *Agent) ShouldActivate() bool {
	return a.activationCheck()
}

// SetActivationChecker sets the function that can determine if the agent should be active
func (a *Agent) SetActivationChecker(ac ActivationChecker) {
	a.activationCheck = ac
}

// SetRecorder sets where request outcomes are reported
func (a *Agent) SetRecorder(r Recorder) {
	a.recorder = r
}

// RegisterAction registers an action into the agent
func (a *Agent) RegisterAction(desc ActionDescription, f Action) error {
	if desc.Name == "" {
		return fmt.Errorf("cannot register an action without a name")
	}

	if _, ok := a.actions[desc.Name]; ok {
		return fmt.Errorf("cannot register action %s, it already exist", desc.Name)
	}

	a.actions[desc.Name] = &action{desc: desc, f: f}

	return nil
}

// MustRegisterAction registers an action and panics if it fails
func (a *Agent) MustRegisterAction(desc ActionDescription, f Action) {
	err := a.RegisterAction(desc, f)
	if err != nil {
		panic(err)
	}
}

// Name retrieves the name of the agent
func (a *Agent) Name() string {
	return a.meta.Name
}

// Metadata retrieves the agent metadata
func (a *Agent) Metadata() *Metadata {
	return a.meta
}

// ActionNames returns a list of known actions in the agent
func (a *Agent) ActionNames() []string {
	var actions []string

	for k := range a.actions {
		actions = append(actions, k)
	}

	sort.Strings(actions)

	return actions
}

// ActionDescription retrieves the description of a registered action
func (a *Agent) ActionDescription(name string) (ActionDescription, bool) {
	act, ok := a.actions[name]
	if !ok {
		return ActionDescription{}, false
	}

	return act.desc, true
}

// HandleRequest finds the requested action, prepares its arguments and calls it
func (a *Agent) HandleRequest(ctx context.Context, req *Request) *Reply {
	start := time.Now()

	reply := &Reply{
		Action:     req.Action,
		Statuscode: OK,
		Statusmsg:  "OK",
		Data:       json.RawMessage(`{}`),
	}

	defer a.record(req, reply, start)

	act, found := a.actions[req.Action]
	if !found {
		reply.Statuscode = UnknownAction
		reply.Statusmsg = fmt.Sprintf("Unknown action %s for agent %s", req.Action, a.Name())
		return reply
	}

	if !a.prepareRequest(req, act.desc, reply) {
		return reply
	}

	a.Log.Infof("Handling request %s for %s#%s from %s", req.RequestID, a.Name(), req.Action, req.CallerID)

	act.f(ctx, req, reply, a)

	return reply
}

// merges positional arguments into the named data and checks required inputs are present
func (a *Agent) prepareRequest(req *Request, desc ActionDescription, reply *Reply) bool {
	data := map[string]any{}

	if len(req.Data) > 0 {
		err := json.Unmarshal(req.Data, &data)
		if err != nil {
			reply.Statuscode = InvalidData
			reply.Statusmsg = fmt.Sprintf("Could not parse request data for %s#%s: %s", a.Name(), req.Action, err)
			return false
		}
	}

	if len(req.Args) > len(desc.Inputs) {
		reply.Statuscode = InvalidData
		reply.Statusmsg = fmt.Sprintf("%s#%s takes %d arguments but %d were given", a.Name(), req.Action, len(desc.Inputs), len(req.Args))
		return false
	}

	for i, arg := range req.Args {
		data[desc.Inputs[i].Name] = arg
	}

	var missing []string
	for _, input := range desc.Inputs {
		if _, ok := data[input.Name]; !ok && !input.Optional {
			missing = append(missing, input.Name)
		}
	}

	if len(missing) > 0 {
		reply.Statuscode = MissingData
		reply.Statusmsg = fmt.Sprintf("Missing required inputs for %s#%s: %s", a.Name(), req.Action, strings.Join(missing, ", "))
		return false
	}

	j, err := json.Marshal(data)
	if err != nil {
		reply.Statuscode = InvalidData
		reply.Statusmsg = fmt.Sprintf("Could not encode request data for %s#%s: %s", a.Name(), req.Action, err)
		return false
	}

	req.Agent = a.Name()
	req.Data = j

	return true
}

func (a *Agent) record(req *Request, reply *Reply, start time.Time) {
	if a.recorder == nil {
		return
	}

	outcome := reply.Statuscode.String()
	if reply.Statuscode == OK {
		if f, ok := reply.Data.(interface{ Err() error }); ok && f.Err() != nil {
			outcome = "failed"
		}
	}

	a.recorder.RecordAction(a.Name(), req.Action, outcome, time.Since(start))
}
