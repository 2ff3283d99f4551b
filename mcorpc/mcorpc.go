// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package mcorpc provides agents made of named actions in the style of
// MCollective SimpleRPC.
//
// Actions receive a Request carrying positional and named arguments and
// fill in a Reply. The agent maps positional arguments onto the declared
// action inputs so callers can invoke actions the way a configuration
// management runtime invokes module functions.
package mcorpc

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/choria-io/go-validator"
	"github.com/gofrs/uuid"
	"github.com/mitchellh/mapstructure"
)

// StatusCode is a reply status as defined by MCollective SimpleRPC - integers 0 to 5
//
// See the constants OK, Aborted, UnknownAction, MissingData, InvalidData and UnknownError
type StatusCode uint8

const (
	// OK is the reply status when all worked
	OK = StatusCode(iota)

	// Aborted is status for when the action could not run, most failures in an action should set this
	Aborted

	// UnknownAction is the status for unknown actions requested
	UnknownAction

	// MissingData is the status for missing input data
	MissingData

	// InvalidData is the status for invalid input data
	InvalidData

	// UnknownError is the status general failures in agents should set when things go bad
	UnknownError
)

var statusNames = []string{"ok", "aborted", "unknown_action", "missing_data", "invalid_data", "unknown_error"}

func (s StatusCode) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}

	return fmt.Sprintf("status_%d", s)
}

// Reply is the reply data as stipulated by MCollective RPC system.  The Data
// has to be something that can be turned into JSON using the normal Marshal system
type Reply struct {
	Action     string     `json:"action"`
	Statuscode StatusCode `json:"statuscode"`
	Statusmsg  string     `json:"statusmsg"`
	Data       any        `json:"data"`
}

// Request is a request to invoke an action.
//
// Args are positional arguments in the order the action declares its inputs,
// Data holds named arguments as a JSON object. After the agent prepared the
// request Data holds both.
type Request struct {
	Agent     string          `json:"agent"`
	Action    string          `json:"action"`
	Args      []string        `json:"args,omitempty"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"requestid"`
	CallerID  string          `json:"callerid"`
	Time      time.Time       `json:"time"`
}

// NewRequest creates a request for agent#action with positional arguments
func NewRequest(agent string, action string, args ...string) *Request {
	return &Request{
		Agent:     agent,
		Action:    action,
		Args:      args,
		Data:      json.RawMessage("{}"),
		RequestID: NewRequestID(),
		CallerID:  callerID(),
		Time:      time.Now().UTC(),
	}
}

// NewRequestID creates a new request id, usually a v4 uuid without dashes
func NewRequestID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}

	return strings.ReplaceAll(id.String(), "-", "")
}

func callerID() string {
	user := os.Getenv("USER")
	if user == "" {
		user = "unknown"
	}

	return fmt.Sprintf("user=%s", user)
}

// ParseRequestData parses the request arguments into a target structure using
// mapstructure tags and validates it using its validate tags, should parsing
// or validation fail appropriate errors will be set on the reply
//
// Example used in a action:
//
//	var rparams struct {
//	    Site string `mapstructure:"site" validate:"shellsafe"`
//	}
//
//	if !mcorpc.ParseRequestData(&rparams, req, reply) {
//	    // the function already set appropriate errors on reply
//	    return
//	}
func ParseRequestData(target any, request *Request, reply *Reply) bool {
	input := map[string]any{}

	if len(request.Data) > 0 {
		err := json.Unmarshal(request.Data, &input)
		if err != nil {
			reply.Statuscode = InvalidData
			reply.Statusmsg = fmt.Sprintf("Could not parse request data for %s#%s: %s", request.Agent, request.Action, err)
			return false
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		reply.Statuscode = UnknownError
		reply.Statusmsg = fmt.Sprintf("Could not create decoder for %s#%s: %s", request.Agent, request.Action, err)
		return false
	}

	err = decoder.Decode(input)
	if err != nil {
		reply.Statuscode = InvalidData
		reply.Statusmsg = fmt.Sprintf("Could not parse request data for %s#%s: %s", request.Agent, request.Action, err)
		return false
	}

	ok, err := validator.ValidateStruct(target)
	if !ok {
		reply.Statuscode = InvalidData
		reply.Statusmsg = fmt.Sprintf("Validation failed: %s", err)
		return false
	}

	return true
}
