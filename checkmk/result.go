// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package checkmk

import (
	"encoding/json"
	"fmt"
)

// ErrorKind classifies why an operation did not succeed
type ErrorKind int

const (
	// NoError is the kind of every successful result
	NoError ErrorKind = iota

	// Inactive means the load gate did not pass
	Inactive

	// MissingBinary means an expected binary is not on disk
	MissingBinary

	// DownloadFailure means the updater could not be downloaded
	DownloadFailure

	// TLSVerificationFailure means the CheckMK site could not be verified
	TLSVerificationFailure

	// ConnectionFailure means the CheckMK site could not be reached
	ConnectionFailure

	// PermissionChangeFailure means the updater could not be made executable
	PermissionChangeFailure

	// RegistrationFailure means the updater failed to register the host
	RegistrationFailure

	// InstallFailure means the updater failed to install the agent
	InstallFailure

	// NoAgentAvailable means the CheckMK site has no agent baked for this host
	NoAgentAvailable

	// UnrecognizedOutput means the updater output matched no known pattern
	UnrecognizedOutput
)

var kindNames = map[ErrorKind]string{
	NoError:                 "NoError",
	Inactive:                "Inactive",
	MissingBinary:           "MissingBinary",
	DownloadFailure:         "DownloadFailure",
	TLSVerificationFailure:  "TLSVerificationFailure",
	ConnectionFailure:       "ConnectionFailure",
	PermissionChangeFailure: "PermissionChangeFailure",
	RegistrationFailure:     "RegistrationFailure",
	InstallFailure:          "InstallFailure",
	NoAgentAvailable:        "NoAgentAvailable",
	UnrecognizedOutput:      "UnrecognizedOutput",
}

func (k ErrorKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}

	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

type shape int

const (
	messageTuple shape = iota
	infoTuple
	bare
	empty
)

// Result is the outcome of an operation.
//
// It serializes to the shapes callers of the Salt module received: a
// [success, payload] pair where payload is a string or a mapping, a bare
// true for a successful registration and null when the installer output
// was not recognized.
type Result struct {
	Success bool
	Message string
	Info    map[string]string
	Kind    ErrorKind

	shape shape
}

func messageResult(success bool, kind ErrorKind, msg string) Result {
	return Result{Success: success, Kind: kind, Message: msg, shape: messageTuple}
}

func infoResult(success bool, kind ErrorKind, info map[string]string) Result {
	return Result{Success: success, Kind: kind, Info: info, shape: infoTuple}
}

func bareResult() Result {
	return Result{Success: true, Kind: NoError, shape: bare}
}

func emptyResult(kind ErrorKind) Result {
	return Result{Kind: kind, shape: empty}
}

// IsBare indicates the result is a plain boolean rather than a pair
func (r Result) IsBare() bool {
	return r.shape == bare
}

// IsEmpty indicates the operation produced no value
func (r Result) IsEmpty() bool {
	return r.shape == empty
}

// Payload is the second item of the pair, nil for bare and empty results
func (r Result) Payload() any {
	switch r.shape {
	case infoTuple:
		return r.Info
	case messageTuple:
		return r.Message
	default:
		return nil
	}
}

// Err is nil for successful results and otherwise describes the failure
func (r Result) Err() error {
	if r.Success {
		return nil
	}

	switch r.shape {
	case infoTuple:
		return fmt.Errorf("%s: %v", r.Kind, r.Info)
	case empty:
		return fmt.Errorf("%s: no result", r.Kind)
	default:
		return fmt.Errorf("%s: %s", r.Kind, r.Message)
	}
}

func (r Result) String() string {
	j, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf("%#v", r)
	}

	return string(j)
}

// MarshalJSON implements json.Marshaler
func (r Result) MarshalJSON() ([]byte, error) {
	switch r.shape {
	case bare:
		return json.Marshal(r.Success)
	case empty:
		return []byte("null"), nil
	default:
		return json.Marshal([]any{r.Success, r.Payload()})
	}
}
