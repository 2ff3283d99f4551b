// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package host

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrTLSVerification indicates the remote end could not be verified
	ErrTLSVerification = errors.New("tls verification failed")

	// ErrConnection indicates the remote end could not be reached
	ErrConnection = errors.New("connection failed")
)

// CommandError is returned by Run when a command fails and errors were requested
type CommandError struct {
	Command  string
	ExitCode int
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("command %s could not be run: %v", e.Command, e.Err)
	}

	return fmt.Sprintf("command %s failed with exit code %d", e.Command, e.ExitCode)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// classifyRequestError marks errors from the HTTP client with ErrTLSVerification or ErrConnection
func classifyRequestError(err error) error {
	var (
		verifyErr    *tls.CertificateVerificationError
		authorityErr x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		invalidErr   x509.CertificateInvalidError
		headerErr    tls.RecordHeaderError
		opErr        *net.OpError
		dnsErr       *net.DNSError
	)

	switch {
	case errors.As(err, &verifyErr), errors.As(err, &authorityErr), errors.As(err, &hostnameErr), errors.As(err, &invalidErr), errors.As(err, &headerErr):
		return fmt.Errorf("%w: %w", ErrTLSVerification, err)

	case errors.As(err, &opErr), errors.As(err, &dnsErr), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrConnection, err)

	default:
		return err
	}
}
