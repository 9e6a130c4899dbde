// Package gotransport provides a unified byte-stream transport over raw
// TCP, TCP+TLS, WebSocket, and WebSocket+TLS, plus a no-op transport for
// tests.
package gotransport

import (
	"fmt"

	"github.com/sieveLau/gotransport/neterr"
)

// TLSErrorKind classifies a [TLSError].
type TLSErrorKind int

// TLSErrorKind values.
const (
	TLSErrIO TLSErrorKind = iota
	TLSErrInvalidCert
	TLSErrInvalidKey
)

// TLSError is returned while building a TLS client or server context.
type TLSError struct {
	Kind TLSErrorKind
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *TLSError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tls: %s: %s", e.Msg, e.Err)
	}

	return fmt.Sprintf("tls: %s", e.Msg)
}

// Unwrap returns the wrapped error, if any.
func (e *TLSError) Unwrap() error { return e.Err }

// NewTLSError builds a [TLSError] of the given kind.
func NewTLSError(kind TLSErrorKind, msg string, err error) *TLSError {
	return &TLSError{Kind: kind, Msg: msg, Err: err}
}

// ClientErrorKind classifies a [ClientError].
type ClientErrorKind int

// ClientErrorKind values.
const (
	ClientErrIO ClientErrorKind = iota
	ClientErrDNS
	ClientErrTLS
	ClientErrOption
	ClientErrConnect
)

// ClientError is returned by [Client] construction and connect.
type ClientError struct {
	Kind ClientErrorKind
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("client: %s: %s", e.Msg, e.Err)
	}

	return fmt.Sprintf("client: %s", e.Msg)
}

// Unwrap returns the wrapped error, if any.
func (e *ClientError) Unwrap() error { return e.Err }

// NewClientError builds a [ClientError] of the given kind.
func NewClientError(kind ClientErrorKind, msg string, err error) *ClientError {
	return &ClientError{Kind: kind, Msg: msg, Err: err}
}

// ServerErrorKind classifies a [ServerError].
type ServerErrorKind int

// ServerErrorKind values.
const (
	ServerErrIO ServerErrorKind = iota
	ServerErrTLS
	ServerErrOption
	ServerErrServe
)

// ServerError is returned by [Server] construction and serve.
type ServerError struct {
	Kind ServerErrorKind
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("server: %s: %s", e.Msg, e.Err)
	}

	return fmt.Sprintf("server: %s", e.Msg)
}

// Unwrap returns the wrapped error, if any.
func (e *ServerError) Unwrap() error { return e.Err }

// NewServerError builds a [ServerError] of the given kind.
func NewServerError(kind ServerErrorKind, msg string, err error) *ServerError {
	return &ServerError{Kind: kind, Msg: msg, Err: err}
}

// IsClosed reports whether e wraps an I/O error that classifies as a
// closed-kind condition: one that should terminate an accept loop rather
// than merely be logged and retried.
func (e *ServerError) IsClosed() bool {
	if e.Kind != ServerErrIO || e.Err == nil {
		return false
	}

	return neterr.IsClosed(e.Err)
}
