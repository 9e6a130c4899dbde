package wstransport

import "fmt"

// OptionError signals a problem with the client option tree itself
// (e.g. an address that resolves to nothing).
type OptionError struct{ Msg string }

func (e *OptionError) Error() string { return fmt.Sprintf("ws option: %s", e.Msg) }

// ConnectError wraps a WebSocket handshake failure, or the last TCP
// connect failure once every candidate address has been tried. Unlike a
// TCP connect failure, a handshake failure is not retried across
// addresses.
type ConnectError struct{ Err error }

func (e *ConnectError) Error() string { return fmt.Sprintf("ws connect: %s", e.Err) }

func (e *ConnectError) Unwrap() error { return e.Err }

// EmptyResolvedError signals that the resolved address list was empty
// at connect time.
type EmptyResolvedError struct{}

func (e *EmptyResolvedError) Error() string { return "ws connect: empty resolved address list" }
