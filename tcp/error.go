package tcp

import "fmt"

// OptionError signals a problem with the client/server option tree
// itself (e.g. an address that resolves to nothing).
type OptionError struct{ Msg string }

func (e *OptionError) Error() string { return fmt.Sprintf("tcp option: %s", e.Msg) }

// ConnectError wraps the last per-address connect failure after every
// candidate address has been tried.
type ConnectError struct{ Err error }

func (e *ConnectError) Error() string { return fmt.Sprintf("tcp connect: %s", e.Err) }

func (e *ConnectError) Unwrap() error { return e.Err }

// EmptyResolvedError signals that the resolved address list was empty
// at connect time.
type EmptyResolvedError struct{}

func (e *EmptyResolvedError) Error() string { return "tcp connect: empty resolved address list" }
