package tcp

import "net"

// Conn adapts a net.Conn (optionally TLS-wrapped) to the Stream
// capability set. TCP has no application-level write buffering, so
// Flush is a no-op.
type Conn struct {
	net.Conn
}

// Flush is a no-op: writes to a net.Conn are not buffered by this
// adapter.
func (c *Conn) Flush() error { return nil }
