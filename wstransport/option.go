// Package wstransport implements the WebSocket transport: client dial
// (TCP → optional TLS → WS handshake), server accept (HTTP → WS
// upgrade), and the byte-stream adapter that turns the underlying
// discrete-message connection into a partial-read stream.
package wstransport

// ClientOption configures the WebSocket client variant.
type ClientOption struct {
	Addr       string
	Port       uint16
	Path       string
	TCPNoDelay bool
}

// ServerOption configures the WebSocket server variant.
type ServerOption struct {
	Listen     string
	Path       string
	TCPNoDelay bool
}
