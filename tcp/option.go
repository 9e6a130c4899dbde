// Package tcp implements the TCP transport: client dialing with
// multi-address fallback and optional TLS, and a server accept loop that
// tolerates TLS handshake failures without terminating.
package tcp

// ClientOption configures the TCP client variant.
type ClientOption struct {
	Addr       string
	Port       uint16
	TCPNoDelay bool
}

// ServerOption configures the TCP server variant.
type ServerOption struct {
	Listen     string
	TCPNoDelay bool
}
