// Package iostream defines the shared byte-stream and transport
// capability contracts implemented by every concrete transport package
// (tcp, wstransport, emptytransport) and consumed by the root facade.
// Splitting these contracts into their own package lets the facade and
// the transport implementations depend on the same interfaces without
// an import cycle.
package iostream

import (
	"context"
	"io"
	"net"
)

// Stream is the byte-stream capability set shared by every transport:
// read, write, flush, and an orderly close. Implementations must be
// safe to use from any goroutine once constructed.
type Stream interface {
	io.Reader
	io.Writer

	// Flush pushes any buffered bytes to the underlying transport.
	Flush() error

	// Close performs an orderly shutdown of the stream.
	Close() error
}

// EmptyTagged is implemented only by the stream produced by the Empty
// transport.
type EmptyTagged interface {
	IsEmptyStream()
}

// Handler is invoked once per accepted connection. Implementations must
// be safe to share and call concurrently across many connections, and
// must not retain a reference to the server.
type Handler interface {
	Handle(ctx context.Context, stream Stream, peer net.Addr)
}

// Client dials a configured transport.
type Client interface {
	// Connect performs one connection attempt, returning a Stream on
	// success.
	Connect(ctx context.Context) (Stream, error)

	// Name returns the stable tag of the active transport variant.
	Name() string
}

// Server accepts connections for a configured transport.
type Server interface {
	// LocalAddr returns the address the server is bound to.
	LocalAddr() net.Addr

	// Serve runs the accept loop until ctx is done or a closed-kind
	// error occurs, dispatching each accepted connection to handler on
	// its own goroutine.
	Serve(ctx context.Context, handler Handler) error

	// Name returns the stable tag of the active transport variant.
	Name() string
}
