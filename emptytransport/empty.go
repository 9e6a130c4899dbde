// Package emptytransport implements the no-op Empty transport: its
// client always succeeds and its stream never yields bytes and discards
// every write. Used as the default ClientOption variant and as a
// sentinel in tests.
package emptytransport

import (
	"context"
	"io"

	"github.com/sieveLau/gotransport/iostream"
)

var errEOF = io.EOF

// Client is the Empty transport client. It carries no dial state.
type Client struct{}

// NewClient builds the Empty client.
func NewClient() *Client { return &Client{} }

// Name returns "Empty".
func (c *Client) Name() string { return "Empty" }

// Connect always succeeds immediately, returning a Stream that never
// yields bytes and discards every write.
func (c *Client) Connect(_ context.Context) (iostream.Stream, error) {
	return &Stream{}, nil
}

// Stream is the always-EOF, discard-write stream produced by Connect.
type Stream struct{}

// Read always reports io.EOF without copying any bytes.
func (s *Stream) Read(_ []byte) (int, error) {
	return 0, errEOF
}

// Write discards p and reports every byte as written.
func (s *Stream) Write(p []byte) (int, error) {
	return len(p), nil
}

// Flush is a no-op that always succeeds.
func (s *Stream) Flush() error { return nil }

// Close is a no-op that always succeeds.
func (s *Stream) Close() error { return nil }

// IsEmptyStream implements iostream.EmptyTagged.
func (s *Stream) IsEmptyStream() {}
