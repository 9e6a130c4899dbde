package wstransport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"nhooyr.io/websocket"
)

// Stream adapts a discrete-message *websocket.Conn into a byte-oriented,
// partial-read stream. It holds the connection and the residual,
// undrained bytes of the last inbound message — the "chunk" — so that a
// caller's buffer smaller than one WebSocket message still sees a
// correct byte sequence across repeated Read calls.
//
// nhooyr.io/websocket answers control frames (ping/pong) internally and
// never surfaces them to Read, so the "skip control frames" loop of the
// adaptation design degenerates to skipping nothing in practice; it is
// kept structurally so the one-poll-per-read contract and the Close
// translation below stay in one place.
type Stream struct {
	conn *websocket.Conn
	ctx  context.Context

	mu    sync.Mutex
	chunk []byte
}

// NewStream wraps conn. ctx is used for every Read/Write call for the
// lifetime of the stream, matching the source's choice of one
// connection-lifetime context rather than a per-call deadline.
//
// nhooyr.io/websocket defaults conn to a 32768-byte per-message read
// limit; the byte-stream facade has no message boundary of its own to
// enforce, so the limit is disabled here rather than silently truncating
// or erroring on larger payloads.
func NewStream(ctx context.Context, conn *websocket.Conn) *Stream {
	conn.SetReadLimit(-1)

	return &Stream{conn: conn, ctx: ctx}
}

// Read implements the fill_buf/consume protocol: drain any residual
// chunk first; otherwise read inbound messages one at a time, looping
// past anything that is not Text or Binary and past empty payloads.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.chunk) == 0 {
		closed, err := s.fill()
		if err != nil {
			return 0, err
		}

		if closed {
			// Peer closed cleanly: conventional EOF.
			return 0, io.EOF
		}
	}

	n := copy(p, s.chunk)
	s.chunk = s.chunk[n:]

	return n, nil
}

// fill performs one physical poll of the connection, storing the
// payload of the next Text/Binary message as the new chunk. Any other
// message kind is silently skipped by nhooyr's own Read, which never
// returns control frames at all. closed reports a clean close by the peer.
func (s *Stream) fill() (closed bool, err error) {
	typ, payload, err := s.conn.Read(s.ctx)
	if err != nil {
		if isNormalClose(err) {
			s.chunk = nil

			return true, nil
		}

		return false, fmt.Errorf("ws read: %w", err)
	}

	switch typ {
	case websocket.MessageBinary, websocket.MessageText:
		s.chunk = payload

		return false, nil
	default:
		s.chunk = nil

		return false, nil
	}
}

// isNormalClose reports whether err is the connection ending via a
// WebSocket close handshake, which this adapter surfaces as EOF rather
// than a generic I/O error.
func isNormalClose(err error) bool {
	var closeErr websocket.CloseError

	if errors.As(err, &closeErr) {
		return true
	}

	return errors.Is(err, io.EOF)
}

// Write sends exactly one Binary message carrying a copy of p and
// reports len(p) bytes written.
func (s *Stream) Write(p []byte) (int, error) {
	if err := s.conn.Write(s.ctx, websocket.MessageBinary, p); err != nil {
		return 0, fmt.Errorf("ws write: %w", err)
	}

	return len(p), nil
}

// Flush is a no-op: nhooyr.io/websocket writes each message immediately,
// there is no application-level buffering to push.
func (s *Stream) Flush() error { return nil }

// Close performs the WebSocket close handshake.
func (s *Stream) Close() error {
	return s.conn.Close(websocket.StatusNormalClosure, "")
}
