package gotransport

import "github.com/sieveLau/gotransport/iostream"

// Stream is the byte-stream capability set shared by every transport:
// read, write, flush, and an orderly close.
type Stream = iostream.Stream

// Handler is invoked once per accepted connection.
type Handler = iostream.Handler

// Client dials a configured transport.
type Client = iostream.Client

// Server accepts connections for a configured transport.
type Server = iostream.Server

// IsEmpty reports whether s is the stream produced by the Empty
// transport. This resolves the source's "is_emtpy" naming question:
// exposed here under its corrected spelling.
func IsEmpty(s Stream) bool {
	_, ok := s.(iostream.EmptyTagged)

	return ok
}
