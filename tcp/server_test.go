package tcp

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/sieveLau/gotransport/iostream"
	"github.com/sieveLau/gotransport/tlscfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu    sync.Mutex
	peers []net.Addr
}

func (h *recordingHandler) Handle(_ context.Context, stream iostream.Stream, peer net.Addr) {
	h.mu.Lock()
	h.peers = append(h.peers, peer)
	h.mu.Unlock()

	_ = stream.Close()
}

func TestServerPlainAccept(t *testing.T) {
	srv, err := NewServer(ServerOption{Listen: "127.0.0.1:0"}, nil)
	require.NoError(t, err)

	h := &recordingHandler{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, h) }()

	conn, err := net.Dial("tcp", srv.LocalAddr().String())
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	_ = conn.Close()

	cancel()
	<-done

	h.mu.Lock()
	defer h.mu.Unlock()
	assert.Len(t, h.peers, 1)
}

// TestServerTLSHandshakeFailureTolerance reproduces scenario 3: a bare
// TCP client sending garbage fails the TLS handshake, the server logs
// and continues, and a subsequent proper client still succeeds.
func TestServerTLSHandshakeFailureTolerance(t *testing.T) {
	certPEM, keyPEM := generateSelfSignedForTest(t)

	srv, err := NewServer(ServerOption{Listen: "127.0.0.1:0"}, &tlscfg.ServerOption{
		Certificate: tlscfg.CertOption{Text: &tlscfg.CertTextOption{
			Certs: []string{certPEM},
			Key:   keyPEM,
		}},
	})
	require.NoError(t, err)

	h := &recordingHandler{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, h) }()

	garbageConn, err := net.Dial("tcp", srv.LocalAddr().String())
	require.NoError(t, err)

	_, _ = garbageConn.Write([]byte("not a tls clienthello"))
	_ = garbageConn.Close()

	time.Sleep(100 * time.Millisecond)

	c, err := NewClient(ctx, ClientOption{
		Addr: "127.0.0.1",
		Port: portOf(t, srv.LocalAddr()),
	}, &tlscfg.ClientOption{Insecure: true, EnableSNI: false}, nil)
	require.NoError(t, err)

	stream, err := c.Connect(ctx)
	require.NoError(t, err)
	_ = stream.Close()
}

func portOf(t *testing.T, addr net.Addr) uint16 {
	t.Helper()

	_, portStr, err := net.SplitHostPort(addr.String())
	require.NoError(t, err)

	ap := mustAddrPort(t, "127.0.0.1:"+portStr)

	return ap.Port()
}
