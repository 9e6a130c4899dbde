package tcp

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectAddressFallback reproduces scenario 2: the first address in
// the list is refused, the second succeeds, and the returned stream is
// plain (not TLS-wrapped).
func TestConnectAddressFallback(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer ln.Close()

	accepted := make(chan net.Conn, 1)

	go func() {
		conn, aerr := ln.Accept()
		if aerr == nil {
			accepted <- conn
		}
	}()

	refused, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	refusedAddr := refused.Addr().String()
	require.NoError(t, refused.Close())

	liveAddrPort := mustAddrPort(t, ln.Addr().String())
	refusedAddrPort := mustAddrPort(t, refusedAddr)

	c := &Client{addrs: netipAddrPortSlice(t, refusedAddrPort, liveAddrPort)}

	stream, err := c.Connect(context.Background())
	require.NoError(t, err)
	defer stream.Close()

	conn, ok := stream.(*Conn)
	require.True(t, ok)

	_, isTLS := conn.Conn.(*tls.Conn)
	assert.False(t, isTLS)

	select {
	case <-accepted:
	case <-time.After(2 * time.Second):
		t.Fatal("server never accepted a connection")
	}
}

func TestConnectAllFail(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := mustAddrPort(t, ln.Addr().String())
	require.NoError(t, ln.Close())

	c := &Client{addrs: netipAddrPortSlice(t, addr)}

	_, err = c.Connect(context.Background())
	require.Error(t, err)
}

func TestConnectEmptyAddrList(t *testing.T) {
	c := &Client{}

	_, err := c.Connect(context.Background())
	require.Error(t, err)

	var emptyErr *EmptyResolvedError
	assert.ErrorAs(t, err, &emptyErr)
}

func TestConnStreamIsIOStream(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer ln.Close()

	go func() {
		conn, aerr := ln.Accept()
		if aerr != nil {
			return
		}

		defer conn.Close()

		buf := make([]byte, 5)
		_, _ = io.ReadFull(conn, buf)
		_, _ = conn.Write(buf)
	}()

	c := &Client{addrs: netipAddrPortSlice(t, mustAddrPort(t, ln.Addr().String()))}

	stream, err := c.Connect(context.Background())
	require.NoError(t, err)
	defer stream.Close()

	_, err = stream.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, stream.Flush())

	buf := make([]byte, 5)
	_, err = io.ReadFull(stream, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))
}
