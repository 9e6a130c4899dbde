package wstransport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/netip"

	"github.com/sieveLau/gotransport/dns"
	"github.com/sieveLau/gotransport/iostream"
	"github.com/sieveLau/gotransport/tlscfg"
	"nhooyr.io/websocket"
)

// Client is the WebSocket client variant.
type Client struct {
	addrs      []netip.AddrPort
	tcpNoDelay bool
	tlsConfig  *tls.Config
	scheme     string
	path       string
}

// NewClient resolves opt.Addr (unless it is already an IP literal)
// through resolver, builds a TLS client context if tlsOpt is set, and
// precomputes the ws/wss URI scheme and path.
func NewClient(ctx context.Context, opt ClientOption, tlsOpt *tlscfg.ClientOption, resolver *dns.Resolver) (*Client, error) {
	addrs, err := resolveAddrs(ctx, opt.Addr, opt.Port, resolver)
	if err != nil {
		return nil, err
	}

	if len(addrs) == 0 {
		return nil, &OptionError{Msg: "unknown address"}
	}

	c := &Client{
		addrs:      addrs,
		tcpNoDelay: opt.TCPNoDelay,
		scheme:     "ws",
		path:       opt.Path,
	}

	if tlsOpt != nil {
		cfg, buildErr := tlscfg.BuildClient(*tlsOpt, opt.Addr)
		if buildErr != nil {
			return nil, buildErr
		}

		c.tlsConfig = cfg
		c.scheme = "wss"
	}

	return c, nil
}

func resolveAddrs(ctx context.Context, host string, port uint16, resolver *dns.Resolver) ([]netip.AddrPort, error) {
	if ip, err := netip.ParseAddr(host); err == nil {
		return []netip.AddrPort{netip.AddrPortFrom(ip, port)}, nil
	}

	return resolver.Resolve(ctx, host, port)
}

// Name returns "Ws".
func (c *Client) Name() string { return "Ws" }

// Connect walks the stored address list, attempting a TCP connect for
// each; on the first successful TCP connect it performs the WebSocket
// client handshake on that socket (no per-address fallback across
// handshake failures — only connect failures retry).
func (c *Client) Connect(ctx context.Context) (iostream.Stream, error) {
	if len(c.addrs) == 0 {
		return nil, &EmptyResolvedError{}
	}

	var lastErr error

	var d net.Dialer

	for _, addr := range c.addrs {
		conn, err := d.DialContext(ctx, "tcp", addr.String())
		if err != nil {
			lastErr = err

			continue
		}

		if c.tcpNoDelay {
			if tc, ok := conn.(*net.TCPConn); ok {
				_ = tc.SetNoDelay(true)
			}
		}

		return c.handshake(ctx, conn, addr)
	}

	return nil, &ConnectError{Err: lastErr}
}

// handshake performs the HTTP upgrade over an already-connected socket
// and wraps the result as a Stream. A handshake failure is terminal —
// the address walk does not retry it against another address.
func (c *Client) handshake(ctx context.Context, conn net.Conn, addr netip.AddrPort) (iostream.Stream, error) {
	httpClient := &http.Client{
		Transport: &http.Transport{
			DialContext: func(context.Context, string, string) (net.Conn, error) {
				return conn, nil
			},
			TLSClientConfig: c.tlsConfig,
		},
	}

	url := fmt.Sprintf("%s://%s%s", c.scheme, addr.String(), c.path)

	wsConn, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{HTTPClient: httpClient})
	if err != nil {
		_ = conn.Close()

		return nil, &ConnectError{Err: err}
	}

	return NewStream(ctx, wsConn), nil
}
