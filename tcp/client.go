package tcp

import (
	"context"
	"crypto/tls"
	"net"
	"net/netip"

	"github.com/sieveLau/gotransport/dns"
	"github.com/sieveLau/gotransport/iostream"
	"github.com/sieveLau/gotransport/tlscfg"
)

// Client is the TCP client variant: its dial state (resolved address
// list, TLS context, nodelay flag) is computed once at construction.
type Client struct {
	addrs      []netip.AddrPort
	tcpNoDelay bool
	tlsConfig  *tls.Config
}

// NewClient resolves addr (unless it is already an IP literal) through
// resolver and precomputes the TLS context, if any. It fails fast if
// the resolved address list is empty.
func NewClient(ctx context.Context, opt ClientOption, tlsOpt *tlscfg.ClientOption, resolver *dns.Resolver) (*Client, error) {
	addrs, err := resolveAddrs(ctx, opt.Addr, opt.Port, resolver)
	if err != nil {
		return nil, err
	}

	if len(addrs) == 0 {
		return nil, &OptionError{Msg: "unknown address"}
	}

	c := &Client{addrs: addrs, tcpNoDelay: opt.TCPNoDelay}

	if tlsOpt != nil {
		cfg, buildErr := tlscfg.BuildClient(*tlsOpt, opt.Addr)
		if buildErr != nil {
			return nil, buildErr
		}

		c.tlsConfig = cfg
	}

	return c, nil
}

// resolveAddrs resolves host through resolver unless host already parses
// as an IP literal, in which case resolution is skipped entirely.
func resolveAddrs(ctx context.Context, host string, port uint16, resolver *dns.Resolver) ([]netip.AddrPort, error) {
	if ip, err := netip.ParseAddr(host); err == nil {
		return []netip.AddrPort{netip.AddrPortFrom(ip, port)}, nil
	}

	return resolver.Resolve(ctx, host, port)
}

// Name returns "Tcp".
func (c *Client) Name() string { return "Tcp" }

// Connect walks the stored address list in order, attempting a TCP
// connect (optionally followed by a TLS handshake) for each, returning
// on first success. On any connect failure it remembers the last error
// and continues; if every address fails, the last error is surfaced.
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

		if c.tlsConfig != nil {
			tlsConn := tls.Client(conn, c.tlsConfig)
			if hsErr := tlsConn.HandshakeContext(ctx); hsErr != nil {
				_ = conn.Close()
				lastErr = hsErr

				continue
			}

			return &Conn{Conn: tlsConn}, nil
		}

		return &Conn{Conn: conn}, nil
	}

	return nil, &ConnectError{Err: lastErr}
}
