package wstransport

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/AdguardTeam/golibs/log"
	"github.com/sieveLau/gotransport/iostream"
	"github.com/sieveLau/gotransport/neterr"
	"github.com/sieveLau/gotransport/tlscfg"
	"nhooyr.io/websocket"
)

// Server is the WebSocket server variant. Four bind modes (TLS ×
// tcp_nodelay) share the same route and accept loop; only the acceptor
// construction differs.
type Server struct {
	listener   net.Listener
	tcpNoDelay bool
	tlsConfig  *tls.Config
	path       string
	httpServer *http.Server
}

// NewServer binds opt.Listen and builds a TLS acceptor if tlsOpt is set.
// The single "GET <path>" upgrade route is installed by Serve.
func NewServer(opt ServerOption, tlsOpt *tlscfg.ServerOption) (*Server, error) {
	ln, err := net.Listen("tcp", opt.Listen)
	if err != nil {
		return nil, err
	}

	s := &Server{listener: ln, tcpNoDelay: opt.TCPNoDelay, path: opt.Path}

	if tlsOpt != nil {
		cfg, buildErr := tlscfg.BuildServer(*tlsOpt)
		if buildErr != nil {
			_ = ln.Close()

			return nil, buildErr
		}

		s.tlsConfig = cfg
	}

	return s, nil
}

// Name returns "Ws".
func (s *Server) Name() string { return "Ws" }

// LocalAddr returns the bound address.
func (s *Server) LocalAddr() net.Addr { return s.listener.Addr() }

// Serve runs the accept loop. Each accepted connection is handed to the
// shared HTTP server through its own one-shot listener, so a TLS
// handshake failure can be logged and skipped without tearing down the
// listener, matching the TCP transport's accept-loop tolerance policy.
func (s *Server) Serve(ctx context.Context, handler iostream.Handler) error {
	mux := http.NewServeMux()
	mux.HandleFunc(s.path, s.upgradeHandler(ctx, handler))
	s.httpServer = &http.Server{Handler: mux}

	go func() {
		<-ctx.Done()
		_ = s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			if neterr.IsClosed(err) {
				return err
			}

			log.Error("ws: accept: %s", err)

			continue
		}

		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	if s.tcpNoDelay {
		if tc, ok := conn.(*net.TCPConn); ok {
			_ = tc.SetNoDelay(true)
		}
	}

	if s.tlsConfig != nil {
		tlsConn := tls.Server(conn, s.tlsConfig)
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			log.Debug("ws: tls handshake from %s: %s", conn.RemoteAddr(), err)
			_ = conn.Close()

			return
		}

		conn = tlsConn
	}

	_ = s.httpServer.Serve(newOneShotListener(conn))
}

// upgradeHandler builds the HTTP handler performing the WS upgrade and
// invoking handler with the adapted Stream.
func (s *Server) upgradeHandler(ctx context.Context, handler iostream.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wsConn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}

		peer := peerAddr(r)
		handler.Handle(ctx, NewStream(ctx, wsConn), peer)
	}
}

func peerAddr(r *http.Request) net.Addr {
	host, portStr, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return &net.TCPAddr{IP: net.ParseIP(r.RemoteAddr)}
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return &net.TCPAddr{IP: net.ParseIP(host)}
	}

	return &net.TCPAddr{IP: net.ParseIP(host), Port: port}
}

// oneShotListener adapts a single already-accepted net.Conn to the
// net.Listener interface expected by http.Server.Serve, so each
// connection gets its own Serve call on the shared HTTP server.
type oneShotListener struct {
	conn net.Conn
	done bool
}

func newOneShotListener(conn net.Conn) *oneShotListener {
	return &oneShotListener{conn: conn}
}

func (l *oneShotListener) Accept() (net.Conn, error) {
	if l.done {
		return nil, io.EOF
	}

	l.done = true

	return l.conn, nil
}

func (l *oneShotListener) Close() error { return nil }

func (l *oneShotListener) Addr() net.Addr { return l.conn.LocalAddr() }
