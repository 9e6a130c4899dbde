package tcp

import (
	"context"
	"crypto/tls"
	"net"

	"github.com/AdguardTeam/golibs/log"
	"github.com/sieveLau/gotransport/iostream"
	"github.com/sieveLau/gotransport/neterr"
	"github.com/sieveLau/gotransport/tlscfg"
)

// Server is the TCP server variant.
type Server struct {
	listener   net.Listener
	tcpNoDelay bool
	tlsConfig  *tls.Config
}

// NewServer binds opt.Listen and builds a TLS acceptor if tlsOpt is set.
func NewServer(opt ServerOption, tlsOpt *tlscfg.ServerOption) (*Server, error) {
	ln, err := net.Listen("tcp", opt.Listen)
	if err != nil {
		return nil, err
	}

	s := &Server{listener: ln, tcpNoDelay: opt.TCPNoDelay}

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

// Name returns "Tcp".
func (s *Server) Name() string { return "Tcp" }

// LocalAddr returns the bound address.
func (s *Server) LocalAddr() net.Addr { return s.listener.Addr() }

// Serve runs the accept loop. TLS handshake failures are logged and
// accepting continues; accept errors that classify as closed-kind
// terminate the loop and are returned.
func (s *Server) Serve(ctx context.Context, handler iostream.Handler) error {
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

			log.Error("tcp: accept: %s", err)

			continue
		}

		go s.handleConn(ctx, conn, handler)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn, handler iostream.Handler) {
	if s.tcpNoDelay {
		if tc, ok := conn.(*net.TCPConn); ok {
			_ = tc.SetNoDelay(true)
		}
	}

	peer := conn.RemoteAddr()

	if s.tlsConfig == nil {
		handler.Handle(ctx, &Conn{Conn: conn}, peer)

		return
	}

	tlsConn := tls.Server(conn, s.tlsConfig)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		log.Debug("tcp: tls handshake from %s: %s", peer, err)
		_ = conn.Close()

		return
	}

	handler.Handle(ctx, &Conn{Conn: tlsConn}, peer)
}
