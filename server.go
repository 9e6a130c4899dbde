package gotransport

import (
	"github.com/sieveLau/gotransport/tcp"
	"github.com/sieveLau/gotransport/tlscfg"
	"github.com/sieveLau/gotransport/wstransport"
)

// NewServer builds the concrete server variant named by opt.Opt.
func NewServer(opt TransportServerOption) (Server, error) {
	tlsOpt := tlsServerOpt(opt.TLS)

	switch {
	case opt.Opt.Ws != nil:
		s, err := wstransport.NewServer(wstransport.ServerOption{
			Listen:     opt.Opt.Ws.Listen,
			Path:       opt.Opt.Ws.Path,
			TCPNoDelay: opt.Opt.Ws.TCPNoDelay,
		}, tlsOpt)
		if err != nil {
			return nil, NewServerError(ServerErrOption, "ws server init", err)
		}

		return s, nil
	default:
		if opt.Opt.Tcp == nil {
			return nil, NewServerError(ServerErrOption, "no server variant set", nil)
		}

		s, err := tcp.NewServer(tcp.ServerOption{
			Listen:     opt.Opt.Tcp.Listen,
			TCPNoDelay: opt.Opt.Tcp.TCPNoDelay,
		}, tlsOpt)
		if err != nil {
			return nil, NewServerError(ServerErrOption, "tcp server init", err)
		}

		return s, nil
	}
}

func tlsServerOpt(opt *TLSServerOption) *tlscfg.ServerOption {
	if opt == nil {
		return nil
	}

	out := &tlscfg.ServerOption{ALPN: opt.ALPN}

	switch {
	case opt.Certificate.File != nil:
		out.Certificate = tlscfg.CertOption{File: &tlscfg.CertFileOption{
			Cert: opt.Certificate.File.Cert,
			Key:  opt.Certificate.File.Key,
		}}
	case opt.Certificate.Text != nil:
		out.Certificate = tlscfg.CertOption{Text: &tlscfg.CertTextOption{
			Certs: opt.Certificate.Text.Certs,
			Key:   opt.Certificate.Text.Key,
		}}
	}

	return out
}
