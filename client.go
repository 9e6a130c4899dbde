package gotransport

import (
	"context"

	"github.com/sieveLau/gotransport/dns"
	"github.com/sieveLau/gotransport/emptytransport"
	"github.com/sieveLau/gotransport/tcp"
	"github.com/sieveLau/gotransport/tlscfg"
	"github.com/sieveLau/gotransport/wstransport"
)

// NewClient builds the concrete client variant named by opt.Opt,
// threading resolver only where the variant needs host resolution.
// Construction fails fast if the resolved address list is empty.
func NewClient(ctx context.Context, opt TransportClientOption, resolver *dns.Resolver) (Client, error) {
	tlsOpt := tlsClientOpt(opt.TLS)

	switch {
	case opt.Opt.Tcp != nil:
		c, err := tcp.NewClient(ctx, tcp.ClientOption{
			Addr:       opt.Opt.Tcp.Addr,
			Port:       opt.Opt.Tcp.Port,
			TCPNoDelay: opt.Opt.Tcp.TCPNoDelay,
		}, tlsOpt, resolver)
		if err != nil {
			return nil, NewClientError(ClientErrOption, "tcp client init", err)
		}

		return c, nil
	case opt.Opt.Ws != nil:
		c, err := wstransport.NewClient(ctx, wstransport.ClientOption{
			Addr:       opt.Opt.Ws.Addr,
			Port:       opt.Opt.Ws.Port,
			Path:       opt.Opt.Ws.Path,
			TCPNoDelay: opt.Opt.Ws.TCPNoDelay,
		}, tlsOpt, resolver)
		if err != nil {
			return nil, NewClientError(ClientErrOption, "ws client init", err)
		}

		return c, nil
	default:
		return emptytransport.NewClient(), nil
	}
}

func tlsClientOpt(opt *TLSClientOption) *tlscfg.ClientOption {
	if opt == nil {
		return nil
	}

	return &tlscfg.ClientOption{
		Insecure:   opt.Insecure,
		ALPN:       opt.ALPN,
		EnableSNI:  opt.EnableSNI,
		ServerName: opt.ServerName,
	}
}
