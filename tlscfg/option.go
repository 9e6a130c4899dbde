// Package tlscfg builds client/server *tls.Config values from the
// option tree, including the insecure no-verify policy and PEM
// certificate/key loading from file or inline text.
package tlscfg

// ClientOption configures the TLS policy for a dialing transport.
type ClientOption struct {
	Insecure   bool
	ALPN       []string
	EnableSNI  bool
	ServerName string
}

// ServerOption configures the TLS policy for an accepting transport.
type ServerOption struct {
	ALPN        []string
	Certificate CertOption
}

// CertFileOption loads a certificate chain and key from the filesystem.
type CertFileOption struct {
	Cert string
	Key  string
}

// CertTextOption carries a certificate chain and key inline; multiple
// certs are joined with "\n" and parsed as one PEM chain.
type CertTextOption struct {
	Certs []string
	Key   string
}

// CertOption is the externally-tagged union {File|Text}.
type CertOption struct {
	File *CertFileOption
	Text *CertTextOption
}
