package tlscfg

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
)

// BuildClient builds a *tls.Config for a dialing transport. dialHost is
// the hostname passed to connect, used as the SNI fallback when
// opt.ServerName is empty.
func BuildClient(opt ClientOption, dialHost string) (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if opt.Insecure {
		// crypto/tls has no pluggable per-signature-scheme verifier callback,
		// so there's no way to enumerate an accepted scheme list the way a
		// rustls-style verifier would. InsecureSkipVerify plus a no-op
		// VerifyPeerCertificate/VerifyConnection pair is the idiomatic Go
		// rendering of "accept any chain, any scheme crypto/tls supports".
		//
		// For reference, the scheme set a rustls-based peer's insecure
		// verifier accepts: ECDSA with P-256, P-384 and P-521 (plus legacy
		// SHA-1), Ed25519, Ed448, and RSA PKCS#1 v1.5 and RSA-PSS with
		// SHA-1/SHA-256/SHA-384/SHA-512. This list is documentation only;
		// nothing here enforces it, and crypto/tls has no Ed448 support.
		cfg.InsecureSkipVerify = true
		cfg.VerifyPeerCertificate = func([][]byte, [][]*x509.Certificate) error { return nil }
		cfg.VerifyConnection = func(tls.ConnectionState) error { return nil }
	}

	configureSNI(cfg, opt.ServerName, !opt.EnableSNI, dialHost)

	if len(opt.ALPN) > 0 {
		cfg.NextProtos = append([]string{}, opt.ALPN...)
	}

	return cfg, nil
}

// configureSNI sets cfg.ServerName following the priority: explicit
// customSNI, else fallbackHost, unless disableSNI is set.
func configureSNI(cfg *tls.Config, customSNI string, disableSNI bool, fallbackHost string) {
	if disableSNI {
		return
	}

	if customSNI != "" {
		cfg.ServerName = customSNI

		return
	}

	cfg.ServerName = fallbackHost
}

// BuildServer builds a *tls.Config for an accepting transport, loading
// the certificate chain and key from opt.Certificate.
func BuildServer(opt ServerOption) (*tls.Config, error) {
	certPEM, keyPEM, err := loadCertMaterial(opt.Certificate)
	if err != nil {
		return nil, err
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, &InvalidCertError{Err: err}
	}

	cfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientAuth:   tls.NoClientCert,
	}

	if len(opt.ALPN) > 0 {
		cfg.NextProtos = append([]string{}, opt.ALPN...)
	}

	return cfg, nil
}

func loadCertMaterial(opt CertOption) (certPEM, keyPEM []byte, err error) {
	switch {
	case opt.Text != nil:
		return loadCertText(*opt.Text)
	case opt.File != nil:
		return loadCertFile(*opt.File)
	default:
		return nil, nil, &InvalidCertError{Err: fmt.Errorf("no certificate variant set")}
	}
}
