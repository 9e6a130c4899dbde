package tlscfg

import (
	"encoding/pem"
	"fmt"
	"os"
	"strings"
)

var keyBlockTypes = map[string]bool{
	"PRIVATE KEY":     true,
	"RSA PRIVATE KEY": true,
	"EC PRIVATE KEY":  true,
}

func loadCertFile(opt CertFileOption) (certPEM, keyPEM []byte, err error) {
	certPEM, err = os.ReadFile(opt.Cert)
	if err != nil {
		return nil, nil, &InvalidCertError{Err: err}
	}

	keyPEM, err = os.ReadFile(opt.Key)
	if err != nil {
		return nil, nil, &InvalidKeyError{Err: err}
	}

	if err = requireKeyBlock(keyPEM); err != nil {
		return nil, nil, err
	}

	return certPEM, keyPEM, nil
}

func loadCertText(opt CertTextOption) (certPEM, keyPEM []byte, err error) {
	certPEM = []byte(strings.Join(opt.Certs, "\n"))
	keyPEM = []byte(opt.Key)

	if err = requireKeyBlock(keyPEM); err != nil {
		return nil, nil, err
	}

	return certPEM, keyPEM, nil
}

// requireKeyBlock fails with InvalidKeyError("not found") if keyPEM has
// no recognizable private-key PEM block, matching the source's
// first-PEM-private-key-or-fail contract.
func requireKeyBlock(keyPEM []byte) error {
	rest := keyPEM
	for {
		var block *pem.Block

		block, rest = pem.Decode(rest)
		if block == nil {
			return &InvalidKeyError{Err: fmt.Errorf("not found")}
		}

		if keyBlockTypes[block.Type] {
			return nil
		}
	}
}
