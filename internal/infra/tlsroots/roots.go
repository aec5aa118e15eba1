package tlsroots

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// ErrNoCerts is returned when a CA file holds no certificate block.
var ErrNoCerts = errors.New("tlsroots: no certificates in CA file")

// ClientConfig returns the TLS config used to reach the backend: the system
// roots, extended with every certificate of caFile when it is set.
// insecure disables verification and is meant for development backends.
func ClientConfig(caFile string, insecure bool) (*tls.Config, error) {
	roots, err := x509.SystemCertPool()
	if err != nil {
		roots = x509.NewCertPool()
	}
	if caFile != "" {
		data, err := os.ReadFile(caFile)
		if err != nil {
			return nil, fmt.Errorf("tlsroots: read %s: %w", caFile, err)
		}
		n, err := appendPEM(roots, data)
		if err != nil {
			return nil, fmt.Errorf("tlsroots: %s: %w", caFile, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoCerts, caFile)
		}
	}
	return &tls.Config{
		RootCAs:            roots,
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: insecure, //nolint:gosec // opt-in via tls.insecure_skip_verify
	}, nil
}

// appendPEM adds the CERTIFICATE blocks of data to pool and reports how
// many were added. Other block types are skipped; a malformed certificate
// is an error so a broken CA bundle is not silently ignored.
func appendPEM(pool *x509.CertPool, data []byte) (int, error) {
	var n int
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			return n, nil
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return n, fmt.Errorf("parse certificate %d: %w", n+1, err)
		}
		pool.AddCert(cert)
		n++
	}
}
