// ABOUTME: TLS configuration builder for the update endpoint listener.
// ABOUTME: Supports server-only TLS and mutual TLS (mTLS) with CA verification.

package dyndns53

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// tlsSettings names the PEM files the listener is built from. ca is optional;
// when present, clients must present a certificate signed by it.
type tlsSettings struct {
	cert string
	key  string
	ca   string
}

// buildTLSConfig creates a *tls.Config from the configured PEM paths.
// When a CA is provided, mTLS with RequireAndVerifyClientCert is enabled.
func buildTLSConfig(cfg *tlsSettings) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(cfg.cert, cfg.key)
	if err != nil {
		return nil, fmt.Errorf("loading TLS keypair: %w", err)
	}

	tlsCfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	if cfg.ca != "" {
		caPEM, err := os.ReadFile(cfg.ca)
		if err != nil {
			return nil, fmt.Errorf("reading CA file %s: %w", cfg.ca, err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caPEM) {
			return nil, fmt.Errorf("CA file %s contains no valid certificates", cfg.ca)
		}
		tlsCfg.ClientCAs = pool
		tlsCfg.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return tlsCfg, nil
}
