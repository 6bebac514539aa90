package keysource

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSConfig holds the PEM files for connecting to etcd over TLS.
type TLSConfig struct {
	// Enabled turns TLS on. If false, all other fields are ignored.
	Enabled bool `yaml:"enabled" json:"enabled"`

	// CertFile and KeyFile are the client certificate pair. Set both for
	// mutual TLS or neither for server-only verification.
	CertFile string `yaml:"cert_file" json:"cert_file"`
	KeyFile  string `yaml:"key_file" json:"key_file"`

	// CAFile verifies the server certificate. Empty uses the system pool.
	CAFile string `yaml:"ca_file" json:"ca_file"`
}

// tlsInfo is a checked TLSConfig.
type tlsInfo struct {
	certFile string
	keyFile  string
	caFile   string
}

func newTLSInfo(cfg *TLSConfig) (*tlsInfo, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}
	if (cfg.CertFile == "") != (cfg.KeyFile == "") {
		return nil, fmt.Errorf("TLS cert file and key file must be set together")
	}
	return &tlsInfo{certFile: cfg.CertFile, keyFile: cfg.KeyFile, caFile: cfg.CAFile}, nil
}

// ClientConfig loads the files into a tls.Config.
func (info *tlsInfo) ClientConfig() (*tls.Config, error) {
	if info == nil {
		return nil, nil
	}

	cfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if info.certFile != "" {
		cert, err := tls.LoadX509KeyPair(info.certFile, info.keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	if info.caFile != "" {
		caData, err := os.ReadFile(info.caFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caData) {
			return nil, fmt.Errorf("failed to parse CA certificate")
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}
