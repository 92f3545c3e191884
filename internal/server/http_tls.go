package server

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"

	"hiresight/internal/observability"
)

// configureTLS sets up TLS on the HTTP server based on the configured mode
func (s *Server) configureTLS(httpServer *http.Server, om *observability.ObservabilityManager) error {
	addr := httpServer.Addr

	switch s.TLSConfig.Mode {
	case "server":
		fmt.Printf("Starting server with HTTPS (server-only TLS) on https://%s\n", addr)
		fmt.Println("TLS mode: Server-only (no client certificates required)")
	case "mutual":
		fmt.Printf("Starting server with mTLS (mutual TLS) on https://%s\n", addr)
		fmt.Println("TLS mode: Mutual (client certificates required)")
	case "disabled", "":
		fmt.Printf("Starting server on http://%s\n", addr)
		fmt.Println("TLS mode: Disabled (HTTP only)")
		return nil
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled', 'server', or 'mutual')", s.TLSConfig.Mode)
	}

	tlsConfig, err := s.buildTLSConfig(om)
	if err != nil {
		return fmt.Errorf("failed to set up TLS: %w", err)
	}
	httpServer.TLSConfig = tlsConfig
	return nil
}

// buildTLSConfig creates a tls.Config from the server TLS settings
func (s *Server) buildTLSConfig(om *observability.ObservabilityManager) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if err := s.configureTLSCertificates(tlsConfig, om); err != nil {
		return nil, err
	}
	if err := s.configureTLSVersion(tlsConfig); err != nil {
		return nil, err
	}
	if err := s.configureCipherSuites(tlsConfig); err != nil {
		return nil, err
	}
	if err := s.configureClientAuthentication(tlsConfig); err != nil {
		return nil, err
	}
	s.configureDevelopmentOptions(tlsConfig)

	return tlsConfig, nil
}

// configureTLSCertificates wires certificate loading. With auto-reload
// enabled certificates are served through the reloader so rotations take
// effect without a restart.
func (s *Server) configureTLSCertificates(tlsConfig *tls.Config, om *observability.ObservabilityManager) error {
	if s.TLSConfig.AutoReload.Enabled {
		reloader := NewCertReloader(&s.TLSConfig, om, s.Logger)
		if err := reloader.Start(); err != nil {
			return fmt.Errorf("failed to start certificate reloader: %w", err)
		}
		s.CertReloader = reloader

		tlsConfig.GetCertificate = reloader.GetServerCertificate
		if s.TLSConfig.Mode == "mutual" {
			tlsConfig.ClientCAs = reloader.GetCACertPool()
		}
		return nil
	}

	// Static configuration loads certificates once at startup
	cert, err := s.loadStaticServerCertificate()
	if err != nil {
		return err
	}
	tlsConfig.Certificates = []tls.Certificate{cert}

	if s.TLSConfig.Mode == "mutual" {
		caPool, err := s.loadStaticCACertificatePool()
		if err != nil {
			return err
		}
		tlsConfig.ClientCAs = caPool
	}
	return nil
}

// loadStaticServerCertificate prefers inline PEM content over file paths
func (s *Server) loadStaticServerCertificate() (tls.Certificate, error) {
	if s.TLSConfig.CertContent != "" && s.TLSConfig.KeyContent != "" {
		cert, err := tls.X509KeyPair([]byte(s.TLSConfig.CertContent), []byte(s.TLSConfig.KeyContent))
		if err != nil {
			return tls.Certificate{}, fmt.Errorf("failed to parse certificate content: %w", err)
		}
		return cert, nil
	}

	cert, err := tls.LoadX509KeyPair(s.TLSConfig.CertFile, s.TLSConfig.KeyFile)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to load certificate files: %w", err)
	}
	return cert, nil
}

// loadStaticCACertificatePool loads the CA used for client cert verification
func (s *Server) loadStaticCACertificatePool() (*x509.CertPool, error) {
	var caData []byte

	if s.TLSConfig.CAContent != "" {
		caData = []byte(s.TLSConfig.CAContent)
	} else {
		data, err := os.ReadFile(s.TLSConfig.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}
		caData = data
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caData) {
		return nil, fmt.Errorf("failed to parse CA certificate PEM")
	}
	return pool, nil
}

// configureTLSVersion applies the configured minimum TLS version
func (s *Server) configureTLSVersion(tlsConfig *tls.Config) error {
	switch s.TLSConfig.MinVersion {
	case "", "1.2":
		tlsConfig.MinVersion = tls.VersionTLS12
	case "1.3":
		tlsConfig.MinVersion = tls.VersionTLS13
	default:
		return fmt.Errorf("unsupported minimum TLS version: %s", s.TLSConfig.MinVersion)
	}
	return nil
}

// configureCipherSuites applies the configured cipher suite list
func (s *Server) configureCipherSuites(tlsConfig *tls.Config) error {
	if len(s.TLSConfig.CipherSuites) == 0 {
		return nil
	}

	var suites []uint16
	for _, name := range s.TLSConfig.CipherSuites {
		id, err := getCipherSuiteID(name)
		if err != nil {
			return err
		}
		suites = append(suites, id)
	}
	tlsConfig.CipherSuites = suites
	return nil
}

// getCipherSuiteID maps cipher suite names to their TLS constants
func getCipherSuiteID(name string) (uint16, error) {
	cipherSuites := map[string]uint16{
		"TLS_AES_128_GCM_SHA256":                        tls.TLS_AES_128_GCM_SHA256,
		"TLS_AES_256_GCM_SHA384":                        tls.TLS_AES_256_GCM_SHA384,
		"TLS_CHACHA20_POLY1305_SHA256":                  tls.TLS_CHACHA20_POLY1305_SHA256,
		"TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256":         tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
		"TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384":         tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
		"TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256":   tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,
		"TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256":       tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
		"TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384":       tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
		"TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256": tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
	}

	id, ok := cipherSuites[name]
	if !ok {
		return 0, fmt.Errorf("unsupported cipher suite: %s", name)
	}
	return id, nil
}

// configureClientAuthentication sets the client cert policy for mutual TLS
func (s *Server) configureClientAuthentication(tlsConfig *tls.Config) error {
	if s.TLSConfig.Mode != "mutual" {
		tlsConfig.ClientAuth = tls.NoClientCert
		return nil
	}
	tlsConfig.ClientAuth = s.getClientAuthPolicy()
	return nil
}

// getClientAuthPolicy maps the configured policy string to a tls.ClientAuthType
func (s *Server) getClientAuthPolicy() tls.ClientAuthType {
	switch s.TLSConfig.ClientAuthPolicy {
	case "request":
		return tls.RequestClientCert
	case "require":
		return tls.RequireAnyClientCert
	case "verify":
		return tls.VerifyClientCertIfGiven
	default:
		return tls.RequireAndVerifyClientCert
	}
}

// configureDevelopmentOptions applies development-only TLS settings
func (s *Server) configureDevelopmentOptions(tlsConfig *tls.Config) {
	if s.TLSConfig.InsecureSkipVerify {
		tlsConfig.InsecureSkipVerify = true
		s.Logger.Warn("TLS certificate verification disabled, do not use in production")
	}
	if s.TLSConfig.ServerName != "" {
		tlsConfig.ServerName = s.TLSConfig.ServerName
	}
}
