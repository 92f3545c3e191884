package server

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"hiresight/internal/config"
	hiresightErrors "hiresight/internal/errors"
	"hiresight/internal/observability"

	"github.com/fsnotify/fsnotify"
)

// ReloadCallback is invoked after each reload attempt.
type ReloadCallback func(success bool, err error)

// CertificateMetrics tracks reload outcomes for the stats endpoint.
type CertificateMetrics struct {
	ReloadCount        int64     `json:"reload_count"`
	ReloadSuccessCount int64     `json:"reload_success_count"`
	ReloadFailureCount int64     `json:"reload_failure_count"`
	LastReloadTime     time.Time `json:"last_reload_time"`
	LastReloadSuccess  bool      `json:"last_reload_success"`
	LastReloadError    string    `json:"last_reload_error,omitempty"`
}

// CertReloader serves TLS certificates and hot-reloads them when the
// underlying PEM files change. Content-based certificates are loaded
// once and never watched.
type CertReloader struct {
	mu        sync.RWMutex
	tlsConfig *config.TLSConfig

	serverCert *tls.Certificate
	caPool     *x509.CertPool
	expiry     time.Time

	metrics   CertificateMetrics
	callbacks []ReloadCallback

	watcher       *fsnotify.Watcher
	lastModTime   map[string]time.Time
	debounceTimer *time.Timer
	reloadChan    chan struct{}
	stopChan      chan struct{}
	running       bool

	om     *observability.ObservabilityManager
	logger *hiresightErrors.Logger
}

// NewCertReloader creates a reloader for the given TLS configuration.
func NewCertReloader(tlsConfig *config.TLSConfig, om *observability.ObservabilityManager, logger *hiresightErrors.Logger) *CertReloader {
	return &CertReloader{
		tlsConfig:   tlsConfig,
		lastModTime: make(map[string]time.Time),
		reloadChan:  make(chan struct{}, 1),
		stopChan:    make(chan struct{}),
		om:          om,
		logger:      logger,
	}
}

// Start performs the initial certificate load and, when auto-reload is
// enabled and the certificates come from files, begins watching them.
func (cr *CertReloader) Start() error {
	if err := cr.Reload(); err != nil {
		return fmt.Errorf("initial certificate load failed: %w", err)
	}

	if !cr.tlsConfig.AutoReload.Enabled {
		return nil
	}

	files := cr.watchableFiles()
	if len(files) == 0 {
		cr.logger.Info("Certificate auto-reload enabled but certificates are content-based, skipping file watch")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	cr.watcher = watcher

	for _, file := range files {
		if err := cr.addFileToWatcher(file); err != nil {
			watcher.Close()
			cr.watcher = nil
			return fmt.Errorf("failed to watch %s: %w", file, err)
		}
	}

	cr.mu.Lock()
	cr.running = true
	cr.mu.Unlock()

	go cr.watchLoop()
	cr.logger.Info("Certificate file watching started", "files", files)
	return nil
}

// Stop halts file watching. Safe to call when never started.
func (cr *CertReloader) Stop() {
	cr.mu.Lock()
	if !cr.running {
		cr.mu.Unlock()
		return
	}
	cr.running = false
	if cr.debounceTimer != nil {
		cr.debounceTimer.Stop()
	}
	cr.mu.Unlock()

	close(cr.stopChan)
	if cr.watcher != nil {
		cr.watcher.Close()
	}
	cr.logger.Info("Certificate file watching stopped")
}

// IsRunning reports whether the file watcher is active.
func (cr *CertReloader) IsRunning() bool {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return cr.running
}

// WatchedFiles returns the certificate files under watch.
func (cr *CertReloader) WatchedFiles() []string {
	if !cr.IsRunning() {
		return nil
	}
	return cr.watchableFiles()
}

// GetServerCertificate implements tls.Config.GetCertificate.
func (cr *CertReloader) GetServerCertificate(hello *tls.ClientHelloInfo) (*tls.Certificate, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if cr.serverCert == nil {
		return nil, fmt.Errorf("no server certificate loaded")
	}
	return cr.serverCert, nil
}

// GetCACertPool returns the current CA pool for client verification.
func (cr *CertReloader) GetCACertPool() *x509.CertPool {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return cr.caPool
}

// AddReloadCallback registers a callback invoked after each reload.
func (cr *CertReloader) AddReloadCallback(cb ReloadCallback) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.callbacks = append(cr.callbacks, cb)
}

// GetMetrics returns a snapshot of the reload metrics.
func (cr *CertReloader) GetMetrics() CertificateMetrics {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return cr.metrics
}

// CheckExpiry returns the time remaining until the server certificate
// expires.
func (cr *CertReloader) CheckExpiry() (time.Duration, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if cr.serverCert == nil {
		return 0, fmt.Errorf("no server certificate loaded")
	}
	if cr.expiry.IsZero() {
		return 0, fmt.Errorf("certificate expiry unknown")
	}
	return time.Until(cr.expiry), nil
}

// Reload loads the certificates from their configured source and swaps
// them in atomically.
func (cr *CertReloader) Reload() error {
	serverCert, expiry, err := cr.loadServerCertificate()
	if err != nil {
		cr.recordReload(false, err)
		return err
	}

	var caPool *x509.CertPool
	if cr.tlsConfig.Mode == "mutual" {
		caPool, err = cr.loadCACertPool()
		if err != nil {
			cr.recordReload(false, err)
			return err
		}
	}

	cr.mu.Lock()
	cr.serverCert = serverCert
	cr.caPool = caPool
	cr.expiry = expiry
	cr.mu.Unlock()

	cr.recordReload(true, nil)
	if cr.om != nil {
		cr.om.GetMetrics().RecordCertificateExpiry(time.Until(expiry).Seconds())
	}
	cr.logger.Info("Certificates loaded", "expires_at", expiry.Format(time.RFC3339))
	return nil
}

// loadServerCertificate prefers PEM content over file paths.
func (cr *CertReloader) loadServerCertificate() (*tls.Certificate, time.Time, error) {
	var cert tls.Certificate
	var err error

	if cr.tlsConfig.CertContent != "" && cr.tlsConfig.KeyContent != "" {
		cert, err = tls.X509KeyPair([]byte(cr.tlsConfig.CertContent), []byte(cr.tlsConfig.KeyContent))
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to parse certificate content: %w", err)
		}
	} else {
		cert, err = tls.LoadX509KeyPair(cr.tlsConfig.CertFile, cr.tlsConfig.KeyFile)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to load certificate files: %w", err)
		}
	}

	expiry, err := parseCertificateExpiry(&cert)
	if err != nil {
		return nil, time.Time{}, err
	}
	return &cert, expiry, nil
}

func parseCertificateExpiry(cert *tls.Certificate) (time.Time, error) {
	if len(cert.Certificate) == 0 {
		return time.Time{}, fmt.Errorf("certificate chain is empty")
	}
	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse certificate: %w", err)
	}
	return leaf.NotAfter, nil
}

// loadCACertPool prefers PEM content over a file path.
func (cr *CertReloader) loadCACertPool() (*x509.CertPool, error) {
	var caData []byte

	if cr.tlsConfig.CAContent != "" {
		caData = []byte(cr.tlsConfig.CAContent)
	} else {
		data, err := os.ReadFile(cr.tlsConfig.CAFile)
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

func (cr *CertReloader) recordReload(success bool, err error) {
	cr.mu.Lock()
	cr.metrics.ReloadCount++
	cr.metrics.LastReloadTime = time.Now()
	cr.metrics.LastReloadSuccess = success
	if success {
		cr.metrics.ReloadSuccessCount++
		cr.metrics.LastReloadError = ""
	} else {
		cr.metrics.ReloadFailureCount++
		cr.metrics.LastReloadError = err.Error()
	}
	callbacks := make([]ReloadCallback, len(cr.callbacks))
	copy(callbacks, cr.callbacks)
	cr.mu.Unlock()

	for _, cb := range callbacks {
		cb(success, err)
	}

	if cr.om != nil {
		cr.om.GetMetrics().RecordCertificateReload(success)
	}
}

// watchableFiles returns the certificate files eligible for watching.
// Content-based certificates have no file to watch.
func (cr *CertReloader) watchableFiles() []string {
	var files []string
	if cr.tlsConfig.CertContent == "" && cr.tlsConfig.CertFile != "" {
		files = append(files, cr.tlsConfig.CertFile)
	}
	if cr.tlsConfig.KeyContent == "" && cr.tlsConfig.KeyFile != "" {
		files = append(files, cr.tlsConfig.KeyFile)
	}
	if cr.tlsConfig.Mode == "mutual" && cr.tlsConfig.CAContent == "" && cr.tlsConfig.CAFile != "" {
		files = append(files, cr.tlsConfig.CAFile)
	}
	return files
}

// addFileToWatcher watches both the file and its directory so atomic
// renames (the common certificate rotation pattern) are observed.
func (cr *CertReloader) addFileToWatcher(file string) error {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return err
	}
	cr.lastModTime[absPath] = info.ModTime()

	if err := cr.watcher.Add(absPath); err != nil {
		return err
	}
	return cr.watcher.Add(filepath.Dir(absPath))
}

func (cr *CertReloader) watchLoop() {
	for {
		select {
		case event, ok := <-cr.watcher.Events:
			if !ok {
				return
			}
			if cr.shouldProcessEvent(event) {
				cr.scheduleReload()
			}
		case err, ok := <-cr.watcher.Errors:
			if !ok {
				return
			}
			cr.logger.Warn("Certificate watcher error", "error", err.Error())
		case <-cr.reloadChan:
			cr.handleFileChange()
		case <-cr.stopChan:
			return
		}
	}
}

// shouldProcessEvent filters events down to writes, creates, and renames
// of the watched certificate files.
func (cr *CertReloader) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	for _, file := range cr.watchableFiles() {
		if filepath.Base(file) == base {
			return true
		}
	}
	return false
}

// scheduleReload debounces bursts of file events into one reload.
func (cr *CertReloader) scheduleReload() {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if cr.debounceTimer != nil {
		cr.debounceTimer.Stop()
	}

	delay := cr.tlsConfig.AutoReload.DebounceDelay
	if delay <= 0 {
		delay = time.Second
	}

	cr.debounceTimer = time.AfterFunc(delay, func() {
		select {
		case cr.reloadChan <- struct{}{}:
		default:
		}
	})
}

// handleFileChange reloads only when a watched file's modification time
// actually advanced.
func (cr *CertReloader) handleFileChange() {
	changed := false
	for _, file := range cr.watchableFiles() {
		if cr.hasFileChanged(file) {
			changed = true
		}
	}
	if !changed {
		return
	}

	cr.logger.Info("Certificate file change detected, reloading")
	if err := cr.Reload(); err != nil {
		cr.logger.LogError(err, "Certificate reload failed, keeping previous certificates")
	}
}

func (cr *CertReloader) hasFileChanged(file string) bool {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return false
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return false
	}

	cr.mu.Lock()
	defer cr.mu.Unlock()

	last, seen := cr.lastModTime[absPath]
	if !seen || info.ModTime().After(last) {
		cr.lastModTime[absPath] = info.ModTime()
		return true
	}
	return false
}
