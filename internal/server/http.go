package server

import (
	"time"

	"hiresight/internal/ai"
	"hiresight/internal/analytics"
	"hiresight/internal/analyzer"
	"hiresight/internal/cache"
	"hiresight/internal/config"
	hiresightErrors "hiresight/internal/errors"
	"hiresight/internal/types"
)

// AnalyzeRequest is the request body for the analyze endpoint.
type AnalyzeRequest struct {
	Posting types.JobPosting `json:"posting"`
}

// BatchRequest is the request body for the batch endpoint.
type BatchRequest struct {
	Postings []types.JobPosting `json:"postings"`
}

// GenerateRequest is the request body for the generate endpoint.
type GenerateRequest struct {
	Analysis  *types.AggregatedAnalysis `json:"analysis,omitempty"`
	Profile   types.CompanyProfile      `json:"profile"`
	Goals     types.HiringGoals         `json:"goals"`
	Process   types.HiringProcessConfig `json:"process"`
	StartDate string                    `json:"start_date,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Certificate management
	CertReloader *CertReloader

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Analysis and generation dependencies
	Analyzer  *analyzer.Analyzer
	Cache     *cache.Cache
	Analytics *analytics.Manager
	Tasks     *TaskStore

	// Logger
	Logger *hiresightErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
// (Refactored to reduce long parameter list in NewServer)
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *hiresightErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}

// initializeDependencies builds the analyzer, cache, analytics manager,
// and task store from the application configuration.
func (s *Server) initializeDependencies() error {
	var backend analyzer.EnhancedBackend
	if s.AppConfig.Analysis.Enhanced.Enabled {
		extractCfg := s.AppConfig.GetExtractConfig()
		service, err := ai.NewService(&extractCfg, "extract", s.Logger)
		if err != nil {
			s.Logger.Warn("AI backend unavailable, falling back to rule-based extraction", "error", err.Error())
		} else {
			backend = service.Backend
		}
	}

	jobAnalyzer, err := analyzer.New(analyzer.Config{
		EnhancedEnabled:     s.AppConfig.Analysis.Enhanced.Enabled,
		MinBatchSize:        s.AppConfig.Analysis.MinBatchSize,
		ConfidenceThreshold: s.AppConfig.Analysis.ConfidenceThreshold,
		TaxonomyFile:        s.AppConfig.Analysis.TaxonomyFile,
	}, backend, s.Logger)
	if err != nil {
		return err
	}

	tracker, err := analytics.New(s.AppConfig.Analytics, s.Logger)
	if err != nil {
		return err
	}

	s.Analyzer = jobAnalyzer
	s.Cache = cache.New(s.AppConfig.Cache, s.Logger)
	s.Analytics = tracker
	s.Tasks = NewTaskStore(s.Logger)
	return nil
}
