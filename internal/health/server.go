package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/walletlabs/zscore/internal/core/config"
	"github.com/walletlabs/zscore/internal/core/domain"
	"github.com/walletlabs/zscore/internal/infra/storage"
	"github.com/walletlabs/zscore/internal/processing"
)

// StatsProvider exposes a consistent snapshot of the running statistics.
type StatsProvider interface {
	Snapshot() processing.Snapshot
}

// Checks holds the dependency probes the health endpoint aggregates.
type Checks struct {
	// Kafka reports whether the stream client connections are usable.
	Kafka func() bool
	// Database pings the metadata store; nil when no store is configured.
	Database func(ctx context.Context) error
	// Cache pings the token cache; nil when no cache is configured.
	Cache func(ctx context.Context) error
}

// Metadata holds the read-only store views served over HTTP. Either field
// may be nil when no metadata store is configured.
type Metadata struct {
	Tokens     storage.TokenRepository
	Thresholds storage.ThresholdRepository
}

// Server provides the HTTP endpoints of the service.
type Server struct {
	cfg    *config.AppConfig
	stats  StatsProvider
	scorer *processing.Processor
	checks Checks
	meta   Metadata
	server *http.Server
}

// NewServer wires the HTTP surface.
func NewServer(cfg *config.AppConfig, stats StatsProvider, scorer *processing.Processor, checks Checks, meta Metadata) *Server {
	mux := http.NewServeMux()
	s := &Server{
		cfg:    cfg,
		stats:  stats,
		scorer: scorer,
		checks: checks,
		meta:   meta,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: mux,
		},
	}

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/api/v1/health", s.handleHealth)
	mux.HandleFunc("/api/v1/stats", s.handleStats)
	mux.HandleFunc("/api/v1/process-wallet", s.handleProcessWallet)
	mux.HandleFunc("/api/v1/config", s.handleConfig)
	mux.HandleFunc("/api/v1/tokens", s.handleTokens)
	mux.HandleFunc("/api/v1/thresholds", s.handleThresholds)
	mux.Handle("/metrics", promhttp.Handler())

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"service":     s.cfg.App.Name,
		"version":     s.cfg.App.Version,
		"environment": s.cfg.App.Environment,
		"endpoints": map[string]string{
			"health":     "/api/v1/health",
			"stats":      "/api/v1/stats",
			"tokens":     "/api/v1/tokens",
			"thresholds": "/api/v1/thresholds",
			"metrics":    "/metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Optional dependencies report healthy when absent; only a configured
	// probe that fails flips the overall status.
	report := Report{
		Timestamp:      time.Now().Unix(),
		Version:        s.cfg.App.Version,
		Environment:    s.cfg.App.Environment,
		KafkaStatus:    StatusUnhealthy,
		DatabaseStatus: StatusHealthy,
		CacheStatus:    StatusHealthy,
	}

	if s.checks.Kafka != nil && s.checks.Kafka() {
		report.KafkaStatus = StatusHealthy
	}
	if s.checks.Database != nil && s.checks.Database(ctx) != nil {
		report.DatabaseStatus = StatusUnhealthy
	}
	if s.checks.Cache != nil && s.checks.Cache(ctx) != nil {
		report.CacheStatus = StatusUnhealthy
	}

	report.Status = StatusHealthy
	code := http.StatusOK
	if report.KafkaStatus != StatusHealthy || report.DatabaseStatus != StatusHealthy {
		report.Status = StatusUnhealthy
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, report)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

// handleProcessWallet scores one wallet synchronously, bypassing the
// stream. Errors map to HTTP responses here, not to queued failure records.
func (s *Server) handleProcessWallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in domain.WalletTransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return
	}

	record, err := s.scorer.ScoreDirect(&in)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.App.IsDevelopment() {
		writeError(w, http.StatusForbidden, "config endpoint disabled outside development")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"app":    s.cfg.App,
		"server": s.cfg.Server,
		"kafka": map[string]string{
			"brokers":        s.cfg.Kafka.Brokers,
			"consumer_group": s.cfg.Kafka.ConsumerGroup,
			"input_topic":    s.cfg.Kafka.InputTopic,
			"success_topic":  s.cfg.Kafka.SuccessTopic,
			"failure_topic":  s.cfg.Kafka.FailureTopic,
		},
	})
}

// handleTokens serves token metadata: one record for ?address=, the full
// listing otherwise.
func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	if s.meta.Tokens == nil {
		writeError(w, http.StatusServiceUnavailable, "metadata store not configured")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if addr := r.URL.Query().Get("address"); addr != "" {
		token, err := s.meta.Tokens.Get(ctx, addr)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if token == nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("token %s not found", addr))
			return
		}
		writeJSON(w, http.StatusOK, token)
		return
	}

	tokens, err := s.meta.Tokens.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

// handleThresholds serves protocol threshold tables: one record for
// ?protocol=, the full listing otherwise.
func (s *Server) handleThresholds(w http.ResponseWriter, r *http.Request) {
	if s.meta.Thresholds == nil {
		writeError(w, http.StatusServiceUnavailable, "metadata store not configured")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if protocol := r.URL.Query().Get("protocol"); protocol != "" {
		th, err := s.meta.Thresholds.Get(ctx, protocol)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if th == nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("thresholds for %s not found", protocol))
			return
		}
		writeJSON(w, http.StatusOK, th)
		return
	}

	ths, err := s.meta.Thresholds.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ths)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
