package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/syntrade-lab/syntrade/internal/engine"
	"github.com/syntrade-lab/syntrade/internal/logger"
	"github.com/syntrade-lab/syntrade/internal/version"
	"go.uber.org/zap"
)

// Server exposes the pipeline over HTTP. Results are memoized by run
// parameters since recomputation is pure and idempotent.
type Server struct {
	router  *mux.Router
	cache   *engine.ResultCache
	logger  *logger.Logger
	metrics *Metrics
}

// NewServer wires the routes. A nil logger discards logs.
func NewServer(cache *engine.ResultCache, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	registry := prometheus.NewRegistry()

	s := &Server{
		router:  mux.NewRouter(),
		cache:   cache,
		logger:  log,
		metrics: NewMetrics(registry),
	}

	s.router.HandleFunc("/api/v1/backtest", s.handleBacktest).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("serving backtest API", zap.String("addr", addr))

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server.ListenAndServe()
}

// backtestResponse wraps the result with cache provenance.
type backtestResponse struct {
	Cached bool           `json:"cached"`
	Result *engine.Result `json:"result"`
}

func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	var run engine.SymbolRun
	if err := json.NewDecoder(r.Body).Decode(&run); err != nil {
		s.writeError(w, "backtest", http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := run.Validate(); err != nil {
		s.writeError(w, "backtest", http.StatusUnprocessableEntity, err.Error())
		return
	}

	start := time.Now()

	result, cached, err := s.cache.Get(run)
	if err != nil {
		s.logger.Error("backtest failed", zap.String("symbol", run.Symbol), zap.Error(err))
		s.writeError(w, "backtest", http.StatusInternalServerError, err.Error())

		return
	}

	if cached {
		s.metrics.CacheHitsTotal.Inc()
	} else {
		s.metrics.CacheMissTotal.Inc()
		s.metrics.RunDuration.Observe(time.Since(start).Seconds())
	}

	s.writeJSON(w, "backtest", http.StatusOK, backtestResponse{
		Cached: cached,
		Result: result,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, "healthz", http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, route string, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}

	s.metrics.RequestsTotal.WithLabelValues(route, http.StatusText(status)).Inc()
}

func (s *Server) writeError(w http.ResponseWriter, route string, status int, message string) {
	s.writeJSON(w, route, status, map[string]string{"error": message})
}
