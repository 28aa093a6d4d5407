// Package server exposes an Engine over HTTP: single-pair and batch
// distance computation plus a health probe, built on a functional-option
// handler and a semaphore-bounded worker pool to cap concurrent compute
// calls.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/example/go-tsdist-gpu/internal/batch"
	"github.com/example/go-tsdist-gpu/internal/config"
	"github.com/example/go-tsdist-gpu/internal/measure"
	"github.com/example/go-tsdist-gpu/internal/tsdist"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// DistanceComputer is the engine surface the HTTP handler depends on.
type DistanceComputer interface {
	Run(ctx context.Context, m measure.Measure, a, b []float32) (float32, error)
	RunBatch(ctx context.Context, m measure.Measure, as, bs [][]float32) (batch.Result, error)
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxSeriesLen   int
	workers        int
	requestTimeout time.Duration
	logger         *slog.Logger
}

func defaultOptions() options {
	return options{
		maxSeriesLen:   1 << 16,
		workers:        4,
		requestTimeout: 60 * time.Second,
		logger:         slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxSeriesLen sets the maximum accepted series length per request.
func WithMaxSeriesLen(n int) Option {
	return func(o *options) { o.maxSeriesLen = n }
}

// WithWorkers sets the maximum number of concurrent compute calls.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithRequestTimeout sets the per-request compute deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

type handler struct {
	engine   DistanceComputer
	defaults config.ComputeConfig
	opts     options
	sem      chan struct{}
	log      *slog.Logger
}

// NewHandler returns an http.Handler serving /health, POST /distance, and
// POST /distance/batch against engine.
func NewHandler(engine DistanceComputer, defaults config.ComputeConfig, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		engine:   engine,
		defaults: defaults,
		opts:     opts,
		log:      opts.logger,
	}
	if opts.workers > 0 {
		h.sem = make(chan struct{}, opts.workers)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/distance", h.handleDistance)
	mux.HandleFunc("/distance/batch", h.handleDistanceBatch)

	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

// measureRequest carries the fields needed to build any measure.Measure;
// unset numeric fields fall back to the server's configured compute
// defaults.
type measureRequest struct {
	Measure    string    `json:"measure"`
	GapPenalty *float64  `json:"gap_penalty,omitempty"`
	Epsilon    *float64  `json:"epsilon,omitempty"`
	Stiffness  *float64  `json:"stiffness,omitempty"`
	Penalty    *float64  `json:"penalty,omitempty"`
	ADTWWeight *float64  `json:"adtw_weight,omitempty"`
	Weights    []float32 `json:"weights,omitempty"`
}

func (h *handler) buildMeasure(req measureRequest) (measure.Measure, error) {
	d := h.defaults
	get := func(p *float64, fallback float64) float32 {
		if p != nil {
			return float32(*p)
		}
		return float32(fallback)
	}

	switch strings.ToLower(strings.TrimSpace(req.Measure)) {
	case "dtw":
		return measure.DTW{}, nil
	case "wdtw":
		return measure.WDTW{Weights: req.Weights}, nil
	case "adtw":
		return measure.ADTW{W: get(req.ADTWWeight, d.ADTWWeight)}, nil
	case "erp":
		return measure.ERP{GapPenalty: get(req.GapPenalty, d.GapPenalty)}, nil
	case "lcss":
		return measure.LCSS{Epsilon: get(req.Epsilon, d.Epsilon)}, nil
	case "msm":
		return measure.MSM{}, nil
	case "twe":
		return measure.TWE{Stiffness: get(req.Stiffness, d.Stiffness), Penalty: get(req.Penalty, d.Penalty)}, nil
	default:
		return nil, fmt.Errorf("unknown measure %q (want dtw|wdtw|adtw|erp|lcss|msm|twe)", req.Measure)
	}
}

type distanceRequest struct {
	measureRequest
	A []float32 `json:"a"`
	B []float32 `json:"b"`
}

type distanceResponse struct {
	Distance float32 `json:"distance"`
}

func (h *handler) handleDistance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req distanceRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.checkSeriesLen(len(req.A), len(req.B)); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}

	m, err := h.buildMeasure(req.measureRequest)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.acquireWorker(r.Context(), w) {
		return
	}
	if h.sem != nil {
		defer func() { <-h.sem }()
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.requestTimeout)
	defer cancel()

	start := time.Now()
	dist, err := h.engine.Run(ctx, m, req.A, req.B)
	durationMS := time.Since(start).Milliseconds()

	if err != nil {
		h.handleComputeError(w, r, err, durationMS)
		return
	}

	h.log.InfoContext(r.Context(), "distance computed",
		slog.String("measure", req.Measure),
		slog.Int("a_len", len(req.A)),
		slog.Int("b_len", len(req.B)),
		slog.Int64("duration_ms", durationMS),
	)

	writeJSON(w, http.StatusOK, distanceResponse{Distance: dist})
}

type distanceBatchRequest struct {
	measureRequest
	As [][]float32 `json:"as"`
	Bs [][]float32 `json:"bs"`
}

type distanceBatchResponse struct {
	ACount int       `json:"a_count"`
	BCount int       `json:"b_count"`
	Values []float32 `json:"values"`
}

func (h *handler) handleDistanceBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req distanceBatchRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	maxLen := 0
	for _, s := range req.As {
		if len(s) > maxLen {
			maxLen = len(s)
		}
	}
	for _, s := range req.Bs {
		if len(s) > maxLen {
			maxLen = len(s)
		}
	}
	if err := h.checkSeriesLen(maxLen, 0); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}

	m, err := h.buildMeasure(req.measureRequest)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.acquireWorker(r.Context(), w) {
		return
	}
	if h.sem != nil {
		defer func() { <-h.sem }()
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.requestTimeout)
	defer cancel()

	start := time.Now()
	res, err := h.engine.RunBatch(ctx, m, req.As, req.Bs)
	durationMS := time.Since(start).Milliseconds()

	if err != nil {
		h.handleComputeError(w, r, err, durationMS)
		return
	}

	h.log.InfoContext(r.Context(), "batch distance computed",
		slog.String("measure", req.Measure),
		slog.Int("a_count", len(req.As)),
		slog.Int("b_count", len(req.Bs)),
		slog.Int64("duration_ms", durationMS),
	)

	writeJSON(w, http.StatusOK, distanceBatchResponse{
		ACount: res.ACount,
		BCount: res.BCount,
		Values: res.Values,
	})
}

func (h *handler) checkSeriesLen(a, b int) error {
	if h.opts.maxSeriesLen <= 0 {
		return nil
	}
	if a > h.opts.maxSeriesLen || b > h.opts.maxSeriesLen {
		return fmt.Errorf("series exceeds maximum length of %d samples", h.opts.maxSeriesLen)
	}
	return nil
}

func (h *handler) handleComputeError(w http.ResponseWriter, r *http.Request, err error, durationMS int64) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		h.log.WarnContext(r.Context(), "compute timed out",
			slog.Int64("duration_ms", durationMS), slog.String("error", err.Error()))
		writeError(w, http.StatusGatewayTimeout, "compute timed out")
		return
	}

	if errors.Is(err, tsdist.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.log.ErrorContext(r.Context(), "compute failed",
		slog.Int64("duration_ms", durationMS), slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, err.Error())
}

func decodeRequest(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// acquireWorker tries to acquire a worker slot from the semaphore. Returns
// true on success. On failure (context cancelled) it writes an HTTP error
// and returns false. When sem is nil (no throttling) it returns true
// immediately.
func (h *handler) acquireWorker(ctx context.Context, w http.ResponseWriter) bool {
	if h.sem == nil {
		return true
	}

	select {
	case h.sem <- struct{}{}:
		return true
	default:
		h.log.Info("request queued for worker slot")

		select {
		case h.sem <- struct{}{}:
			return true
		case <-ctx.Done():
			writeError(w, http.StatusServiceUnavailable, "request cancelled while waiting for worker")
			return false
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server — wires handler into net/http.Server with graceful shutdown
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful
// shutdown.
type Server struct {
	cfg             config.Config
	engine          *tsdist.Engine
	shutdownTimeout time.Duration
}

func New(cfg config.Config, engine *tsdist.Engine) *Server {
	return &Server{
		cfg:             cfg,
		engine:          engine,
		shutdownTimeout: 30 * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

func (s *Server) Start(ctx context.Context) error {
	h := NewHandler(s.engine, s.cfg.Compute,
		WithWorkers(s.cfg.Server.Workers),
		WithMaxSeriesLen(s.cfg.Server.MaxSeriesLen),
		WithRequestTimeout(time.Duration(s.cfg.Server.RequestTimeout)*time.Second),
	)

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}

		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("http listen: %w", err)
	}
}

// ProbeHTTP checks that a server at addr answers /health with 200 OK.
func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}

	return nil
}
