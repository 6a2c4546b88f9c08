package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/net/netutil"

	"github.com/roadwatch/triage/internal/cache"
	"github.com/roadwatch/triage/internal/engine"
	"github.com/roadwatch/triage/internal/model"
	"github.com/roadwatch/triage/internal/normalize"
	"github.com/roadwatch/triage/internal/worker"
)

// Server exposes the analysis engine over HTTP. The engine itself is pure,
// so the server adds only boundary concerns: decoding, envelopes, CORS,
// rate limiting, response memoisation, and optional static serving for the
// admin frontend build.
type Server struct {
	engine  *engine.Engine
	cache   cache.Cache
	limiter *worker.Limiter
	config  *model.Config
}

// New creates a server around the given engine.
func New(eng *engine.Engine, cfg *model.Config) *Server {
	var responseCache cache.Cache
	if cfg.Cache.Enabled {
		responseCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	var limiter *worker.Limiter
	if cfg.Server.RequestsPerSec > 0 {
		limiter = worker.NewLimiter(cfg.Server.RequestsPerSec, cfg.Server.Burst)
	}

	return &Server{
		engine:  eng,
		cache:   responseCache,
		limiter: limiter,
		config:  cfg,
	}
}

// Handler builds the route table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ai-analysis", s.handleAnalysis)
	if s.config.Server.StaticDir != "" {
		mux.HandleFunc("/", s.handleStatic)
	}

	var handler http.Handler = mux
	if s.limiter != nil {
		handler = s.rateLimitMiddleware(handler)
	}
	return corsMiddleware(handler)
}

// ListenAndServe starts the server with a capped concurrent connection
// count.
func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.config.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	if limit := s.config.Server.MaxConnections; limit > 0 {
		listener = netutil.LimitListener(listener, limit)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.Serve(listener)
}

// analysisRequest is the expected request body shape.
type analysisRequest struct {
	Incident json.RawMessage `json:"incident"`
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"engine": s.engine.Status(),
	})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
			Status: "error",
			Error:  "Method not allowed.",
		})
		return
	}

	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || missingIncident(req.Incident) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Status: "error",
			Error:  "Request body must include an 'incident' object.",
		})
		return
	}

	key := cache.Key(req.Incident)
	if s.cache != nil {
		if cached, found := s.cache.Get(key); found {
			writeRawJSON(w, http.StatusOK, cached)
			return
		}
	}

	var payload any
	if err := json.Unmarshal(req.Incident, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Status: "error",
			Error:  "Request body must include an 'incident' object.",
		})
		return
	}

	analysis, err := s.engine.Analyse(payload)
	if err != nil {
		if errors.Is(err, normalize.ErrInvalidPayload) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Status: "error",
				Error:  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Status: "error",
			Error:  "Failed to analyse incident.",
			Detail: err.Error(),
		})
		return
	}

	body, err := json.Marshal(map[string]any{
		"status":   "success",
		"analysis": analysis,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Status: "error",
			Error:  "Failed to analyse incident.",
			Detail: err.Error(),
		})
		return
	}

	if s.cache != nil {
		_ = s.cache.Set(key, body, s.config.Cache.TTL)
	}
	writeRawJSON(w, http.StatusOK, body)
}

// handleStatic serves the frontend build, falling back to index.html for
// client-side routes.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	dir := s.config.Server.StaticDir
	path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}
	http.ServeFile(w, r, filepath.Join(dir, "index.html"))
}

// missingIncident treats an absent or JSON-null incident as missing; any
// other value is passed through so the engine can reject bad shapes with
// its own validation message.
func missingIncident(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
