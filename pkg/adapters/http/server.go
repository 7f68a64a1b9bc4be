// Package http serves dialogue walks over REST. Each session is a durable
// cursor plus variable snapshot in a SessionStore; a request advances the
// walk by one printable line and persists the result.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/parleykit/parley/internal/binding"
	"github.com/parleykit/parley/internal/eval"
	"github.com/parleykit/parley/internal/runtime"
	"github.com/parleykit/parley/pkg/domain"
	"github.com/parleykit/parley/pkg/observability"
	"github.com/parleykit/parley/pkg/ports"
	"github.com/parleykit/parley/pkg/state"
)

// Server exposes a dialogue resource over HTTP.
type Server struct {
	resource *domain.Resource
	store    ports.SessionStore
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *observability.Metrics
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics registers traversal collectors on the given registry and
// mounts GET /metrics.
func WithMetrics(registry *prometheus.Registry) ServerOption {
	return func(s *Server) {
		s.registry = registry
		s.metrics = observability.NewMetrics(registry)
	}
}

// NewServer creates a server over a resource and a session store.
func NewServer(res *domain.Resource, store ports.SessionStore, opts ...ServerOption) *Server {
	s := &Server{
		resource: res,
		store:    store,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Post("/sessions/{id}/next", s.nextLine)
	r.Get("/sessions/{id}", s.getSession)
	r.Delete("/sessions/{id}", s.deleteSession)
	r.Get("/titles", s.titles)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if s.registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

type nextRequest struct {
	// Key overrides the session cursor; required on the first call.
	Key string `json:"key"`
}

type nextResponse struct {
	Line     *domain.DialogueLine `json:"line"`
	Finished bool                 `json:"finished"`
}

// nextLine advances a session by one printable line. Sessions are created
// on first use; the walk runs lenient over the session's variables, so
// script writes persist without any host providers.
func (s *Server) nextLine(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var body nextRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := s.store.Load(r.Context(), sessionID)
	fresh := errors.Is(err, domain.ErrSessionNotFound)
	if fresh {
		session = domain.NewSession("")
	} else if err != nil {
		s.logger.Error("loading session", "session", sessionID, "error", err)
		http.Error(w, "session store unavailable", http.StatusInternalServerError)
		return
	}

	key := body.Key
	if key == "" {
		key = session.Cursor
	}
	if key == "" {
		if fresh {
			http.Error(w, "no key to start from; pass one", http.StatusBadRequest)
			return
		}
		// An existing session with an empty cursor has already finished.
		s.respond(w, nextResponse{Finished: true})
		return
	}

	vars := state.NewMap(session.Vars)
	binder := binding.New(false, vars)
	engine := runtime.NewEngine(eval.New(binder, s.logger),
		runtime.WithDefaultResource(s.resource),
		runtime.WithLogger(s.logger),
		runtime.WithLifecycleHooks(s.hooks()),
	)

	line, err := engine.NextLine(r.Context(), key, nil)
	if err != nil {
		s.logger.Error("traversal failed", "session", sessionID, "key", key, "error", err)
		http.Error(w, "traversal failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	session.Vars = vars.Snapshot()
	for k, v := range binder.ShadowSnapshot() {
		session.Vars[k] = v
	}
	session.Cursor = ""
	if line != nil {
		session.Cursor = line.NextID
	}
	session.UpdatedAt = time.Now().UTC()

	if err := s.store.Save(r.Context(), sessionID, session); err != nil {
		s.logger.Error("saving session", "session", sessionID, "error", err)
		http.Error(w, "session store unavailable", http.StatusInternalServerError)
		return
	}

	s.respond(w, nextResponse{Line: line, Finished: line == nil})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.store.Load(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "session store unavailable", http.StatusInternalServerError)
		return
	}
	s.respond(w, session)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, "session store unavailable", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) titles(w http.ResponseWriter, _ *http.Request) {
	titles := make([]string, 0, len(s.resource.Titles))
	for title := range s.resource.Titles {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	s.respond(w, map[string][]string{"titles": titles})
}

func (s *Server) hooks() domain.LifecycleHooks {
	if s.metrics == nil {
		return domain.LifecycleHooks{}
	}
	return s.metrics.Hooks()
}

func (s *Server) respond(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}
