// Package server exposes reconciliation, lookup and enrichment over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/codeGROOVE-dev/dossier/pkg/dispatch"
	"github.com/codeGROOVE-dev/dossier/pkg/enrich"
	"github.com/codeGROOVE-dev/dossier/pkg/merge"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
	"github.com/codeGROOVE-dev/dossier/pkg/reconcile"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

const maxBody = 16 << 20

// Server holds the HTTP handlers.
type Server struct {
	dispatcher *dispatch.Dispatcher
	enricher   *enrich.Enricher
	logger     *slog.Logger
	metrics    *metrics
	recOpts    []reconcile.Option
	maxEntries int
}

// Option configures a Server.
type Option func(*Server)

// WithDispatcher enables GET /v1/lookup.
func WithDispatcher(d *dispatch.Dispatcher) Option {
	return func(s *Server) { s.dispatcher = d }
}

// WithEnricher enables POST /v1/enrich.
func WithEnricher(e *enrich.Enricher) Option {
	return func(s *Server) { s.enricher = e }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithReconcileOptions adds options for POST /v1/reconcile.
func WithReconcileOptions(opts ...reconcile.Option) Option {
	return func(s *Server) { s.recOpts = append(s.recOpts, opts...) }
}

// WithMaxEntries caps the account list of enriched profiles.
func WithMaxEntries(n int) Option {
	return func(s *Server) { s.maxEntries = n }
}

// New returns a server.
func New(opts ...Option) *Server {
	s := &Server{logger: slog.Default(), metrics: newMetrics()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID, s.metrics.instrument)
	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())
	r.Route("/v1", func(r chi.Router) {
		r.Post("/reconcile", s.reconcile)
		r.Get("/lookup", s.lookup)
		r.Post("/enrich", s.enrich)
	})
	return r
}

type ctxKey struct{}

// requestID tags the request with an ID, reusing a valid inbound one.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		log := s.logger.With("request_id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, log)))
	})
}

func (s *Server) log(r *http.Request) *slog.Logger {
	if l, ok := r.Context().Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return s.logger
}

func (*Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) reconcile(w http.ResponseWriter, r *http.Request) {
	log := s.log(r)
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		s.fail(w, r, http.StatusRequestEntityTooLarge, err)
		return
	}
	opts := append([]reconcile.Option{reconcile.WithLogger(log)}, s.recOpts...)
	p, err := reconcile.Reconcile(body, opts...)
	if err != nil {
		s.metrics.reconciles.WithLabelValues("malformed").Inc()
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	s.observe(p)
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) {
	if s.dispatcher == nil {
		s.fail(w, r, http.StatusServiceUnavailable, errors.New("lookups are not configured"))
		return
	}
	q := r.URL.Query()
	p, err := s.dispatcher.Lookup(r.Context(), dispatch.QueryType(q.Get("type")), q.Get("q"))
	switch {
	case err == nil:
		s.observe(p)
		writeJSON(w, http.StatusOK, p)
	case errors.Is(err, dispatch.ErrInvalidInput), errors.Is(err, dispatch.ErrUnsupportedQuery):
		s.fail(w, r, http.StatusBadRequest, err)
	case errors.Is(err, context.DeadlineExceeded):
		s.fail(w, r, http.StatusGatewayTimeout, err)
	default:
		if errors.Is(err, profile.ErrMalformedInput) {
			s.metrics.reconciles.WithLabelValues("malformed").Inc()
		}
		s.fail(w, r, http.StatusBadGateway, err)
	}
}

func (s *Server) enrich(w http.ResponseWriter, r *http.Request) {
	if s.enricher == nil {
		s.fail(w, r, http.StatusServiceUnavailable, errors.New("enrichment is not configured"))
		return
	}
	var p profile.Profile
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&p); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	p.FillEmpty()
	frag, err := s.enricher.Avatars(r.Context(), &p)
	if err != nil {
		s.fail(w, r, http.StatusGatewayTimeout, err)
		return
	}
	frag.MaxEntries = s.maxEntries
	writeJSON(w, http.StatusOK, merge.Apply(&p, frag))
}

func (s *Server) observe(p *profile.Profile) {
	s.metrics.reconciles.WithLabelValues("ok").Inc()
	s.metrics.accounts.Observe(float64(len(p.SocialMedia.Accounts)))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	log := s.log(r)
	if status >= http.StatusInternalServerError {
		log.Warn("request failed", "path", r.URL.Path, "status", status, "error", err)
	} else {
		log.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck,gosec // client went away
}
