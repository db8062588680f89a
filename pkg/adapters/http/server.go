package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/vestibule"
	"github.com/aretw0/vestibule/internal/logging"
	"github.com/aretw0/vestibule/pkg/assets"
	"github.com/aretw0/vestibule/pkg/capability"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/onboarding"
	"github.com/aretw0/vestibule/pkg/session"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// Engine is the part of vestibule.Engine the HTTP adapter reads from.
type Engine interface {
	Guides() []domain.Guide
	Selected(ctx context.Context, key string) (string, error)
	Resolver() *assets.Resolver
}

// Server implements the generated ServerInterface.
type Server struct {
	Engine   Engine
	Sessions *session.Manager

	logger  *slog.Logger
	metrics http.Handler
	doc     *openapi3.T
}

var _ ServerInterface = (*Server)(nil)

// Option configures the handler.
type Option func(*Server)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates the HTTP handler. Requests to documented routes are validated
// against the embedded OpenAPI document before they reach a handler.
func NewHandler(engine Engine, sessions *session.Manager, opts ...Option) (http.Handler, error) {
	s := &Server{
		Engine:   engine,
		Sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	doc, router, err := loadRouter()
	if err != nil {
		return nil, err
	}
	s.doc = doc

	r := chi.NewRouter()
	r.Use(enableCORS)
	r.Use(validateRequests(router))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			s.logger.Error("failed to load OpenAPI spec", "err", err)
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	return HandlerWithOptions(s, ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeJSON(w, http.StatusBadRequest, Error{Error: err.Error()})
		},
	}), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+capability.HintHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Vestibule API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.doc != nil && s.doc.Info != nil {
		apiVersion = s.doc.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "vestibule-http",
		"version":     strings.TrimSpace(vestibule.Version),
		"api_version": apiVersion,
	})
}

// ListGuides handles the GET /guides request.
func (s *Server) ListGuides(w http.ResponseWriter, r *http.Request) {
	resolver := s.Engine.Resolver()
	guides := s.Engine.Guides()
	cards := make([]onboarding.Card, 0, len(guides))
	for _, g := range guides {
		url := g.Image
		if resolver != nil {
			url = resolver.Resolve(g.Image)
		}
		cards = append(cards, onboarding.Card{Guide: g, ImageURL: url})
	}
	writeJSON(w, http.StatusOK, cards)
}

// StartSession handles the POST /sessions request. Without an explicit capability
// the request itself is probed.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	var body StartSessionJSONRequestBody
	if !decodeBody(w, r, &body) {
		return
	}

	c := capability.FromRequest(r)
	if body.Capability != nil {
		c = capability.FromHint(string(*body.Capability))
	}

	opts := []onboarding.Option{onboarding.WithCapability(c)}
	if body.VisitorId != nil && *body.VisitorId != "" {
		opts = append(opts, onboarding.WithSelectionKey(domain.VisitorSelectionKey(*body.VisitorId)))
	}

	var sessionID string
	if body.SessionId != nil {
		sessionID = *body.SessionId
	}
	flow, err := s.Sessions.Start(r.Context(), sessionID, opts...)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, flow.View())
}

// GetSession handles the GET /sessions/{sessionID} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request, sessionID SessionID) {
	flow, err := s.Sessions.Get(r.Context(), sessionID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, flow.View())
}

// EndSession handles the DELETE /sessions/{sessionID} request.
func (s *Server) EndSession(w http.ResponseWriter, r *http.Request, sessionID SessionID) {
	if err := s.Sessions.End(r.Context(), sessionID); err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Proceed handles the POST /sessions/{sessionID}/proceed request.
func (s *Server) Proceed(w http.ResponseWriter, r *http.Request, sessionID SessionID) {
	s.act(w, r, sessionID, (*onboarding.Flow).Proceed)
}

// Hover handles the POST /sessions/{sessionID}/hover request.
func (s *Server) Hover(w http.ResponseWriter, r *http.Request, sessionID SessionID) {
	var body HoverJSONRequestBody
	if !decodeBody(w, r, &body) {
		return
	}
	s.act(w, r, sessionID, func(f *onboarding.Flow) error { return f.Hover(body.GuideId) })
}

// Unhover handles the POST /sessions/{sessionID}/unhover request.
func (s *Server) Unhover(w http.ResponseWriter, r *http.Request, sessionID SessionID) {
	s.act(w, r, sessionID, (*onboarding.Flow).Unhover)
}

// Activate handles the POST /sessions/{sessionID}/activate request.
func (s *Server) Activate(w http.ResponseWriter, r *http.Request, sessionID SessionID) {
	var body ActivateJSONRequestBody
	if !decodeBody(w, r, &body) {
		return
	}
	s.act(w, r, sessionID, func(f *onboarding.Flow) error { return f.Activate(body.GuideId) })
}

// Confirm handles the POST /sessions/{sessionID}/confirm request.
func (s *Server) Confirm(w http.ResponseWriter, r *http.Request, sessionID SessionID) {
	s.act(w, r, sessionID, (*onboarding.Flow).Confirm)
}

// ReturnToChoose handles the POST /sessions/{sessionID}/return request.
func (s *Server) ReturnToChoose(w http.ResponseWriter, r *http.Request, sessionID SessionID) {
	s.act(w, r, sessionID, (*onboarding.Flow).Return)
}

// act runs a flow operation under the session lock and answers with the new view.
func (s *Server) act(w http.ResponseWriter, r *http.Request, sessionID string, fn func(*onboarding.Flow) error) {
	flow, err := s.Sessions.Do(r.Context(), sessionID, fn)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, flow.View())
}

// GetSelection handles the GET /selection/{visitorID} request.
func (s *Server) GetSelection(w http.ResponseWriter, r *http.Request, visitorID string) {
	guideID, err := s.Engine.Selected(r.Context(), domain.VisitorSelectionKey(visitorID))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Selection{VisitorId: visitorID, GuideId: guideID})
}

// decodeBody reads an optional JSON body into dest. Required bodies are enforced
// by request validation.
func decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, Error{Error: "invalid request body"})
		return false
	}
	return true
}
