// Package http exposes the webhook server receiving Slack events and
// interactive button callbacks.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pantry-lab/pantrybot/pkg/utils/logging"
)

type Server struct {
	router             *chi.Mux
	webhookHandler     *SlackWebhookHandler
	interactionHandler *SlackInteractionHandler
	slackSigningSecret string
}

type Options func(*Server)

// WithSlackWebhook wires the Slack event and interaction endpoints
func WithSlackWebhook(webhook *SlackWebhookHandler, interaction *SlackInteractionHandler, signingSecret string) Options {
	return func(s *Server) {
		s.webhookHandler = webhook
		s.interactionHandler = interaction
		s.slackSigningSecret = signingSecret
	}
}

func New(opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK")) //nolint:errcheck // header already committed
	})

	// Slack endpoints - no auth, protected by signature verification
	if s.webhookHandler != nil {
		r.Route("/hooks/slack", func(r chi.Router) {
			r.Use(SlackSignatureMiddleware(s.slackSigningSecret))

			r.Post("/event", s.webhookHandler.ServeHTTP)
			if s.interactionHandler != nil {
				r.Post("/interaction", s.interactionHandler.ServeHTTP)
			}
		})
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
