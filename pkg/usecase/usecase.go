// Package usecase implements the conversational core: the per-user flow
// state machine, free-text intent reconciliation, fuzzy deletion and the
// stale-item digest query.
package usecase

import (
	"time"

	"github.com/pantry-lab/pantrybot/pkg/domain/interfaces"
	"github.com/pantry-lab/pantrybot/pkg/domain/model/config"
	"github.com/pantry-lab/pantrybot/pkg/service/intent"
)

// UseCases aggregates the application logic behind the transport layer
type UseCases struct {
	repo     interfaces.Repository
	resolver intent.Resolver
	sessions *sessionStore
	cfg      *config.Config
	now      func() time.Time
}

// Option configures UseCases
type Option func(*UseCases)

// WithIntentResolver enables free-text and photo understanding. Without a
// resolver those paths degrade to an "use the buttons" response.
func WithIntentResolver(r intent.Resolver) Option {
	return func(uc *UseCases) {
		uc.resolver = r
	}
}

// WithConfig overrides the default labels and digest tuning
func WithConfig(cfg *config.Config) Option {
	return func(uc *UseCases) {
		uc.cfg = cfg
	}
}

// WithClock overrides the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// New creates UseCases backed by the given repository
func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		sessions: newSessionStore(),
		cfg:      config.Default(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Config returns the active application configuration
func (uc *UseCases) Config() *config.Config {
	return uc.cfg
}
