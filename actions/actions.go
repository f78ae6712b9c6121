package actions

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/wtw/api"
	"github.com/s0up4200/wtw/nav"
	"github.com/s0up4200/wtw/state"
	"github.com/s0up4200/wtw/token"
)

// DefaultClearErrorDelay is how long an error stays visible
const DefaultClearErrorDelay = 5 * time.Second

// Actions binds the operations to the collaborators they write to
type Actions struct {
	api             api.Requester
	store           *state.Store
	tokens          token.Store
	redirector      nav.Redirector
	logger          zerolog.Logger
	clearErrorDelay time.Duration
}

// Option configures Actions.
type Option func(*Actions)

// WithClearErrorDelay overrides DefaultClearErrorDelay.
func WithClearErrorDelay(delay time.Duration) Option {
	return func(a *Actions) {
		if delay > 0 {
			a.clearErrorDelay = delay
		}
	}
}

// New creates the operation set over explicit collaborators
func New(requester api.Requester, store *state.Store, tokens token.Store, redirector nav.Redirector, logger zerolog.Logger, opts ...Option) *Actions {
	a := &Actions{
		api:             requester,
		store:           store,
		tokens:          tokens,
		redirector:      redirector,
		logger:          logger,
		clearErrorDelay: DefaultClearErrorDelay,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}
