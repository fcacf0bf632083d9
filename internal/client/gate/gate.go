// Package gate protects client views that require authentication.
package gate

import (
	"context"

	"github.com/isdelr/blogit-be/internal/client/api"
	"github.com/isdelr/blogit-be/internal/client/session"
)

// View is a screen that requires an authenticated identity.
type View func(ctx context.Context, ident api.Identity) error

// RedirectFunc is invoked instead of the view when the session is
// anonymous, typically to show the login prompt.
type RedirectFunc func(ctx context.Context) error

// Gate wraps views so they only render for authenticated sessions. The
// check re-runs on every invocation, not once: tokens can be revoked or
// expire between navigations. While the session is Unknown the caller
// simply blocks on resolution, which is the terminal equivalent of a
// neutral loading screen. Stale resolutions are discarded inside the
// session controller, so concurrent navigations cannot race the state.
type Gate struct {
	sessions *session.Controller
	redirect RedirectFunc
}

// New creates a Gate backed by the given session controller.
func New(sessions *session.Controller, redirect RedirectFunc) *Gate {
	return &Gate{sessions: sessions, redirect: redirect}
}

// Wrap returns a function that resolves the session and either runs the
// view with the identity or invokes the login redirect.
func (g *Gate) Wrap(view View) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		state, ident, err := g.sessions.Resolve(ctx)
		if err != nil {
			// Transport failure: render nothing, surface the error so
			// the caller can offer a retry.
			return err
		}
		if state != session.StateAuthenticated {
			return g.redirect(ctx)
		}
		return view(ctx, ident)
	}
}
