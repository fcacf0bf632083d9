// Package session holds the client's single source of truth for the
// authenticated identity. Every screen reads session state from the
// Controller instead of re-deriving it with its own whoami call.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/isdelr/blogit-be/internal/client/api"
)

// State is the session controller's resolution state.
type State int

const (
	// StateUnknown means a token is stored but has not been validated
	// against the server yet.
	StateUnknown State = iota
	// StateAnonymous means there is no valid session.
	StateAnonymous
	// StateAuthenticated means the stored token resolved to an identity.
	StateAuthenticated
)

// IdentityAPI is the slice of the API client the controller needs.
type IdentityAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Whoami(ctx context.Context) (api.Identity, error)
}

// Controller tracks the authenticated identity derived from the stored
// token. A generation counter guards against stale resolutions: a
// whoami call that completes after a logout or re-login is discarded
// instead of overwriting the newer state.
type Controller struct {
	api   IdentityAPI
	store TokenStore

	mu         sync.Mutex
	state      State
	identity   api.Identity
	token      string
	generation uint64
}

// NewController creates a Controller and rehydrates the stored token.
// With no stored token the session starts Anonymous; with one it starts
// Unknown until Resolve validates it.
func NewController(identityAPI IdentityAPI, store TokenStore) (*Controller, error) {
	token, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading stored token: %w", err)
	}
	c := &Controller{api: identityAPI, store: store, token: token}
	if token == "" {
		c.state = StateAnonymous
	} else {
		c.state = StateUnknown
	}
	return c, nil
}

// Token returns the currently stored token, or "" when logged out. It
// is the TokenFunc handed to the API client.
func (c *Controller) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// State returns the current state and identity without touching the server.
func (c *Controller) State() (State, api.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.identity
}

// Resolve validates the stored token against the server and settles the
// session state. An authentication failure discards the token; a
// transport failure leaves the state untouched and returns the error.
func (c *Controller) Resolve(ctx context.Context) (State, api.Identity, error) {
	c.mu.Lock()
	if c.token == "" {
		c.state = StateAnonymous
		c.identity = api.Identity{}
		c.mu.Unlock()
		return StateAnonymous, api.Identity{}, nil
	}
	gen := c.generation
	c.mu.Unlock()

	ident, err := c.api.Whoami(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		// The session changed while the call was in flight (logout or
		// re-login); this result is stale.
		return c.state, c.identity, nil
	}
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			c.discardLocked()
			return StateAnonymous, api.Identity{}, nil
		}
		return c.state, c.identity, fmt.Errorf("resolving session: %w", err)
	}

	c.state = StateAuthenticated
	c.identity = ident
	return c.state, c.identity, nil
}

// Login exchanges credentials for a token, stores it, and immediately
// re-resolves the identity. A resolution failure after a successful
// token exchange discards the token again.
func (c *Controller) Login(ctx context.Context, email, password string) (api.Identity, error) {
	token, err := c.api.Login(ctx, email, password)
	if err != nil {
		return api.Identity{}, err
	}

	c.mu.Lock()
	c.generation++
	c.token = token
	c.state = StateUnknown
	c.identity = api.Identity{}
	c.mu.Unlock()

	if err := c.store.Save(token); err != nil {
		return api.Identity{}, fmt.Errorf("storing token: %w", err)
	}

	state, ident, err := c.Resolve(ctx)
	if err != nil {
		c.Logout()
		return api.Identity{}, errors.New("login failed, please try again")
	}
	if state != StateAuthenticated {
		return api.Identity{}, errors.New("login failed, please try again")
	}
	return ident, nil
}

// Logout discards the stored token and moves to Anonymous unconditionally.
func (c *Controller) Logout() {
	c.mu.Lock()
	c.discardLocked()
	c.mu.Unlock()
}

// Invalidate is called when any request comes back with an
// authentication failure: the token is no longer good.
func (c *Controller) Invalidate() {
	c.Logout()
}

// discardLocked clears local session state. Callers hold c.mu.
func (c *Controller) discardLocked() {
	c.generation++
	c.token = ""
	c.state = StateAnonymous
	c.identity = api.Identity{}
	// Best effort; a leftover file just means one extra failed
	// resolution on the next run.
	_ = c.store.Clear()
}
