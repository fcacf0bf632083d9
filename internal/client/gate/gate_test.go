package gate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/isdelr/blogit-be/internal/client/api"
	"github.com/isdelr/blogit-be/internal/client/session"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu    sync.Mutex
	token string
}

func (m *memStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

type fakeAPI struct {
	mu          sync.Mutex
	whoamiFn    func(ctx context.Context) (api.Identity, error)
	whoamiCalls int
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeAPI) Whoami(ctx context.Context) (api.Identity, error) {
	f.mu.Lock()
	f.whoamiCalls++
	f.mu.Unlock()
	return f.whoamiFn(ctx)
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.whoamiCalls
}

var testIdentity = api.Identity{ID: "u1", Name: "A", Email: "a@x.com"}

func newGate(t *testing.T, fake *fakeAPI, token string) (*Gate, *int) {
	t.Helper()

	ctrl, err := session.NewController(fake, &memStore{token: token})
	require.NoError(t, err)

	redirects := 0
	g := New(ctrl, func(ctx context.Context) error {
		redirects++
		return nil
	})
	return g, &redirects
}

func TestWrap_AuthenticatedRendersView(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{whoamiFn: func(ctx context.Context) (api.Identity, error) {
		return testIdentity, nil
	}}
	g, redirects := newGate(t, fake, "stored-token")

	var rendered []api.Identity
	view := g.Wrap(func(ctx context.Context, ident api.Identity) error {
		rendered = append(rendered, ident)
		return nil
	})

	require.NoError(t, view(context.Background()))
	require.Len(t, rendered, 1)
	require.Equal(t, testIdentity, rendered[0])
	require.Zero(t, *redirects)
}

func TestWrap_AnonymousRedirects(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{whoamiFn: func(ctx context.Context) (api.Identity, error) {
		return api.Identity{}, api.ErrUnauthenticated
	}}
	g, redirects := newGate(t, fake, "")

	viewRuns := 0
	view := g.Wrap(func(ctx context.Context, ident api.Identity) error {
		viewRuns++
		return nil
	})

	require.NoError(t, view(context.Background()))
	require.Zero(t, viewRuns, "anonymous session must render nothing")
	require.Equal(t, 1, *redirects)
}

func TestWrap_InvalidTokenRedirectsAndClears(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{whoamiFn: func(ctx context.Context) (api.Identity, error) {
		return api.Identity{}, api.ErrUnauthenticated
	}}
	ctrl, err := session.NewController(fake, &memStore{token: "expired"})
	require.NoError(t, err)

	redirects := 0
	g := New(ctrl, func(ctx context.Context) error {
		redirects++
		return nil
	})

	view := g.Wrap(func(ctx context.Context, ident api.Identity) error { return nil })
	require.NoError(t, view(context.Background()))
	require.Equal(t, 1, redirects)
	require.Empty(t, ctrl.Token(), "invalid token must be cleared")
}

func TestWrap_RechecksOnEveryNavigation(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{whoamiFn: func(ctx context.Context) (api.Identity, error) {
		return testIdentity, nil
	}}
	g, _ := newGate(t, fake, "stored-token")

	view := g.Wrap(func(ctx context.Context, ident api.Identity) error { return nil })
	require.NoError(t, view(context.Background()))
	require.NoError(t, view(context.Background()))

	require.Equal(t, 2, fake.calls(), "the gate must re-validate on each navigation")
}

func TestWrap_TransportFailureSurfacesError(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{whoamiFn: func(ctx context.Context) (api.Identity, error) {
		return api.Identity{}, errors.New("connection refused")
	}}
	g, redirects := newGate(t, fake, "stored-token")

	viewRuns := 0
	view := g.Wrap(func(ctx context.Context, ident api.Identity) error {
		viewRuns++
		return nil
	})

	require.Error(t, view(context.Background()))
	require.Zero(t, viewRuns)
	require.Zero(t, *redirects, "a network failure is not a redirect to login")
}
