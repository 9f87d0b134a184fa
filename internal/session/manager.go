package session

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/spacesedan/sentiview/internal/clients"
	"github.com/spacesedan/sentiview/internal/models"
)

// Manager is the single source of truth for authentication state. It is
// constructed once at the top of the call graph and passed to everything
// that talks to the API; there is no ambient global session.
//
// Token state is two-valued: absent or present. Expiry is detected
// reactively, when an authenticated call comes back 401, at which point the
// token is cleared before the error reaches the caller.
type Manager struct {
	store TokenStore
	auth  *clients.AuthClient
}

func NewManager(auth *clients.AuthClient, store TokenStore) *Manager {
	return &Manager{store: store, auth: auth}
}

// Token returns the stored token, or "" when unauthenticated. It never
// fails: a missing store or an unreadable backend both read as absent.
func (m *Manager) Token() string {
	if m.store == nil {
		return ""
	}
	token, err := m.store.Get()
	if err != nil {
		slog.Warn("[Session] Failed to read token store",
			slog.String("error", err.Error()))
		return ""
	}
	return token
}

// SetToken persists a token. An empty token is refused: callers must never
// wipe a valid token by persisting nothing.
func (m *Manager) SetToken(token string) {
	if token == "" {
		slog.Warn("[Session] Refusing to store an empty token")
		return
	}
	if m.store == nil {
		slog.Warn("[Session] No token store available, session will not persist")
		return
	}
	if err := m.store.Set(token); err != nil {
		slog.Error("[Session] Failed to persist token",
			slog.String("error", err.Error()))
	}
}

// RemoveToken clears the stored token. Idempotent.
func (m *Manager) RemoveToken() {
	if m.store == nil {
		return
	}
	if err := m.store.Clear(); err != nil {
		slog.Warn("[Session] Failed to clear token store",
			slog.String("error", err.Error()))
	}
}

func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}

// HTTPClient implements clients.SessionSource: the returned client attaches
// the current token as a bearer credential on every request.
func (m *Manager) HTTPClient(ctx context.Context) (*http.Client, error) {
	token := m.Token()
	if token == "" {
		return nil, clients.ErrNotAuthenticated
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return oauth2.NewClient(ctx, src), nil
}

// Invalidate implements clients.SessionSource.
func (m *Manager) Invalidate() {
	m.RemoveToken()
}

// Login authenticates and returns the session. Persisting the token is the
// caller's decision, kept separate from authenticating.
func (m *Manager) Login(ctx context.Context, email, password string) (models.Session, error) {
	return m.auth.Login(ctx, email, password)
}

// Signup registers an account. The user still has to log in afterwards.
func (m *Manager) Signup(ctx context.Context, name, email, password string) error {
	return m.auth.Signup(ctx, name, email, password)
}

// Profile fetches the identity behind the current token. On 401 the token is
// gone by the time the ErrSessionExpired comes back.
func (m *Manager) Profile(ctx context.Context) (models.User, error) {
	return m.auth.Profile(ctx, m)
}
