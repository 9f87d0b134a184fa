package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spacesedan/sentiview/internal/models"
)

// AuthClient talks to the auth endpoints of the sentiment service. It holds
// no session state itself: Login returns the assembled session and leaves
// persisting the token to the caller.
type AuthClient struct {
	BaseURL string
	Client  *http.Client
}

func NewAuthClient(baseURL string) *AuthClient {
	var timeout time.Duration
	env := os.Getenv("APP_ENV")
	if env == "production" {
		timeout = PROD_TIMEOUT
	} else {
		timeout = DEV_TIMEOUT
	}

	slog.Debug("[AuthClient] Initializing client",
		slog.Duration("timeout", timeout),
		slog.String("env", env))

	return &AuthClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

// Login exchanges credentials for a session. The server issues the token
// under "access_token"; it is mapped onto Session.Token here. The token is
// NOT persisted as a side effect.
func (a *AuthClient) Login(ctx context.Context, email, password string) (models.Session, error) {
	var session models.Session

	body, err := json.Marshal(models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return session, fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := newAPIRequest(ctx, http.MethodPost, a.BaseURL+LOGIN_PATH, bytes.NewReader(body), "application/json")
	if err != nil {
		return session, fmt.Errorf("failed to build login request: %w", err)
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return session, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return session, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("[AuthClient] Login rejected",
			slog.Int("status", resp.StatusCode))
		return session, ErrInvalidCredentials
	}

	var payload models.LoginResponse
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return session, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload.AccessToken == "" {
		return session, fmt.Errorf("%w: login response missing access token", ErrMalformedResponse)
	}

	session.Token = payload.AccessToken
	session.User = payload.User
	return session, nil
}

// Signup registers a new account. It does not authenticate; callers log in
// separately afterwards.
func (a *AuthClient) Signup(ctx context.Context, name, email, password string) error {
	body, err := json.Marshal(models.SignupRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("failed to marshal signup request: %w", err)
	}

	req, err := newAPIRequest(ctx, http.MethodPost, a.BaseURL+SIGNUP_PATH, bytes.NewReader(body), "application/json")
	if err != nil {
		return fmt.Errorf("failed to build signup request: %w", err)
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusConflict:
		return ErrAccountExists
	case resp.StatusCode == http.StatusBadRequest:
		return &APIError{
			Status:  resp.StatusCode,
			Message: errorMessage(respBody, "invalid signup details"),
		}
	case resp.StatusCode >= 500:
		slog.Warn("[AuthClient] Signup failed server-side",
			slog.Int("status", resp.StatusCode))
		return &APIError{
			Status:  resp.StatusCode,
			Message: "the service is having trouble right now, try again later",
		}
	default:
		return &APIError{
			Status:  resp.StatusCode,
			Message: errorMessage(respBody, "signup failed"),
		}
	}
}

// Profile fetches the identity behind the current token. A 401 means the
// session is gone: the token is cleared through sess before the error
// returns, so callers can send the user back to login.
func (a *AuthClient) Profile(ctx context.Context, sess SessionSource) (models.User, error) {
	var user models.User

	client, err := sess.HTTPClient(ctx)
	if err != nil {
		return user, err
	}

	req, err := newAPIRequest(ctx, http.MethodGet, a.BaseURL+PROFILE_PATH, nil, "")
	if err != nil {
		return user, fmt.Errorf("failed to build profile request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return user, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		slog.Warn("[AuthClient] Token rejected, clearing session")
		sess.Invalidate()
		return user, ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return user, &APIError{Status: resp.StatusCode, Message: "failed to load your profile"}
	}

	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return user, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return user, nil
}
