// Package session owns the client-side credential: where the token lives,
// how it gets there, and when it goes away. Nothing else in the repository
// touches token storage directly.
package session

// TokenKey is the fixed name the token is stored under in every backend.
const TokenKey = "sentiview_auth_token"

// TokenStore is durable storage for exactly one bearer token.
type TokenStore interface {
	// Get returns the stored token, or "" when none is held.
	Get() (string, error)
	Set(token string) error
	// Clear removes the token. Clearing an absent token is not an error.
	Clear() error
	Close() error
}
