package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/sentiview/internal/clients"
	"github.com/spacesedan/sentiview/internal/processing"
	"github.com/spacesedan/sentiview/internal/sentiment"
)

// Full flow: login, persist the token, analyze with it, normalize the result.
func TestLoginThenAnalyze(t *testing.T) {
	confidence := 0.95

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok-e2e",
				"user":         map[string]any{"id": 1, "name": "Ada", "email": "a@b.com"},
			})
		case "/api/sentiment":
			require.Equal(t, "Bearer tok-e2e", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]any{
				"sentiment": "POSITIVE", "confidence": confidence,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store, err := NewFileStore(filepath.Join(t.TempDir(), TokenKey))
	require.NoError(t, err)

	manager := NewManager(clients.NewAuthClient(srv.URL), store)
	api := clients.NewSentimentClient(srv.URL, manager, 10<<20)
	norm := sentiment.NewNormalizer(0.7)

	sess, err := manager.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)
	manager.SetToken(sess.Token)

	raw, err := api.Analyze(context.Background(), "great product")
	require.NoError(t, err)
	result := processing.FromAnalyzeResponse(raw, norm)
	assert.Equal(t, sentiment.Positive, result.Category)
	assert.InDelta(t, 0.95, result.Confidence, 1e-9)

	// Same call at low confidence must come back Neutral.
	confidence = 0.5
	raw, err = api.Analyze(context.Background(), "great product")
	require.NoError(t, err)
	result = processing.FromAnalyzeResponse(raw, norm)
	assert.Equal(t, sentiment.Neutral, result.Category)
	assert.InDelta(t, 0.5, result.Confidence, 1e-9)
}
