package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spacesedan/sentiview/internal/models"
)

// SentimentClient talks to the classification endpoints. Authenticated calls
// go through the SessionSource so the bearer token is attached uniformly and
// a rejected token is cleared in exactly one place.
type SentimentClient struct {
	BaseURL        string
	Session        SessionSource
	MaxUploadBytes int64

	// probe is the unauthenticated client used for health checks.
	probe *http.Client
}

func NewSentimentClient(baseURL string, sess SessionSource, maxUploadBytes int64) *SentimentClient {
	return &SentimentClient{
		BaseURL:        strings.TrimRight(baseURL, "/"),
		Session:        sess,
		MaxUploadBytes: maxUploadBytes,
		probe:          &http.Client{Timeout: PROD_TIMEOUT},
	}
}

// Analyze classifies a single text. The result is raw: callers run it
// through the normalizer before showing it to anyone.
func (s *SentimentClient) Analyze(ctx context.Context, text string) (models.AnalyzeResponse, error) {
	var result models.AnalyzeResponse

	client, err := s.Session.HTTPClient(ctx)
	if err != nil {
		return result, err
	}

	body, err := json.Marshal(models.AnalyzeRequest{Text: text})
	if err != nil {
		return result, fmt.Errorf("failed to marshal analyze request: %w", err)
	}

	req, err := newAPIRequest(ctx, http.MethodPost, s.BaseURL+SENTIMENT_PATH, bytes.NewReader(body), "application/json")
	if err != nil {
		return result, fmt.Errorf("failed to build analyze request: %w", err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return result, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, &TransportError{Err: err}
	}

	if err := s.checkStatus(resp.StatusCode, respBody, "analysis failed"); err != nil {
		return result, err
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		return result, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	slog.Info("[SentimentClient] Analysis complete",
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

// AnalyzeBatch uploads a CSV of reviews and returns the raw per-row results.
// The extension and size checks run before any bytes go on the wire; the
// ceiling is advisory, the server enforces nothing.
func (s *SentimentClient) AnalyzeBatch(ctx context.Context, path string) (models.BatchResponse, error) {
	var result models.BatchResponse

	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return result, ErrNotCSV
	}

	info, err := os.Stat(path)
	if err != nil {
		return result, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if s.MaxUploadBytes > 0 && info.Size() > s.MaxUploadBytes {
		return result, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, info.Size(), s.MaxUploadBytes)
	}

	client, err := s.Session.HTTPClient(ctx)
	if err != nil {
		return result, err
	}

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return result, fmt.Errorf("failed to build upload body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return result, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return result, fmt.Errorf("failed to build upload body: %w", err)
	}

	req, err := newAPIRequest(ctx, http.MethodPost, s.BaseURL+BATCH_PATH, &body, writer.FormDataContentType())
	if err != nil {
		return result, fmt.Errorf("failed to build batch request: %w", err)
	}

	slog.Info("[SentimentClient] Uploading batch",
		slog.String("file", filepath.Base(path)),
		slog.Int64("bytes", info.Size()))
	start := time.Now()

	resp, err := client.Do(req)
	if err != nil {
		return result, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, &TransportError{Err: err}
	}

	if err := s.checkStatus(resp.StatusCode, respBody, "batch analysis failed"); err != nil {
		return result, err
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		return result, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if result.Reviews == nil {
		return result, fmt.Errorf("%w: batch response missing reviews", ErrMalformedResponse)
	}

	slog.Info("[SentimentClient] Batch complete",
		slog.Int("rows", len(result.Reviews)),
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

// CheckHealth probes the liveness endpoint without credentials. A nil return
// means the service answered 2xx.
func (s *SentimentClient) CheckHealth(ctx context.Context) error {
	req, err := newAPIRequest(ctx, http.MethodGet, s.BaseURL+HEALTH_PATH, nil, "")
	if err != nil {
		return err
	}

	resp, err := s.probe.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: "health check failed"}
	}
	return nil
}

func (s *SentimentClient) checkStatus(status int, body []byte, fallback string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		slog.Warn("[SentimentClient] Token rejected, clearing session")
		s.Session.Invalidate()
		return ErrSessionExpired
	default:
		return &APIError{Status: status, Message: errorMessage(body, fallback)}
	}
}
