// Package processing turns raw API payloads into the canonical results the
// rest of the client displays. Both the single and the batch flow pass
// through here so the confidence gate is never applied to one and skipped
// for the other.
package processing

import (
	"fmt"
	"strings"

	"github.com/spacesedan/sentiview/internal/models"
	"github.com/spacesedan/sentiview/internal/sentiment"
)

// SentimentResult is one classified text in canonical form. Immutable once
// built; raw service labels do not appear here.
type SentimentResult struct {
	Category   sentiment.Category
	Confidence float64
	Text       string
}

// BatchRun aggregates one upload's classified rows. It is replaced wholesale
// on every new upload, never persisted.
type BatchRun struct {
	Filename string
	Results  []SentimentResult
	Total    int
}

// FromAnalyzeResponse normalizes a single-analysis payload.
func FromAnalyzeResponse(resp models.AnalyzeResponse, n sentiment.Normalizer) SentimentResult {
	return SentimentResult{
		Category:   n.Normalize(resp.Sentiment, resp.Confidence),
		Confidence: resp.Confidence,
		Text:       resp.Review,
	}
}

// BuildBatchRun normalizes every row of a batch payload. Total comes from
// the server summary when one is present, otherwise from the row count.
func BuildBatchRun(filename string, resp models.BatchResponse, n sentiment.Normalizer) BatchRun {
	results := make([]SentimentResult, 0, len(resp.Reviews))
	for i, row := range resp.Reviews {
		results = append(results, SentimentResult{
			Category:   n.Normalize(row.Sentiment, row.Confidence),
			Confidence: row.Confidence,
			Text:       reviewText(row, i),
		})
	}

	total := len(resp.Reviews)
	if resp.Summary != nil && resp.Summary.TotalReviews > 0 {
		total = resp.Summary.TotalReviews
	}

	return BatchRun{Filename: filename, Results: results, Total: total}
}

// reviewText resolves the echoed source text for a row. Precedence is fixed:
// original_text, then text, then review, first non-empty wins; rows with
// none of them get a synthesized "Review N" label (1-based).
func reviewText(row models.BatchReview, i int) string {
	for _, candidate := range []string{row.OriginalText, row.Text, row.Review} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return fmt.Sprintf("Review %d", i+1)
}
