package models

type AnalyzeRequest struct {
	Text string `json:"text"`
}

type AnalyzeResponse struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Review     string  `json:"review,omitempty"`
}

// BatchReview is one classified row of a batch upload. The service has used
// three different names for the echoed source text across versions, so all
// three are decoded and resolved later in precedence order.
type BatchReview struct {
	Sentiment    string  `json:"sentiment"`
	Confidence   float64 `json:"confidence"`
	OriginalText string  `json:"original_text,omitempty"`
	Text         string  `json:"text,omitempty"`
	Review       string  `json:"review,omitempty"`
	Index        int     `json:"index,omitempty"`
}

type BatchSummary struct {
	TotalReviews int `json:"total_reviews,omitempty"`
}

// BatchResponse is the raw batch result. Reviews stays nil when the field is
// absent from the payload, which is how a contract violation is told apart
// from a legitimately empty batch.
type BatchResponse struct {
	Reviews []BatchReview `json:"reviews"`
	Summary *BatchSummary `json:"summary,omitempty"`
}
