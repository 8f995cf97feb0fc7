package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImportSource tags where a review record came from.
type ImportSource string

const (
	SourceAPI    ImportSource = "api"
	SourceCSV    ImportSource = "csv"
	SourceManual ImportSource = "manual"
)

// ReviewRecord is the unified review format used throughout the system.
// Records enter with the analysis fields nil; a batch pass fills them,
// and re-analysis replaces all of them atomically. Nil analysis fields
// distinguish an unanalyzed or failed record from a genuine zero score.
type ReviewRecord struct {
	ReviewID string `json:"review_id"`
	Content  string `json:"content"`
	Rating   int    `json:"rating"` // 1-5

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	ProductID   string `json:"product_id,omitempty"`
	ProductName string `json:"product_name,omitempty"`
	ProductSKU  string `json:"product_sku,omitempty"`

	CustomerID         string `json:"customer_id,omitempty"`
	CustomerName       string `json:"customer_name,omitempty"`
	IsVerifiedPurchase bool   `json:"is_verified_purchase,omitempty"`

	Source    ImportSource `json:"source"`
	SourceURL string       `json:"source_url,omitempty"`

	// Analysis results, filled by the risk detector and aspect engine.
	SentimentScore *float64           `json:"sentiment_score,omitempty"`
	RiskLevel      *string            `json:"risk_level,omitempty"`
	RiskFlags      []string           `json:"risk_flags,omitempty"`
	Aspects        map[string]float64 `json:"aspects,omitempty"`

	Language string `json:"language"`
}

// NewReviewRecord creates a manual review record. Content must be
// non-empty and rating must be in 1-5; malformed input is rejected
// rather than defaulted.
func NewReviewRecord(content string, rating int) (*ReviewRecord, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("review content must not be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}

	now := time.Now()
	return &ReviewRecord{
		ReviewID:  uuid.NewString(),
		Content:   content,
		Rating:    rating,
		CreatedAt: &now,
		Source:    SourceManual,
		Language:  "de",
	}, nil
}

// ClearAnalysis resets all analysis fields so a re-analysis pass starts
// from a clean state.
func (r *ReviewRecord) ClearAnalysis() {
	r.SentimentScore = nil
	r.RiskLevel = nil
	r.RiskFlags = nil
	r.Aspects = nil
}

// ImportResult summarizes one import run. Row failures are collected,
// never aborting the rest of the file.
type ImportResult struct {
	Success       bool            `json:"success"`
	TotalRecords  int             `json:"total_records"`
	ImportedCount int             `json:"imported_count"`
	FailedCount   int             `json:"failed_count"`
	Errors        []string        `json:"errors,omitempty"`
	Reviews       []*ReviewRecord `json:"reviews,omitempty"`
}

// ActionItem is one entry of a risk report's to-do list.
type ActionItem struct {
	Priority string   `json:"priority"`
	Action   string   `json:"action"`
	Reviews  []string `json:"reviews"`
}

// RiskReport summarizes the risk posture of a review batch.
type RiskReport struct {
	GeneratedAt      time.Time       `json:"generated_at"`
	TotalReviews     int             `json:"total_reviews"`
	RiskDistribution map[string]int  `json:"risk_distribution"`
	CriticalCount    int             `json:"critical_count"`
	HighRiskCount    int             `json:"high_risk_count"`
	CriticalReviews  []*ReviewRecord `json:"critical_reviews"`
	HighRiskReviews  []*ReviewRecord `json:"high_risk_reviews"`
	ActionItems      []ActionItem    `json:"action_items"`
}

// Alert is an urgent notification about reviews needing immediate
// attention.
type Alert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // "critical", "urgent", "info"
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	ReviewIDs []string  `json:"review_ids,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
