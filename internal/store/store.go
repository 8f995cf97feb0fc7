// Package store persists review records and their analysis results in
// SQLite. The pure-Go driver keeps the binary self-contained.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/marktpuls/marktpuls/internal/models"
)

// Store handles all database operations.
type Store struct {
	db *sql.DB
}

// New opens (and if needed creates) the SQLite database at dbPath and
// applies the schema.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reviews (
		review_id TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		rating INTEGER NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		product_id TEXT,
		product_name TEXT,
		product_sku TEXT,
		customer_id TEXT,
		customer_name TEXT,
		is_verified_purchase BOOLEAN,
		source TEXT NOT NULL,
		source_url TEXT,
		sentiment_score REAL,
		risk_level TEXT,
		risk_flags TEXT,
		aspects TEXT,
		language TEXT,
		imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_reviews_risk_level ON reviews(risk_level);
	CREATE INDEX IF NOT EXISTS idx_reviews_created_at ON reviews(created_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// SaveReview inserts or updates a review. Analysis fields are written as
// a whole so a re-analysis replaces them atomically.
func (s *Store) SaveReview(r *models.ReviewRecord) error {
	flagsJSON, _ := json.Marshal(r.RiskFlags)
	aspectsJSON, _ := json.Marshal(r.Aspects)

	_, err := s.db.Exec(`
		INSERT INTO reviews (review_id, content, rating, created_at, updated_at,
			product_id, product_name, product_sku, customer_id, customer_name,
			is_verified_purchase, source, source_url,
			sentiment_score, risk_level, risk_flags, aspects, language)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(review_id) DO UPDATE SET
			content = excluded.content,
			rating = excluded.rating,
			updated_at = excluded.updated_at,
			sentiment_score = excluded.sentiment_score,
			risk_level = excluded.risk_level,
			risk_flags = excluded.risk_flags,
			aspects = excluded.aspects
	`, r.ReviewID, r.Content, r.Rating, nullableTime(r.CreatedAt), nullableTime(r.UpdatedAt),
		r.ProductID, r.ProductName, r.ProductSKU, r.CustomerID, r.CustomerName,
		r.IsVerifiedPurchase, string(r.Source), r.SourceURL,
		nullableFloat(r.SentimentScore), nullableString(r.RiskLevel),
		string(flagsJSON), string(aspectsJSON), r.Language)
	if err != nil {
		return fmt.Errorf("failed to save review %s: %w", r.ReviewID, err)
	}
	return nil
}

// SaveReviews stores a batch; one failed record does not stop the rest.
func (s *Store) SaveReviews(records []*models.ReviewRecord) (int, []error) {
	var errs []error
	saved := 0
	for _, record := range records {
		if err := s.SaveReview(record); err != nil {
			errs = append(errs, err)
			continue
		}
		saved++
	}
	return saved, errs
}

// GetReview loads a single review by ID.
func (s *Store) GetReview(reviewID string) (*models.ReviewRecord, error) {
	row := s.db.QueryRow(selectColumns+` FROM reviews WHERE review_id = ?`, reviewID)
	return scanReview(row)
}

// ListUnanalyzed returns up to limit records whose analysis fields have
// not been filled yet, oldest first.
func (s *Store) ListUnanalyzed(limit int) ([]*models.ReviewRecord, error) {
	rows, err := s.db.Query(selectColumns+`
		FROM reviews
		WHERE sentiment_score IS NULL
		ORDER BY imported_at ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query unanalyzed reviews: %w", err)
	}
	defer rows.Close()
	return scanReviews(rows)
}

// ListByRiskLevels returns records whose risk tier is one of the given
// levels, newest first.
func (s *Store) ListByRiskLevels(levels ...string) ([]*models.ReviewRecord, error) {
	if len(levels) == 0 {
		return nil, nil
	}

	placeholders := make([]byte, 0, len(levels)*2)
	args := make([]any, 0, len(levels))
	for i, level := range levels {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
		args = append(args, level)
	}

	rows, err := s.db.Query(selectColumns+`
		FROM reviews
		WHERE risk_level IN (`+string(placeholders)+`)
		ORDER BY imported_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews by risk level: %w", err)
	}
	defer rows.Close()
	return scanReviews(rows)
}

// ListAll returns up to limit records, newest first.
func (s *Store) ListAll(limit int) ([]*models.ReviewRecord, error) {
	rows, err := s.db.Query(selectColumns+` FROM reviews ORDER BY imported_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()
	return scanReviews(rows)
}

const selectColumns = `
	SELECT review_id, content, rating, created_at, updated_at,
		product_id, product_name, product_sku, customer_id, customer_name,
		is_verified_purchase, source, source_url,
		sentiment_score, risk_level, risk_flags, aspects, language`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (*models.ReviewRecord, error) {
	var (
		record               models.ReviewRecord
		createdAt, updatedAt sql.NullTime
		sentimentScore       sql.NullFloat64
		riskLevel            sql.NullString
		flagsJSON            sql.NullString
		aspectsJSON          sql.NullString
		source               string
	)

	err := row.Scan(&record.ReviewID, &record.Content, &record.Rating, &createdAt, &updatedAt,
		&record.ProductID, &record.ProductName, &record.ProductSKU, &record.CustomerID, &record.CustomerName,
		&record.IsVerifiedPurchase, &source, &record.SourceURL,
		&sentimentScore, &riskLevel, &flagsJSON, &aspectsJSON, &record.Language)
	if err != nil {
		return nil, err
	}

	record.Source = models.ImportSource(source)
	if createdAt.Valid {
		record.CreatedAt = &createdAt.Time
	}
	if updatedAt.Valid {
		record.UpdatedAt = &updatedAt.Time
	}
	if sentimentScore.Valid {
		record.SentimentScore = &sentimentScore.Float64
	}
	if riskLevel.Valid && riskLevel.String != "" {
		record.RiskLevel = &riskLevel.String
	}
	if flagsJSON.Valid && flagsJSON.String != "" {
		_ = json.Unmarshal([]byte(flagsJSON.String), &record.RiskFlags)
	}
	if aspectsJSON.Valid && aspectsJSON.String != "" {
		_ = json.Unmarshal([]byte(aspectsJSON.String), &record.Aspects)
	}

	return &record, nil
}

func scanReviews(rows *sql.Rows) ([]*models.ReviewRecord, error) {
	var records []*models.ReviewRecord
	for rows.Next() {
		record, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
