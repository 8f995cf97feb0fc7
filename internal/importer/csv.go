// Package importer ingests review data from CSV exports. Shop systems
// export wildly different column names and date formats; the importer
// maps them onto the unified ReviewRecord and tolerates bad rows.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/marktpuls/marktpuls/internal/models"
	"github.com/marktpuls/marktpuls/internal/risk"
)

// Column-name candidates per target field, checked in order.
var columnCandidates = map[string][]string{
	"review_id":     {"id", "review_id", "ID", "Review ID"},
	"content":       {"content", "body", "review", "text", "comment", "Bewertung", "Review"},
	"rating":        {"rating", "stars", "score", "Bewertung", "Rating", "Stars"},
	"product_id":    {"product_id", "ProductID", "product"},
	"product_name":  {"product_name", "product", "Product", "Produkt"},
	"customer_name": {"customer", "name", "author", "Kunde", "Name"},
	"created_at":    {"date", "created_at", "created", "Datum", "Date"},
}

var dateFormats = []string{
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
}

// CSVImporter parses review CSV exports and risk-scans the result.
type CSVImporter struct {
	detector *risk.Detector
}

// NewCSVImporter wires the importer to the given detector; imported
// records leave with their risk fields already populated.
func NewCSVImporter(detector *risk.Detector) *CSVImporter {
	return &CSVImporter{detector: detector}
}

// Import parses CSV content. A malformed row is recorded as an error and
// skipped; the remaining rows are still imported.
func (i *CSVImporter) Import(content string, delimiter rune) *models.ImportResult {
	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return &models.ImportResult{
			Success:     false,
			FailedCount: 1,
			Errors:      []string{fmt.Sprintf("CSV header could not be read: %v", err)},
		}
	}

	columns := detectColumns(header)
	if _, ok := columns["content"]; !ok {
		return &models.ImportResult{
			Success:     false,
			FailedCount: 1,
			Errors:      []string{"no content column recognized in CSV header"},
		}
	}

	var (
		reviews []*models.ReviewRecord
		errs    []string
		total   int
	)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			total++
			errs = append(errs, fmt.Sprintf("row %d: %v", total+1, err))
			continue
		}
		total++

		record, err := parseRow(row, header, columns, total)
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", total+1, err))
			continue
		}
		if record != nil {
			reviews = append(reviews, record)
		}
	}

	reviews = i.detector.BatchDetect(reviews)

	logrus.Infof("CSV import: %d rows, %d imported, %d failed", total, len(reviews), len(errs))

	return &models.ImportResult{
		Success:       len(errs) == 0,
		TotalRecords:  total,
		ImportedCount: len(reviews),
		FailedCount:   len(errs),
		Errors:        errs,
		Reviews:       reviews,
	}
}

func detectColumns(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for position, name := range header {
		index[strings.TrimSpace(name)] = position
	}

	columns := make(map[string]int)
	for field, candidates := range columnCandidates {
		for _, candidate := range candidates {
			if position, ok := index[candidate]; ok {
				columns[field] = position
				break
			}
		}
	}
	return columns
}

func parseRow(row, header []string, columns map[string]int, rowNum int) (*models.ReviewRecord, error) {
	get := func(field string) string {
		position, ok := columns[field]
		if !ok || position >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[position])
	}

	content := get("content")
	if content == "" {
		// Empty content rows are silently dropped, matching shop
		// exports that pad rating-only rows.
		return nil, nil
	}

	// File imports are fault tolerant by design: out-of-range ratings
	// are clamped and a missing rating defaults to the neutral 3.
	rating := 3
	if raw := get("rating"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			rating = int(parsed)
			if rating < 1 {
				rating = 1
			}
			if rating > 5 {
				rating = 5
			}
		}
	}

	var createdAt *time.Time
	if raw := get("created_at"); raw != "" {
		for _, format := range dateFormats {
			if parsed, err := time.Parse(format, raw); err == nil {
				createdAt = &parsed
				break
			}
		}
	}

	reviewID := get("review_id")
	if reviewID == "" {
		reviewID = fmt.Sprintf("csv_%d", rowNum)
	}

	return &models.ReviewRecord{
		ReviewID:     reviewID,
		Content:      content,
		Rating:       rating,
		CreatedAt:    createdAt,
		ProductID:    get("product_id"),
		ProductName:  get("product_name"),
		CustomerName: get("customer_name"),
		Source:       models.SourceCSV,
		Language:     "de",
	}, nil
}
