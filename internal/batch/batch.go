// Package batch parses postings exported as CSV rows.
package batch

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/jobpost/internal/record"
)

// DefaultColumns are the text column names tried when none is given.
var DefaultColumns = []string{"本文", "text", "description", "posting"}

// ErrNoTextColumn is returned when the CSV header has no usable text column.
var ErrNoTextColumn = errors.New("no posting text column")

// Item is one posting read from a CSV export.
type Item struct {
	ID   string
	Text string
}

// Result pairs an item ID with its parsed record.
type Result struct {
	ID     string        `json:"id"`
	Record record.Record `json:"record"`
}

// Parser is the part of posting.Parser the batch runner needs.
type Parser interface {
	Parse(raw string) record.Record
}

// ReadCSV reads postings from r. The first row is the header. column names
// the text column; when empty the first of DefaultColumns present is used.
// An "id" column is optional; rows without one get a content hash prefix.
func ReadCSV(r io.Reader, column string) ([]Item, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	textIdx := -1
	candidates := DefaultColumns
	if column != "" {
		candidates = []string{column}
	}
	for _, name := range candidates {
		if i := columnIndex(headers, name); i >= 0 {
			textIdx = i
			break
		}
	}
	if textIdx < 0 {
		return nil, fmt.Errorf("%w: tried %s", ErrNoTextColumn, strings.Join(candidates, ", "))
	}
	idIdx := columnIndex(headers, "id")

	items := make([]Item, 0, len(records)-1)
	for _, row := range records[1:] {
		var item Item
		if textIdx < len(row) {
			item.Text = row[textIdx]
		}
		if idIdx >= 0 && idIdx < len(row) {
			item.ID = strings.TrimSpace(row[idIdx])
		}
		if item.ID == "" {
			item.ID = ContentHashHex([]byte(item.Text))[:16]
		}
		items = append(items, item)
	}
	return items, nil
}

func columnIndex(headers []string, name string) int {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// Run parses items with at most concurrency goroutines and returns results
// in input order. Cancelling ctx stops scheduling further items and Run
// returns the context error.
func Run(ctx context.Context, p Parser, items []Item, concurrency int) ([]Result, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	results := make([]Result, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Result{ID: item.ID, Record: p.Parse(item.Text)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// WriteJSONL writes one JSON object per result.
func WriteJSONL(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("write result %s: %w", r.ID, err)
		}
	}
	return nil
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
