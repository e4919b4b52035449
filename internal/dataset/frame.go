// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// ValidationError describes a rejected upload: missing columns or rows
// with unparsable fields. The message is safe to return to clients
// verbatim; Details carries structured context for the API error body.
type ValidationError struct {
	Message string
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Frame is a raw tabular dataset: normalized column names plus string
// cells, before any typed validation. It is the common intermediate
// between CSV input and the typed parsers in this package.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// ReadCSV parses CSV input into a Frame. The first record is the
// header; header names are normalized (trimmed, lowercased, spaces
// replaced with underscores) so "Order Date" and "order_date" address
// the same column. A UTF-8 byte order mark on the first header cell
// is stripped.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ValidationError{Message: "File is empty"}
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		cols[i] = NormalizeColumn(h)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		rows = append(rows, rec)
	}

	return &Frame{Columns: cols, Rows: rows}, nil
}

// NormalizeColumn maps a raw header name to its canonical form:
// trimmed, lowercased, with interior spaces replaced by underscores.
func NormalizeColumn(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Column returns the index of a normalized column name, or -1.
func (f *Frame) Column(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// missingColumns returns the required columns absent from the frame,
// sorted, or nil when all are present.
func (f *Frame) missingColumns(required []string) []string {
	var missing []string
	for _, req := range required {
		if f.Column(req) < 0 {
			missing = append(missing, req)
		}
	}
	return missing
}

// cell returns the trimmed cell value at (row, col), tolerating short
// records.
func (f *Frame) cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// parseDate parses a date cell. Empty cells are invalid.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount parses a numeric cell. NaN, infinities and empty cells
// are invalid.
func parseAmount(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
