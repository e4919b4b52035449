// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package dataset

import (
	"errors"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	input := "Order Date,Customer ID, Order Amount\n2024-01-15,C1,100.50\n2024-02-10,C2,75\n"
	frame, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}

	wantCols := []string{"order_date", "customer_id", "order_amount"}
	for i, c := range wantCols {
		if frame.Columns[i] != c {
			t.Errorf("column[%d] = %q, want %q", i, frame.Columns[i], c)
		}
	}
	if len(frame.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(frame.Rows))
	}
}

func TestReadCSVStripsBOM(t *testing.T) {
	t.Parallel()

	input := "\uFEFFcustomer_id,order_amount,order_date\nC1,10,2024-01-01\n"
	frame, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if frame.Column("customer_id") != 0 {
		t.Errorf("BOM not stripped from first header, columns = %v", frame.Columns)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader(""))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if verr.Message != "File is empty" {
		t.Errorf("message = %q, want File is empty", verr.Message)
	}
}

func TestNormalizeColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"Order Date", "order_date"},
		{"  CLAIM ID  ", "claim_id"},
		{"amount_paid", "amount_paid"},
	}
	for _, tt := range tests {
		if got := NormalizeColumn(tt.in); got != tt.want {
			t.Errorf("NormalizeColumn(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	valid := []string{"2024-01-15", "2024-01-15 13:45:00", "2024-01-15T13:45:00Z", "01/15/2024"}
	for _, s := range valid {
		if _, ok := parseDate(s); !ok {
			t.Errorf("parseDate(%q) rejected a valid date", s)
		}
	}
	invalid := []string{"", "not-a-date", "2024-13-45", "15/28/2024"}
	for _, s := range invalid {
		if _, ok := parseDate(s); ok {
			t.Errorf("parseDate(%q) accepted an invalid date", s)
		}
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	if v, ok := parseAmount("10.5"); !ok || v != 10.5 {
		t.Errorf("parseAmount(10.5) = %v (ok=%v)", v, ok)
	}
	if v, ok := parseAmount("-3"); !ok || v != -3 {
		t.Errorf("parseAmount(-3) = %v (ok=%v), negatives parse here", v, ok)
	}
	for _, s := range []string{"", "abc", "NaN", "Inf"} {
		if _, ok := parseAmount(s); ok {
			t.Errorf("parseAmount(%q) accepted an invalid amount", s)
		}
	}
}
