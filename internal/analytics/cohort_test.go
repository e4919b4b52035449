// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package analytics

import (
	"testing"
	"time"

	"github.com/tomtom215/cohortpulse/internal/models"
)

func ord(t *testing.T, date, customer string, amount float64) models.Order {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	return models.Order{OrderDate: d, CustomerID: customer, Amount: amount}
}

func TestMonthSub(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from string
		to   string
		want int
	}{
		{"same month", "2024-01-15", "2024-01-31", 0},
		{"adjacent days across months", "2024-01-31", "2024-02-01", 1},
		{"year boundary", "2023-12-05", "2024-01-05", 1},
		{"multi year", "2022-03-01", "2024-03-01", 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			from, _ := time.Parse("2006-01-02", tt.from)
			to, _ := time.Parse("2006-01-02", tt.to)
			if got := MonthOf(to).Sub(MonthOf(from)); got != tt.want {
				t.Errorf("Sub() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAssignCohorts(t *testing.T) {
	t.Parallel()

	orders := []models.Order{
		ord(t, "2024-02-10", "C1", 50),
		ord(t, "2024-01-15", "C1", 100),
		ord(t, "2024-02-20", "C2", 200),
	}

	rows := AssignCohorts(orders)
	if len(rows) != 3 {
		t.Fatalf("AssignCohorts() returned %d rows, want 3", len(rows))
	}

	// Input order is preserved; cohort comes from the earliest order
	// regardless of position.
	if got := rows[0].CohortMonth.String(); got != "2024-01" {
		t.Errorf("C1 cohort = %s, want 2024-01", got)
	}
	if rows[0].Offset != 1 {
		t.Errorf("C1 February order offset = %d, want 1", rows[0].Offset)
	}
	if rows[1].Offset != 0 {
		t.Errorf("C1 January order offset = %d, want 0", rows[1].Offset)
	}
	if got := rows[2].CohortMonth.String(); got != "2024-02" {
		t.Errorf("C2 cohort = %s, want 2024-02", got)
	}
	if rows[2].Offset != 0 {
		t.Errorf("C2 offset = %d, want 0", rows[2].Offset)
	}
}

func TestAssignCohortsEmpty(t *testing.T) {
	t.Parallel()

	if rows := AssignCohorts(nil); len(rows) != 0 {
		t.Errorf("AssignCohorts(nil) returned %d rows, want 0", len(rows))
	}
}
