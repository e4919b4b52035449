// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package analytics

import (
	"testing"

	"github.com/tomtom215/cohortpulse/internal/models"
)

func TestCohortSizes(t *testing.T) {
	t.Parallel()

	sizes := CohortSizes(twoCohorts(t))

	want := []models.CohortSize{
		{CohortMonth: "2024-01", NewCustomers: 1},
		{CohortMonth: "2024-02", NewCustomers: 1},
	}
	if len(sizes) != len(want) {
		t.Fatalf("CohortSizes() = %v, want %v", sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("sizes[%d] = %+v, want %+v", i, sizes[i], want[i])
		}
	}
}

func TestRetentionCurve(t *testing.T) {
	t.Parallel()

	// Cohort A retains 1 of 2 customers at month 1, cohort B has no
	// month 1 observation and is skipped at that offset.
	rows := AssignCohorts([]models.Order{
		ord(t, "2024-01-05", "A1", 10),
		ord(t, "2024-01-08", "A2", 10),
		ord(t, "2024-02-05", "A1", 10),
		ord(t, "2024-02-10", "B1", 10),
	})
	curve := RetentionCurve(rows)

	if len(curve) != 2 {
		t.Fatalf("curve has %d points, want 2", len(curve))
	}
	if curve[0].Month != 0 || curve[0].Retention != 100 {
		t.Errorf("point 0 = %+v, want month 0 at 100", curve[0])
	}
	if curve[1].Month != 1 || curve[1].Retention != 50 {
		t.Errorf("point 1 = %+v, want month 1 at 50", curve[1])
	}
}

func TestRetentionCurveUnrounded(t *testing.T) {
	t.Parallel()

	// 1 of 3 customers retained: 33.333..., not 33.3.
	rows := AssignCohorts([]models.Order{
		ord(t, "2024-01-05", "C1", 10),
		ord(t, "2024-01-06", "C2", 10),
		ord(t, "2024-01-07", "C3", 10),
		ord(t, "2024-02-05", "C1", 10),
	})
	curve := RetentionCurve(rows)

	if len(curve) != 2 {
		t.Fatalf("curve has %d points, want 2", len(curve))
	}
	if want := 1.0 / 3.0 * 100; curve[1].Retention != want {
		t.Errorf("month 1 retention = %v, want unrounded %v", curve[1].Retention, want)
	}
}
