// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package analytics

import (
	"testing"

	"github.com/tomtom215/cohortpulse/internal/models"
)

func TestBuildSummary(t *testing.T) {
	t.Parallel()

	s := BuildSummary(twoCohorts(t))

	if s.TotalOrders != 3 {
		t.Errorf("TotalOrders = %d, want 3", s.TotalOrders)
	}
	if s.UniqueCustomers != 2 {
		t.Errorf("UniqueCustomers = %d, want 2", s.UniqueCustomers)
	}
	if s.TotalRevenue != 350 {
		t.Errorf("TotalRevenue = %v, want 350", s.TotalRevenue)
	}
	if want := "2024-01-15 to 2024-02-20"; s.DateRange != want {
		t.Errorf("DateRange = %q, want %q", s.DateRange, want)
	}
	if s.NumCohorts != 2 {
		t.Errorf("NumCohorts = %d, want 2", s.NumCohorts)
	}
}

func TestBuildMetrics(t *testing.T) {
	t.Parallel()

	m := BuildMetrics(twoCohorts(t))

	if m.LTV != 175 {
		t.Errorf("LTV = %v, want 175", m.LTV)
	}
	if want := 350.0 / 3; m.AOV != want {
		t.Errorf("AOV = %v, want %v", m.AOV, want)
	}
	if m.RepeatRate != 50 {
		t.Errorf("RepeatRate = %v, want 50", m.RepeatRate)
	}
	if m.RepeatCustomers != 1 || m.OneTimeCustomers != 1 {
		t.Errorf("repeat/one-time = %d/%d, want 1/1", m.RepeatCustomers, m.OneTimeCustomers)
	}
	if want := 1.5; m.AvgOrdersPerCustomer != want {
		t.Errorf("AvgOrdersPerCustomer = %v, want %v", m.AvgOrdersPerCustomer, want)
	}
}

func TestBuildMetricsNoRepeats(t *testing.T) {
	t.Parallel()

	rows := AssignCohorts([]models.Order{
		ord(t, "2024-01-05", "C1", 10),
		ord(t, "2024-01-08", "C2", 20),
	})
	m := BuildMetrics(rows)

	if m.RepeatRate != 0 {
		t.Errorf("RepeatRate = %v, want 0", m.RepeatRate)
	}
	if m.RepeatCustomers != 0 || m.OneTimeCustomers != 2 {
		t.Errorf("repeat/one-time = %d/%d, want 0/2", m.RepeatCustomers, m.OneTimeCustomers)
	}
}

func TestBuildMetricsEmpty(t *testing.T) {
	t.Parallel()

	m := BuildMetrics(nil)
	if m.LTV != 0 || m.AOV != 0 || m.RepeatRate != 0 || m.AvgOrdersPerCustomer != 0 {
		t.Errorf("zero-denominator metrics = %+v, want all zero", m)
	}
}
