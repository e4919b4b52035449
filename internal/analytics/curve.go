// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package analytics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/cohortpulse/internal/models"
)

// CohortSizes returns new-customer counts per cohort month, sorted by
// month ascending.
func CohortSizes(rows []CohortRow) []models.CohortSize {
	counts := make(map[string]map[string]struct{})
	for _, r := range rows {
		m := r.CohortMonth.String()
		set, ok := counts[m]
		if !ok {
			set = make(map[string]struct{})
			counts[m] = set
		}
		set[r.Order.CustomerID] = struct{}{}
	}

	months := make([]string, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]models.CohortSize, len(months))
	for i, m := range months {
		out[i] = models.CohortSize{CohortMonth: m, NewCustomers: len(counts[m])}
	}
	return out
}

// RetentionCurve averages the retention percentage across cohorts at
// each observed month offset, skipping cohorts with no observable cell
// at that offset. Values are unrounded.
func RetentionCurve(rows []CohortRow) []models.RetentionPoint {
	t := BuildCustomerCountTable(rows)

	out := make([]models.RetentionPoint, 0, len(t.ColKeys))
	for _, col := range t.ColKeys {
		offset, err := strconv.Atoi(strings.TrimPrefix(col, "Month "))
		if err != nil {
			continue
		}
		var sum float64
		n := 0
		for _, row := range t.RowKeys {
			base, ok := t.Get(row, baselineCol)
			if !ok || base == 0 {
				continue
			}
			if v, ok := t.Get(row, col); ok {
				sum += v / base * 100
				n++
			}
		}
		if n == 0 {
			continue
		}
		out = append(out, models.RetentionPoint{Month: offset, Retention: sum / float64(n)})
	}
	return out
}
