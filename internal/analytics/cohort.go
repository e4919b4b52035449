// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package analytics

import (
	"github.com/tomtom215/cohortpulse/internal/models"
)

// CohortRow is one order annotated with its customer's cohort: the
// calendar month of the customer's earliest order, the month of this
// order, and the whole-month offset between the two. Offset 0 is the
// acquisition month; the offset is never negative because the cohort
// month is by construction the customer's minimum.
type CohortRow struct {
	Order       models.Order
	CohortMonth Month
	OrderMonth  Month
	Offset      int
}

// AssignCohorts annotates every order with its customer's cohort.
// The cohort of a customer is the month of their earliest order across
// the whole dataset, so assignment requires two passes: one to find
// each customer's first month, one to compute per-order offsets.
// Input order is preserved.
func AssignCohorts(orders []models.Order) []CohortRow {
	first := make(map[string]Month, len(orders))
	for _, o := range orders {
		m := MonthOf(o.OrderDate)
		if cur, ok := first[o.CustomerID]; !ok || m.Before(cur) {
			first[o.CustomerID] = m
		}
	}

	rows := make([]CohortRow, len(orders))
	for i, o := range orders {
		cohort := first[o.CustomerID]
		orderMonth := MonthOf(o.OrderDate)
		rows[i] = CohortRow{
			Order:       o,
			CohortMonth: cohort,
			OrderMonth:  orderMonth,
			Offset:      orderMonth.Sub(cohort),
		}
	}
	return rows
}
