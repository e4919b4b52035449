// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package analytics

import (
	"github.com/tomtom215/cohortpulse/internal/models"
)

// BuildSummary computes dataset-level statistics. Requires at least
// one row; the analyzer rejects empty datasets before this point.
func BuildSummary(rows []CohortRow) models.Summary {
	customers := make(map[string]struct{})
	cohorts := make(map[string]struct{})
	var revenue float64
	minDate := rows[0].Order.OrderDate
	maxDate := rows[0].Order.OrderDate

	for _, r := range rows {
		customers[r.Order.CustomerID] = struct{}{}
		cohorts[r.CohortMonth.String()] = struct{}{}
		revenue += r.Order.Amount
		if r.Order.OrderDate.Before(minDate) {
			minDate = r.Order.OrderDate
		}
		if r.Order.OrderDate.After(maxDate) {
			maxDate = r.Order.OrderDate
		}
	}

	return models.Summary{
		TotalOrders:     len(rows),
		UniqueCustomers: len(customers),
		TotalRevenue:    revenue,
		DateRange:       minDate.Format("2006-01-02") + " to " + maxDate.Format("2006-01-02"),
		NumCohorts:      len(cohorts),
	}
}

// BuildMetrics computes derived business metrics. Every ratio with a
// zero denominator reports 0.
func BuildMetrics(rows []CohortRow) models.Metrics {
	var revenue float64
	ordersPerCustomer := make(map[string]int)
	for _, r := range rows {
		revenue += r.Order.Amount
		ordersPerCustomer[r.Order.CustomerID]++
	}

	totalOrders := len(rows)
	uniqueCustomers := len(ordersPerCustomer)
	repeat := 0
	for _, n := range ordersPerCustomer {
		if n > 1 {
			repeat++
		}
	}

	m := models.Metrics{
		RepeatCustomers:  repeat,
		OneTimeCustomers: uniqueCustomers - repeat,
	}
	if uniqueCustomers > 0 {
		m.LTV = revenue / float64(uniqueCustomers)
		m.RepeatRate = float64(repeat) / float64(uniqueCustomers) * 100
		m.AvgOrdersPerCustomer = float64(totalOrders) / float64(uniqueCustomers)
	}
	if totalOrders > 0 {
		m.AOV = revenue / float64(totalOrders)
	}
	return m
}
