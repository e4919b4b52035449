// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package analytics

import (
	"sort"

	"github.com/tomtom215/cohortpulse/internal/models"
)

// frequencySegmentNames fixes the display order of the purchase
// frequency buckets.
var frequencySegmentNames = []string{"1 order", "2 orders", "3-4 orders", "5+ orders"}

func frequencySegmentOf(orderCount int) string {
	switch {
	case orderCount == 1:
		return "1 order"
	case orderCount == 2:
		return "2 orders"
	case orderCount <= 4:
		return "3-4 orders"
	default:
		return "5+ orders"
	}
}

// FrequencySegments buckets customers by order count and computes
// per-segment revenue metrics. Empty segments are omitted; the
// customer percentage is rounded to one decimal.
func FrequencySegments(rows []CohortRow) []models.FrequencySegment {
	type customerAgg struct {
		orders int
		spent  float64
	}
	perCustomer := make(map[string]*customerAgg)
	for _, r := range rows {
		agg, ok := perCustomer[r.Order.CustomerID]
		if !ok {
			agg = &customerAgg{}
			perCustomer[r.Order.CustomerID] = agg
		}
		agg.orders++
		agg.spent += r.Order.Amount
	}

	type segmentAgg struct {
		customers int
		revenue   float64
		orders    int
	}
	segments := make(map[string]*segmentAgg)
	for _, agg := range perCustomer {
		name := frequencySegmentOf(agg.orders)
		s, ok := segments[name]
		if !ok {
			s = &segmentAgg{}
			segments[name] = s
		}
		s.customers++
		s.revenue += agg.spent
		s.orders += agg.orders
	}

	total := len(perCustomer)
	out := make([]models.FrequencySegment, 0, len(frequencySegmentNames))
	for _, name := range frequencySegmentNames {
		s, ok := segments[name]
		if !ok {
			continue
		}
		fs := models.FrequencySegment{
			Segment:      name,
			Customers:    s.customers,
			TotalRevenue: s.revenue,
			AvgRevenue:   s.revenue / float64(s.customers),
			AvgOrders:    float64(s.orders) / float64(s.customers),
		}
		if total > 0 {
			fs.CustomerPct = round1(float64(s.customers) / float64(total) * 100)
		}
		out = append(out, fs)
	}
	return out
}

// CohortRevenues computes total and per-customer revenue for each
// cohort, sorted by cohort month ascending.
func CohortRevenues(rows []CohortRow) []models.CohortRevenue {
	type cohortAgg struct {
		revenue   float64
		customers map[string]struct{}
	}
	cohorts := make(map[string]*cohortAgg)
	for _, r := range rows {
		m := r.CohortMonth.String()
		agg, ok := cohorts[m]
		if !ok {
			agg = &cohortAgg{customers: make(map[string]struct{})}
			cohorts[m] = agg
		}
		agg.revenue += r.Order.Amount
		agg.customers[r.Order.CustomerID] = struct{}{}
	}

	months := make([]string, 0, len(cohorts))
	for m := range cohorts {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]models.CohortRevenue, len(months))
	for i, m := range months {
		agg := cohorts[m]
		out[i] = models.CohortRevenue{
			CohortMonth:        m,
			TotalRevenue:       agg.revenue,
			Customers:          len(agg.customers),
			RevenuePerCustomer: agg.revenue / float64(len(agg.customers)),
		}
	}
	return out
}
