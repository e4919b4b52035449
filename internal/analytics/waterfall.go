// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package analytics

import (
	"sort"

	"github.com/tomtom215/cohortpulse/internal/models"
)

// ClaimFilter narrows a waterfall to one payer and/or service type.
// Empty fields match everything.
type ClaimFilter struct {
	Payer       string
	ServiceType string
}

func (f ClaimFilter) matches(c models.Claim) bool {
	if f.Payer != "" && c.Payer != f.Payer {
		return false
	}
	if f.ServiceType != "" && c.ServiceType != f.ServiceType {
		return false
	}
	return true
}

// BuildWaterfall computes the claims payment waterfall for the rows
// matching the filter.
//
// Gross charges deduplicate by claim: a claim paid across five rows
// carries its billed amount five times in the input but contributes it
// once, bucketed under the service month of its first occurrence. Cash
// is summed per (service month, payment month) pair with no
// deduplication, and every row of the matrix carries an explicit
// amount (possibly 0) for every observed payment month.
//
// A filter matching nothing yields the canonical empty shape: empty
// matrix and payment month list, zero totals.
func BuildWaterfall(claims []models.Claim, filter ClaimFilter) models.Waterfall {
	grossByDOS := make(map[string]float64)
	seenClaims := make(map[string]struct{})
	cash := make(map[string]map[string]float64)
	payMonthSet := make(map[string]struct{})

	for _, c := range claims {
		if !filter.matches(c) {
			continue
		}
		dos := MonthOf(c.ServiceDate).String()
		pay := MonthOf(c.DatePaid).String()

		if _, dup := seenClaims[c.ClaimID]; !dup {
			seenClaims[c.ClaimID] = struct{}{}
			grossByDOS[dos] += c.BilledAmount
		}

		row, ok := cash[dos]
		if !ok {
			row = make(map[string]float64)
			cash[dos] = row
		}
		row[pay] += c.AmountPaid
		payMonthSet[pay] = struct{}{}
	}

	if len(cash) == 0 {
		return models.Waterfall{
			Matrix:        []models.WaterfallRow{},
			PaymentMonths: []string{},
			Totals: models.WaterfallTotals{
				GrossCharge: 0,
				Payments:    map[string]float64{},
			},
		}
	}

	payMonths := make([]string, 0, len(payMonthSet))
	for m := range payMonthSet {
		payMonths = append(payMonths, m)
	}
	sort.Strings(payMonths)

	dosMonths := make([]string, 0, len(cash))
	for m := range cash {
		dosMonths = append(dosMonths, m)
	}
	sort.Strings(dosMonths)

	matrix := make([]models.WaterfallRow, 0, len(dosMonths))
	totals := models.WaterfallTotals{Payments: make(map[string]float64, len(payMonths))}
	for _, pay := range payMonths {
		totals.Payments[pay] = 0
	}

	for _, dos := range dosMonths {
		row := models.WaterfallRow{
			DOSMonth:    dos,
			GrossCharge: grossByDOS[dos],
			Payments:    make(map[string]float64, len(payMonths)),
		}
		for _, pay := range payMonths {
			v := cash[dos][pay]
			row.Payments[pay] = v
			totals.Payments[pay] += v
		}
		totals.GrossCharge += grossByDOS[dos]
		matrix = append(matrix, row)
	}

	return models.Waterfall{
		Matrix:        matrix,
		PaymentMonths: payMonths,
		Totals:        totals,
	}
}

// Payers returns the sorted distinct non-empty payers in the dataset.
func Payers(claims []models.Claim) []string {
	return distinct(claims, func(c models.Claim) string { return c.Payer })
}

// ServiceTypes returns the sorted distinct non-empty service types in
// the dataset.
func ServiceTypes(claims []models.Claim) []string {
	return distinct(claims, func(c models.Claim) string { return c.ServiceType })
}

func distinct(claims []models.Claim, key func(models.Claim) string) []string {
	set := make(map[string]struct{})
	for _, c := range claims {
		if k := key(c); k != "" {
			set[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
