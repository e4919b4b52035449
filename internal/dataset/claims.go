// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package dataset

import (
	"fmt"
	"strings"

	"github.com/tomtom215/cohortpulse/internal/models"
)

// claimColumns are the required columns of a claims dataset, in
// reporting order.
var claimColumns = []string{
	"amount_paid",
	"billed_amount",
	"claim_id",
	"date_paid",
	"payer",
	"service_date",
	"service_type",
}

// ParseClaims validates a frame as a claims dataset and returns the
// typed rows. Validation runs column by column (service dates, paid
// dates, billed amounts, paid amounts) so the reported count always
// refers to a single failing field.
func ParseClaims(f *Frame) ([]models.Claim, error) {
	if missing := f.missingColumns(claimColumns); len(missing) > 0 {
		return nil, &ValidationError{
			Message: "Missing required columns: " + strings.Join(missing, ", "),
			Details: map[string]interface{}{"columns": missing},
		}
	}

	claimCol := f.Column("claim_id")
	payerCol := f.Column("payer")
	svcTypeCol := f.Column("service_type")
	svcDateCol := f.Column("service_date")
	paidDateCol := f.Column("date_paid")
	billedCol := f.Column("billed_amount")
	paidCol := f.Column("amount_paid")

	checks := []struct {
		col     int
		isDate  bool
		subject string
	}{
		{svcDateCol, true, "invalid service dates"},
		{paidDateCol, true, "invalid paid dates"},
		{billedCol, false, "invalid billed amounts"},
		{paidCol, false, "invalid paid amounts"},
	}
	for _, c := range checks {
		invalid := 0
		for _, row := range f.Rows {
			cell := f.cell(row, c.col)
			if c.isDate {
				if _, ok := parseDate(cell); !ok {
					invalid++
				}
			} else {
				if _, ok := parseAmount(cell); !ok {
					invalid++
				}
			}
		}
		if invalid > 0 {
			return nil, &ValidationError{
				Message: fmt.Sprintf("Found %d rows with %s", invalid, c.subject),
				Details: map[string]interface{}{"rows": invalid},
			}
		}
	}

	claims := make([]models.Claim, 0, len(f.Rows))
	for _, row := range f.Rows {
		svcDate, _ := parseDate(f.cell(row, svcDateCol))
		paidDate, _ := parseDate(f.cell(row, paidDateCol))
		billed, _ := parseAmount(f.cell(row, billedCol))
		paid, _ := parseAmount(f.cell(row, paidCol))
		claims = append(claims, models.Claim{
			ClaimID:      f.cell(row, claimCol),
			Payer:        f.cell(row, payerCol),
			ServiceType:  f.cell(row, svcTypeCol),
			ServiceDate:  svcDate,
			DatePaid:     paidDate,
			BilledAmount: billed,
			AmountPaid:   paid,
		})
	}
	return claims, nil
}
