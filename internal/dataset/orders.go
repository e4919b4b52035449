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

// orderColumns are the required columns of an order dataset, in
// reporting order.
var orderColumns = []string{"customer_id", "order_amount", "order_date"}

// ParseOrders validates a frame as an order dataset and returns the
// typed rows. The whole column is validated before any row is
// accepted: a single bad date or amount anywhere rejects the upload
// with the count of offending rows.
func ParseOrders(f *Frame) ([]models.Order, error) {
	if missing := f.missingColumns(orderColumns); len(missing) > 0 {
		return nil, &ValidationError{
			Message: "Missing required columns: " + strings.Join(missing, ", "),
			Details: map[string]interface{}{"columns": missing},
		}
	}

	dateCol := f.Column("order_date")
	custCol := f.Column("customer_id")
	amtCol := f.Column("order_amount")

	invalidDates := 0
	for _, row := range f.Rows {
		if _, ok := parseDate(f.cell(row, dateCol)); !ok {
			invalidDates++
		}
	}
	if invalidDates > 0 {
		return nil, &ValidationError{
			Message: fmt.Sprintf("Found %d rows with invalid dates", invalidDates),
			Details: map[string]interface{}{"rows": invalidDates},
		}
	}

	invalidAmounts := 0
	for _, row := range f.Rows {
		v, ok := parseAmount(f.cell(row, amtCol))
		if !ok || v < 0 {
			invalidAmounts++
		}
	}
	if invalidAmounts > 0 {
		return nil, &ValidationError{
			Message: fmt.Sprintf("Found %d rows with invalid order amounts", invalidAmounts),
			Details: map[string]interface{}{"rows": invalidAmounts},
		}
	}

	orders := make([]models.Order, 0, len(f.Rows))
	for _, row := range f.Rows {
		date, _ := parseDate(f.cell(row, dateCol))
		amount, _ := parseAmount(f.cell(row, amtCol))
		orders = append(orders, models.Order{
			OrderDate:  date,
			CustomerID: f.cell(row, custCol),
			Amount:     amount,
		})
	}
	return orders, nil
}
