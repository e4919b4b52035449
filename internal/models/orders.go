// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package models

import "time"

// Order represents a single validated transaction row from an uploaded
// order dataset. CustomerID is always a trimmed string, even when the
// source column held numeric identifiers, so that "42" and 42 map to
// the same customer.
//
// Fields:
//   - OrderDate: Transaction timestamp (date precision is sufficient;
//     cohort math only uses the calendar month)
//   - CustomerID: Opaque customer identifier
//   - Amount: Order amount (validated finite and non-negative)
type Order struct {
	OrderDate  time.Time `json:"order_date"`
	CustomerID string    `json:"customer_id"`
	Amount     float64   `json:"order_amount"`
}
