// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package models

import "time"

// Claim represents a single validated payment row from an uploaded
// healthcare claims dataset. One claim may appear on multiple rows
// (one per payment event); BilledAmount is repeated on every row for
// the same ClaimID and must be deduplicated before gross totals.
//
// Fields:
//   - ClaimID: Claim identifier shared by all payment rows of a claim
//   - Payer: Paying organization (insurer, program, self-pay)
//   - ServiceType: Category of the rendered service
//   - ServiceDate: Date of service (determines the DOS month bucket)
//   - DatePaid: Date the payment posted (determines the payment month)
//   - BilledAmount: Gross charge for the claim
//   - AmountPaid: Amount collected by this payment row
type Claim struct {
	ClaimID      string    `json:"claim_id"`
	Payer        string    `json:"payer"`
	ServiceType  string    `json:"service_type"`
	ServiceDate  time.Time `json:"service_date"`
	DatePaid     time.Time `json:"date_paid"`
	BilledAmount float64   `json:"billed_amount"`
	AmountPaid   float64   `json:"amount_paid"`
}

// WaterfallRow is one service-month row of the payment waterfall
// matrix. Payments maps every observed payment month ("YYYY-MM") to
// the cash collected in that month for services rendered in DOSMonth.
// Months with no payment activity for this row hold an explicit 0,
// unlike the retention matrices where absence means "not observable".
type WaterfallRow struct {
	DOSMonth    string             `json:"dos_month"`
	GrossCharge float64            `json:"gross_charge"`
	Payments    map[string]float64 `json:"payments"`
}

// WaterfallTotals aggregates the waterfall across all service months:
// total gross charges (deduplicated by claim) and total cash per
// payment month.
type WaterfallTotals struct {
	GrossCharge float64            `json:"gross_charge"`
	Payments    map[string]float64 `json:"payments"`
}

// Waterfall is the full claims payment waterfall: one row per service
// month with gross charges and the cash collected in each subsequent
// payment month. An empty filter result has Matrix=[] and
// PaymentMonths=[] (never null) with zero totals.
type Waterfall struct {
	Matrix        []WaterfallRow  `json:"matrix"`
	PaymentMonths []string        `json:"payment_months"`
	Totals        WaterfallTotals `json:"totals"`
}

// UploadFilters lists the distinct filter values present in an
// uploaded claims dataset, sorted ascending.
type UploadFilters struct {
	Payers       []string `json:"payers"`
	ServiceTypes []string `json:"service_types"`
}

// UploadReceipt is returned after a successful claims upload. It
// carries the server-assigned upload identifier for subsequent
// waterfall queries, plus the unfiltered waterfall so clients can
// render immediately without a second round trip.
type UploadReceipt struct {
	UploadID string        `json:"upload_id"`
	Message  string        `json:"message"`
	Rows     int           `json:"rows"`
	Filters  UploadFilters `json:"filters"`
	Waterfall
}
