// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

// Package models defines the domain types shared across the analytics
// pipeline and the HTTP API: raw order and claim records, the pivot
// Table type with order-preserving JSON serialization, the full
// cohort Analysis result, the claims payment Waterfall, and the
// standardized API response envelope.
//
// All types in this package are plain data carriers with no behavior
// beyond serialization. Computation lives in internal/analytics.
package models
