// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

// Package analytics implements the cohort computation pipeline: cohort
// assignment by first-activity month, pivot tables for customer
// counts, retention percentages and revenue, derived business metrics,
// frequency segments, the claims payment waterfall, and the rule-based
// insight engine.
//
// All functions in this package are pure: they take parsed records and
// return derived structures without touching shared state, so
// independent analyses can run concurrently without coordination.
//
// Missing versus zero is load-bearing throughout. A cohort that cannot
// yet be observed at a month offset has no cell in the pivot tables
// (serialized as null), while the waterfall matrix holds explicit
// zeros for payment months with no cash. Conflating the two corrupts
// downstream ratio math.
package analytics
