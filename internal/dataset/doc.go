// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

// Package dataset parses uploaded CSV files into validated domain
// records. Parsing is strict about data quality but lenient about
// presentation: header names are case- and whitespace-insensitive,
// several common date layouts are accepted, and identifier columns
// are coerced to trimmed strings.
//
// Validation failures are reported as a single *ValidationError per
// upload: either one message listing every missing column, or one
// message with the count of rows carrying an unparsable field. There
// is no partial-success mode; a dataset either parses in full or the
// upload is rejected.
package dataset
