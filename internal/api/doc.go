// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

// Package api provides the HTTP layer: Chi routing, request
// validation, and handlers for the analysis and claims endpoints.
//
// All endpoints return models.APIResponse envelopes. Uploads are
// bounded by the configured size limit and parsed synchronously; the
// orders pipeline is stateless while the claims pipeline stores
// parsed rows for follow-up waterfall queries.
package api
