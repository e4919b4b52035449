// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package api

// WaterfallRequest carries the parameters of a waterfall query.
// UploadID comes from the URL path; the filters are optional query
// parameters matched exactly against the stored claim values.
type WaterfallRequest struct {
	UploadID    string `validate:"required,uuid4"`
	Payer       string `validate:"omitempty,max=255"`
	ServiceType string `validate:"omitempty,max=255"`
}

// ExportRequest carries the parameters of an analysis export.
// Format selects the output encoding; Table selects which pivot table
// a CSV export renders and is ignored for workbook exports.
type ExportRequest struct {
	Format string `validate:"required,oneof=xlsx csv"`
	Table  string `validate:"omitempty,oneof=retention revenue customers revenue_retention"`
}
