// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package analytics

import (
	"github.com/tomtom215/cohortpulse/internal/dataset"
	"github.com/tomtom215/cohortpulse/internal/models"
)

// Analyzer runs the full cohort pipeline over a parsed order dataset.
// It is stateless apart from the insight thresholds and safe for
// concurrent use.
type Analyzer struct {
	insights *InsightEngine
}

// NewAnalyzer returns an analyzer with the given insight thresholds.
func NewAnalyzer(thresholds InsightThresholds) *Analyzer {
	return &Analyzer{insights: NewInsightEngine(thresholds)}
}

// Analyze computes every derived table, metric and insight for the
// given orders. The stages run strictly in sequence because each
// depends on the cohort assignment; there is no partial result on
// failure.
func (a *Analyzer) Analyze(orders []models.Order) (*models.Analysis, error) {
	if len(orders) == 0 {
		return nil, &dataset.ValidationError{Message: "File contains no data rows"}
	}

	rows := AssignCohorts(orders)
	summary := BuildSummary(rows)
	metrics := BuildMetrics(rows)
	retention := BuildRetentionTable(rows)
	sizes := CohortSizes(rows)

	return &models.Analysis{
		Summary:               summary,
		Metrics:               metrics,
		Insights:              a.insights.Generate(summary, metrics, retention, sizes),
		RetentionTable:        retention,
		RevenueTable:          BuildRevenueTable(rows),
		CustomerTable:         BuildCustomerCountTable(rows),
		RevenueRetentionTable: BuildRevenueRetentionTable(rows),
		CohortSizes:           sizes,
		RetentionCurve:        RetentionCurve(rows),
		FrequencySegments:     FrequencySegments(rows),
		CohortRevenue:         CohortRevenues(rows),
	}, nil
}
