// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package models

// Insight category values. Every generated insight carries exactly one.
const (
	InsightPositive = "positive"
	InsightWarning  = "warning"
	InsightInfo     = "info"
)

// Insight is a short rule-triggered observation derived from computed
// metrics, for display alongside the cohort tables.
type Insight struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Summary holds dataset-level statistics for an analyzed order file.
//
// Fields:
//   - TotalOrders: Number of valid order rows
//   - UniqueCustomers: Distinct customer count
//   - TotalRevenue: Sum of all order amounts
//   - DateRange: Earliest and latest order date, "YYYY-MM-DD to YYYY-MM-DD"
//   - NumCohorts: Number of distinct cohort months
type Summary struct {
	TotalOrders     int     `json:"total_orders"`
	UniqueCustomers int     `json:"unique_customers"`
	TotalRevenue    float64 `json:"total_revenue"`
	DateRange       string  `json:"date_range"`
	NumCohorts      int     `json:"num_cohorts"`
}

// Metrics holds derived business metrics. Ratios with a zero
// denominator are reported as 0, never NaN or an error.
//
// Fields:
//   - LTV: Total revenue divided by unique customers
//   - AOV: Total revenue divided by total orders
//   - RepeatRate: Percentage of customers with more than one order
//   - AvgOrdersPerCustomer: Total orders divided by unique customers
//   - RepeatCustomers: Customers with more than one order
//   - OneTimeCustomers: Customers with exactly one order
type Metrics struct {
	LTV                  float64 `json:"ltv"`
	AOV                  float64 `json:"aov"`
	RepeatRate           float64 `json:"repeat_rate"`
	AvgOrdersPerCustomer float64 `json:"avg_orders_per_customer"`
	RepeatCustomers      int     `json:"repeat_customers"`
	OneTimeCustomers     int     `json:"one_time_customers"`
}

// CohortSize is one point of the cohort-size series: how many new
// customers first transacted in a given month.
type CohortSize struct {
	CohortMonth  string `json:"cohort_month"`
	NewCustomers int    `json:"new_customers"`
}

// RetentionPoint is one point of the retention curve: the mean
// retention percentage across all cohorts at a given month offset,
// skipping cohorts with no observable cell at that offset.
type RetentionPoint struct {
	Month     int     `json:"month"`
	Retention float64 `json:"retention"`
}

// FrequencySegment groups customers by purchase count ("1 order",
// "2 orders", "3-4 orders", "5+ orders") with per-segment revenue
// metrics. Segments with no customers are omitted.
type FrequencySegment struct {
	Segment      string  `json:"segment"`
	Customers    int     `json:"customers"`
	TotalRevenue float64 `json:"total_revenue"`
	AvgRevenue   float64 `json:"avg_revenue"`
	AvgOrders    float64 `json:"avg_orders"`
	CustomerPct  float64 `json:"customer_pct"`
}

// CohortRevenue holds total and per-customer revenue for one cohort.
type CohortRevenue struct {
	CohortMonth        string  `json:"cohort_month"`
	TotalRevenue       float64 `json:"total_revenue"`
	Customers          int     `json:"customers"`
	RevenuePerCustomer float64 `json:"revenue_per_customer"`
}

// Analysis is the complete result of one cohort analysis run: the four
// pivot tables, summary statistics, derived metrics, series for
// charting, segments, and exactly six insights.
type Analysis struct {
	Summary               Summary            `json:"summary"`
	Metrics               Metrics            `json:"metrics"`
	Insights              []Insight          `json:"insights"`
	RetentionTable        *Table             `json:"retention_table"`
	RevenueTable          *Table             `json:"revenue_table"`
	CustomerTable         *Table             `json:"customer_table"`
	RevenueRetentionTable *Table             `json:"revenue_retention_table"`
	CohortSizes           []CohortSize       `json:"cohort_sizes"`
	RetentionCurve        []RetentionPoint   `json:"retention_curve"`
	FrequencySegments     []FrequencySegment `json:"frequency_segments"`
	CohortRevenue         []CohortRevenue    `json:"cohort_revenue"`
}
