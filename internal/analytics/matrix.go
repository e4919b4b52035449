// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/cohortpulse/internal/models"
)

// baselineCol is the offset-0 column; it is the denominator of both
// ratio tables.
const baselineCol = "Month 0"

// tableAxes derives the pivot axes from annotated rows: cohort months
// sorted ascending as row keys, and the sorted distinct observed
// offsets as "Month N" column keys. Columns cover only offsets that
// occur somewhere in the data, not a contiguous 0..max range.
func tableAxes(rows []CohortRow) (rowKeys, colKeys []string) {
	cohorts := make(map[string]struct{})
	offsets := make(map[int]struct{})
	for _, r := range rows {
		cohorts[r.CohortMonth.String()] = struct{}{}
		offsets[r.Offset] = struct{}{}
	}

	rowKeys = make([]string, 0, len(cohorts))
	for c := range cohorts {
		rowKeys = append(rowKeys, c)
	}
	sort.Strings(rowKeys)

	offs := make([]int, 0, len(offsets))
	for o := range offsets {
		offs = append(offs, o)
	}
	sort.Ints(offs)
	colKeys = make([]string, len(offs))
	for i, o := range offs {
		colKeys[i] = fmt.Sprintf("Month %d", o)
	}
	return rowKeys, colKeys
}

// countPivot builds the distinct-customer pivot: cell (cohort, offset)
// holds the number of unique customers of that cohort active at that
// offset. Cells with no activity stay missing.
func countPivot(rows []CohortRow) *models.Table {
	rowKeys, colKeys := tableAxes(rows)
	t := models.NewTable(rowKeys, colKeys)

	seen := make(map[string]map[string]struct{})
	for _, r := range rows {
		key := r.CohortMonth.String() + "\x00" + fmt.Sprintf("Month %d", r.Offset)
		set, ok := seen[key]
		if !ok {
			set = make(map[string]struct{})
			seen[key] = set
		}
		if _, dup := set[r.Order.CustomerID]; dup {
			continue
		}
		set[r.Order.CustomerID] = struct{}{}
		row := r.CohortMonth.String()
		col := fmt.Sprintf("Month %d", r.Offset)
		v, _ := t.Get(row, col)
		t.Set(row, col, v+1)
	}
	return t
}

// revenuePivot builds the revenue-sum pivot without rounding, so that
// ratio tables divide exact sums rather than display-rounded values.
func revenuePivot(rows []CohortRow) *models.Table {
	rowKeys, colKeys := tableAxes(rows)
	t := models.NewTable(rowKeys, colKeys)
	for _, r := range rows {
		row := r.CohortMonth.String()
		col := fmt.Sprintf("Month %d", r.Offset)
		v, _ := t.Get(row, col)
		t.Set(row, col, v+r.Order.Amount)
	}
	return t
}

// ratioToBaseline divides every cell by its row's offset-0 cell and
// scales to percent, rounded to one decimal. A row whose baseline is
// missing or zero produces an all-missing row, never an error or a
// zero fill.
func ratioToBaseline(t *models.Table) *models.Table {
	out := models.NewTable(t.RowKeys, t.ColKeys)
	for _, row := range t.RowKeys {
		base, ok := t.Get(row, baselineCol)
		if !ok || base == 0 {
			continue
		}
		for _, col := range t.ColKeys {
			if v, ok := t.Get(row, col); ok {
				out.Set(row, col, round1(v/base*100))
			}
		}
	}
	return out
}

// BuildCustomerCountTable builds the cohort x offset table of distinct
// active customers.
func BuildCustomerCountTable(rows []CohortRow) *models.Table {
	return countPivot(rows)
}

// BuildRetentionTable builds the retention percentage table: each
// cohort's customer count per offset divided by its offset-0 count,
// as a percentage rounded to one decimal. Offset 0 is always 100.0
// for any cohort with at least one customer.
func BuildRetentionTable(rows []CohortRow) *models.Table {
	return ratioToBaseline(countPivot(rows))
}

// BuildRevenueTable builds the revenue table: total order amount per
// cohort per offset, rounded to two decimals.
func BuildRevenueTable(rows []CohortRow) *models.Table {
	t := revenuePivot(rows)
	out := models.NewTable(t.RowKeys, t.ColKeys)
	for _, row := range t.RowKeys {
		for _, col := range t.ColKeys {
			if v, ok := t.Get(row, col); ok {
				out.Set(row, col, round2(v))
			}
		}
	}
	return out
}

// BuildRevenueRetentionTable builds the revenue retention table: the
// percentage of each cohort's offset-0 revenue collected at each
// offset, rounded to one decimal.
func BuildRevenueRetentionTable(rows []CohortRow) *models.Table {
	return ratioToBaseline(revenuePivot(rows))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
