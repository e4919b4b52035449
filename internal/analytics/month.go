// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package analytics

import (
	"fmt"
	"time"
)

// Month is a calendar month, the grain of all cohort math. Offsets
// between months are whole-month differences independent of the day
// component: an order on 2024-01-31 and one on 2024-02-01 are one
// month apart.
type Month struct {
	Year int
	Mon  time.Month
}

// MonthOf truncates a timestamp to its calendar month.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Mon: t.Month()}
}

// String formats the month as "YYYY-MM", the row key format of all
// pivot tables.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Mon))
}

// index is the month's absolute position on the calendar axis.
func (m Month) index() int {
	return m.Year*12 + int(m.Mon) - 1
}

// Sub returns the whole-month difference m - other.
func (m Month) Sub(other Month) int {
	return m.index() - other.index()
}

// Before reports whether m precedes other.
func (m Month) Before(other Month) bool {
	return m.index() < other.index()
}
