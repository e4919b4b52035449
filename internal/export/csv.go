// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/tomtom215/cohortpulse/internal/models"
)

// TableCSV renders a pivot table as CSV: an empty-headed index column,
// offset columns, one row per cohort, missing cells empty.
func TableCSV(t *models.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{""}, t.ColKeys...)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	record := make([]string, len(t.ColKeys)+1)
	for _, row := range t.RowKeys {
		record[0] = row
		for j, col := range t.ColKeys {
			if v, ok := t.Get(row, col); ok {
				record[j+1] = strconv.FormatFloat(v, 'f', -1, 64)
			} else {
				record[j+1] = ""
			}
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
