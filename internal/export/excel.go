// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

// Package export renders analysis results as downloadable artifacts:
// a multi-sheet XLSX workbook and per-table CSV. Formatting is a
// display concern only; the byte layout of the artifacts carries no
// analytical meaning.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tomtom215/cohortpulse/internal/models"
)

// workbookSheets fixes the sheet order of the exported workbook.
var workbookSheets = []struct {
	name  string
	table func(*models.Analysis) *models.Table
}{
	{"Customer Retention %", func(a *models.Analysis) *models.Table { return a.RetentionTable }},
	{"Customer Count", func(a *models.Analysis) *models.Table { return a.CustomerTable }},
	{"Revenue Retention %", func(a *models.Analysis) *models.Table { return a.RevenueRetentionTable }},
	{"Revenue $", func(a *models.Analysis) *models.Table { return a.RevenueTable }},
}

// Workbook renders the analysis tables as an XLSX workbook, one sheet
// per table. Row keys occupy the first column, offset columns follow,
// and missing cells stay blank so spreadsheet consumers can tell
// "not observable" from zero.
func Workbook(a *models.Analysis) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range workbookSheets {
		t := sheet.table(a)
		if t == nil {
			continue
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return nil, fmt.Errorf("rename sheet %q: %w", sheet.name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return nil, fmt.Errorf("create sheet %q: %w", sheet.name, err)
			}
		}
		if err := writeTable(f, sheet.name, t); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeTable fills one sheet with a pivot table: header row with
// offset columns, one row per cohort.
func writeTable(f *excelize.File, sheet string, t *models.Table) error {
	for j, col := range t.ColKeys {
		cell, err := excelize.CoordinatesToCellName(j+2, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	for i, row := range t.RowKeys {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, row); err != nil {
			return err
		}
		for j, col := range t.ColKeys {
			v, ok := t.Get(row, col)
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+2, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
