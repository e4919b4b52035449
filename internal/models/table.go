// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package models

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Table is a cohort pivot table: rows are cohort months ("2024-01"),
// columns are month offsets ("Month 0", "Month 1", ...), and each cell
// is either a value or missing. Missing is not zero: a cohort that
// cannot yet be observed at an offset has no cell at all and
// serializes as JSON null, while a computed zero serializes as 0.
//
// Table implements json.Marshaler to preserve row and column order.
// A plain map would marshal keys alphabetically, which breaks offset
// ordering once columns reach "Month 10" (it sorts before "Month 2").
type Table struct {
	RowKeys []string
	ColKeys []string

	cells map[string]map[string]float64
}

// NewTable returns an empty Table with the given row and column order.
// The key slices are retained, not copied.
func NewTable(rowKeys, colKeys []string) *Table {
	return &Table{
		RowKeys: rowKeys,
		ColKeys: colKeys,
		cells:   make(map[string]map[string]float64, len(rowKeys)),
	}
}

// Set stores a cell value. Unset cells remain missing.
func (t *Table) Set(row, col string, v float64) {
	r, ok := t.cells[row]
	if !ok {
		r = make(map[string]float64, len(t.ColKeys))
		t.cells[row] = r
	}
	r[col] = v
}

// Get returns the cell value and whether it is present.
func (t *Table) Get(row, col string) (float64, bool) {
	v, ok := t.cells[row][col]
	return v, ok
}

// Row returns the values of one row in column order, with nil for
// missing cells.
func (t *Table) Row(row string) []*float64 {
	out := make([]*float64, len(t.ColKeys))
	for i, col := range t.ColKeys {
		if v, ok := t.cells[row][col]; ok {
			v := v
			out[i] = &v
		}
	}
	return out
}

// MarshalJSON encodes the table as an object of row objects, rows in
// RowKeys order and cells in ColKeys order, with null for missing
// cells:
//
//	{"2024-01":{"Month 0":100.0,"Month 1":50.0,"Month 2":null},...}
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, row := range t.RowKeys {
		if i > 0 {
			buf.WriteByte(',')
		}
		rk, err := json.Marshal(row)
		if err != nil {
			return nil, err
		}
		buf.Write(rk)
		buf.WriteString(":{")
		for j, col := range t.ColKeys {
			if j > 0 {
				buf.WriteByte(',')
			}
			ck, err := json.Marshal(col)
			if err != nil {
				return nil, err
			}
			buf.Write(ck)
			buf.WriteByte(':')
			if v, ok := t.cells[row][col]; ok {
				vb, err := json.Marshal(v)
				if err != nil {
					return nil, err
				}
				buf.Write(vb)
			} else {
				buf.WriteString("null")
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
