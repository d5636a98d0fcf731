package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"gravemap/internal/poi"
)

const maxColW = 24

// refreshAttrs rebuilds the table from the loaded graves: one row per grave,
// one column per attribute key seen across the set.
func (m *Model) refreshAttrs() {
	cols, rows := buildAttributes(m.points)
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no graves loaded"
		return
	}
	tcols := make([]table.Column, 0, len(cols))
	for i, c := range cols {
		w := len(c) + 2
		for _, r := range rows {
			w = max(w, len([]rune(r[i]))+2)
		}
		tcols = append(tcols, table.Column{Title: c, Width: min(w, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		trows = append(trows, table.Row(r))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
	m.status = fmt.Sprintf("attributes: %d graves (enter: route, esc: close)", len(rows))
}

// buildAttributes unions attribute keys in first-seen order and renders one
// row per point: index, name, attributes, geohash.
func buildAttributes(pts []poi.GeoPoint) ([]string, [][]string) {
	var keys []string
	seen := map[string]bool{}
	for _, p := range pts {
		for _, k := range p.AttrKeys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	cols := append([]string{"#", "name"}, keys...)
	cols = append(cols, "geohash")
	rows := make([][]string, 0, len(pts))
	for i, p := range pts {
		row := make([]string, 0, len(cols))
		row = append(row, fmt.Sprintf("%d", i+1), p.Label)
		for _, k := range keys {
			row = append(row, p.Attr(k))
		}
		row = append(row, p.Geohash(7))
		rows = append(rows, row)
	}
	return cols, rows
}
