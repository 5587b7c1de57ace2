package table

// Row is a single row of cell texts.
type Row struct {
	cells    []string
	isHeader bool
}

// AddCell appends a text cell to the row.
func (r *Row) AddCell(text string) *Row {
	r.cells = append(r.cells, text)
	return r
}
