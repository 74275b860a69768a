package models

// RawDocument is the payload of a single fetch. A non-2xx StatusCode is
// carried through as-is.
type RawDocument struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// RowRecord holds the text of one row's data cells, in order. Rows of
// one table may differ in length.
type RowRecord []string

// TabularResult is a positional grid of text cells. It has no column
// names and rows are not padded to a common width.
type TabularResult struct {
	rows []RowRecord
}

func NewTabularResult(rows []RowRecord) *TabularResult {
	return &TabularResult{rows: rows}
}

func (t *TabularResult) RowCount() int {
	return len(t.rows)
}

// Lookup returns the cell at (row, col) and whether it exists.
func (t *TabularResult) Lookup(row, col int) (string, bool) {
	if row < 0 || row >= len(t.rows) {
		return "", false
	}
	r := t.rows[row]
	if col < 0 || col >= len(r) {
		return "", false
	}
	return r[col], true
}

// Cell returns the cell at (row, col), or "" when it does not exist.
func (t *TabularResult) Cell(row, col int) string {
	v, _ := t.Lookup(row, col)
	return v
}

func (t *TabularResult) Row(row int) RowRecord {
	if row < 0 || row >= len(t.rows) {
		return nil
	}
	return t.rows[row]
}

func (t *TabularResult) Rows() []RowRecord {
	return t.rows
}

// MaxWidth is the length of the longest row.
func (t *TabularResult) MaxWidth() int {
	width := 0
	for _, r := range t.rows {
		if len(r) > width {
			width = len(r)
		}
	}
	return width
}
