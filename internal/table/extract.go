package table

import (
	"errors"
	"fmt"

	"table_spider/internal/models"

	"github.com/PuerkitoBio/goquery"
)

var ErrStructure = errors.New("unexpected table structure")

// ExtractRows reads the direct <tr> children of the table's first
// <tbody>, taking the text of each direct <td> child. Cell text is the
// raw concatenation of descendant text nodes; whitespace is kept.
// <th> cells are skipped, so a header row in the body comes out as a
// row of only its <td> cells, possibly empty.
func ExtractRows(tbl *goquery.Selection) ([]models.RowRecord, error) {
	body := tbl.ChildrenFiltered("tbody").First()
	if body.Length() == 0 {
		return nil, fmt.Errorf("%w: table has no tbody", ErrStructure)
	}

	rows := body.ChildrenFiltered("tr")
	records := make([]models.RowRecord, 0, rows.Length())
	rows.Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td")
		record := make(models.RowRecord, 0, cells.Length())
		cells.Each(func(_ int, td *goquery.Selection) {
			record = append(record, td.Text())
		})
		records = append(records, record)
	})

	return records, nil
}

// Assemble wraps rows into a TabularResult without padding or
// conversion. It never fails.
func Assemble(rows []models.RowRecord) *models.TabularResult {
	return models.NewTabularResult(rows)
}
