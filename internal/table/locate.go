package table

import (
	"errors"
	"fmt"
	"strings"

	"table_spider/internal/config"

	"github.com/PuerkitoBio/goquery"
)

var ErrNotFound = errors.New("table not found")

// Locate returns the table at index among all tables under root, in
// document order. Nested tables count as well.
//
// Selection is purely positional: if the page reorders its tables, a
// different table is returned without any error.
func Locate(root *goquery.Selection, index int) (*goquery.Selection, error) {
	return Ordinal(index).Select(root)
}

// Selector chooses one table from a parsed tree.
type Selector interface {
	Select(root *goquery.Selection) (*goquery.Selection, error)
	String() string
}

// SelectorFromConfig returns the ordinal selector unless css or caption
// filtering was configured.
func SelectorFromConfig(cfg config.TableConfig) Selector {
	switch {
	case cfg.CSS != "":
		return CSS(cfg.CSS, cfg.Index)
	case cfg.Caption != "":
		return Caption(cfg.Caption, cfg.Index)
	default:
		return Ordinal(cfg.Index)
	}
}

type ordinal int

func Ordinal(index int) Selector {
	return ordinal(index)
}

func (o ordinal) Select(root *goquery.Selection) (*goquery.Selection, error) {
	return pick(root.Find("table"), int(o), o.String())
}

func (o ordinal) String() string {
	return fmt.Sprintf("table[%d]", int(o))
}

type cssSelector struct {
	selector string
	index    int
}

// CSS selects the index-th element matching selector that is itself a
// table.
func CSS(selector string, index int) Selector {
	return cssSelector{selector: selector, index: index}
}

func (c cssSelector) Select(root *goquery.Selection) (*goquery.Selection, error) {
	return pick(root.Find(c.selector).Filter("table"), c.index, c.String())
}

func (c cssSelector) String() string {
	return fmt.Sprintf("%s[%d]", c.selector, c.index)
}

type captionSelector struct {
	text  string
	index int
}

// Caption selects the index-th table whose <caption> contains text.
func Caption(text string, index int) Selector {
	return captionSelector{text: text, index: index}
}

func (c captionSelector) Select(root *goquery.Selection) (*goquery.Selection, error) {
	candidates := root.Find("table").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.ChildrenFiltered("caption").Text(), c.text)
	})
	return pick(candidates, c.index, c.String())
}

func (c captionSelector) String() string {
	return fmt.Sprintf("table[caption~=%q][%d]", c.text, c.index)
}

func pick(candidates *goquery.Selection, index int, desc string) (*goquery.Selection, error) {
	count := candidates.Length()
	if index < 0 || index >= count {
		return nil, fmt.Errorf("%w: %s, document has %d matching tables", ErrNotFound, desc, count)
	}
	return candidates.Eq(index), nil
}
