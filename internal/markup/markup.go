// Package markup turns a fetched payload into a navigable HTML tree.
//
// The payload is first decoded to UTF-8 the way browsers do it: byte
// order mark, then the Content-Type charset, then a <meta> prescan,
// then a UTF-8/windows-1252 guess. Parsing follows the HTML5 algorithm,
// so broken markup is repaired rather than rejected: unclosed cells are
// closed, and rows placed directly under <table> get an implicit
// <tbody>. The only rejected inputs are payloads with nothing to parse.
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"table_spider/internal/models"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

var ErrParse = errors.New("parse error")

func Parse(doc *models.RawDocument) (*goquery.Document, error) {
	if doc == nil || len(bytes.TrimSpace(doc.Body)) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrParse)
	}

	text, err := decode(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if bytes.IndexByte(text, 0) >= 0 {
		return nil, fmt.Errorf("%w: payload is not text", ErrParse)
	}

	tree, err := goquery.NewDocumentFromReader(bytes.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return tree, nil
}

func decode(doc *models.RawDocument) ([]byte, error) {
	utf8Reader, err := charset.NewReader(bytes.NewReader(doc.Body), doc.ContentType)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(utf8Reader)
}
