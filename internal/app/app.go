package app

import (
	"context"
	"fmt"
	"log/slog"

	"table_spider/internal/config"
	"table_spider/internal/fetcher"
	"table_spider/internal/markup"
	"table_spider/internal/models"
	"table_spider/internal/table"
	"table_spider/internal/utils"
)

// TableSpider runs fetch, parse, locate, extract and assemble once per
// Run. It holds no state between runs.
type TableSpider struct {
	address  string
	fetcher  fetcher.Fetcher
	selector table.Selector
}

func NewTableSpider(cfg *config.SpiderConfig) (*TableSpider, error) {
	f, err := fetcher.New(cfg.Fetch)
	if err != nil {
		return nil, err
	}
	return NewTableSpiderWithFetcher(cfg, f), nil
}

func NewTableSpiderWithFetcher(cfg *config.SpiderConfig, f fetcher.Fetcher) *TableSpider {
	return &TableSpider{
		address:  utils.NormalizeURL(cfg.Fetch.URL),
		fetcher:  f,
		selector: table.SelectorFromConfig(cfg.Table),
	}
}

// Run never returns a partial result. The returned error wraps the
// failing stage's sentinel (fetcher.ErrNetwork, markup.ErrParse,
// table.ErrNotFound, table.ErrStructure).
func (s *TableSpider) Run(ctx context.Context) (*models.TabularResult, error) {
	slog.InfoContext(ctx, "fetching document", "url", s.address)

	raw, err := s.fetcher.Fetch(ctx, s.address)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	slog.InfoContext(ctx, "document fetched",
		"url", raw.URL,
		"status", raw.StatusCode,
		"bytes", len(raw.Body),
		"content_hash", utils.ComputeContentHash(raw.Body),
	)

	tree, err := markup.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	tbl, err := s.selector.Select(tree.Selection)
	if err != nil {
		return nil, fmt.Errorf("locate: %w", err)
	}
	slog.DebugContext(ctx, "table located", "selector", s.selector.String())

	rows, err := table.ExtractRows(tbl)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", s.selector, err)
	}

	result := table.Assemble(rows)
	slog.InfoContext(ctx, "table extracted",
		"selector", s.selector.String(),
		"rows", result.RowCount(),
		"max_width", result.MaxWidth(),
	)

	return result, nil
}
