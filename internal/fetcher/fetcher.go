package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"table_spider/internal/config"
	"table_spider/internal/models"
)

// ErrNetwork marks any failure to complete the retrieval. HTTP status
// codes are never reported through it.
var ErrNetwork = errors.New("network error")

// MaxHops bounds redirect chains followed by the HTTP transport.
const MaxHops = 15

const robotsAgent = "table_spider"

// Fetcher retrieves one document. Implementations return non-2xx
// responses as ordinary documents.
type Fetcher interface {
	Fetch(ctx context.Context, address string) (*models.RawDocument, error)
}

func New(cfg config.FetchConfig) (Fetcher, error) {
	switch cfg.Transport {
	case config.TransportHTTP, "":
		return NewHTTPFetcher(cfg), nil
	case config.TransportColly:
		return NewCollyFetcher(cfg), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

func timeout(cfg config.FetchConfig) time.Duration {
	return time.Duration(cfg.TimeoutSec) * time.Second
}

func networkError(address string, err error) error {
	return fmt.Errorf("%w: GET %s: %w", ErrNetwork, address, err)
}
