package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"table_spider/internal/config"
	"table_spider/internal/models"

	"github.com/temoto/robotstxt"
)

// HTTPFetcher returns the body bytes as received; decoding is left to
// the parser, which also sees the Content-Type.
type HTTPFetcher struct {
	client        *http.Client
	userAgent     string
	respectRobots bool
}

func NewHTTPFetcher(cfg config.FetchConfig) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout(cfg),
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= MaxHops {
					return fmt.Errorf("stopped after %d redirects", MaxHops)
				}
				return nil
			},
		},
		userAgent:     cfg.UserAgent,
		respectRobots: cfg.RespectRobots,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, address string) (*models.RawDocument, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, networkError(address, err)
	}
	if u.Host == "" {
		return nil, networkError(address, errors.New("missing host"))
	}

	if f.respectRobots {
		if err := f.checkRobots(ctx, u); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, networkError(address, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, networkError(address, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(address, err)
	}

	return &models.RawDocument{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// checkRobots fails only when robots.txt was retrieved and disallows the
// path. A missing or unreadable robots.txt permits the fetch.
func (f *HTTPFetcher) checkRobots(ctx context.Context, u *url.URL) error {
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return networkError(robotsURL, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to load robots.txt, ignoring", "url", robotsURL, "err", err)
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		slog.WarnContext(ctx, "failed to parse robots.txt, ignoring", "url", robotsURL, "err", err)
		return nil
	}

	agent := f.userAgent
	if agent == "" {
		agent = robotsAgent
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if !data.TestAgent(path, agent) {
		return fmt.Errorf("%w: %s disallowed by robots.txt", ErrNetwork, u.String())
	}
	return nil
}
