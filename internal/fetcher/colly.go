package fetcher

import (
	"context"
	"errors"
	"mime"
	"time"
	"unicode/utf8"

	"table_spider/internal/config"
	"table_spider/internal/models"

	"github.com/gocolly/colly"
)

// CollyFetcher performs the single GET through a synchronous colly
// collector. A fresh collector is built per call so no visit history is
// carried between runs.
//
// colly requests do not take a context.Context. The context's deadline
// caps the request timeout, but cancelling a context without a deadline
// only takes effect if it happens before the request starts.
type CollyFetcher struct {
	cfg config.FetchConfig
}

func NewCollyFetcher(cfg config.FetchConfig) *CollyFetcher {
	return &CollyFetcher{cfg: cfg}
}

func (f *CollyFetcher) newCollector(requestTimeout time.Duration) *colly.Collector {
	c := colly.NewCollector()
	c.ParseHTTPErrorResponse = true
	c.AllowURLRevisit = true
	c.MaxBodySize = 0
	c.IgnoreRobotsTxt = !f.cfg.RespectRobots
	if f.cfg.UserAgent != "" {
		c.UserAgent = f.cfg.UserAgent
	}
	if requestTimeout > 0 {
		c.SetRequestTimeout(requestTimeout)
	}
	return c
}

func (f *CollyFetcher) Fetch(ctx context.Context, address string) (*models.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, networkError(address, err)
	}

	requestTimeout := timeout(f.cfg)
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			return nil, networkError(address, context.DeadlineExceeded)
		}
		if requestTimeout == 0 || left < requestTimeout {
			requestTimeout = left
		}
	}

	c := f.newCollector(requestTimeout)

	var doc *models.RawDocument
	c.OnResponse(func(r *colly.Response) {
		doc = &models.RawDocument{
			URL:        r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Body:       r.Body,
		}
		if r.Headers != nil {
			doc.ContentType = transcodedContentType(r.Headers.Get("Content-Type"), r.Body)
		}
	})

	if err := c.Visit(address); err != nil {
		return nil, networkError(address, err)
	}
	if doc == nil {
		return nil, networkError(address, errors.New("no response received"))
	}
	return doc, nil
}

// transcodedContentType rewrites the charset parameter to utf-8 when
// colly has already converted the body from the declared charset, so the
// parser does not decode it a second time. Bodies without a declared
// charset reach the parser untouched and are sniffed there.
func transcodedContentType(contentType string, body []byte) string {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || params["charset"] == "" || !utf8.Valid(body) {
		return contentType
	}
	params["charset"] = "utf-8"
	return mime.FormatMediaType(mediaType, params)
}
