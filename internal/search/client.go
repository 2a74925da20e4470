package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"unicode/utf8"

	"github.com/aleister1102/dbreewatch/internal/extractor"
	"github.com/aleister1102/dbreewatch/internal/httpclient"
	"github.com/aleister1102/dbreewatch/internal/models"
	"github.com/aleister1102/dbreewatch/internal/urlhandler"

	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"
)

// Config describes how to reach the index site.
type Config struct {
	BaseURI string
	Cookies map[string]string // name -> value, attached to every request for BaseURI's domain
	HTTP    httpclient.HTTPClientConfig
}

// Client fetches search result pages from the index site.
type Client struct {
	baseURI        *url.URL
	collector      *colly.Collector
	maxContentSize int64 // 0 means no limit
	logger         zerolog.Logger
}

// New builds a search client. The base URI must be absolute.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	moduleLogger := logger.With().Str("module", "SearchClient").Logger()

	base, err := url.Parse(cfg.BaseURI)
	if err != nil {
		return nil, models.NewNetworkError(cfg.BaseURI, "malformed base URI", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, models.NewNetworkError(cfg.BaseURI, "base URI must be absolute", nil)
	}

	transport, err := httpclient.NewHTTPClient(cfg.HTTP, moduleLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to build transport: %w", err)
	}

	collectorOptions := []colly.CollectorOption{
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
	}
	if cfg.HTTP.UserAgent != "" {
		collectorOptions = append(collectorOptions, colly.UserAgent(cfg.HTTP.UserAgent))
	}
	// colly truncates at MaxBodySize without reporting it, so read one byte past
	// the limit and let Fetch reject the overflow.
	bodyLimit := 0
	if cfg.HTTP.MaxContentSize > 0 {
		bodyLimit = int(cfg.HTTP.MaxContentSize) + 1
	}
	collectorOptions = append(collectorOptions, colly.MaxBodySize(bodyLimit))

	collector := colly.NewCollector(collectorOptions...)
	collector.WithTransport(transport.Transport())
	collector.SetRequestTimeout(cfg.HTTP.Timeout)
	collector.SetRedirectHandler(transport.CheckRedirect)

	if len(cfg.Cookies) > 0 {
		if err := collector.SetCookies(base.String(), buildCookies(cfg.Cookies)); err != nil {
			return nil, models.NewNetworkError(base.String(), "failed to install cookies", err)
		}
	}

	moduleLogger.Debug().
		Str("base_uri", base.String()).
		Int("cookies", len(cfg.Cookies)).
		Msg("Search client initialized")

	return &Client{
		baseURI:        base,
		collector:      collector,
		maxContentSize: cfg.HTTP.MaxContentSize,
		logger:         moduleLogger,
	}, nil
}

// buildCookies turns the configured name/value pairs into cookies, sorted by name.
func buildCookies(values map[string]string) []*http.Cookie {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	cookies := make([]*http.Cookie, 0, len(names))
	for _, name := range names {
		cookies = append(cookies, &http.Cookie{Name: name, Value: values[name], Path: "/"})
	}
	return cookies
}

// SearchURL derives the results page URL for a query: <base>/s/<query>?page=<offset>.
func (c *Client) SearchURL(q models.SearchQuery) string {
	path := urlhandler.JoinPath(c.baseURI.String(), "s", url.PathEscape(q.Query))
	return fmt.Sprintf("%s?page=%d", path, q.Offset)
}

// Fetch performs one GET for the query and returns the body decoded as UTF-8.
func (c *Client) Fetch(ctx context.Context, q models.SearchQuery) ([]byte, error) {
	target := c.SearchURL(q)
	if _, err := url.ParseRequestURI(target); err != nil {
		return nil, models.NewNetworkError(target, "malformed search URI", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, models.NewNetworkError(target, "request cancelled", err)
	}

	var (
		body        []byte
		contentType string
		fetchErr    error
		responded   bool
	)

	collector := c.collector.Clone()
	collector.Context = ctx
	collector.OnResponse(func(r *colly.Response) {
		responded = true
		body = r.Body
		if r.Headers != nil {
			contentType = r.Headers.Get("Content-Type")
		}
	})
	collector.OnError(func(r *colly.Response, err error) {
		reason := "request failed"
		if ctxErr := ctx.Err(); ctxErr != nil {
			reason = "request cancelled"
			err = ctxErr
		} else if r != nil && r.StatusCode != 0 {
			reason = fmt.Sprintf("unexpected status %d", r.StatusCode)
		}
		fetchErr = models.NewNetworkError(target, reason, err)
	})

	c.logger.Debug().Str("url", target).Msg("Fetching search results")

	if err := collector.Visit(target); err != nil {
		if fetchErr != nil {
			return nil, fetchErr
		}
		// Visit fails without invoking OnError only when the body could not be
		// converted from its declared charset.
		return nil, &models.HTMLDecodeError{URL: target, Err: err}
	}
	if fetchErr != nil {
		return nil, fetchErr
	}
	if !responded {
		return nil, models.NewNetworkError(target, "no response received", nil)
	}
	if c.maxContentSize > 0 && int64(len(body)) > c.maxContentSize {
		return nil, models.NewNetworkError(target, fmt.Sprintf("response body exceeds %d bytes", c.maxContentSize), nil)
	}

	decoded, err := decodeBody(body, contentType)
	if err != nil {
		return nil, &models.HTMLDecodeError{URL: target, ContentType: contentType, Err: err}
	}
	return decoded, nil
}

// Search fetches the results page for q and extracts its records.
func (c *Client) Search(ctx context.Context, q models.SearchQuery) ([]models.FileRecord, error) {
	body, err := c.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	return extractor.ExtractResults(body)
}

// decodeBody returns body as valid UTF-8, sniffing the encoding when needed.
func decodeBody(body []byte, contentType string) ([]byte, error) {
	if utf8.Valid(body) {
		return body, nil
	}

	enc, name, _ := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" {
		return nil, fmt.Errorf("body is not valid utf-8")
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return nil, fmt.Errorf("decoding body as %s: %w", name, err)
	}
	if !utf8.Valid(decoded) {
		return nil, fmt.Errorf("body is not valid text after decoding as %s", name)
	}
	return decoded, nil
}
