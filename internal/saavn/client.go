package saavn

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	httpx "github.com/handiism/mploader/internal/http"
	"github.com/handiism/mploader/internal/model"
)

const (
	defaultBaseURL = "https://saavn.sumit.co/api"

	searchPath = "/search"
	songPath   = "/songs"
)

// Options configures a catalog Client.
type Options struct {
	// BaseURL overrides the API root; empty means the public instance.
	BaseURL string

	// RatePerSecond caps outbound requests. Zero disables limiting.
	RatePerSecond float64

	// MaxRetries bounds transient-failure retries per request.
	MaxRetries int

	// ArtworkPreference names the preferred image variant, e.g. "500x500".
	ArtworkPreference string
}

// Client calls the JioSaavn API.
type Client struct {
	http    *httpx.Client
	baseURL string
	limiter *rate.Limiter
	retries int
	artwork string
	logger  *log.Logger
}

// NewClient creates a catalog client.
func NewClient(httpClient *httpx.Client, opts Options, logger *log.Logger) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	var limiter *rate.Limiter
	if opts.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), 1)
	}

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		limiter: limiter,
		retries: opts.MaxRetries,
		artwork: opts.ArtworkPreference,
		logger:  logger,
	}
}

// Search performs a full-text song search and returns candidates in the
// catalog's result order (search hits first, then top-query hits).
//
// Transient failures are retried internally; a terminal failure returns
// an error, which callers should treat the same as zero candidates.
func (c *Client) Search(ctx context.Context, query string) ([]model.MatchCandidate, error) {
	u := c.baseURL + searchPath + "?query=" + url.QueryEscape(query)

	var resp searchResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	if !resp.Success {
		c.logger.Warn("catalog search unsuccessful", "query", query)
		return nil, nil
	}

	records := append(resp.Data.Songs.Results, resp.Data.TopQuery.Results...)
	candidates := make([]model.MatchCandidate, 0, len(records))
	for _, r := range records {
		if r.ID == "" {
			continue
		}
		candidates = append(candidates, r.toCandidate(c.artwork))
	}
	return candidates, nil
}

// Lookup fetches the full song record for a catalog ID, including
// download variants and extended tag metadata.
func (c *Client) Lookup(ctx context.Context, catalogID string) (model.TrackDetails, error) {
	u := c.baseURL + songPath + "/" + url.PathEscape(catalogID)

	var resp songResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return model.TrackDetails{}, fmt.Errorf("fetching song %s: %w", catalogID, err)
	}
	if !resp.Success || len(resp.Data) == 0 {
		return model.TrackDetails{}, fmt.Errorf("song %s not found in catalog", catalogID)
	}

	return resp.Data[0].toDetails(c.artwork), nil
}

// getJSON applies rate limiting and bounded retry around a JSON GET.
func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	var err error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if c.limiter != nil {
			if werr := c.limiter.Wait(ctx); werr != nil {
				return werr
			}
		}

		if err = c.http.GetJSON(ctx, u, out); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}

		c.logger.Debug("catalog request failed, retrying", "attempt", attempt+1, "err", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 200 * time.Millisecond):
		}
	}
	return err
}
