package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/FlagBrew/local-dex/internal/models"
	"github.com/apex/log"
	"golang.org/x/sync/semaphore"
)

// PayloadCache is a read-through store for detail payloads keyed by URL.
type PayloadCache interface {
	Get(ctx context.Context, url string) ([]byte, error)
	Set(ctx context.Context, url string, body []byte) error
}

// StatusError is returned for a response outside the 2xx range.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

var ErrListingLoop = errors.New("listing pagination loops")

// Fetcher issues GET requests against the remote source. Every request made
// through a Fetcher, across all goroutines, shares one concurrency limit.
type Fetcher struct {
	client    *http.Client
	sem       *semaphore.Weighted
	baseURL   string
	userAgent string
	pageSize  int
	cache     PayloadCache
}

type FetcherOption func(*Fetcher)

func WithCache(c PayloadCache) FetcherOption {
	return func(f *Fetcher) {
		f.cache = c
	}
}

func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = c
	}
}

func NewFetcher(cfg models.IngestConfig, opts ...FetcherOption) *Fetcher {
	maxConcurrency := cfg.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = models.DefaultMaxConcurrency
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = models.DefaultRequestTimeout * time.Second
	}

	f := &Fetcher{
		client:    &http.Client{Timeout: timeout},
		sem:       semaphore.NewWeighted(int64(maxConcurrency)),
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		pageSize:  pageSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the detail locator of id under endpoint.
func (f *Fetcher) URL(endpoint string, id int) string {
	return fmt.Sprintf("%s/%s/%d/", f.baseURL, endpoint, id)
}

// Fetched is the outcome of one GET: Body on success, Err otherwise.
type Fetched struct {
	URL  string
	Body []byte
	Err  error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) Fetched {
	if f.cache != nil {
		body, err := f.cache.Get(ctx, url)
		if err == nil {
			return Fetched{URL: url, Body: body}
		}
	}

	body, err := f.get(ctx, url)
	return Fetched{URL: url, Body: body, Err: err}
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	if err := f.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer f.sem.Release(1)

	start := time.Now()
	body, err := f.do(ctx, url)
	FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		FetchRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	FetchRequests.WithLabelValues("ok").Inc()
	return body, nil
}

func (f *Fetcher) do(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// Result is a decoded payload, or the reason there isn't one.
type Result[T any] struct {
	URL   string
	Value T
	Err   error
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

// FetchJSON fetches url and decodes the body into T. Only bodies that decode
// are written to the payload cache.
func FetchJSON[T any](ctx context.Context, f *Fetcher, url string) Result[T] {
	res := Result[T]{URL: url}

	fetched := f.Fetch(ctx, url)
	if fetched.Err != nil {
		res.Err = fetched.Err
		return res
	}
	if err := json.Unmarshal(fetched.Body, &res.Value); err != nil {
		res.Err = fmt.Errorf("decode %s: %w", url, err)
		return res
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, url, fetched.Body); err != nil {
			log.FromContext(ctx).WithError(err).WithField("url", url).Debug("failed to cache payload")
		}
	}
	return res
}

// List returns every resource under endpoint, following next links until the
// listing is exhausted. Listings bypass the payload cache.
func (f *Fetcher) List(ctx context.Context, endpoint string) ([]models.NamedResource, error) {
	next := fmt.Sprintf("%s/%s?limit=%d", f.baseURL, endpoint, f.pageSize)
	seen := map[string]bool{}

	var out []models.NamedResource
	for next != "" {
		if seen[next] {
			return nil, fmt.Errorf("%w: %s", ErrListingLoop, next)
		}
		seen[next] = true

		body, err := f.get(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", endpoint, err)
		}

		var page models.ResourceList
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode %s listing: %w", endpoint, err)
		}
		out = append(out, page.Results...)

		next = ""
		if page.Next != nil {
			next = *page.Next
		}
	}
	return out, nil
}
