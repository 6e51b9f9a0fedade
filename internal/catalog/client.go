// Package catalog answers book searches from a bounded in-process memo,
// falling back to an optional shared store and then the remote catalog.
package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"bookworm-search/internal/logging"
	"bookworm-search/internal/metrics"
	"bookworm-search/internal/models"
	"bookworm-search/internal/ol"
	"bookworm-search/internal/query"
	"bookworm-search/internal/store"
)

// DefaultCapacity is the number of distinct queries remembered by default.
const DefaultCapacity = 100

// Searcher is the caller-facing search operation.
type Searcher interface {
	Search(ctx context.Context, criteria query.SearchCriteria) (models.SearchResponse, error)
}

var _ Searcher = (*Client)(nil)

// EventPublisher receives one event per completed search.
type EventPublisher interface {
	PublishSearch(ctx context.Context, event models.SearchEvent) error
}

// Client memoizes successful catalog searches. It is safe for concurrent use.
// Returned responses share their Docs slice with the memo and must not be modified.
type Client struct {
	remote    ol.Catalog
	store     store.ResultStore
	publisher EventPublisher
	logger    *log.Logger

	mu    sync.Mutex
	memo  *memo
	group singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithCapacity sets the memo size. Values below 1 keep the default.
func WithCapacity(n int) Option {
	return func(c *Client) {
		if n >= 1 {
			c.memo = newMemo(n)
		}
	}
}

// WithLogger sets the logger used for cache and remote activity.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStore adds a shared result tier consulted between the memo and the remote catalog.
func WithStore(s store.ResultStore) Option {
	return func(c *Client) { c.store = s }
}

// WithPublisher emits a SearchEvent for every completed search.
func WithPublisher(p EventPublisher) Option {
	return func(c *Client) { c.publisher = p }
}

// New creates a client over remote.
func New(remote ol.Catalog, opts ...Option) *Client {
	c := &Client{
		remote: remote,
		logger: logging.Discard(),
		memo:   newMemo(DefaultCapacity),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search validates criteria and returns the matching result set. Validation
// failures are returned as *query.ValidationError before any I/O; remote
// failures as *ol.RemoteError.
func (c *Client) Search(ctx context.Context, criteria query.SearchCriteria) (models.SearchResponse, error) {
	d, err := query.Build(criteria)
	if err != nil {
		metrics.SearchErrorsTotal.WithLabelValues("validation").Inc()
		return models.SearchResponse{}, err
	}
	return c.SearchDescriptor(ctx, d)
}

type loadResult struct {
	resp   models.SearchResponse
	source models.SearchSource
}

// SearchDescriptor answers an already-built query.
//
// Concurrent misses on the same descriptor share one load. The load is
// detached from every caller's cancellation and bounded by the remote
// client's timeout; each caller stops waiting when its own ctx is done.
// Callers that joined another caller's load report SourceShared.
func (c *Client) SearchDescriptor(ctx context.Context, d query.Descriptor) (models.SearchResponse, error) {
	start := time.Now()
	if resp, ok := c.lookup(d); ok {
		c.finish(ctx, d, models.SourceMemo, resp, nil, start)
		return resp, nil
	}

	// led is only written by the goroutine running fn, which finishes
	// before the result is sent on ch.
	var led bool
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(d.Key(), func() (any, error) {
		led = true
		return c.load(loadCtx, d)
	})

	select {
	case <-ctx.Done():
		err := &ol.RemoteError{Err: ctx.Err()}
		c.finish(ctx, d, models.SourceRemote, models.SearchResponse{}, err, start)
		return models.SearchResponse{}, err
	case r := <-ch:
		source := models.SourceShared
		if r.Err != nil {
			if led {
				source = models.SourceRemote
			}
			c.finish(ctx, d, source, models.SearchResponse{}, r.Err, start)
			return models.SearchResponse{}, r.Err
		}
		res := r.Val.(loadResult)
		if led {
			source = res.source
		}
		c.finish(ctx, d, source, res.resp, nil, start)
		return res.resp, nil
	}
}

// load resolves a memo miss. Only one load per descriptor runs at a time.
func (c *Client) load(ctx context.Context, d query.Descriptor) (loadResult, error) {
	// A load for d may have completed between the caller's lookup and now.
	if resp, ok := c.lookup(d); ok {
		return loadResult{resp: resp, source: models.SourceMemo}, nil
	}

	if c.store != nil {
		resp, ok, err := c.store.GetResult(ctx, d.Key())
		switch {
		case err != nil:
			c.logger.Warn("shared store read failed", "query", d.Key(), "err", err)
		case ok:
			c.remember(d, resp)
			return loadResult{resp: resp, source: models.SourceStore}, nil
		}
	}

	started := time.Now()
	resp, err := c.remote.Fetch(ctx, d)
	metrics.RemoteRequestDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		return loadResult{}, asRemoteError(err)
	}

	c.remember(d, resp)
	if c.store != nil {
		if err := c.store.SetResult(ctx, d.Key(), resp); err != nil {
			c.logger.Warn("shared store write failed", "query", d.Key(), "err", err)
		}
	}
	return loadResult{resp: resp, source: models.SourceRemote}, nil
}

func (c *Client) lookup(d query.Descriptor) (models.SearchResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.memo.Get(d)
}

// remember inserts and evicts in one critical section.
func (c *Client) remember(d query.Descriptor, resp models.SearchResponse) {
	c.mu.Lock()
	evicted := c.memo.Add(d, resp)
	size := c.memo.Len()
	c.mu.Unlock()

	if evicted {
		metrics.CacheEvictionsTotal.Inc()
		c.logger.Debug("evicted least recently used query")
	}
	metrics.CacheEntries.Set(float64(size))
}

func (c *Client) finish(ctx context.Context, d query.Descriptor, source models.SearchSource, resp models.SearchResponse, err error, start time.Time) {
	elapsed := time.Since(start)
	event := models.SearchEvent{
		Query:      d.Key(),
		Source:     source,
		NumResults: len(resp.Docs),
		Duration:   elapsed,
		At:         start.UTC(),
	}
	if err != nil {
		metrics.SearchErrorsTotal.WithLabelValues("remote").Inc()
		event.Error = err.Error()
		c.logger.Error("search failed", "query", d.Key(), "err", err)
	} else {
		metrics.SearchesTotal.WithLabelValues(string(source)).Inc()
		c.logger.Debug("search completed", "query", d.Key(), "source", source, "results", len(resp.Docs), "elapsed", elapsed)
	}

	if c.publisher == nil {
		return
	}
	if perr := c.publisher.PublishSearch(context.WithoutCancel(ctx), event); perr != nil {
		c.logger.Warn("failed to publish search event", "query", d.Key(), "err", perr)
	}
}

func asRemoteError(err error) error {
	var rerr *ol.RemoteError
	if errors.As(err, &rerr) {
		return err
	}
	return &ol.RemoteError{Err: err}
}

// Len reports how many queries are memoized.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.memo.Len()
}

// Contains reports whether d is memoized, without affecting recency.
func (c *Client) Contains(d query.Descriptor) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.memo.Contains(d)
}
