// Package bootstrap assembles a catalog client and its optional tiers from config.
package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bookworm-search/internal/catalog"
	"bookworm-search/internal/config"
	"bookworm-search/internal/kafka"
	"bookworm-search/internal/logging"
	"bookworm-search/internal/ol"
	"bookworm-search/internal/store"
)

const pingTimeout = 2 * time.Second

// Client is a wired catalog client plus the resources it holds open.
type Client struct {
	*catalog.Client
	closers []func() error
}

// Close releases the shared store and event feed, if any.
func (c *Client) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	return errors.Join(errs...)
}

// NewClient builds the HTTP catalog and wraps it in a memoizing client,
// logging through the logger carried by ctx. The Redis tier is skipped with a
// warning when it cannot be reached.
func NewClient(ctx context.Context, cfg config.Config) *Client {
	logger := logging.FromContext(ctx)
	remote := ol.NewHTTPCatalog(
		&http.Client{Timeout: cfg.OpenLibrary.Timeout},
		cfg.OpenLibrary.BaseURL,
		cfg.OpenLibrary.UserAgent,
	)

	out := &Client{}
	opts := []catalog.Option{
		catalog.WithCapacity(cfg.Cache.Capacity),
		catalog.WithLogger(logger),
	}

	if cfg.Redis.Addr != "" {
		rs := store.NewRedisResultStore(cfg.Redis.Addr, cfg.Redis.Prefix, cfg.Redis.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := rs.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Warn("shared result store unavailable, continuing without it", "addr", cfg.Redis.Addr, "err", err)
			_ = rs.Close()
		} else {
			logger.Info("using shared result store", "addr", cfg.Redis.Addr)
			opts = append(opts, catalog.WithStore(rs))
			out.closers = append(out.closers, rs.Close)
		}
	}

	if cfg.Kafka.Broker != "" {
		prod := kafka.NewProducer(cfg.Kafka.Broker, cfg.Kafka.Topic)
		logger.Info("publishing search events", "broker", cfg.Kafka.Broker, "topic", cfg.Kafka.Topic)
		opts = append(opts, catalog.WithPublisher(prod))
		out.closers = append(out.closers, prod.Close)
	}

	out.Client = catalog.New(remote, opts...)
	return out
}
