package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skylinehq/skyline/internal/api"
	"github.com/skylinehq/skyline/pkg/cache"
	"github.com/skylinehq/skyline/pkg/pipeline"
	"github.com/skylinehq/skyline/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	addr := c.Config.Addr
	if addr == "" {
		addr = ":8080"
	}
	redisAddr := c.Config.RedisAddr
	mongoURI := c.Config.MongoURI
	mongoDB := c.Config.MongoDatabase
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP layout API.

The serve command exposes the layout solver over HTTP:

  POST /api/layout        solve a layout for a posted tree
  GET  /api/layouts/{id}  fetch a previously solved layout
  GET  /healthz           liveness check

By default layouts are cached on disk and stored in memory. With --redis the
cache is shared across instances; with --mongo solved layouts survive restarts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, mongoURI, mongoDB, noCache)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", addr, "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", redisAddr, "Redis address for a shared layout cache")
	cmd.Flags().StringVar(&mongoURI, "mongo", mongoURI, "MongoDB URI for durable layout storage")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", mongoDB, "MongoDB database name")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layout caching")

	return cmd
}

// runServe wires the cache, store, and runner, then serves until ctx is canceled.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr, mongoURI, mongoDB string, noCache bool) error {
	logger := loggerFromContext(ctx)

	layoutCache, err := newServeCache(ctx, redisAddr, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	var layoutStore store.Store
	if mongoURI != "" {
		layoutStore, err = store.NewMongoStore(ctx, mongoURI, mongoDB)
		if err != nil {
			return fmt.Errorf("connect to MongoDB: %w", err)
		}
		logger.Info("using MongoDB store", "database", mongoDB)
	} else {
		layoutStore = store.NewMemoryStore()
	}
	defer layoutStore.Close()

	runner := pipeline.NewRunner(layoutCache, nil, logger)
	defer runner.Close()

	server := api.NewServer(runner, layoutStore, logger)
	return server.ListenAndServe(ctx, addr)
}

// newServeCache picks the cache backend for the API server.
func newServeCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, err
		}
		loggerFromContext(ctx).Info("using Redis cache", "addr", redisAddr)
		return rc, nil
	}
	return newCache(false)
}
