package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/autofeyn/internal/server"
	"github.com/matzehuels/autofeyn/pkg/cache"
	"github.com/matzehuels/autofeyn/pkg/config"
	"github.com/matzehuels/autofeyn/pkg/observability"
	"github.com/matzehuels/autofeyn/pkg/pager"
	"github.com/matzehuels/autofeyn/pkg/session"
)

type serveOpts struct {
	configPath string
	addr       string
	pageSize   int
	backend    string
	sessionDir string
	noCache    bool
}

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := &serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram paging API over HTTP",
		Long: `Start the HTTP API. Clients post a request once and then page through its
diagrams by session id.

Settings are read from --config, $AUTOFEYN_CONFIG, ./autofeyn.toml or
~/.config/autofeyn/config.toml, in that order. Flags override the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	opts.register(cmd)

	return cmd
}

func (o *serveOpts) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.configPath, "config", "c", "", "config file path")
	flags.StringVar(&o.addr, "addr", config.DefaultAddr, "listen address")
	flags.IntVar(&o.pageSize, "page-size", pager.DefaultPageSize, "diagrams per page")
	flags.StringVar(&o.backend, "backend", string(session.BackendMemory), "session backend: memory, file, redis or mongo")
	flags.StringVar(&o.sessionDir, "session-dir", "", "directory for the file session backend")
	flags.BoolVar(&o.noCache, "no-cache", false, "disable the count cache")
}

// loadServeConfig reads the config file and applies the flags the user set.
func loadServeConfig(cmd *cobra.Command, opts *serveOpts) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if opts.configPath != "" {
		cfg, path, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, path, err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = opts.addr
	}
	if flags.Changed("page-size") {
		cfg.PageSize = opts.pageSize
	}
	if flags.Changed("backend") {
		cfg.Session.Backend = opts.backend
	}
	if flags.Changed("session-dir") {
		cfg.Session.Dir = opts.sessionDir
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Disabled = opts.noCache
	}
	return cfg, path, cfg.Validate()
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, path, err := loadServeConfig(cmd, opts)
	if err != nil {
		return err
	}
	if path != "" {
		logger.Info("loaded config", "path", path)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil && level < logger.GetLevel() {
		logger.SetLevel(level)
	}

	store, err := session.Open(ctx, cfg.SessionStoreConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	cch, err := serveCache(cfg, store)
	if err != nil {
		return err
	}

	runner := pager.NewRunner(store, cch, newKeyer(), logger)
	runner.PageSize = cfg.PageSize
	runner.TTL = cfg.Session.TTL.Duration()
	runner.CountTTL = cfg.Cache.TTL.Duration()

	observability.NewLogHooks(logger).Register()
	defer observability.Reset()

	logger.Info("starting server",
		"addr", cfg.Addr,
		"backend", cfg.Session.Backend,
		"page_size", cfg.PageSize,
		"session_ttl", runner.TTL)

	srv := server.New(runner, logger)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.ListenAndServe(gctx, cfg.Addr) })
	g.Go(func() error { return janitor(gctx, store, cfg.Session.CleanupInterval.Duration(), logger) })
	return g.Wait()
}

// serveCache picks the count cache for the server. A Redis session backend
// shares its connection with the cache; other backends use the file cache.
func serveCache(cfg *config.Config, store session.Store) (cache.Cache, error) {
	if cfg.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if rs, ok := store.(*session.RedisStore); ok {
		return cache.NewRedisCache(rs.Client(), "autofeyn:cache:"), nil
	}
	return newCache(false, cfg.Cache.Dir)
}

// janitor drops expired sessions every interval until ctx ends. Cleanup
// errors are logged, not returned.
func janitor(ctx context.Context, store session.Store, interval time.Duration, logger *log.Logger) error {
	if interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := store.Cleanup(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("session cleanup failed", "error", err)
				continue
			}
			logger.Debug("swept expired sessions")
		}
	}
}
