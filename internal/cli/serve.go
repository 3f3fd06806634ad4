package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/phpgen/internal/config"
	"github.com/matzehuels/phpgen/internal/server"
	"github.com/matzehuels/phpgen/pkg/cache"
	"github.com/matzehuels/phpgen/pkg/session"
)

// sweepInterval is how often expired in-memory sessions are dropped.
const sweepInterval = 10 * time.Minute

func (c *CLI) serveCommand() *cobra.Command {
	var secure bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI and JSON API",
		Long: `Serve the web UI and JSON API.

Form state is kept per browser session. Sessions live in memory by default;
set session.backend to "redis" (or PHPGEN_SESSION_BACKEND=redis) to share
them between several instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			store, closeStore, err := openSessionStore(ctx, cfg, c.Logger)
			if err != nil {
				return err
			}
			defer closeStore()

			srv, err := server.New(server.Options{
				Logger:        c.Logger,
				Sessions:      store,
				SecureCookies: secure,
			})
			if err != nil {
				return err
			}

			printSuccess("phpgen is running")
			printKeyValue("URL", StyleLink.Render("http://"+cfg.Server.Addr()))
			printKeyValue("Sessions", cfg.Session.Backend)
			printNewline()
			return srv.Run(ctx, cfg.Server.Addr())
		},
	}

	f := cmd.Flags()
	f.String("host", "", "listen host (default 127.0.0.1)")
	f.IntP("port", "p", 0, "listen port (default 8080)")
	f.String("session-backend", "", "session backend: memory or redis")
	f.String("redis-addr", "", "Redis address for the redis session backend")
	f.BoolVar(&secure, "secure-cookies", false, "mark session cookies Secure (serve behind TLS)")

	_ = c.viper.BindPFlag("server.host", f.Lookup("host"))
	_ = c.viper.BindPFlag("server.port", f.Lookup("port"))
	_ = c.viper.BindPFlag("session.backend", f.Lookup("session-backend"))
	_ = c.viper.BindPFlag("redis.addr", f.Lookup("redis-addr"))
	return cmd
}

// openSessionStore builds the session store for the configured backend.
// The returned func releases the backend.
func openSessionStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (session.Store, func(), error) {
	var backend cache.Cache
	switch cfg.Session.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("session backend", "type", "redis", "addr", cfg.Redis.Addr)
		backend = rc
	default:
		mc := cache.NewMemoryCache()
		go sweepSessions(ctx, mc, logger)
		logger.Debug("session backend", "type", "memory")
		backend = mc
	}

	keyer := cache.NewScopedKeyer(nil, cfg.Session.Prefix)
	store := session.NewCacheStore(cache.NewInstrumented(backend, "session"), keyer, cfg.Session.TTL)
	return store, func() {
		if err := backend.Close(); err != nil {
			logger.Warn("close session backend", "err", err)
		}
	}, nil
}

func sweepSessions(ctx context.Context, mc *cache.MemoryCache, logger *log.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := mc.Cleanup(ctx); n > 0 {
				logger.Debug("expired sessions removed", "count", n, "remaining", mc.Len())
			}
		}
	}
}
