// composer-api runs the reference content API: a SQLite-backed page service
// exposing the GET/PATCH/PUT endpoints the composer's HTTP store consumes.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	env "github.com/caarlos0/env/v11"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/joho/godotenv"

	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/logging/gologger"
	"github.com/goliatone/go-composer/internal/server"
)

type config struct {
	Addr      string        `env:"COMPOSER_API_ADDR" envDefault:":8080"`
	DSN       string        `env:"COMPOSER_API_DSN" envDefault:"file:composer.db?cache=shared"`
	SeedSlug  string        `env:"COMPOSER_API_SEED_SLUG" envDefault:"landing"`
	SeedTitle string        `env:"COMPOSER_API_SEED_TITLE" envDefault:"Landing Page"`
	LogLevel  string        `env:"COMPOSER_API_LOG_LEVEL" envDefault:"info"`
	LogFormat string        `env:"COMPOSER_API_LOG_FORMAT" envDefault:"console"`
	Cache     bool          `env:"COMPOSER_API_CACHE" envDefault:"false"`
	CacheTTL  time.Duration `env:"COMPOSER_API_CACHE_TTL" envDefault:"1m"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "composer-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	if err != nil {
		return err
	}
	logger := logging.ServerLogger(provider)

	db, err := server.Open(cfg.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if err := server.EnsureSchema(ctx, db); err != nil {
		return err
	}

	pages := server.NewBunPageRepository(db)
	if cfg.Cache {
		cacheCfg := repocache.DefaultConfig()
		cacheCfg.TTL = cfg.CacheTTL
		cacheService, err := repocache.NewCacheService(cacheCfg)
		if err != nil {
			return fmt.Errorf("building page cache: %w", err)
		}
		pages = server.NewBunPageRepositoryWithCache(db, cacheService, repocache.NewDefaultKeySerializer())
		logger.Info("page cache enabled", "ttl", cfg.CacheTTL)
	}

	pageID, err := server.SeedPage(ctx, pages, cfg.SeedSlug, cfg.SeedTitle)
	if err != nil {
		return err
	}
	logger.Info("seed page ready", "page_id", pageID, "slug", cfg.SeedSlug)

	handler := server.NewHandler(pages, logger)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-stop:
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
