// Command server runs the site-builder HTTP API: draft lifecycle, preview
// rendering, and commit-to-project migration (§1, §6).
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/itkodovaya/site-builder/internal/assets"
	"github.com/itkodovaya/site-builder/internal/cacheprovider"
	"github.com/itkodovaya/site-builder/internal/commit"
	"github.com/itkodovaya/site-builder/internal/draftstore"
	"github.com/itkodovaya/site-builder/internal/httpapi"
	"github.com/itkodovaya/site-builder/internal/logging"
	"github.com/itkodovaya/site-builder/internal/logging/console"
	"github.com/itkodovaya/site-builder/internal/logging/gologger"
	"github.com/itkodovaya/site-builder/internal/relstore"
	"github.com/itkodovaya/site-builder/internal/runtimeconfig"
	"github.com/itkodovaya/site-builder/internal/templates"
	"github.com/itkodovaya/site-builder/internal/usecases"
	"github.com/itkodovaya/site-builder/internal/validation"
	"github.com/itkodovaya/site-builder/pkg/interfaces"
)

func main() {
	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	loggerProvider, err := newLoggerProvider(cfg.Logging)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	logger := loggerProvider.GetLogger("server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, closeDB, err := openRelationalStore(cfg.Relational)
	if err != nil {
		log.Fatalf("relational store: %v", err)
	}
	defer closeDB()

	cacheService, keySerializer := newRepositoryCache()
	relStore := relstore.NewStoreWithCache(db, cacheService, keySerializer)
	if err := relStore.Migrate(ctx); err != nil {
		log.Fatalf("relational store migrate: %v", err)
	}

	registry, err := templates.NewRegistry()
	if err != nil {
		log.Fatalf("template registry: %v", err)
	}

	drafts := draftstore.NewMemoryStore()
	assetProvider := assets.NewMemoryProvider()

	coordinatorOpts := []commit.Option{
		commit.WithLogger(loggerProvider.GetLogger("commit")),
	}
	if cfg.StrictCheck {
		coordinatorOpts = append(coordinatorOpts, commit.WithStrictValidation(validation.NewSiteConfigValidator()))
	}

	locker := commit.NewCacheProviderLocker(cacheprovider.New())
	coordinator := commit.NewCoordinator(drafts, relStore, registry, locker, coordinatorOpts...)

	service := usecases.NewService(drafts, registry, assetProvider, coordinator,
		usecases.WithLogger(loggerProvider.GetLogger("usecases")),
		usecases.WithDefaultTTL(cfg.DraftStore.DraftTTLSecond),
	)

	server := httpapi.NewServer(service,
		httpapi.WithLogger(loggerProvider.GetLogger("http")),
		httpapi.WithInternalToken(cfg.Commit.InternalToken),
		httpapi.WithAllowedOrigin(firstOrigin(cfg.CORS.AllowedOrigins)),
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Routes(),
	}

	go func() {
		logger.Info("listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen and serve", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

// loadConfig starts from runtimeconfig.DefaultConfig and layers environment
// overrides on top, the same env-var-driven pattern the teacher uses for
// its cmd/example entrypoint (CMS_ALLOW_MISSING_TRANSLATIONS, etc.) rather
// than a dedicated flags/config library.
func loadConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()

	if v := os.Getenv("SITEBUILDER_DRAFTSTORE_ADDRESS"); v != "" {
		cfg.DraftStore.Address = v
	}
	if v := os.Getenv("SITEBUILDER_DRAFTSTORE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DraftStore.DraftTTLSecond = n
		}
	}
	if v := os.Getenv("SITEBUILDER_DB_DRIVER"); v != "" {
		cfg.Relational.Driver = v
	}
	if v := os.Getenv("SITEBUILDER_DB_DSN"); v != "" {
		cfg.Relational.DSN = v
	}
	if v := os.Getenv("SITEBUILDER_ASSETS_BASE_URL"); v != "" {
		cfg.Assets.BaseURL = v
	}
	if v := os.Getenv("SITEBUILDER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SITEBUILDER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("SITEBUILDER_COMMIT_TOKEN"); v != "" {
		cfg.Commit.InternalToken = v
	}
	if v := os.Getenv("SITEBUILDER_CORS_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("SITEBUILDER_LOG_PROVIDER"); v != "" {
		cfg.Logging.Provider = v
	}
	if v := os.Getenv("SITEBUILDER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SITEBUILDER_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	cfg.Logging.AddSource = strings.EqualFold(os.Getenv("SITEBUILDER_LOG_ADD_SOURCE"), "true")
	cfg.StrictCheck = strings.EqualFold(os.Getenv("SITEBUILDER_STRICT_CHECK"), "true")

	return cfg
}

// newLoggerProvider selects between the hand-rolled console provider and
// the go-logger-backed adapter, mirroring the teacher's
// di.Container.configureLoggerProvider switch.
func newLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	if !cfg.Enabled {
		return noopLoggerProvider{}, nil
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		options := console.Options{}
		if lvl, ok := parseConsoleLevel(cfg.Level); ok {
			options.MinLevel = &lvl
		}
		return console.NewProvider(options), nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
		})
	default:
		return console.NewProvider(console.Options{}), nil
	}
}

func parseConsoleLevel(level string) (console.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace, true
	case "debug":
		return console.LevelDebug, true
	case "info", "":
		return console.LevelInfo, true
	case "warn", "warning":
		return console.LevelWarn, true
	case "error":
		return console.LevelError, true
	case "fatal":
		return console.LevelFatal, true
	default:
		return 0, false
	}
}

type noopLoggerProvider struct{}

func (noopLoggerProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }

// openRelationalStore opens the sql.DB for the configured driver and wraps
// it with the matching bun dialect, the same driver-to-dialect switch the
// teacher's di.Container.bunStorageFactory performs.
func openRelationalStore(cfg runtimeconfig.RelationalConfig) (*bun.DB, func(), error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))

	var sqlDriver string
	switch driver {
	case "sqlite", "sqlite3":
		sqlDriver = "sqlite3"
	case "postgres", "pg", "pgx":
		sqlDriver = "postgres"
	default:
		return nil, nil, fmt.Errorf("unsupported relational driver %q", cfg.Driver)
	}

	sqlDB, err := sql.Open(sqlDriver, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", sqlDriver, err)
	}

	var db *bun.DB
	switch sqlDriver {
	case "sqlite3":
		db = bun.NewDB(sqlDB, sqlitedialect.New())
	case "postgres":
		db = bun.NewDB(sqlDB, pgdialect.New())
	}

	closer := func() { _ = sqlDB.Close() }
	return db, closer, nil
}

// firstOrigin returns the first configured origin. The thin CORS
// pass-through (internal/httpapi.withCORS) can only emit a single static
// Access-Control-Allow-Origin value, not the full allow-list matching a
// real CORS middleware would do.
func firstOrigin(origins []string) string {
	if len(origins) == 0 {
		return ""
	}
	return strings.TrimSpace(origins[0])
}

// newRepositoryCache builds the go-repository-cache service the same way
// the teacher's di.Container.configureCacheDefaults does. A failure to
// construct the cache service degrades to an uncached Store rather than
// failing startup, since caching is a read-path optimization, not a
// correctness requirement.
func newRepositoryCache() (repocache.CacheService, repocache.KeySerializer) {
	cfg := repocache.DefaultConfig()
	service, err := repocache.NewCacheService(cfg)
	if err != nil {
		return nil, nil
	}
	return service, repocache.NewDefaultKeySerializer()
}
