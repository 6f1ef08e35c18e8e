package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/charlesng35/heroes/internal/api"
	"github.com/charlesng35/heroes/internal/app"
	"github.com/charlesng35/heroes/internal/app/maintenance"
	"github.com/charlesng35/heroes/internal/cache"
	"github.com/charlesng35/heroes/internal/database"
	"github.com/charlesng35/heroes/internal/monitoring"
	"github.com/charlesng35/heroes/internal/monitoring/checks"
	"github.com/charlesng35/heroes/internal/repository"
	"github.com/charlesng35/heroes/internal/services"
	"github.com/charlesng35/heroes/pkg/logger"
)

// runtimeStack bundles long-lived services used by the HTTP server.
type runtimeStack struct {
	DB         *gorm.DB
	Cache      cache.Backend
	Monitoring *monitoring.Module
	Heroes     *services.HeroService
	Cleaner    *maintenance.Cleaner
	Router     *gin.Engine
}

// bootstrapRuntime initialises the database, cache, services, and the HTTP router.
func bootstrapRuntime(ctx context.Context, cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			_ = stack.Shutdown(context.Background(), log)
		}
	}()

	// enable gin debug mod
	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.Monitoring, err = monitoring.NewModule(monitoring.Options{})
	if err != nil {
		return nil, fmt.Errorf("initialise monitoring: %w", err)
	}
	monitoring.SetModule(stack.Monitoring)

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	stack.Cache, err = cache.Open(ctx, cfg.Cache.StoreConfig(), stack.DB)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	log.Info("cache ready", zap.String("driver", cfg.Cache.StoreConfig().Driver))

	repo, err := repository.NewHeroRepository(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise hero repository: %w", err)
	}

	stack.Heroes, err = services.NewHeroService(repo, stack.Cache, logger.WithModule("heroes"),
		services.WithHeroListTTL(cfg.Cache.TTL),
	)
	if err != nil {
		return nil, fmt.Errorf("initialise hero service: %w", err)
	}

	// Only the database backend needs an explicit sweep; memory and Redis expire on their own.
	if purger, ok := stack.Cache.(*cache.DatabaseStore); ok {
		stack.Cleaner = maintenance.NewCleaner(purger,
			maintenance.WithCacheSchedule(cfg.Maintenance.CacheCleanupSchedule),
			maintenance.WithLogger(logger.WithModule("maintenance")),
		)
		if err := stack.Cleaner.Start(); err != nil {
			return nil, fmt.Errorf("start maintenance jobs: %w", err)
		}
	}

	registerHealthChecks(stack, cfg)

	stack.Router, err = api.NewRouter(cfg, api.Dependencies{
		DB:         stack.DB,
		Heroes:     stack.Heroes,
		Cache:      stack.Cache,
		Monitoring: stack.Monitoring,
	})
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	success = true
	return stack, nil
}

func registerHealthChecks(stack *runtimeStack, cfg *app.Config) {
	if stack == nil || stack.Monitoring == nil || !cfg.Monitoring.Health.Enabled {
		return
	}

	health := stack.Monitoring.Health()
	health.RegisterLiveness(checks.Database(stack.DB, 0))
	health.RegisterReadiness(checks.Database(stack.DB, 0))
	health.RegisterReadiness(checks.Cache(cfg.Cache.StoreConfig().Driver, stack.Cache, 0))
	if stack.Cleaner.Enabled() {
		health.RegisterReadiness(checks.Maintenance(0))
	}
}

// Shutdown gracefully stops background jobs and releases resources.
func (s *runtimeStack) Shutdown(ctx context.Context, log *zap.Logger) error {
	if s == nil {
		return nil
	}

	var errs error
	if s.Cleaner != nil {
		<-s.Cleaner.Stop().Done()
		if err := s.Cleaner.RunOnce(ctx); err != nil {
			log.Warn("maintenance shutdown cleanup failed", zap.Error(err))
			errs = multierr.Append(errs, err)
		}
	}

	if s.Cache != nil {
		if err := s.Cache.Close(); err != nil {
			log.Warn("cache shutdown", zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("close cache: %w", err))
		}
	}

	if s.DB != nil {
		errs = multierr.Append(errs, closeDatabase(s.DB))
	}
	return errs
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database.ConnectionConfig()
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		_ = closeDatabase(db)
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	log := logger.WithModule("database")
	log.Info("database connected", zap.String("driver", strings.ToLower(strings.TrimSpace(dbCfg.Driver))))

	return db, nil
}

func closeDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("obtain sql db: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
