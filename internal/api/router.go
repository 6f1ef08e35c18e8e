package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charlesng35/heroes/internal/app"
	"github.com/charlesng35/heroes/internal/cache"
	"github.com/charlesng35/heroes/internal/handlers"
	"github.com/charlesng35/heroes/internal/middleware"
	"github.com/charlesng35/heroes/internal/monitoring"
	"github.com/charlesng35/heroes/internal/services"
)

// Dependencies bundles the long-lived services the router mounts.
type Dependencies struct {
	DB         *gorm.DB
	Heroes     *services.HeroService
	Cache      cache.Counter
	Monitoring *monitoring.Module
}

// NewRouter builds the Gin engine, wires middleware and registers the hero, health and
// monitoring routes. Hero routes are served both at the root and under /api.
func NewRouter(cfg *app.Config, deps Dependencies) (*gin.Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}
	if deps.DB == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if deps.Heroes == nil {
		return nil, fmt.Errorf("hero service must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	if cfg.Server.CORS.Enabled {
		r.Use(middleware.CORS(middleware.CORSOptions{
			AllowedOrigins:   cfg.Server.CORS.AllowedOrigins,
			AllowCredentials: cfg.Server.CORS.AllowCredentials,
			MaxAge:           cfg.Server.CORS.MaxAge,
		}))
	}
	if limit := cfg.Server.RateLimit; limit.Enabled && deps.Cache != nil {
		r.Use(middleware.RateLimit(middleware.NewRateStore(deps.Cache), limit.Requests, limit.Window))
	}

	registerHealthRoutes(r, cfg, deps.Monitoring)

	heroHandler, err := handlers.NewHeroHandler(deps.Heroes)
	if err != nil {
		return nil, err
	}
	registerHeroRoutes(r, heroHandler)

	api := r.Group("/api")
	registerHeroRoutes(api, heroHandler)
	registerMonitoringRoutes(api, handlers.NewMonitoringHandler(deps.Monitoring, cfg))

	// Metrics endpoint
	if cfg.Monitoring.Prometheus.Enabled && deps.Monitoring != nil {
		endpoint := strings.TrimSpace(cfg.Monitoring.Prometheus.Endpoint)
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(deps.Monitoring.Handler()))
	}

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
