package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/heroes/internal/app"
	"github.com/charlesng35/heroes/internal/cache"
	testutil "github.com/charlesng35/heroes/internal/database/testutil"
	"github.com/charlesng35/heroes/internal/monitoring"
	"github.com/charlesng35/heroes/internal/monitoring/checks"
	"github.com/charlesng35/heroes/internal/repository"
	"github.com/charlesng35/heroes/internal/services"
)

type routerFixture struct {
	router *gin.Engine
	module *monitoring.Module
}

func newRouterFixture(t *testing.T, mutate func(cfg *app.Config)) routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	store := cache.NewMemoryStore(100, time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	repo, err := repository.NewHeroRepository(db)
	require.NoError(t, err)
	heroes, err := services.NewHeroService(repo, store, nil)
	require.NoError(t, err)

	mod, err := monitoring.NewModule(monitoring.Options{DisableProcessCollector: true})
	require.NoError(t, err)
	monitoring.SetModule(mod)
	mod.Health().RegisterReadiness(checks.Database(db, time.Second))
	mod.Health().RegisterReadiness(checks.Cache(cache.DriverMemory, store, time.Second))

	cfg := &app.Config{
		Server: app.ServerConfig{
			CORS: app.CORSConfig{Enabled: true, AllowedOrigins: []string{"*"}},
		},
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
			Health:     app.HealthConfig{Enabled: true},
		},
	}
	if mutate != nil {
		mutate(cfg)
	}

	router, err := NewRouter(cfg, Dependencies{DB: db, Heroes: heroes, Cache: store, Monitoring: mod})
	require.NoError(t, err)
	return routerFixture{router: router, module: mod}
}

func (f routerFixture) serve(method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	f.router.ServeHTTP(w, req)
	return w
}

func TestNewRouterRequiresDependencies(t *testing.T) {
	_, err := NewRouter(nil, Dependencies{})
	require.Error(t, err)

	_, err = NewRouter(&app.Config{}, Dependencies{})
	require.Error(t, err)

	db := testutil.MustOpenTestDB(t)
	_, err = NewRouter(&app.Config{}, Dependencies{DB: db})
	require.ErrorContains(t, err, "hero service")
}

func TestRouter_HeroRoutesMountedTwice(t *testing.T) {
	f := newRouterFixture(t, nil)

	for _, path := range []string{"/heroes", "/api/heroes"} {
		w := f.serve(http.MethodGet, path)
		require.Equal(t, http.StatusOK, w.Code, path)
		require.NotEmpty(t, w.Header().Get("X-Request-ID"))
		require.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	}
}

func TestRouter_HealthEndpoints(t *testing.T) {
	f := newRouterFixture(t, nil)

	for _, path := range []string{"/health", "/health/live", "/health/ready", "/api/health/ready"} {
		w := f.serve(http.MethodGet, path)
		require.Equal(t, http.StatusOK, w.Code, path)
	}

	w := f.serve(http.MethodGet, "/health/ready")
	var report struct {
		Status string                   `json:"status"`
		Checks []monitoring.ProbeResult `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.Equal(t, "up", report.Status)
	require.Len(t, report.Checks, 2)
}

func TestRouter_HealthReadyFailsWhenDependencyDown(t *testing.T) {
	f := newRouterFixture(t, nil)
	f.module.Health().RegisterReadiness(monitoring.NewCheck("broken", func(context.Context) monitoring.ProbeResult {
		return monitoring.ProbeResult{Status: monitoring.StatusDown, Details: "unreachable"}
	}))

	w := f.serve(http.MethodGet, "/health/ready")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), "unreachable")
}

func TestRouter_HealthDisabled(t *testing.T) {
	f := newRouterFixture(t, func(cfg *app.Config) {
		cfg.Monitoring.Health.Enabled = false
	})

	w := f.serve(http.MethodGet, "/health")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "disabled")
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	f := newRouterFixture(t, nil)

	// Trigger a request to generate metrics
	require.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/heroes").Code)

	w := f.serve(http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.True(t, strings.Contains(body, "heroes_api_latency_seconds"), "expected latency histogram in metrics output")
	require.Contains(t, body, `operation="find_all"`)
}

func TestRouter_MetricsDisabled(t *testing.T) {
	f := newRouterFixture(t, func(cfg *app.Config) {
		cfg.Monitoring.Prometheus.Enabled = false
	})

	require.Equal(t, http.StatusNotFound, f.serve(http.MethodGet, "/metrics").Code)
}

func TestRouter_MonitoringSummary(t *testing.T) {
	f := newRouterFixture(t, nil)

	require.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/api/monitoring/summary").Code)

	disabled := newRouterFixture(t, func(cfg *app.Config) {
		cfg.Monitoring = app.MonitoringConfig{}
	})
	require.Equal(t, http.StatusNotFound, disabled.serve(http.MethodGet, "/api/monitoring/summary").Code)
}

func TestRouter_RateLimit(t *testing.T) {
	f := newRouterFixture(t, func(cfg *app.Config) {
		cfg.Server.RateLimit = app.RateLimitConfig{Enabled: true, Requests: 2, Window: time.Minute}
	})

	require.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/heroes").Code)
	require.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/heroes").Code)
	require.Equal(t, http.StatusTooManyRequests, f.serve(http.MethodGet, "/heroes").Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	f := newRouterFixture(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/heroes/1", nil)
	req.Header.Set("Origin", "https://ui.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
