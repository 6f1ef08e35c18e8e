package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/charlesng35/heroes/internal/api"
	"github.com/charlesng35/heroes/internal/app"
	"github.com/charlesng35/heroes/internal/cache"
	sharedtestutil "github.com/charlesng35/heroes/internal/database/testutil"
	"github.com/charlesng35/heroes/internal/monitoring"
	"github.com/charlesng35/heroes/internal/repository"
	"github.com/charlesng35/heroes/internal/services"
	"github.com/charlesng35/heroes/pkg/response"
)

// Env encapsulates a fully-wired API instance backed by an in-memory database for handler tests.
type Env struct {
	T          *testing.T
	DB         *gorm.DB
	Router     *gin.Engine
	Cache      *cache.MemoryStore
	Heroes     *services.HeroService
	Monitoring *monitoring.Module
	Config     *app.Config
}

// EnvOption adjusts the configuration or logger used to build an Env.
type EnvOption func(*envSettings)

type envSettings struct {
	cfg *app.Config
	log *zap.Logger
}

// WithConfig mutates the default test configuration before the router is built.
func WithConfig(fn func(cfg *app.Config)) EnvOption {
	return func(s *envSettings) {
		if fn != nil {
			fn(s.cfg)
		}
	}
}

// WithLogger injects the logger handed to the hero service.
func WithLogger(log *zap.Logger) EnvOption {
	return func(s *envSettings) {
		if log != nil {
			s.log = log
		}
	}
}

// DefaultConfig mirrors the production defaults with rate limiting disabled.
func DefaultConfig() *app.Config {
	return &app.Config{
		Server: app.ServerConfig{
			Port:     3000,
			LogLevel: "info",
			CORS: app.CORSConfig{
				Enabled:        true,
				AllowedOrigins: []string{"*"},
				MaxAge:         10 * time.Minute,
			},
			RateLimit: app.RateLimitConfig{
				Requests: 100,
				Window:   time.Minute,
			},
		},
		Database: app.DatabaseConfig{Driver: "sqlite"},
		Cache: app.CacheConfig{
			Driver:          "memory",
			TTL:             services.DefaultHeroListTTL,
			MaxEntries:      100,
			CleanupInterval: time.Minute,
		},
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
			Health:     app.HealthConfig{Enabled: true},
		},
	}
}

// NewEnv provisions a fresh handler test environment with migrations applied.
func NewEnv(t *testing.T, opts ...EnvOption) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	settings := &envSettings{cfg: DefaultConfig(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(settings)
	}
	cfg := settings.cfg

	db := sharedtestutil.MustOpenTestDB(t, sharedtestutil.WithAutoMigrate())

	store := cache.NewMemoryStore(cfg.Cache.MaxEntries, cfg.Cache.CleanupInterval)
	t.Cleanup(func() { _ = store.Close() })

	mod, err := monitoring.NewModule(monitoring.Options{DisableProcessCollector: true})
	require.NoError(t, err)
	monitoring.SetModule(mod)

	repo, err := repository.NewHeroRepository(db)
	require.NoError(t, err)

	heroes, err := services.NewHeroService(repo, store, settings.log, services.WithHeroListTTL(cfg.Cache.TTL))
	require.NoError(t, err)

	router, err := api.NewRouter(cfg, api.Dependencies{
		DB:         db,
		Heroes:     heroes,
		Cache:      store,
		Monitoring: mod,
	})
	require.NoError(t, err)

	return &Env{
		T:          t,
		DB:         db,
		Router:     router,
		Cache:      store,
		Heroes:     heroes,
		Monitoring: mod,
		Config:     cfg,
	}
}

// APIResponse represents the canonical API envelope returned by handlers.
type APIResponse struct {
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorInfo `json:"error"`
}

// DecodeResponse parses the standard API response object from a recorder.
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// DecodeInto unmarshals the data payload into the provided destination.
func DecodeInto[T any](t *testing.T, raw json.RawMessage, dest *T) {
	t.Helper()
	if dest == nil {
		t.Fatal("destination must not be nil")
	}
	require.NoError(t, json.Unmarshal(raw, dest))
}

// Request executes an HTTP request against the test router, JSON encoding the body when present.
func (e *Env) Request(method, path string, body any) *httptest.ResponseRecorder {
	e.T.Helper()

	var buf *bytes.Buffer
	switch v := body.(type) {
	case nil:
		buf = bytes.NewBuffer(nil)
	case string:
		buf = bytes.NewBufferString(v)
	default:
		data, err := json.Marshal(body)
		require.NoError(e.T, err)
		buf = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(e.T, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}
