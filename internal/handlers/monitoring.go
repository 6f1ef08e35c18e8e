package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/heroes/internal/app"
	"github.com/charlesng35/heroes/internal/monitoring"
	"github.com/charlesng35/heroes/pkg/response"
)

// MonitoringSummary is the payload of the operator summary endpoint.
type MonitoringSummary struct {
	Summary     monitoring.Summary `json:"summary"`
	Prometheus  PrometheusInfo     `json:"prometheus"`
	CacheDriver string             `json:"cache_driver"`
}

// PrometheusInfo tells operators where to scrape.
type PrometheusInfo struct {
	Enabled  bool   `json:"enabled"`
	Endpoint string `json:"endpoint"`
}

// MonitoringHandler serves the operator summary.
type MonitoringHandler struct {
	module      *monitoring.Module
	prometheus  PrometheusInfo
	cacheDriver string
}

// NewMonitoringHandler returns nil when neither health reporting nor Prometheus is enabled.
func NewMonitoringHandler(module *monitoring.Module, cfg *app.Config) *MonitoringHandler {
	if module == nil || cfg == nil {
		return nil
	}
	mon := cfg.Monitoring
	if !mon.Health.Enabled && !mon.Prometheus.Enabled {
		return nil
	}

	endpoint := strings.TrimSpace(mon.Prometheus.Endpoint)
	if endpoint == "" {
		endpoint = "/metrics"
	}
	return &MonitoringHandler{
		module:      module,
		prometheus:  PrometheusInfo{Enabled: mon.Prometheus.Enabled, Endpoint: endpoint},
		cacheDriver: cfg.Cache.Driver,
	}
}

// Summary handles GET /api/monitoring/summary.
func (h *MonitoringHandler) Summary(c *gin.Context) {
	response.Success(c, http.StatusOK, "Monitoring summary retrieved successfully", MonitoringSummary{
		Summary:     h.module.Summary(),
		Prometheus:  h.prometheus,
		CacheDriver: h.cacheDriver,
	})
}
