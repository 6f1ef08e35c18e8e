package monitoring

import (
	"strings"
	"time"
)

// ObserveAPILatency captures the HTTP request latency for the supplied route.
func ObserveAPILatency(method, path, status string, duration time.Duration) {
	module := ensureModule()
	if module == nil {
		return
	}
	if duration < 0 {
		duration = 0
	}
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = "UNKNOWN"
	}
	path = sanitizePath(path)
	if path == "" {
		path = "unknown"
	}
	status = strings.TrimSpace(status)
	if status == "" {
		status = "unknown"
	}
	module.metrics.apiLatency.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// TrackInFlight marks a request as started and returns the func that marks it done.
func TrackInFlight() func() {
	module := ensureModule()
	if module == nil {
		return func() {}
	}
	module.metrics.requestsInFlight.Inc()
	return module.metrics.requestsInFlight.Dec
}

// RecordHeroOperation counts a hero service call by operation and result
// (success, not_found or error).
func RecordHeroOperation(operation, result string) {
	module := ensureModule()
	if module == nil {
		return
	}
	op := normalizeLabel(operation)
	res := normalizeLabel(result)
	module.metrics.heroOperations.WithLabelValues(op, res).Inc()
	module.stats.recordHeroOperation(res)
}

// RecordCacheLookup counts a cache read by key and outcome (hit, miss or error).
func RecordCacheLookup(key, result string) {
	module := ensureModule()
	if module == nil {
		return
	}
	res := normalizeLabel(result)
	module.metrics.cacheLookups.WithLabelValues(normalizeLabel(key), res).Inc()
	module.stats.recordCacheLookup(res)
}

// RecordCachePurge adds the number of expired cache rows removed by maintenance.
func RecordCachePurge(removed int64) {
	module := ensureModule()
	if module == nil || removed <= 0 {
		return
	}
	module.metrics.cacheEntriesPurged.Add(float64(removed))
	module.stats.cachePurged.Add(uint64(removed))
}

// RecordMaintenanceRun records the completion of a maintenance job.
func RecordMaintenanceRun(job, result, message string, duration time.Duration) {
	module := ensureModule()
	if module == nil {
		return
	}
	jobID := normalizeLabel(job)
	result = normalizeLabel(result)
	module.metrics.maintenanceRuns.WithLabelValues(jobID, result).Inc()
	observeDuration(module.metrics.maintenanceDuration.WithLabelValues(jobID), duration)
	if result == "success" {
		module.metrics.maintenanceLastRun.WithLabelValues(jobID).Set(float64(time.Now().Unix()))
	}
	module.stats.maintenanceEntry(jobID).record(result, strings.TrimSpace(message), duration)
}

// ensureModule returns the current module or nil when unset.
func ensureModule() *Module {
	return globalModule.Load()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}

func sanitizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "/" {
		return "root"
	}
	return normalizePath(path)
}

func normalizePath(path string) string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	path = strings.ReplaceAll(path, " ", "_")
	if path == "" {
		return "root"
	}
	return path
}
