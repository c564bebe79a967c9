package handler

import (
	"net/http"
	"runtime"
	"time"

	"stockline-api/internal/service"
	"stockline-api/pkg/response"
)

// AdminHandler handles admin-gated HTTP requests. The routes it serves sit
// behind the admin-password middleware; by the time a request reaches this
// handler the shared secret has already been verified.
type AdminHandler struct {
	itemService *service.ItemService
	cacheType   string
	dbDriver    string
	startTime   time.Time
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(itemService *service.ItemService, dbDriver, cacheType string) *AdminHandler {
	return &AdminHandler{
		itemService: itemService,
		cacheType:   cacheType,
		dbDriver:    dbDriver,
		startTime:   time.Now(),
	}
}

// DeleteItem handles DELETE /admin/items/{id}
//
// Identical to the public delete, including the soft-fail on absence.
func (h *AdminHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	msg, err := h.itemService.Delete(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]string{"message": msg})
}

// GetStats handles GET /admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats := make(map[string]interface{})

	stats["uptime_seconds"] = int64(time.Since(h.startTime).Seconds())
	stats["uptime_human"] = time.Since(h.startTime).Round(time.Second).String()
	stats["server_time"] = time.Now().Format(time.RFC3339)
	stats["db_driver"] = h.dbDriver
	stats["cache_type"] = h.cacheType

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats["memory"] = map[string]interface{}{
		"alloc_mb":      float64(memStats.Alloc) / 1024 / 1024,
		"sys_mb":        float64(memStats.Sys) / 1024 / 1024,
		"heap_alloc_mb": float64(memStats.HeapAlloc) / 1024 / 1024,
		"num_gc":        memStats.NumGC,
		"goroutines":    runtime.NumGoroutine(),
	}

	if repoStats, err := h.itemService.Stats(ctx); err == nil {
		repoStats["status"] = "connected"
		stats["store"] = repoStats
	} else {
		stats["store"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	}

	stats["runtime"] = map[string]interface{}{
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"cpus":       runtime.NumCPU(),
	}

	response.OK(w, stats)
}
