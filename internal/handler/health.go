package handler

import (
	"net/http"
	"time"

	"stockline-api/internal/service"
	"stockline-api/pkg/response"
)

// Handler contains the banner and health endpoints.
type Handler struct {
	itemService *service.ItemService
	version     string
}

// New creates a new handler.
func New(itemService *service.ItemService, version string) *Handler {
	return &Handler{
		itemService: itemService,
		version:     version,
	}
}

// Root handles GET / with the service banner.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]interface{}{
		"message": "Welcome! You can use this API to check clothing stock.",
		"version": h.version,
		"endpoints": []string{
			"GET /items",
			"GET /items/{id}",
			"POST /items",
			"PUT /items/{id}",
			"DELETE /items/{id}",
			"DELETE /admin/items/{id}",
			"POST /uploadfile/",
		},
	})
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Store     string    `json:"store"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Store:     "ok",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}

	if err := h.itemService.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Store = "unreachable"
		response.JSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	response.OK(w, resp)
}
