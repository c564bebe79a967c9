package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"stockline-api/internal/model"
	"stockline-api/internal/service"
	"stockline-api/pkg/apierror"
	"stockline-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// ItemHandler handles item-related HTTP requests.
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
	}
}

// itemID parses the {id} path parameter.
func itemID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apierror.BadRequest("Item ID must be an integer")
	}
	return id, nil
}

// List handles GET /items
//
// Query params: sortBy (one of id, name, stock; anything else is ignored)
// and count (limit after sorting; absent, zero, or unparseable means all).
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	sortBy := r.URL.Query().Get("sortBy")

	count := 0
	if raw := r.URL.Query().Get("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			count = n
		}
	}

	items, err := h.itemService.List(r.Context(), sortBy, count)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, items)
}

// Get handles GET /items/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	item, err := h.itemService.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, item)
}

// Create handles POST /items
//
// Validation failures return HTTP 200 with a status:"error" body carrying
// every problem found; callers must inspect the body, not the status code.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.ItemCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	item, err := h.itemService.Create(r.Context(), payload)
	if err != nil {
		var verrs service.ValidationErrors
		if errors.As(err, &verrs) {
			response.OK(w, map[string]interface{}{
				"status":  "error",
				"message": "Validation failed",
				"errors":  []string(verrs),
			})
			return
		}
		response.Error(w, err)
		return
	}

	response.Created(w, map[string]interface{}{
		"status":  "success",
		"message": "Item created successfully",
		"data":    item,
	})
}

// Update handles PUT /items/{id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var payload model.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	item, err := h.itemService.Update(r.Context(), id, payload)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, item)
}

// Delete handles DELETE /items/{id}
//
// Deletion never fails on absence: a missing target returns 200 with a
// "not found" message, so repeated deletes always succeed.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
