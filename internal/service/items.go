package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"stockline-api/internal/cache"
	"stockline-api/internal/model"
	"stockline-api/internal/repository"
	"stockline-api/pkg/apierror"
)

// ValidationErrors is the collected-errors failure mode of item creation.
// Every problem found in a payload is reported together, as human-readable
// strings, rather than short-circuiting on the first one.
type ValidationErrors []string

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	return strings.Join(e, "; ")
}

// ItemService handles item business logic: payload validation, id
// uniqueness, partial updates, and idempotent deletion.
type ItemService struct {
	repo     repository.ItemRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewItemService creates a new item service. cache may be nil to disable
// read caching.
func NewItemService(repo repository.ItemRepository, c cache.Cache, cacheTTL time.Duration) *ItemService {
	if repo == nil {
		return nil
	}
	return &ItemService{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// List returns all items, optionally sorted by one of {id, name, stock}
// and truncated to count rows. Unrecognised sortBy values are ignored.
func (s *ItemService) List(ctx context.Context, sortBy string, count int) ([]model.Item, error) {
	key := fmt.Sprintf("list:%s:%d", sortBy, count)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var items []model.Item
			if err := json.Unmarshal(data, &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := s.repo.List(ctx, sortBy, count)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(items); err == nil {
			_ = s.cache.Set(ctx, key, data, s.cacheTTL)
		}
	}
	return items, nil
}

// Get returns the item with the given id, or a 404 error.
func (s *ItemService) Get(ctx context.Context, id int64) (*model.Item, error) {
	key := fmt.Sprintf("item:%d", id)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var item model.Item
			if err := json.Unmarshal(data, &item); err == nil {
				return &item, nil
			}
		}
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apierror.NotFound("Item not found")
	}

	if s.cache != nil {
		if data, err := json.Marshal(item); err == nil {
			_ = s.cache.Set(ctx, key, data, s.cacheTTL)
		}
	}
	return item, nil
}

// Create validates the payload and persists a new item. All validation
// problems are collected and returned together as ValidationErrors; a
// payload that fails validation never persists anything.
//
// The duplicate-id pre-check below and the insert are two separate
// statements with no enclosing transaction. Concurrent creates with the
// same id can both pass the pre-check; the primary key constraint then
// rejects the loser, and that rejection is reported in the same collected
// shape as the pre-check would have produced.
func (s *ItemService) Create(ctx context.Context, payload model.ItemCreate) (*model.Item, error) {
	var errs ValidationErrors

	if payload.Name == nil {
		errs = append(errs, "Name field is required.")
	}
	if payload.Stock == nil {
		errs = append(errs, "Stock field is required.")
	}
	if payload.Stock != nil && *payload.Stock < 0 {
		errs = append(errs, "Stock must be a non-negative integer.")
	}

	if payload.ID != nil {
		exists, err := s.repo.Exists(ctx, *payload.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			errs = append(errs, fmt.Sprintf("Item with ID %d already exists.", *payload.ID))
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	item, err := s.repo.Create(ctx, payload.ID, *payload.Name, *payload.Stock)
	if errors.Is(err, repository.ErrDuplicateID) {
		// A store-assigned id can collide too (e.g. after explicit inserts
		// ahead of the sequence), so the payload id may be absent here.
		if payload.ID == nil {
			return nil, ValidationErrors{"Item ID already exists."}
		}
		return nil, ValidationErrors{fmt.Sprintf("Item with ID %d already exists.", *payload.ID)}
	}
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return item, nil
}

// Update applies a partial update to the item with the given id. The id
// itself may be reassigned when the new id is free. A non-empty name
// overwrites; a present stock overwrites unconditionally, including zero.
func (s *ItemService) Update(ctx context.Context, id int64, payload model.ItemUpdate) (*model.Item, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apierror.NotFound("Item not found")
	}

	if payload.ID != nil && *payload.ID != item.ID {
		exists, err := s.repo.Exists(ctx, *payload.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apierror.BadRequest("ID already exists")
		}
		item.ID = *payload.ID
	}

	if payload.Name != nil && *payload.Name != "" {
		item.Name = *payload.Name
	}

	if payload.Stock != nil {
		item.Stock = *payload.Stock
	}

	updated, err := s.repo.Update(ctx, id, *item)
	if errors.Is(err, repository.ErrDuplicateID) {
		return nil, apierror.BadRequest("ID already exists")
	}
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

// Delete removes the item with the given id. Absence is not an error:
// the returned message differs, but the operation always succeeds.
func (s *ItemService) Delete(ctx context.Context, id int64) (string, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !deleted {
		return fmt.Sprintf("Item with ID %d not found. No deletion performed.", id), nil
	}

	s.invalidate(ctx)
	return fmt.Sprintf("Item with ID %d has been successfully deleted.", id), nil
}

// Stats returns statistics about the item store.
func (s *ItemService) Stats(ctx context.Context) (map[string]interface{}, error) {
	return s.repo.Stats(ctx)
}

// Ping checks store connectivity.
func (s *ItemService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// invalidate drops all cached reads after a write.
func (s *ItemService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(ctx); err != nil {
		log.Printf("[ItemService] Cache invalidation failed: %v", err)
	}
}
