package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockline-api/internal/cache"
	"stockline-api/internal/model"
	"stockline-api/internal/repository"
	"stockline-api/pkg/apierror"
)

// newTestService builds an ItemService over a fresh in-memory SQLite store.
func newTestService(t *testing.T) *ItemService {
	t.Helper()

	repo, err := repository.NewSQLiteItemRepository(":memory:")
	if err != nil {
		t.Fatalf("opening test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	c := cache.NewMemoryCache()
	t.Cleanup(func() { c.Close() })

	return NewItemService(repo, c, time.Minute)
}

func int64p(v int64) *int64 { return &v }
func strp(v string) *string { return &v }

func mustCreate(t *testing.T, s *ItemService, id int64, name string, stock int64) *model.Item {
	t.Helper()
	item, err := s.Create(context.Background(), model.ItemCreate{
		ID:    &id,
		Name:  &name,
		Stock: &stock,
	})
	if err != nil {
		t.Fatalf("Create(%d, %q, %d): %v", id, name, stock, err)
	}
	return item
}

func TestCreateCollectsAllErrors(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), model.ItemCreate{})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs) != 2 {
		t.Fatalf("expected 2 collected errors, got %d: %v", len(verrs), verrs)
	}
	if verrs[0] != "Name field is required." {
		t.Errorf("unexpected first error: %q", verrs[0])
	}
	if verrs[1] != "Stock field is required." {
		t.Errorf("unexpected second error: %q", verrs[1])
	}
}

func TestCreateNegativeStock(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.ItemCreate{
		ID:    int64p(888889),
		Name:  strp("Invalid Stock Item"),
		Stock: int64p(-5),
	})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs) != 1 || verrs[0] != "Stock must be a non-negative integer." {
		t.Errorf("unexpected errors: %v", verrs)
	}

	// Nothing may have persisted.
	items, _ := svc.List(ctx, "", 0)
	if len(items) != 0 {
		t.Errorf("expected no persisted rows, got %d", len(items))
	}
}

func TestCreateDuplicateID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, 187654, "Slim Fit Hoodie", 150)

	_, err := svc.Create(ctx, model.ItemCreate{
		ID:    int64p(187654),
		Name:  strp("Slim Fit Hoodie"),
		Stock: int64p(150),
	})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs) != 1 || verrs[0] != "Item with ID 187654 already exists." {
		t.Errorf("unexpected errors: %v", verrs)
	}
}

// stubItemRepository forces specific repository outcomes that the real
// backends only produce under concurrent writes or sequence collisions.
type stubItemRepository struct {
	createErr error
}

func (s *stubItemRepository) List(ctx context.Context, sortBy string, count int) ([]model.Item, error) {
	return []model.Item{}, nil
}

func (s *stubItemRepository) Get(ctx context.Context, id int64) (*model.Item, error) {
	return nil, nil
}

func (s *stubItemRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return false, nil
}

func (s *stubItemRepository) Create(ctx context.Context, id *int64, name string, stock int64) (*model.Item, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &model.Item{ID: 1, Name: name, Stock: stock}, nil
}

func (s *stubItemRepository) Update(ctx context.Context, currentID int64, item model.Item) (*model.Item, error) {
	return &item, nil
}

func (s *stubItemRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return false, nil
}

func (s *stubItemRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

func (s *stubItemRepository) Ping(ctx context.Context) error { return nil }

func (s *stubItemRepository) Close() error { return nil }

var _ repository.ItemRepository = (*stubItemRepository)(nil)

func TestCreateAssignedIDCollision(t *testing.T) {
	// A store-assigned id can hit the primary key constraint when earlier
	// explicit inserts ran ahead of the sequence. The collision must come
	// back in the collected-error shape, not blow up on the absent id.
	svc := NewItemService(&stubItemRepository{createErr: repository.ErrDuplicateID}, nil, time.Minute)

	_, err := svc.Create(context.Background(), model.ItemCreate{
		Name:  strp("Auto ID"),
		Stock: int64p(3),
	})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs) != 1 || verrs[0] != "Item ID already exists." {
		t.Errorf("unexpected errors: %v", verrs)
	}
}

func TestCreateExplicitIDRaceCollision(t *testing.T) {
	// The pre-check passed (Exists says free) but the insert still lost
	// the race; the message must match what the pre-check would have said.
	svc := NewItemService(&stubItemRepository{createErr: repository.ErrDuplicateID}, nil, time.Minute)

	_, err := svc.Create(context.Background(), model.ItemCreate{
		ID:    int64p(187654),
		Name:  strp("Slim Fit Hoodie"),
		Stock: int64p(150),
	})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs) != 1 || verrs[0] != "Item with ID 187654 already exists." {
		t.Errorf("unexpected errors: %v", verrs)
	}
}

func TestCreateWithoutID(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.Create(context.Background(), model.ItemCreate{
		Name:  strp("Auto ID"),
		Stock: int64p(3),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ID == 0 {
		t.Error("expected store-assigned id")
	}
}

func TestGetMissingIsNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), 237922)
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected apierror.Error, got %v", err)
	}
	if apiErr.StatusCode != 404 || apiErr.Detail != "Item not found" {
		t.Errorf("unexpected error: %d %q", apiErr.StatusCode, apiErr.Detail)
	}
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update(context.Background(), 999, model.ItemUpdate{Stock: int64p(1)})
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestUpdateStockOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, 1, "Hoodie", 100)

	updated, err := svc.Update(ctx, 1, model.ItemUpdate{Stock: int64p(0)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != 1 || updated.Name != "Hoodie" {
		t.Errorf("id/name should be unchanged, got %+v", updated)
	}
	if updated.Stock != 0 {
		t.Errorf("expected stock 0, got %d", updated.Stock)
	}

	// The change must be visible on a fresh read, not just in the
	// returned value.
	got, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Stock != 0 {
		t.Errorf("expected persisted stock 0, got %d", got.Stock)
	}
}

func TestUpdateNegativeStockAllowed(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, 1, "Hoodie", 100)

	// Stock is only validated on creation; updates overwrite as-is.
	updated, err := svc.Update(ctx, 1, model.ItemUpdate{Stock: int64p(-10)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Stock != -10 {
		t.Errorf("expected stock -10, got %d", updated.Stock)
	}
}

func TestUpdateEmptyNameIgnored(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, 1, "Hoodie", 100)

	updated, err := svc.Update(ctx, 1, model.ItemUpdate{Name: strp("")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Hoodie" {
		t.Errorf("empty name should not overwrite, got %q", updated.Name)
	}
}

func TestUpdateIDConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, 1, "One", 1)
	mustCreate(t, svc, 2, "Two", 2)

	_, err := svc.Update(ctx, 1, model.ItemUpdate{ID: int64p(2)})
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected apierror.Error, got %v", err)
	}
	if apiErr.StatusCode != 400 || apiErr.Detail != "ID already exists" {
		t.Errorf("unexpected error: %d %q", apiErr.StatusCode, apiErr.Detail)
	}
}

func TestUpdateIDReassignment(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, 1, "Movable", 5)

	updated, err := svc.Update(ctx, 1, model.ItemUpdate{ID: int64p(10)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != 10 {
		t.Errorf("expected id 10, got %d", updated.ID)
	}

	if _, err := svc.Get(ctx, 1); err == nil {
		t.Error("expected old id to be gone")
	}
	if _, err := svc.Get(ctx, 10); err != nil {
		t.Errorf("expected item under new id: %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, 187654, "Slim Fit Hoodie", 150)

	msg, err := svc.Delete(ctx, 187654)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if msg != "Item with ID 187654 has been successfully deleted." {
		t.Errorf("unexpected message: %q", msg)
	}

	msg, err = svc.Delete(ctx, 187654)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if msg != "Item with ID 187654 not found. No deletion performed." {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestListCacheInvalidatedOnWrite(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, 1, "One", 1)

	before, _ := svc.List(ctx, "", 0)
	if len(before) != 1 {
		t.Fatalf("expected 1 item, got %d", len(before))
	}

	mustCreate(t, svc, 2, "Two", 2)

	after, _ := svc.List(ctx, "", 0)
	if len(after) != 2 {
		t.Errorf("expected cached list to be invalidated, got %d items", len(after))
	}
}
