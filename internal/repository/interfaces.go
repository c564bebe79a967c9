package repository

import (
	"context"
	"errors"

	"stockline-api/internal/model"
)

// ErrDuplicateID is returned when an insert or id reassignment hits the
// primary key constraint on items.id. The constraint is the backstop for
// the handler-level existence checks, which are two separate statements
// and can race.
var ErrDuplicateID = errors.New("item id already exists")

// ItemRepository defines item data access methods.
type ItemRepository interface {
	// List returns all items, optionally ordered by one of the item
	// attributes and truncated to count rows. An unrecognised sortBy is
	// ignored; count <= 0 means no limit.
	List(ctx context.Context, sortBy string, count int) ([]model.Item, error)

	// Get returns the item with the given id, or nil if absent.
	Get(ctx context.Context, id int64) (*model.Item, error)

	// Exists reports whether an item with the given id exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// Create inserts a new item. A nil id lets the store assign the next
	// value. Returns ErrDuplicateID on a primary key collision.
	Create(ctx context.Context, id *int64, name string, stock int64) (*model.Item, error)

	// Update overwrites the row currently identified by currentID with the
	// given record, which may carry a different id. Returns ErrDuplicateID
	// if the new id is taken.
	Update(ctx context.Context, currentID int64, item model.Item) (*model.Item, error)

	// Delete removes the item with the given id. Reports whether a row
	// was actually removed.
	Delete(ctx context.Context, id int64) (bool, error)

	// Stats returns statistics about the item store.
	Stats(ctx context.Context) (map[string]interface{}, error)

	// Ping checks store connectivity.
	Ping(ctx context.Context) error

	// Close closes the repository connection.
	Close() error
}

// orderClause maps a sortBy value to an ORDER BY clause. Only the fixed
// item attributes are recognised; anything else sorts nothing.
func orderClause(sortBy string) string {
	switch sortBy {
	case "id", "name", "stock":
		return " ORDER BY " + sortBy
	default:
		return ""
	}
}
