package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"stockline-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteItemRepository implements ItemRepository using SQLite.
type SQLiteItemRepository struct {
	db *sql.DB
}

// NewSQLiteItemRepository creates a new SQLite item repository.
// dbPath is the path to the database file, or ":memory:" for tests.
func NewSQLiteItemRepository(dbPath string) (*SQLiteItemRepository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createSQLiteTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteItemRepository] Initialized with database: %s", dbPath)
	return &SQLiteItemRepository{db: db}, nil
}

// createSQLiteTables creates the items table.
func createSQLiteTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		stock INTEGER NOT NULL
	);`
	_, err := db.Exec(query)
	return err
}

// isSQLiteDuplicate reports whether err is a UNIQUE/PRIMARY KEY violation.
func isSQLiteDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// List returns all items, optionally sorted and truncated.
func (r *SQLiteItemRepository) List(ctx context.Context, sortBy string, count int) ([]model.Item, error) {
	query := `SELECT id, name, stock FROM items` + orderClause(sortBy)
	args := []interface{}{}
	if count > 0 {
		query += ` LIMIT ?`
		args = append(args, count)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Get returns the item with the given id, or nil if absent.
func (r *SQLiteItemRepository) Get(ctx context.Context, id int64) (*model.Item, error) {
	var item model.Item
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, stock FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.Stock)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

// Exists reports whether an item with the given id exists.
func (r *SQLiteItemRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE id = ?`, id,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check item existence: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new item, letting SQLite assign the id when nil.
func (r *SQLiteItemRepository) Create(ctx context.Context, id *int64, name string, stock int64) (*model.Item, error) {
	var newID int64
	if id != nil {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO items (id, name, stock) VALUES (?, ?, ?)`,
			*id, name, stock,
		)
		if isSQLiteDuplicate(err) {
			return nil, ErrDuplicateID
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create item: %w", err)
		}
		newID = *id
	} else {
		result, err := r.db.ExecContext(ctx,
			`INSERT INTO items (name, stock) VALUES (?, ?)`,
			name, stock,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create item: %w", err)
		}
		newID, err = result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get item id: %w", err)
		}
	}

	return &model.Item{ID: newID, Name: name, Stock: stock}, nil
}

// Update overwrites the row currently identified by currentID.
func (r *SQLiteItemRepository) Update(ctx context.Context, currentID int64, item model.Item) (*model.Item, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE items SET id = ?, name = ?, stock = ? WHERE id = ?`,
		item.ID, item.Name, item.Stock, currentID,
	)
	if isSQLiteDuplicate(err) {
		return nil, ErrDuplicateID
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return &item, nil
}

// Delete removes the item with the given id.
func (r *SQLiteItemRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Stats returns statistics about the item store.
func (r *SQLiteItemRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return nil, err
	}
	stats["total_items"] = count

	var totalStock sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT SUM(stock) FROM items`).Scan(&totalStock); err == nil && totalStock.Valid {
		stats["total_stock"] = totalStock.Int64
	}

	// Database file size (approximate from page count)
	var pageCount, pageSize int64
	r.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
	r.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
	stats["db_size_bytes"] = pageCount * pageSize

	return stats, nil
}

// Ping checks store connectivity.
func (r *SQLiteItemRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection.
func (r *SQLiteItemRepository) Close() error {
	return r.db.Close()
}

// Ensure SQLiteItemRepository implements ItemRepository
var _ ItemRepository = (*SQLiteItemRepository)(nil)
