package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"stockline-api/internal/model"

	"github.com/go-sql-driver/mysql"
)

// MySQLItemRepository implements ItemRepository using MySQL.
type MySQLItemRepository struct {
	db *sql.DB
}

// NewMySQLItemRepository creates a new MySQL item repository.
// dsn format: "user:password@tcp(host:port)/dbname?parseTime=true"
func NewMySQLItemRepository(dsn string) (*MySQLItemRepository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if err := createMySQLTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[MySQLItemRepository] Initialized")
	return &MySQLItemRepository{db: db}, nil
}

// createMySQLTables creates the items table.
func createMySQLTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS items (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		stock BIGINT NOT NULL
	);`
	_, err := db.Exec(query)
	return err
}

// isMySQLDuplicate reports whether err is a duplicate-entry error (1062).
func isMySQLDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

// List returns all items, optionally sorted and truncated.
func (r *MySQLItemRepository) List(ctx context.Context, sortBy string, count int) ([]model.Item, error) {
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
func (r *MySQLItemRepository) Get(ctx context.Context, id int64) (*model.Item, error) {
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
func (r *MySQLItemRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE id = ?`, id,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check item existence: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new item, letting MySQL assign the id when nil.
func (r *MySQLItemRepository) Create(ctx context.Context, id *int64, name string, stock int64) (*model.Item, error) {
	var newID int64
	if id != nil {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO items (id, name, stock) VALUES (?, ?, ?)`,
			*id, name, stock,
		)
		if isMySQLDuplicate(err) {
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
func (r *MySQLItemRepository) Update(ctx context.Context, currentID int64, item model.Item) (*model.Item, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE items SET id = ?, name = ?, stock = ? WHERE id = ?`,
		item.ID, item.Name, item.Stock, currentID,
	)
	if isMySQLDuplicate(err) {
		return nil, ErrDuplicateID
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return &item, nil
}

// Delete removes the item with the given id.
func (r *MySQLItemRepository) Delete(ctx context.Context, id int64) (bool, error) {
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
func (r *MySQLItemRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
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

	dbStats := r.db.Stats()
	stats["connections"] = map[string]interface{}{
		"open":     dbStats.OpenConnections,
		"in_use":   dbStats.InUse,
		"idle":     dbStats.Idle,
		"max_open": dbStats.MaxOpenConnections,
	}

	return stats, nil
}

// Ping checks store connectivity.
func (r *MySQLItemRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection pool.
func (r *MySQLItemRepository) Close() error {
	return r.db.Close()
}

// Ensure MySQLItemRepository implements ItemRepository
var _ ItemRepository = (*MySQLItemRepository)(nil)
