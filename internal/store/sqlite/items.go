package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stockroomapp/stockroom-server/internal/domain"
	"github.com/stockroomapp/stockroom-server/internal/store"
)

// itemColumns is the ordered list of columns selected in item queries.
// Must match the scan order in scanItem.
const itemColumns = `id, name, price, store_id, created_at, updated_at`

// scanItem scans a sql.Row (or sql.Rows via its Scan method) into a domain.Item.
func scanItem(scanner interface{ Scan(dest ...any) error }) (*domain.Item, error) {
	var it domain.Item

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&it.ID,
		&it.Name,
		&it.Price,
		&it.StoreID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	it.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	it.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &it, nil
}

// CreateItem inserts a new item.
// Returns store.ErrAlreadyExists on duplicate name and store.ErrNotFound
// when the referenced store does not exist.
func (s *Store) CreateItem(ctx context.Context, it *domain.Item) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (id, name, price, store_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		it.ID,
		it.Name,
		it.Price,
		it.StoreID,
		formatTime(it.CreatedAt),
		formatTime(it.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("an item with that name already exists")
		}
		if isForeignKeyViolation(err) {
			return store.ErrNotFound.WithMessage("store not found")
		}
		return err
	}
	return nil
}

// GetItem retrieves an item by ID.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id)

	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("item not found")
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

// ListItems returns all items ordered by name.
func (s *Store) ListItems(ctx context.Context) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if items == nil {
		items = []*domain.Item{}
	}

	return items, nil
}

// UpdateItem updates an item's name and price.
// Returns store.ErrNotFound if the item does not exist and
// store.ErrAlreadyExists when the new name collides with another item.
func (s *Store) UpdateItem(ctx context.Context, it *domain.Item) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE items SET name = ?, price = ?, updated_at = ?
		WHERE id = ?`,
		it.Name,
		it.Price,
		formatTime(it.UpdatedAt),
		it.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("an item with that name already exists")
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound.WithMessage("item not found")
	}
	return nil
}

// DeleteItem removes an item by ID. The item's tag links cascade.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound.WithMessage("item not found")
	}
	return nil
}
