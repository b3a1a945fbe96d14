package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stockroomapp/stockroom-server/internal/domain"
	"github.com/stockroomapp/stockroom-server/internal/store"
)

// storeColumns is the ordered list of columns selected in store queries.
// Must match the scan order in scanStore.
const storeColumns = `id, name, created_at, updated_at`

// scanStore scans a sql.Row (or sql.Rows via its Scan method) into a domain.Store.
func scanStore(scanner interface{ Scan(dest ...any) error }) (*domain.Store, error) {
	var st domain.Store

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&st.ID,
		&st.Name,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	st.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	st.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &st, nil
}

// CreateStore inserts a new store.
// Returns store.ErrAlreadyExists on duplicate name.
func (s *Store) CreateStore(ctx context.Context, st *domain.Store) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stores (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		st.ID,
		st.Name,
		formatTime(st.CreatedAt),
		formatTime(st.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("a store with that name already exists")
		}
		return err
	}
	return nil
}

// GetStore retrieves a store by ID.
// Returns store.ErrNotFound if the store does not exist.
func (s *Store) GetStore(ctx context.Context, id string) (*domain.Store, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE id = ?`, id)

	st, err := scanStore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("store not found")
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// ListStores returns all stores ordered by name.
func (s *Store) ListStores(ctx context.Context) ([]*domain.Store, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+storeColumns+` FROM stores ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []*domain.Store
	for rows.Next() {
		st, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if stores == nil {
		stores = []*domain.Store{}
	}

	return stores, nil
}

// DeleteStore removes a store by ID.
// Deletion is not cascading: the items/tags foreign keys refuse the delete
// while dependents exist, surfaced as store.ErrConflict.
func (s *Store) DeleteStore(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM stores WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrConflict.WithMessage("store still has items or tags")
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound.WithMessage("store not found")
	}
	return nil
}
