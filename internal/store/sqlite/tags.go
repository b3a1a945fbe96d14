package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stockroomapp/stockroom-server/internal/domain"
	"github.com/stockroomapp/stockroom-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, name, store_id, created_at, updated_at`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.StoreID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateTag inserts a new tag.
// The (store_id, name) UNIQUE constraint is the authority on duplicates:
// concurrent inserts of the same name race here and exactly one wins.
// Returns store.ErrAlreadyExists on a duplicate name within the store and
// store.ErrNotFound when the referenced store does not exist.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, store_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID,
		t.Name,
		t.StoreID,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("a tag with that name already exists in that store")
		}
		if isForeignKeyViolation(err) {
			return store.ErrNotFound.WithMessage("store not found")
		}
		return err
	}
	return nil
}

// GetTag retrieves a tag by ID.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("tag not found")
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListStoreTags returns all tags belonging to a store, ordered by name.
func (s *Store) ListStoreTags(ctx context.Context, storeID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE store_id = ? ORDER BY name ASC`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}

// DeleteTag removes a tag by ID.
// The zero-dependents check and the delete run in one transaction so a
// concurrent link insertion cannot slip between them.
// Returns store.ErrInUse while the tag has linked items.
func (s *Store) DeleteTag(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var linked int
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tag_items WHERE tag_id = ?)`, id).Scan(&linked)
	if err != nil {
		return fmt.Errorf("check tag links: %w", err)
	}
	if linked == 1 {
		return store.ErrInUse.WithMessage("tag is still linked to one or more items")
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound.WithMessage("tag not found")
	}

	return tx.Commit()
}

// LinkTagItem inserts a join row between a tag and an item.
// Returns store.ErrAlreadyExists when the link already exists and
// store.ErrNotFound when either side is missing.
func (s *Store) LinkTagItem(ctx context.Context, tagID, itemID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tag_items (tag_id, item_id, created_at)
		VALUES (?, ?, ?)`,
		tagID,
		itemID,
		formatTime(time.Now()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("item is already linked to that tag")
		}
		if isForeignKeyViolation(err) {
			return store.ErrNotFound.WithMessage("tag or item not found")
		}
		return err
	}
	return nil
}

// UnlinkTagItem removes the join row between a tag and an item.
// Returns store.ErrNotFound when no such link exists; callers that want
// idempotent unlink semantics treat that as success.
func (s *Store) UnlinkTagItem(ctx context.Context, tagID, itemID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tag_items WHERE tag_id = ? AND item_id = ?`, tagID, itemID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound.WithMessage("link not found")
	}
	return nil
}

// ListItemTags returns all tags linked to an item, ordered by name.
func (s *Store) ListItemTags(ctx context.Context, itemID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.store_id, t.created_at, t.updated_at
		FROM tags t
		JOIN tag_items ti ON ti.tag_id = t.id
		WHERE ti.item_id = ?
		ORDER BY t.name ASC`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}
