// Package store defines the persistence interface for the Stockroom server.
package store

import (
	"context"

	"github.com/stockroomapp/stockroom-server/internal/domain"
)

// Store is the persistence interface implemented by the sqlite backend.
// All mutations are atomic with respect to concurrent requests; uniqueness
// and referential integrity are enforced by database constraints, with
// service-level pre-checks serving only to produce better error messages.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// FirstUserID returns the id of the earliest-registered user,
	// or ErrNotFound when no users exist.
	FirstUserID(ctx context.Context) (string, error)
	DeleteUser(ctx context.Context, id string) error

	// Revocation ledger
	// RevokeToken is idempotent: revoking an already-revoked jti is a no-op.
	RevokeToken(ctx context.Context, jti string) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)

	// Stores
	CreateStore(ctx context.Context, st *domain.Store) error
	GetStore(ctx context.Context, id string) (*domain.Store, error)
	ListStores(ctx context.Context) ([]*domain.Store, error)
	// DeleteStore returns ErrConflict when items or tags still reference
	// the store (no cascade).
	DeleteStore(ctx context.Context, id string) error

	// Items
	CreateItem(ctx context.Context, item *domain.Item) error
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]*domain.Item, error)
	UpdateItem(ctx context.Context, item *domain.Item) error
	// DeleteItem cascades the item's tag links.
	DeleteItem(ctx context.Context, id string) error

	// Tags and links
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	ListStoreTags(ctx context.Context, storeID string) ([]*domain.Tag, error)
	// DeleteTag returns ErrInUse when the tag still has linked items.
	// The dependency check and the delete run in one transaction.
	DeleteTag(ctx context.Context, id string) error
	LinkTagItem(ctx context.Context, tagID, itemID string) error
	UnlinkTagItem(ctx context.Context, tagID, itemID string) error
	ListItemTags(ctx context.Context, itemID string) ([]*domain.Tag, error)

	Close() error
}
