package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stockroomapp/stockroom-server/internal/domain"
	domainerrors "github.com/stockroomapp/stockroom-server/internal/errors"
	"github.com/stockroomapp/stockroom-server/internal/id"
	"github.com/stockroomapp/stockroom-server/internal/store"
)

// CatalogService orchestrates store and item operations.
type CatalogService struct {
	store  store.Store
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store store.Store, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger,
	}
}

// CreateStoreRequest contains the data for a new store.
type CreateStoreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=80"`
}

// CreateItemRequest contains the data for a new item.
type CreateItemRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=80"`
	Price   float64 `json:"price" validate:"gte=0"`
	StoreID string  `json:"store_id" validate:"required"`
}

// UpdateItemRequest contains the mutable item fields.
// The owning store cannot change after creation.
type UpdateItemRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=80"`
	Price float64 `json:"price" validate:"gte=0"`
}

// CreateStore persists a new store. Store names are globally unique.
func (s *CatalogService) CreateStore(ctx context.Context, req CreateStoreRequest) (*domain.Store, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	st := &domain.Store{Name: req.Name}
	storeID, err := id.Generate("store")
	if err != nil {
		return nil, fmt.Errorf("generate store ID: %w", err)
	}
	st.ID = storeID
	st.InitTimestamps()

	if err := s.store.CreateStore(ctx, st); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("a store with that name already exists")
		}
		return nil, fmt.Errorf("create store: %w", err)
	}

	s.logger.Info("Store created", "store_id", st.ID, "name", st.Name)

	return st, nil
}

// GetStore returns a store by id.
func (s *CatalogService) GetStore(ctx context.Context, storeID string) (*domain.Store, error) {
	st, err := s.store.GetStore(ctx, storeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("store not found")
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return st, nil
}

// ListStores returns all stores ordered by name.
func (s *CatalogService) ListStores(ctx context.Context) ([]*domain.Store, error) {
	stores, err := s.store.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

// DeleteStore removes an empty store. A store that still has items or tags
// is not deleted; the caller gets a conflict.
func (s *CatalogService) DeleteStore(ctx context.Context, storeID string) error {
	if err := s.store.DeleteStore(ctx, storeID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domainerrors.NotFound("store not found")
		case errors.Is(err, store.ErrConflict):
			return domainerrors.Conflict("store still has items or tags")
		}
		return fmt.Errorf("delete store: %w", err)
	}
	s.logger.Info("Store deleted", "store_id", storeID)
	return nil
}

// CreateItem persists a new item in an existing store.
func (s *CatalogService) CreateItem(ctx context.Context, req CreateItemRequest) (*domain.Item, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	item := &domain.Item{
		Name:    req.Name,
		Price:   req.Price,
		StoreID: req.StoreID,
	}
	itemID, err := id.Generate("item")
	if err != nil {
		return nil, fmt.Errorf("generate item ID: %w", err)
	}
	item.ID = itemID
	item.InitTimestamps()

	if err := s.store.CreateItem(ctx, item); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, domainerrors.AlreadyExists("an item with that name already exists")
		case errors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFound("store not found")
		}
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.logger.Info("Item created", "item_id", item.ID, "store_id", item.StoreID)

	return item, nil
}

// GetItem returns an item by id.
func (s *CatalogService) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("item not found")
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// ListItems returns all items ordered by name.
func (s *CatalogService) ListItems(ctx context.Context) ([]*domain.Item, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// UpdateItem replaces an item's name and price.
func (s *CatalogService) UpdateItem(ctx context.Context, itemID string, req UpdateItemRequest) (*domain.Item, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("item not found")
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	item.Name = req.Name
	item.Price = req.Price
	item.Touch()

	if err := s.store.UpdateItem(ctx, item); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, domainerrors.AlreadyExists("an item with that name already exists")
		case errors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFound("item not found")
		}
		return nil, fmt.Errorf("update item: %w", err)
	}

	return item, nil
}

// DeleteItem removes an item. Tag links on the item go with it.
func (s *CatalogService) DeleteItem(ctx context.Context, itemID string) error {
	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("item not found")
		}
		return fmt.Errorf("delete item: %w", err)
	}
	s.logger.Info("Item deleted", "item_id", itemID)
	return nil
}
