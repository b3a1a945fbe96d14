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

// TagService orchestrates tag operations and tag-item links.
// Tags are scoped to a store; a link may only join a tag and an item that
// live in the same store.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:  store,
		logger: logger,
	}
}

// CreateTagRequest contains the data for a new tag.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=80"`
}

// CreateTag creates a tag inside a store. Tag names are unique per store,
// not globally; the same name may exist in two different stores.
func (s *TagService) CreateTag(ctx context.Context, storeID string, req CreateTagRequest) (*domain.Tag, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	tag := &domain.Tag{
		Name:    req.Name,
		StoreID: storeID,
	}
	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, fmt.Errorf("generate tag ID: %w", err)
	}
	tag.ID = tagID
	tag.InitTimestamps()

	if err := s.store.CreateTag(ctx, tag); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, domainerrors.AlreadyExists("a tag with that name already exists in that store")
		case errors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFound("store not found")
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}

	s.logger.Info("Tag created", "tag_id", tag.ID, "store_id", storeID)

	return tag, nil
}

// GetTag returns a tag by id.
func (s *TagService) GetTag(ctx context.Context, tagID string) (*domain.Tag, error) {
	tag, err := s.store.GetTag(ctx, tagID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("tag not found")
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return tag, nil
}

// ListStoreTags returns all tags in a store.
// The store must exist; an empty store yields an empty list.
func (s *TagService) ListStoreTags(ctx context.Context, storeID string) ([]*domain.Tag, error) {
	if _, err := s.store.GetStore(ctx, storeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("store not found")
		}
		return nil, fmt.Errorf("get store: %w", err)
	}

	tags, err := s.store.ListStoreTags(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// DeleteTag removes a tag that has no linked items.
// A tag still linked to items is left in place and the caller gets a
// tag-in-use error.
func (s *TagService) DeleteTag(ctx context.Context, tagID string) error {
	if err := s.store.DeleteTag(ctx, tagID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domainerrors.NotFound("tag not found")
		case errors.Is(err, store.ErrInUse):
			return domainerrors.TagInUse("tag is still linked to items")
		}
		return fmt.Errorf("delete tag: %w", err)
	}
	s.logger.Info("Tag deleted", "tag_id", tagID)
	return nil
}

// LinkTagToItem attaches a tag to an item in the same store.
// Linking an already-linked pair succeeds without change.
func (s *TagService) LinkTagToItem(ctx context.Context, itemID, tagID string) (*domain.Tag, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("item not found")
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	tag, err := s.store.GetTag(ctx, tagID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("tag not found")
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}

	if item.StoreID != tag.StoreID {
		return nil, domainerrors.CrossStoreLink("item and tag belong to different stores")
	}

	if err := s.store.LinkTagItem(ctx, tagID, itemID); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Already linked, nothing to do.
			return tag, nil
		}
		return nil, fmt.Errorf("link tag: %w", err)
	}

	s.logger.Info("Tag linked to item", "tag_id", tagID, "item_id", itemID)

	return tag, nil
}

// UnlinkTagFromItem detaches a tag from an item.
// Both sides must exist; removing an absent link is a no-op success.
func (s *TagService) UnlinkTagFromItem(ctx context.Context, itemID, tagID string) error {
	if _, err := s.store.GetItem(ctx, itemID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("item not found")
		}
		return fmt.Errorf("get item: %w", err)
	}
	if _, err := s.store.GetTag(ctx, tagID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("tag not found")
		}
		return fmt.Errorf("get tag: %w", err)
	}

	if err := s.store.UnlinkTagItem(ctx, tagID, itemID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Link was never there or already removed.
			return nil
		}
		return fmt.Errorf("unlink tag: %w", err)
	}

	s.logger.Info("Tag unlinked from item", "tag_id", tagID, "item_id", itemID)

	return nil
}

// ListItemTags returns the tags linked to an item.
func (s *TagService) ListItemTags(ctx context.Context, itemID string) ([]*domain.Tag, error) {
	if _, err := s.store.GetItem(ctx, itemID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("item not found")
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	tags, err := s.store.ListItemTags(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list item tags: %w", err)
	}
	return tags, nil
}
