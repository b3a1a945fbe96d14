package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockroomapp/stockroom-server/internal/http/response"
	"github.com/stockroomapp/stockroom-server/internal/service"
)

// handleCreateStore creates a new store.
func (s *Server) handleCreateStore(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[service.CreateStoreRequest](r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	st, err := s.catalogService.CreateStore(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, st, s.logger)
}

// handleGetStore returns a store by id.
func (s *Server) handleGetStore(w http.ResponseWriter, r *http.Request) {
	st, err := s.catalogService.GetStore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, st, s.logger)
}

// handleListStores returns all stores.
func (s *Server) handleListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := s.catalogService.ListStores(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, stores, s.logger)
}

// handleDeleteStore removes an empty store.
func (s *Server) handleDeleteStore(w http.ResponseWriter, r *http.Request) {
	if err := s.catalogService.DeleteStore(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Message(w, "store deleted", s.logger)
}

// handleCreateItem creates a new item in a store.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[service.CreateItemRequest](r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	item, err := s.catalogService.CreateItem(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, item, s.logger)
}

// handleGetItem returns an item by id.
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.catalogService.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, item, s.logger)
}

// handleListItems returns all items.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalogService.ListItems(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, items, s.logger)
}

// handleUpdateItem replaces an item's name and price.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[service.UpdateItemRequest](r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	item, err := s.catalogService.UpdateItem(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, item, s.logger)
}

// handleDeleteItem removes an item and its tag links.
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.catalogService.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Message(w, "item deleted", s.logger)
}
