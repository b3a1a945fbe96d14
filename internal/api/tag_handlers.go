package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockroomapp/stockroom-server/internal/http/response"
	"github.com/stockroomapp/stockroom-server/internal/service"
)

// handleGetTag returns a tag by id.
func (s *Server) handleGetTag(w http.ResponseWriter, r *http.Request) {
	tag, err := s.tagService.GetTag(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, tag, s.logger)
}

// handleDeleteTag removes a tag with no linked items.
func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	if err := s.tagService.DeleteTag(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Message(w, "tag deleted", s.logger)
}

// handleListStoreTags returns the tags in a store.
func (s *Server) handleListStoreTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.tagService.ListStoreTags(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, tags, s.logger)
}

// handleCreateTag creates a tag in a store.
func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[service.CreateTagRequest](r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	tag, err := s.tagService.CreateTag(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, tag, s.logger)
}

// handleLinkTag attaches a tag to an item in the same store.
func (s *Server) handleLinkTag(w http.ResponseWriter, r *http.Request) {
	tag, err := s.tagService.LinkTagToItem(r.Context(), chi.URLParam(r, "itemID"), chi.URLParam(r, "tagID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, tag, s.logger)
}

// handleUnlinkTag detaches a tag from an item.
func (s *Server) handleUnlinkTag(w http.ResponseWriter, r *http.Request) {
	if err := s.tagService.UnlinkTagFromItem(r.Context(), chi.URLParam(r, "itemID"), chi.URLParam(r, "tagID")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Message(w, "tag removed from item", s.logger)
}
