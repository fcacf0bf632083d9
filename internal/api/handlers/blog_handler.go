package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/blogit-be/internal/auth"
	"github.com/isdelr/blogit-be/internal/models"
	"github.com/isdelr/blogit-be/internal/services"
	"github.com/rs/zerolog/log"
)

// BlogHandler handles HTTP requests for posts. Reads are public;
// mutations require an authenticated identity, and edits/deletes are
// additionally subject to the ownership policy in PostService.
type BlogHandler struct {
	service  services.PostServiceProvider
	eventSvc services.EventServiceProvider
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(service services.PostServiceProvider, eventSvc services.EventServiceProvider) *BlogHandler {
	return &BlogHandler{service: service, eventSvc: eventSvc}
}

// CreatePayload defines the structure for post-creation requests. The
// author field is accepted for wire compatibility but ignored; the
// recorded author is always the authenticated identity.
type CreatePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

// GetAll handles the request to list every post, newest first.
func (h *BlogHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.GetAllPosts()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve posts")
		writeMessage(w, http.StatusInternalServerError, "Error fetching blogs")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

// Get handles the request to get a single post by its ID.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.service.GetPostByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Blog not found")
			return
		}
		log.Error().Err(err).Str("post_id", id).Msg("Failed to retrieve post")
		writeMessage(w, http.StatusInternalServerError, "Error fetching blog")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

// Create handles the request to publish a new post.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	var payload CreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.service.CreatePost(payload.Title, payload.Content, claims.Email)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			writeMessage(w, http.StatusBadRequest, "All fields are required")
			return
		}
		log.Error().Err(err).Str("author", claims.Email).Msg("Failed to create post")
		writeMessage(w, http.StatusInternalServerError, "Error creating blog")
		return
	}

	if err := h.eventSvc.CreateEvent("blog.create", "info", "Blog '"+post.Title+"' published", claims.Email, &post.ID); err != nil {
		log.Error().Err(err).Msg("Failed to record create event")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Blog created successfully",
		"blog":    post,
	})
}

// Edit handles the request to partially update a post.
func (h *BlogHandler) Edit(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	id := chi.URLParam(r, "id")
	var update models.PostUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.service.UpdatePost(id, claims.Email, update)
	if err != nil {
		h.writePostError(w, err, id, claims.Email, "update")
		return
	}

	if err := h.eventSvc.CreateEvent("blog.edit", "info", "Blog '"+post.Title+"' updated", claims.Email, &post.ID); err != nil {
		log.Error().Err(err).Msg("Failed to record edit event")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Blog updated successfully",
		"blog":    post,
	})
}

// Delete handles the request to remove a post.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeletePost(id, claims.Email); err != nil {
		h.writePostError(w, err, id, claims.Email, "delete")
		return
	}

	if err := h.eventSvc.CreateEvent("blog.delete", "info", "Blog deleted", claims.Email, &id); err != nil {
		log.Error().Err(err).Msg("Failed to record delete event")
	}

	writeMessage(w, http.StatusOK, "Blog deleted successfully")
}

// writePostError maps service errors from mutating post operations to
// their HTTP statuses.
func (h *BlogHandler) writePostError(w http.ResponseWriter, err error, id, caller, action string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Blog not found")
	case errors.Is(err, services.ErrForbidden):
		log.Warn().Str("post_id", id).Str("caller", caller).Str("action", action).Msg("Ownership check rejected request")
		writeMessage(w, http.StatusForbidden, "You are not the author of this blog")
	case errors.Is(err, services.ErrValidation):
		writeMessage(w, http.StatusBadRequest, "All fields are required")
	default:
		log.Error().Err(err).Str("post_id", id).Str("action", action).Msg("Post mutation failed")
		writeMessage(w, http.StatusInternalServerError, "Error updating blog")
	}
}

// writeMessage writes the {message} response shape used by the blog routes.
func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
