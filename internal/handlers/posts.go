package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CreatePost handles POST /api/posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req TextRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	post, err := h.posts.Create(ctx, userID, req.Text)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// ListPosts handles GET /api/posts.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.storeContext(r)
	defer cancel()

	posts, err := h.posts.List(ctx)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// GetPost handles GET /api/posts/{id}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.storeContext(r)
	defer cancel()

	post, err := h.posts.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// DeletePost handles DELETE /api/posts/{id}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	if err := h.posts.Delete(ctx, userID, chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	writeMsg(w, http.StatusOK, "Post removed")
}

// LikePost handles PUT /api/posts/like/{id}.
func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	likes, err := h.posts.Like(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

// UnlikePost handles PUT /api/posts/unlike/{id}.
func (h *Handler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	likes, err := h.posts.Unlike(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

// AddComment handles POST /api/posts/comment/{id}.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req TextRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	comments, err := h.posts.AddComment(ctx, userID, chi.URLParam(r, "id"), req.Text)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// RemoveComment handles DELETE /api/posts/comment/{id}/{comment_id}.
func (h *Handler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	comments, err := h.posts.RemoveComment(ctx, userID, chi.URLParam(r, "id"), chi.URLParam(r, "comment_id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
