package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MyProfile handles GET /api/profile/me.
func (h *Handler) MyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	view, err := h.profiles.Me(ctx, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// UpsertProfile handles POST /api/profile.
func (h *Handler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req ProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	profile, err := h.profiles.Upsert(ctx, userID, req.Update())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// ListProfiles handles GET /api/profile.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.storeContext(r)
	defer cancel()

	views, err := h.profiles.List(ctx)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// ProfileByUser handles GET /api/profile/user/{user_id}.
func (h *Handler) ProfileByUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.storeContext(r)
	defer cancel()

	view, err := h.profiles.ByUserID(ctx, chi.URLParam(r, "user_id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// DeleteAccount handles DELETE /api/profile: posts, profile and user.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	if err := h.profiles.DeleteAccount(ctx, userID); err != nil {
		respondError(w, r, err)
		return
	}
	writeMsg(w, http.StatusOK, "User deleted")
}

// AddExperience handles PUT /api/profile/experience.
func (h *Handler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req ExperienceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	exp, err := req.Experience()
	if err != nil {
		respondError(w, r, err)
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	profile, err := h.profiles.AddExperience(ctx, userID, exp)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// RemoveExperience handles DELETE /api/profile/experience/{exp_id}.
func (h *Handler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	profile, err := h.profiles.RemoveExperience(ctx, userID, chi.URLParam(r, "exp_id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// AddEducation handles PUT /api/profile/education.
func (h *Handler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req EducationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	edu, err := req.Education()
	if err != nil {
		respondError(w, r, err)
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	profile, err := h.profiles.AddEducation(ctx, userID, edu)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// RemoveEducation handles DELETE /api/profile/education/{edu_id}.
func (h *Handler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	profile, err := h.profiles.RemoveEducation(ctx, userID, chi.URLParam(r, "edu_id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// GitHubRepos handles GET /api/profile/github/{username}.
func (h *Handler) GitHubRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := h.github.Repos(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(repos)
}
