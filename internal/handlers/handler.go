// Package handlers adapts HTTP requests to the auth, profile and post
// services and renders their results.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/AnshRaj112/devconnect-backend/internal/middleware"
	"github.com/AnshRaj112/devconnect-backend/internal/models"
	"github.com/AnshRaj112/devconnect-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultStoreTimeout bounds the store calls made while serving one request.
const DefaultStoreTimeout = 5 * time.Second

// RepoFetcher looks up a GitHub user's recent repositories.
type RepoFetcher interface {
	Repos(ctx context.Context, username string) (json.RawMessage, error)
}

type Handler struct {
	auth     *services.AuthService
	profiles *services.ProfileService
	posts    *services.PostService
	github   RepoFetcher
	timeout  time.Duration
}

type Deps struct {
	Auth         *services.AuthService
	Profiles     *services.ProfileService
	Posts        *services.PostService
	GitHub       RepoFetcher
	StoreTimeout time.Duration
}

func New(d Deps) *Handler {
	timeout := d.StoreTimeout
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return &Handler{
		auth:     d.Auth,
		profiles: d.Profiles,
		posts:    d.Posts,
		github:   d.GitHub,
		timeout:  timeout,
	}
}

func (h *Handler) storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

// currentUser reads the identity stored by the auth guard. Routes that call
// it are always mounted behind the guard.
func currentUser(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, r, models.NewUnauthorizedError("No Token, authorization denied"))
		return primitive.NilObjectID, false
	}
	return userID, true
}
