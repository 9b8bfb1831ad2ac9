package database

import (
	"context"
	"errors"

	"github.com/AnshRaj112/devconnect-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a lookup or targeted write matches nothing.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

const (
	UsersCollection    = "users"
	ProfilesCollection = "profiles"
	PostsCollection    = "posts"
)

type UserRepository interface {
	// Create assigns an id when the user has none. ErrDuplicate on a taken email.
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	// Delete is idempotent: deleting a missing user is not an error.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProfileRepository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	// Upsert merges update into the user's profile, creating it when absent,
	// and returns the stored result.
	Upsert(ctx context.Context, userID primitive.ObjectID, update models.ProfileUpdate) (*models.Profile, error)
	// Save replaces the whole stored profile.
	Save(ctx context.Context, profile *models.Profile) error
	// DeleteByUser is idempotent.
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	// List returns every post newest first.
	List(ctx context.Context) ([]models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	SetLikes(ctx context.Context, id primitive.ObjectID, likes []models.Like) error
	SetComments(ctx context.Context, id primitive.ObjectID, comments []models.Comment) error
}
