package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AnshRaj112/devconnect-backend/internal/database"
	"github.com/AnshRaj112/devconnect-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgNoProfile       = "There is no profile for this user"
	msgProfileNotFound = "Profile not found"
)

// Revoker invalidates outstanding tokens of a deleted account.
type Revoker interface {
	RevokeUser(ctx context.Context, userID primitive.ObjectID) error
}

type ProfileService struct {
	profiles database.ProfileRepository
	users    database.UserRepository
	posts    database.PostRepository
	revoker  Revoker
}

// NewProfileService wires the profile operations. revoker may be nil when
// Redis is not configured.
func NewProfileService(profiles database.ProfileRepository, users database.UserRepository, posts database.PostRepository, revoker Revoker) *ProfileService {
	return &ProfileService{profiles: profiles, users: users, posts: posts, revoker: revoker}
}

func (s *ProfileService) Me(ctx context.Context, userID primitive.ObjectID) (*models.ProfileView, error) {
	p, err := s.load(ctx, userID, msgNoProfile)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, p)
}

func (s *ProfileService) Upsert(ctx context.Context, userID primitive.ObjectID, update models.ProfileUpdate) (*models.Profile, error) {
	p, err := s.profiles.Upsert(ctx, userID, update)
	if errors.Is(err, database.ErrDuplicate) {
		// A concurrent first upsert won the insert; this one now updates.
		slog.DebugContext(ctx, "profile upsert raced, retrying", "user_id", userID.Hex())
		p, err = s.profiles.Upsert(ctx, userID, update)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return p, nil
}

func (s *ProfileService) List(ctx context.Context) ([]models.ProfileView, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	ids := make([]primitive.ObjectID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.User)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	byID := make(map[primitive.ObjectID]*models.UserSummary, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].Summary()
	}

	views := make([]models.ProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, models.ProfileView{Profile: &profiles[i], User: byID[profiles[i].User]})
	}
	return views, nil
}

// ByUserID looks a profile up by its owner's id as given in the URL.
func (s *ProfileService) ByUserID(ctx context.Context, rawUserID string) (*models.ProfileView, error) {
	userID, err := primitive.ObjectIDFromHex(rawUserID)
	if err != nil {
		slog.DebugContext(ctx, "malformed user id in profile lookup", "user_id", rawUserID)
		return nil, models.NewNotFoundError(msgProfileNotFound)
	}
	p, err := s.load(ctx, userID, msgProfileNotFound)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, p)
}

// DeleteAccount removes the user's posts, profile and user document in that
// order. Every step runs even if an earlier one failed.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	var errs []error

	n, err := s.posts.DeleteByUser(ctx, userID)
	if err != nil {
		errs = append(errs, fmt.Errorf("delete posts: %w", err))
	}
	if err := s.profiles.DeleteByUser(ctx, userID); err != nil {
		errs = append(errs, fmt.Errorf("delete profile: %w", err))
	}
	userErr := s.users.Delete(ctx, userID)
	if userErr != nil {
		errs = append(errs, fmt.Errorf("delete user: %w", userErr))
	}

	if userErr == nil && s.revoker != nil {
		if err := s.revoker.RevokeUser(ctx, userID); err != nil {
			slog.WarnContext(ctx, "⚠️ failed to revoke tokens of deleted user", "error", err)
		}
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		slog.ErrorContext(ctx, "account deletion incomplete", "posts_deleted", n, "error", err)
		return models.NewInternalError(err)
	}
	slog.InfoContext(ctx, "account deleted", "posts_deleted", n)
	return nil
}

func (s *ProfileService) AddExperience(ctx context.Context, userID primitive.ObjectID, exp models.Experience) (*models.Profile, error) {
	p, err := s.load(ctx, userID, msgNoProfile)
	if err != nil {
		return nil, err
	}
	p.AddExperience(exp)
	return s.save(ctx, p)
}

// RemoveExperience is a no-op for ids that match no entry.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID primitive.ObjectID, rawExpID string) (*models.Profile, error) {
	p, err := s.load(ctx, userID, msgNoProfile)
	if err != nil {
		return nil, err
	}
	id, err := primitive.ObjectIDFromHex(rawExpID)
	if err != nil || !p.RemoveExperience(id) {
		return p, nil
	}
	return s.save(ctx, p)
}

func (s *ProfileService) AddEducation(ctx context.Context, userID primitive.ObjectID, edu models.Education) (*models.Profile, error) {
	p, err := s.load(ctx, userID, msgNoProfile)
	if err != nil {
		return nil, err
	}
	p.AddEducation(edu)
	return s.save(ctx, p)
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID primitive.ObjectID, rawEduID string) (*models.Profile, error) {
	p, err := s.load(ctx, userID, msgNoProfile)
	if err != nil {
		return nil, err
	}
	id, err := primitive.ObjectIDFromHex(rawEduID)
	if err != nil || !p.RemoveEducation(id) {
		return p, nil
	}
	return s.save(ctx, p)
}

func (s *ProfileService) load(ctx context.Context, userID primitive.ObjectID, notFoundMsg string) (*models.Profile, error) {
	p, err := s.profiles.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, models.NewNotFoundError(notFoundMsg)
		}
		return nil, models.NewInternalError(err)
	}
	return p, nil
}

func (s *ProfileService) save(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	if err := s.profiles.Save(ctx, p); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, models.NewNotFoundError(msgNoProfile)
		}
		return nil, models.NewInternalError(err)
	}
	return p, nil
}

func (s *ProfileService) populate(ctx context.Context, p *models.Profile) (*models.ProfileView, error) {
	view := &models.ProfileView{Profile: p}
	user, err := s.users.FindByID(ctx, p.User)
	switch {
	case err == nil:
		view.User = user.Summary()
	case !errors.Is(err, database.ErrNotFound):
		return nil, models.NewInternalError(err)
	}
	return view, nil
}
