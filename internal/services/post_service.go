package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/AnshRaj112/devconnect-backend/internal/database"
	"github.com/AnshRaj112/devconnect-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgPostNotFound    = "Post not found"
	msgNotAuthorized   = "User not authorized"
	msgCommentNotFound = "Comment does not exist"
)

type PostService struct {
	posts database.PostRepository
	users database.UserRepository
	now   func() time.Time
}

func NewPostService(posts database.PostRepository, users database.UserRepository) *PostService {
	return &PostService{posts: posts, users: users, now: time.Now}
}

// Create snapshots the author's current name and avatar onto the post.
func (s *PostService) Create(ctx context.Context, userID primitive.ObjectID, text string) (*models.Post, error) {
	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}
	post := &models.Post{
		User:     userID,
		Text:     strings.TrimSpace(text),
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
		Date:     s.now().UTC(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, rawID string) (*models.Post, error) {
	return s.load(ctx, rawID)
}

// Delete checks that the post exists before checking who wrote it.
func (s *PostService) Delete(ctx context.Context, userID primitive.ObjectID, rawID string) error {
	post, err := s.load(ctx, rawID)
	if err != nil {
		return err
	}
	if post.User != userID {
		return models.NewForbiddenError(msgNotAuthorized)
	}
	if err := s.posts.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return models.NewNotFoundError(msgPostNotFound)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (s *PostService) Like(ctx context.Context, userID primitive.ObjectID, rawID string) ([]models.Like, error) {
	post, err := s.load(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if err := post.Like(userID); err != nil {
		return nil, models.NewConflictError("Already Liked")
	}
	if err := s.posts.SetLikes(ctx, post.ID, post.Likes); err != nil {
		return nil, s.writeErr(err)
	}
	return post.Likes, nil
}

func (s *PostService) Unlike(ctx context.Context, userID primitive.ObjectID, rawID string) ([]models.Like, error) {
	post, err := s.load(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if err := post.Unlike(userID); err != nil {
		return nil, models.NewConflictError("Not Liked Yet")
	}
	if err := s.posts.SetLikes(ctx, post.ID, post.Likes); err != nil {
		return nil, s.writeErr(err)
	}
	return post.Likes, nil
}

func (s *PostService) AddComment(ctx context.Context, userID primitive.ObjectID, rawID, text string) ([]models.Comment, error) {
	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}
	post, err := s.load(ctx, rawID)
	if err != nil {
		return nil, err
	}
	post.AddComment(models.Comment{
		User:   userID,
		Text:   strings.TrimSpace(text),
		Name:   author.Name,
		Avatar: author.Avatar,
		Date:   s.now().UTC(),
	})
	if err := s.posts.SetComments(ctx, post.ID, post.Comments); err != nil {
		return nil, s.writeErr(err)
	}
	return post.Comments, nil
}

// RemoveComment finds the comment by its own id; the caller must have written it.
func (s *PostService) RemoveComment(ctx context.Context, userID primitive.ObjectID, rawID, rawCommentID string) ([]models.Comment, error) {
	post, err := s.load(ctx, rawID)
	if err != nil {
		return nil, err
	}
	commentID, err := primitive.ObjectIDFromHex(rawCommentID)
	if err != nil {
		return nil, models.NewNotFoundError(msgCommentNotFound)
	}
	switch err := post.RemoveComment(commentID, userID); {
	case errors.Is(err, models.ErrCommentNotFound):
		return nil, models.NewNotFoundError(msgCommentNotFound)
	case errors.Is(err, models.ErrNotCommentAuthor):
		return nil, models.NewForbiddenError(msgNotAuthorized)
	}
	if err := s.posts.SetComments(ctx, post.ID, post.Comments); err != nil {
		return nil, s.writeErr(err)
	}
	return post.Comments, nil
}

func (s *PostService) load(ctx context.Context, rawID string) (*models.Post, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		slog.DebugContext(ctx, "malformed post id", "post_id", rawID)
		return nil, models.NewNotFoundError(msgPostNotFound)
	}
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			slog.DebugContext(ctx, "post not found", "post_id", rawID)
			return nil, models.NewNotFoundError(msgPostNotFound)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

func (s *PostService) author(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// writeErr maps a failed sub-document write. The post may have been deleted
// between the read and the write.
func (s *PostService) writeErr(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return models.NewNotFoundError(msgPostNotFound)
	}
	return models.NewInternalError(err)
}
