package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/AnshRaj112/devconnect-backend/internal/database"
	"github.com/AnshRaj112/devconnect-backend/internal/models"
	"github.com/AnshRaj112/devconnect-backend/pkg/utils"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type AuthService struct {
	users  database.UserRepository
	tokens *TokenService
	now    func() time.Time
}

func NewAuthService(users database.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens, now: time.Now}
}

// NormalizeEmail is applied on both register and login so lookups match.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and returns a signed token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := NormalizeEmail(in.Email)

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return "", models.NewConflictError("User Already exists")
	case !errors.Is(err, database.ErrNotFound):
		return "", models.NewInternalError(err)
	}

	hashed, err := utils.HashPassword(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", models.NewValidationError(models.FieldError{
			Msg:      "Please enter a password with 72 or fewer bytes",
			Param:    "password",
			Location: "body",
		})
	}
	if err != nil {
		return "", models.NewInternalError(err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: hashed,
		Avatar:   utils.GravatarURL(email),
		Phone:    strings.TrimSpace(in.Phone),
		Date:     s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return "", models.NewConflictError("User Already exists")
		}
		return "", models.NewInternalError(err)
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID.Hex())
	return s.sign(user.ID)
}

// Login answers unknown emails and wrong passwords identically, including
// the time spent hashing.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			return "", models.NewInternalError(err)
		}
		_, _ = utils.VerifyPassword(password, dummyHash())
		return "", models.NewInvalidCredentialsError()
	}

	ok, err := utils.VerifyPassword(password, user.Password)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if !ok {
		return "", models.NewInvalidCredentialsError()
	}
	return s.sign(user.ID)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

func (s *AuthService) sign(userID primitive.ObjectID) (string, error) {
	token, err := s.tokens.Sign(userID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

var (
	dummyOnce sync.Once
	dummy     string
)

func dummyHash() string {
	dummyOnce.Do(func() {
		dummy, _ = utils.HashPassword(uuid.NewString())
	})
	return dummy
}
