package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/AnshRaj112/devconnect-backend/internal/models"
	"github.com/AnshRaj112/devconnect-backend/internal/testutil"
	"github.com/AnshRaj112/devconnect-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAuthService(t *testing.T) (*AuthService, *testutil.Store, *TokenService) {
	t.Helper()
	store := testutil.NewStore()
	tokens := newTestTokens(t)
	return NewAuthService(store.Users(), tokens), store, tokens
}

var alice = RegisterInput{
	Name:     "Alice",
	Email:    "a@x.com",
	Password: "secret1",
	Phone:    "5551234567",
}

func TestRegister_TokenResolvesToNewUser(t *testing.T) {
	svc, store, tokens := newAuthService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, alice)
	require.NoError(t, err)

	id, err := tokens.Verify(token)
	require.NoError(t, err)

	user, err := store.Users().FindByID(ctx, id.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, utils.GravatarURL("a@x.com"), user.Avatar)
	assert.NotEqual(t, "secret1", user.Password)
	assert.True(t, strings.HasPrefix(user.Password, "$2a$10$"))
	assert.False(t, user.Date.IsZero())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, store, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, alice)
	require.NoError(t, err)

	dup := alice
	dup.Email = "  A@X.com "
	dup.Name = "Mallory"
	_, err = svc.Register(ctx, dup)
	require.Error(t, err)
	assert.Equal(t, models.KindConflict, models.KindOf(err))
	assert.Equal(t, "User Already exists", err.Error())

	user, err := store.Users().FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
}

func TestRegister_StoreFailure(t *testing.T) {
	svc, store, _ := newAuthService(t)
	store.FailOn("users.Create", errors.New("connection reset"))

	_, err := svc.Register(context.Background(), alice)
	assert.Equal(t, models.KindInternal, models.KindOf(err))
}

func TestRegister_PasswordTooLongForBcrypt(t *testing.T) {
	svc, store, _ := newAuthService(t)
	in := alice
	in.Password = strings.Repeat("p", utils.MaxPasswordBytes+8)

	_, err := svc.Register(context.Background(), in)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.KindValidation, appErr.Kind)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "password", appErr.Fields[0].Param)

	_, err = store.Users().FindByEmail(context.Background(), "a@x.com")
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, alice)
	require.NoError(t, err)

	token, err := svc.Login(ctx, "A@x.com", "secret1")
	require.NoError(t, err)
	_, err = tokens.Verify(token)
	assert.NoError(t, err)
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, alice)
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "a@x.com", "wrong-password")
	_, unknownEmail := svc.Login(ctx, "nobody@x.com", "secret1")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, models.KindInvalidCredentials, models.KindOf(wrongPassword))
	assert.Equal(t, models.KindInvalidCredentials, models.KindOf(unknownEmail))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestCurrentUser(t *testing.T) {
	svc, _, tokens := newAuthService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, alice)
	require.NoError(t, err)
	id, err := tokens.Verify(token)
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, id.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	_, err = svc.CurrentUser(ctx, primitive.NewObjectID())
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
	assert.Equal(t, "User not found", err.Error())
}
