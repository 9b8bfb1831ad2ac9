package services

import (
	"context"
	"testing"
	"time"

	"github.com/AnshRaj112/devconnect-backend/internal/models"
	"github.com/AnshRaj112/devconnect-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type postFixture struct {
	svc   *PostService
	store *testutil.Store
	alice *models.User
	bob   *models.User
}

func newPostFixture(t *testing.T) postFixture {
	t.Helper()
	store := testutil.NewStore()
	ctx := context.Background()
	alice := &models.User{Name: "Alice", Email: "a@x.com", Avatar: "//gravatar/a"}
	bob := &models.User{Name: "Bob", Email: "b@x.com", Avatar: "//gravatar/b"}
	require.NoError(t, store.Users().Create(ctx, alice))
	require.NoError(t, store.Users().Create(ctx, bob))
	return postFixture{
		svc:   NewPostService(store.Posts(), store.Users()),
		store: store,
		alice: alice,
		bob:   bob,
	}
}

func TestPost_CreateSnapshotsAuthor(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Create(context.Background(), f.alice.ID, "  Hello  ")
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Text)
	assert.Equal(t, "Alice", post.Name)
	assert.Equal(t, "//gravatar/a", post.Avatar)
	assert.Equal(t, f.alice.ID, post.User)
	assert.NotNil(t, post.Likes)
	assert.NotNil(t, post.Comments)

	_, err = f.svc.Create(context.Background(), primitive.NewObjectID(), "ghost")
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestPost_ListNewestFirst(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, text := range []string{"A", "B", "C"} {
		at := base.Add(time.Duration(i) * time.Minute)
		f.svc.now = func() time.Time { return at }
		_, err := f.svc.Create(ctx, f.alice.ID, text)
		require.NoError(t, err)
	}

	posts, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "C", posts[0].Text)
	assert.Equal(t, "B", posts[1].Text)
	assert.Equal(t, "A", posts[2].Text)
}

func TestPost_GetMalformedAndUnknownLookAlike(t *testing.T) {
	f := newPostFixture(t)

	_, malformed := f.svc.Get(context.Background(), "xyz")
	_, unknown := f.svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.Equal(t, models.KindNotFound, models.KindOf(malformed))
	assert.Equal(t, models.KindNotFound, models.KindOf(unknown))
	assert.Equal(t, "Post not found", malformed.Error())
	assert.Equal(t, malformed.Error(), unknown.Error())
}

func TestPost_Delete(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.svc.Create(ctx, f.alice.ID, "Hello")
	require.NoError(t, err)

	err = f.svc.Delete(ctx, f.bob.ID, post.ID.Hex())
	assert.Equal(t, models.KindForbidden, models.KindOf(err))
	assert.Equal(t, "User not authorized", err.Error())

	err = f.svc.Delete(ctx, f.bob.ID, primitive.NewObjectID().Hex())
	assert.Equal(t, models.KindNotFound, models.KindOf(err))

	require.NoError(t, f.svc.Delete(ctx, f.alice.ID, post.ID.Hex()))
	_, err = f.svc.Get(ctx, post.ID.Hex())
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestPost_LikeOncePerUser(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.svc.Create(ctx, f.alice.ID, "Hello")
	require.NoError(t, err)

	likes, err := f.svc.Like(ctx, f.bob.ID, post.ID.Hex())
	require.NoError(t, err)
	require.Len(t, likes, 1)

	_, err = f.svc.Like(ctx, f.bob.ID, post.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, models.KindConflict, models.KindOf(err))
	assert.Equal(t, "Already Liked", err.Error())

	stored, err := f.svc.Get(ctx, post.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, stored.Likes, 1)

	likes, err = f.svc.Like(ctx, f.alice.ID, post.ID.Hex())
	require.NoError(t, err)
	require.Len(t, likes, 2)
	assert.Equal(t, f.alice.ID, likes[0].User)
}

func TestPost_Unlike(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.svc.Create(ctx, f.alice.ID, "Hello")
	require.NoError(t, err)

	_, err = f.svc.Unlike(ctx, f.bob.ID, post.ID.Hex())
	assert.Equal(t, models.KindConflict, models.KindOf(err))
	assert.Equal(t, "Not Liked Yet", err.Error())

	_, err = f.svc.Like(ctx, f.bob.ID, post.ID.Hex())
	require.NoError(t, err)
	likes, err := f.svc.Unlike(ctx, f.bob.ID, post.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, likes)
	assert.NotNil(t, likes)

	_, err = f.svc.Like(ctx, f.bob.ID, "nope")
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestPost_Comments(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.svc.Create(ctx, f.alice.ID, "Hello")
	require.NoError(t, err)

	comments, err := f.svc.AddComment(ctx, f.bob.ID, post.ID.Hex(), "first")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Bob", comments[0].Name)
	bobComment := comments[0].ID

	comments, err = f.svc.AddComment(ctx, f.alice.ID, post.ID.Hex(), "second")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)

	_, err = f.svc.RemoveComment(ctx, f.alice.ID, post.ID.Hex(), bobComment.Hex())
	assert.Equal(t, models.KindForbidden, models.KindOf(err))

	_, err = f.svc.RemoveComment(ctx, f.bob.ID, post.ID.Hex(), primitive.NewObjectID().Hex())
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
	assert.Equal(t, "Comment does not exist", err.Error())

	_, err = f.svc.RemoveComment(ctx, f.bob.ID, post.ID.Hex(), "junk")
	assert.Equal(t, "Comment does not exist", err.Error())

	comments, err = f.svc.RemoveComment(ctx, f.bob.ID, post.ID.Hex(), bobComment.Hex())
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "second", comments[0].Text)

	_, err = f.svc.AddComment(ctx, f.bob.ID, primitive.NewObjectID().Hex(), "lost")
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}
