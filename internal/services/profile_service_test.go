package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AnshRaj112/devconnect-backend/internal/database"
	"github.com/AnshRaj112/devconnect-backend/internal/models"
	"github.com/AnshRaj112/devconnect-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRevoker struct {
	revoked []primitive.ObjectID
	err     error
}

func (f *fakeRevoker) RevokeUser(_ context.Context, userID primitive.ObjectID) error {
	f.revoked = append(f.revoked, userID)
	return f.err
}

type profileFixture struct {
	svc     *ProfileService
	store   *testutil.Store
	revoker *fakeRevoker
	user    *models.User
}

func newProfileFixture(t *testing.T) profileFixture {
	t.Helper()
	store := testutil.NewStore()
	revoker := &fakeRevoker{}
	user := &models.User{Name: "Alice", Email: "a@x.com", Avatar: "//gravatar/a", Phone: "5551234567"}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return profileFixture{
		svc:     NewProfileService(store.Profiles(), store.Users(), store.Posts(), revoker),
		store:   store,
		revoker: revoker,
		user:    user,
	}
}

func ptr(s string) *string { return &s }

func TestProfile_UpsertCreatesThenMerges(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	created, err := f.svc.Upsert(ctx, f.user.ID, models.ProfileUpdate{
		Status:  ptr("Developer"),
		Company: ptr("Acme"),
		Skills:  models.SplitSkills("Go, SQL"),
		Social:  models.SocialUpdate{Twitter: ptr("https://twitter.com/alice")},
	})
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, created.User)
	assert.Equal(t, []string{"Go", "SQL"}, created.Skills)
	assert.NotNil(t, created.Experience)

	updated, err := f.svc.Upsert(ctx, f.user.ID, models.ProfileUpdate{
		Status: ptr("Senior Developer"),
		Skills: models.SplitSkills("Go"),
		Social: models.SocialUpdate{YouTube: ptr("https://youtube.com/alice")},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Senior Developer", updated.Status)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, []string{"Go"}, updated.Skills)
	assert.Equal(t, "https://twitter.com/alice", updated.Social.Twitter)
	assert.Equal(t, "https://youtube.com/alice", updated.Social.YouTube)
}

func TestProfile_UpsertRetriesLostInsertRace(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()
	f.store.FailOnce("profiles.Upsert", database.ErrDuplicate)

	p, err := f.svc.Upsert(ctx, f.user.ID, models.ProfileUpdate{
		Status: ptr("Developer"),
		Skills: models.SplitSkills("Go"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Developer", p.Status)

	f.store.FailOn("profiles.Upsert", database.ErrDuplicate)
	_, err = f.svc.Upsert(ctx, f.user.ID, models.ProfileUpdate{Status: ptr("Lead")})
	assert.Equal(t, models.KindInternal, models.KindOf(err))
}

func TestProfile_Me(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	_, err := f.svc.Me(ctx, f.user.ID)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
	assert.Equal(t, "There is no profile for this user", err.Error())

	_, err = f.svc.Upsert(ctx, f.user.ID, models.ProfileUpdate{Status: ptr("Dev"), Skills: []string{"Go"}})
	require.NoError(t, err)

	view, err := f.svc.Me(ctx, f.user.ID)
	require.NoError(t, err)
	require.NotNil(t, view.User)
	assert.Equal(t, "Alice", view.User.Name)
	assert.Equal(t, "5551234567", view.User.Phone)
}

func TestProfile_ByUserID(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	_, err := f.svc.Upsert(ctx, f.user.ID, models.ProfileUpdate{Status: ptr("Dev"), Skills: []string{"Go"}})
	require.NoError(t, err)

	view, err := f.svc.ByUserID(ctx, f.user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Dev", view.Status)

	for _, raw := range []string{"not-an-id", primitive.NewObjectID().Hex()} {
		_, err := f.svc.ByUserID(ctx, raw)
		require.Error(t, err, raw)
		assert.Equal(t, models.KindNotFound, models.KindOf(err))
		assert.Equal(t, "Profile not found", err.Error())
	}
}

func TestProfile_ListPopulatesUsers(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	bob := &models.User{Name: "Bob", Email: "b@x.com"}
	require.NoError(t, f.store.Users().Create(ctx, bob))

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	f.store.Now = func() time.Time { return base }
	_, err := f.svc.Upsert(ctx, f.user.ID, models.ProfileUpdate{Status: ptr("Dev"), Skills: []string{"Go"}})
	require.NoError(t, err)
	f.store.Now = func() time.Time { return base.Add(time.Hour) }
	_, err = f.svc.Upsert(ctx, bob.ID, models.ProfileUpdate{Status: ptr("Ops"), Skills: []string{"k8s"}})
	require.NoError(t, err)

	views, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Bob", views[0].User.Name)
	assert.Equal(t, "Alice", views[1].User.Name)
}

func TestProfile_Experience(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddExperience(ctx, f.user.ID, models.Experience{Title: "Dev", Company: "Acme"})
	assert.Equal(t, models.KindNotFound, models.KindOf(err))

	_, err = f.svc.Upsert(ctx, f.user.ID, models.ProfileUpdate{Status: ptr("Dev"), Skills: []string{"Go"}})
	require.NoError(t, err)

	p, err := f.svc.AddExperience(ctx, f.user.ID, models.Experience{Title: "Junior", Company: "Acme"})
	require.NoError(t, err)
	first := p.Experience[0].ID
	p, err = f.svc.AddExperience(ctx, f.user.ID, models.Experience{Title: "Senior", Company: "Initech"})
	require.NoError(t, err)
	require.Len(t, p.Experience, 2)
	assert.Equal(t, "Senior", p.Experience[0].Title)

	p, err = f.svc.RemoveExperience(ctx, f.user.ID, "bogus")
	require.NoError(t, err)
	assert.Len(t, p.Experience, 2)
	p, err = f.svc.RemoveExperience(ctx, f.user.ID, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Len(t, p.Experience, 2)

	p, err = f.svc.RemoveExperience(ctx, f.user.ID, first.Hex())
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, "Senior", p.Experience[0].Title)

	stored, err := f.svc.Me(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, stored.Experience, 1)
	assert.Equal(t, "Senior", stored.Experience[0].Title)
}

func TestProfile_Education(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	_, err := f.svc.RemoveEducation(ctx, f.user.ID, primitive.NewObjectID().Hex())
	assert.Equal(t, models.KindNotFound, models.KindOf(err))

	_, err = f.svc.Upsert(ctx, f.user.ID, models.ProfileUpdate{Status: ptr("Dev"), Skills: []string{"Go"}})
	require.NoError(t, err)

	p, err := f.svc.AddEducation(ctx, f.user.ID, models.Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS"})
	require.NoError(t, err)
	require.Len(t, p.Education, 1)

	p, err = f.svc.RemoveEducation(ctx, f.user.ID, p.Education[0].ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, p.Education)
}

func TestProfile_DeleteAccount(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	_, err := f.svc.Upsert(ctx, f.user.ID, models.ProfileUpdate{Status: ptr("Dev"), Skills: []string{"Go"}})
	require.NoError(t, err)
	require.NoError(t, f.store.Posts().Create(ctx, &models.Post{User: f.user.ID, Text: "mine"}))
	other := &models.Post{User: primitive.NewObjectID(), Text: "theirs"}
	require.NoError(t, f.store.Posts().Create(ctx, other))

	require.NoError(t, f.svc.DeleteAccount(ctx, f.user.ID))

	_, err = f.store.Users().FindByID(ctx, f.user.ID)
	assert.Error(t, err)
	_, err = f.store.Profiles().FindByUser(ctx, f.user.ID)
	assert.Error(t, err)
	posts, err := f.store.Posts().List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, other.ID, posts[0].ID)
	assert.Equal(t, []primitive.ObjectID{f.user.ID}, f.revoker.revoked)
}

func TestProfile_DeleteAccountAttemptsEveryStep(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	_, err := f.svc.Upsert(ctx, f.user.ID, models.ProfileUpdate{Status: ptr("Dev"), Skills: []string{"Go"}})
	require.NoError(t, err)
	f.store.FailOn("posts.DeleteByUser", errors.New("timeout"))

	err = f.svc.DeleteAccount(ctx, f.user.ID)
	require.Error(t, err)
	assert.Equal(t, models.KindInternal, models.KindOf(err))
	assert.Contains(t, err.Error(), "delete posts")

	_, err = f.store.Profiles().FindByUser(ctx, f.user.ID)
	assert.Error(t, err)
	_, err = f.store.Users().FindByID(ctx, f.user.ID)
	assert.Error(t, err)
}

func TestProfile_DeleteAccountKeepsRevokeFailureQuiet(t *testing.T) {
	f := newProfileFixture(t)
	f.revoker.err = errors.New("redis down")

	assert.NoError(t, f.svc.DeleteAccount(context.Background(), f.user.ID))
}

func TestProfile_DeleteAccountWithoutRevoker(t *testing.T) {
	f := newProfileFixture(t)
	svc := NewProfileService(f.store.Profiles(), f.store.Users(), f.store.Posts(), nil)

	assert.NoError(t, svc.DeleteAccount(context.Background(), f.user.ID))
}
