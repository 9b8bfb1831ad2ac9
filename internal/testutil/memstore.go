// Package testutil holds in-memory repositories for tests that should not
// need a running MongoDB.
package testutil

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/AnshRaj112/devconnect-backend/internal/database"
	"github.com/AnshRaj112/devconnect-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store backs all three repositories with maps guarded by one mutex. Values
// are copied in and out so callers never share memory with the store.
type Store struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]models.User
	profiles map[primitive.ObjectID]models.Profile // keyed by user id
	posts    map[primitive.ObjectID]models.Post
	failures map[string]error
	once     map[string]error

	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    map[primitive.ObjectID]models.User{},
		profiles: map[primitive.ObjectID]models.Profile{},
		posts:    map[primitive.ObjectID]models.Post{},
		failures: map[string]error{},
		once:     map[string]error{},
		Now:      time.Now,
	}
}

// FailOn makes the named operation (e.g. "posts.DeleteByUser") return err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// FailOnce makes only the next call of op return err.
func (s *Store) FailOnce(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.once[op] = err
}

// fail is called with s.mu held.
func (s *Store) fail(op string) error {
	if err, ok := s.once[op]; ok {
		delete(s.once, op)
		return err
	}
	return s.failures[op]
}

func (s *Store) Users() *Users       { return &Users{s} }
func (s *Store) Profiles() *Profiles { return &Profiles{s} }
func (s *Store) Posts() *Posts       { return &Posts{s} }

type Users struct{ s *Store }

var _ database.UserRepository = (*Users)(nil)

func (r *Users) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.Create"); err != nil {
		return err
	}
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return database.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *Users) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.FindByID"); err != nil {
		return nil, err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.FindByEmail"); err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (r *Users) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.FindByIDs"); err != nil {
		return nil, err
	}
	var out []models.User
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *Users) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.Delete"); err != nil {
		return err
	}
	delete(r.s.users, id)
	return nil
}

type Profiles struct{ s *Store }

var _ database.ProfileRepository = (*Profiles)(nil)

func (r *Profiles) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("profiles.FindByUser"); err != nil {
		return nil, err
	}
	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (r *Profiles) List(_ context.Context) ([]models.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("profiles.List"); err != nil {
		return nil, err
	}
	out := make([]models.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		out = append(out, *cloneProfile(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].Date, out[i].ID, out[j].Date, out[j].ID)
	})
	return out, nil
}

func (r *Profiles) Upsert(_ context.Context, userID primitive.ObjectID, update models.ProfileUpdate) (*models.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("profiles.Upsert"); err != nil {
		return nil, err
	}
	p, ok := r.s.profiles[userID]
	if !ok {
		p = models.Profile{
			ID:         primitive.NewObjectID(),
			User:       userID,
			Skills:     []string{},
			Experience: []models.Experience{},
			Education:  []models.Education{},
			Date:       r.s.Now().UTC(),
		}
	}
	update.Apply(&p)
	r.s.profiles[userID] = *cloneProfile(p)
	return cloneProfile(p), nil
}

func (r *Profiles) Save(_ context.Context, profile *models.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("profiles.Save"); err != nil {
		return err
	}
	existing, ok := r.s.profiles[profile.User]
	if !ok || existing.ID != profile.ID {
		return database.ErrNotFound
	}
	r.s.profiles[profile.User] = *cloneProfile(*profile)
	return nil
}

func (r *Profiles) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("profiles.DeleteByUser"); err != nil {
		return err
	}
	delete(r.s.profiles, userID)
	return nil
}

type Posts struct{ s *Store }

var _ database.PostRepository = (*Posts)(nil)

func (r *Posts) Create(_ context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("posts.Create"); err != nil {
		return err
	}
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	r.s.posts[post.ID] = *clonePost(*post)
	return nil
}

func (r *Posts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("posts.FindByID"); err != nil {
		return nil, err
	}
	p, ok := r.s.posts[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return clonePost(p), nil
}

func (r *Posts) List(_ context.Context) ([]models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("posts.List"); err != nil {
		return nil, err
	}
	out := make([]models.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		out = append(out, *clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].Date, out[i].ID, out[j].Date, out[j].ID)
	})
	return out, nil
}

func (r *Posts) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("posts.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.posts[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.s.posts, id)
	return nil
}

func (r *Posts) DeleteByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("posts.DeleteByUser"); err != nil {
		return 0, err
	}
	var n int64
	for id, p := range r.s.posts {
		if p.User == userID {
			delete(r.s.posts, id)
			n++
		}
	}
	return n, nil
}

func (r *Posts) SetLikes(_ context.Context, id primitive.ObjectID, likes []models.Like) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("posts.SetLikes"); err != nil {
		return err
	}
	p, ok := r.s.posts[id]
	if !ok {
		return database.ErrNotFound
	}
	p.Likes = append([]models.Like{}, likes...)
	r.s.posts[id] = p
	return nil
}

func (r *Posts) SetComments(_ context.Context, id primitive.ObjectID, comments []models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("posts.SetComments"); err != nil {
		return err
	}
	p, ok := r.s.posts[id]
	if !ok {
		return database.ErrNotFound
	}
	p.Comments = append([]models.Comment{}, comments...)
	r.s.posts[id] = p
	return nil
}

// newer orders by date descending with the id as tiebreak, matching the
// Mongo sort {date: -1, _id: -1}.
func newer(d1 time.Time, id1 primitive.ObjectID, d2 time.Time, id2 primitive.ObjectID) bool {
	if !d1.Equal(d2) {
		return d1.After(d2)
	}
	return bytes.Compare(id1[:], id2[:]) > 0
}

func cloneProfile(p models.Profile) *models.Profile {
	p.Skills = append([]string{}, p.Skills...)
	p.Experience = append([]models.Experience{}, p.Experience...)
	p.Education = append([]models.Education{}, p.Education...)
	return &p
}

func clonePost(p models.Post) *models.Post {
	p.Likes = append([]models.Like{}, p.Likes...)
	p.Comments = append([]models.Comment{}, p.Comments...)
	return &p
}
