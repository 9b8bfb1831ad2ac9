package database

import (
	"context"
	"errors"

	"github.com/AnshRaj112/devconnect-backend/internal/models"
	"github.com/AnshRaj112/devconnect-backend/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoPosts struct {
	col *mongo.Collection
}

func NewMongoPosts(db *mongo.Database) *MongoPosts {
	return &MongoPosts{col: db.Collection(PostsCollection)}
}

func (r *MongoPosts) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackStore(PostsCollection, "insert")()

	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := r.col.InsertOne(ctx, post)
	return err
}

func (r *MongoPosts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	defer observability.TrackStore(PostsCollection, "find_one")()

	var p models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoPosts) List(ctx context.Context) ([]models.Post, error) {
	defer observability.TrackStore(PostsCollection, "find")()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *MongoPosts) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer observability.TrackStore(PostsCollection, "delete")()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPosts) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	defer observability.TrackStore(PostsCollection, "delete_many")()

	res, err := r.col.DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoPosts) SetLikes(ctx context.Context, id primitive.ObjectID, likes []models.Like) error {
	defer observability.TrackStore(PostsCollection, "set_likes")()
	if likes == nil {
		likes = []models.Like{}
	}
	return r.set(ctx, id, "likes", likes)
}

func (r *MongoPosts) SetComments(ctx context.Context, id primitive.ObjectID, comments []models.Comment) error {
	defer observability.TrackStore(PostsCollection, "set_comments")()
	if comments == nil {
		comments = []models.Comment{}
	}
	return r.set(ctx, id, "comments", comments)
}

func (r *MongoPosts) set(ctx context.Context, id primitive.ObjectID, field string, value any) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
