package database

import (
	"context"
	"errors"

	"github.com/AnshRaj112/devconnect-backend/internal/models"
	"github.com/AnshRaj112/devconnect-backend/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoUsers struct {
	col *mongo.Collection
}

func NewMongoUsers(db *mongo.Database) *MongoUsers {
	return &MongoUsers{col: db.Collection(UsersCollection)}
}

func (r *MongoUsers) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackStore(UsersCollection, "insert")()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	defer observability.TrackStore(UsersCollection, "find_one")()
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer observability.TrackStore(UsersCollection, "find_one")()
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUsers) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoUsers) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	defer observability.TrackStore(UsersCollection, "find")()

	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *MongoUsers) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer observability.TrackStore(UsersCollection, "delete")()
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
