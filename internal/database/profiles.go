package database

import (
	"context"
	"errors"
	"time"

	"github.com/AnshRaj112/devconnect-backend/internal/models"
	"github.com/AnshRaj112/devconnect-backend/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoProfiles struct {
	col *mongo.Collection
	now func() time.Time
}

func NewMongoProfiles(db *mongo.Database) *MongoProfiles {
	return &MongoProfiles{col: db.Collection(ProfilesCollection), now: time.Now}
}

func (r *MongoProfiles) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	defer observability.TrackStore(ProfilesCollection, "find_one")()

	var p models.Profile
	if err := r.col.FindOne(ctx, bson.M{"user": userID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoProfiles) List(ctx context.Context) ([]models.Profile, error) {
	defer observability.TrackStore(ProfilesCollection, "find")()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	profiles := []models.Profile{}
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Upsert writes only the fields present in update. Social links are set by
// dotted path so links absent from the request survive.
func (r *MongoProfiles) Upsert(ctx context.Context, userID primitive.ObjectID, update models.ProfileUpdate) (*models.Profile, error) {
	defer observability.TrackStore(ProfilesCollection, "upsert")()

	set := bson.M{}
	setIf := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	setIf("company", update.Company)
	setIf("website", update.Website)
	setIf("location", update.Location)
	setIf("bio", update.Bio)
	setIf("status", update.Status)
	setIf("githubusername", update.GitHubUsername)
	if update.Skills != nil {
		set["skills"] = update.Skills
	}
	setIf("social.youtube", update.Social.YouTube)
	setIf("social.twitter", update.Social.Twitter)
	setIf("social.facebook", update.Social.Facebook)
	setIf("social.linkedin", update.Social.LinkedIn)
	setIf("social.instagram", update.Social.Instagram)

	onInsert := bson.M{
		"_id":        primitive.NewObjectID(),
		"experience": []models.Experience{},
		"education":  []models.Education{},
		"date":       r.now().UTC(),
	}
	if update.Skills == nil {
		onInsert["skills"] = []string{}
	}

	doc := bson.M{"$setOnInsert": onInsert}
	if len(set) > 0 {
		doc["$set"] = set
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var p models.Profile
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"user": userID}, doc, opts).Decode(&p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoProfiles) Save(ctx context.Context, profile *models.Profile) error {
	defer observability.TrackStore(ProfilesCollection, "replace")()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProfiles) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	defer observability.TrackStore(ProfilesCollection, "delete")()
	_, err := r.col.DeleteOne(ctx, bson.M{"user": userID})
	return err
}
