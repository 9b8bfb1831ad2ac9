package services

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RevokedUserKeyPrefix is the Redis key prefix for deleted accounts whose
// tokens may still be unexpired.
const RevokedUserKeyPrefix = "revoked_user:"

// RevocationStore remembers deleted accounts for as long as a token issued
// before the deletion could still verify.
type RevocationStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRevocationStore(rdb *redis.Client, ttl time.Duration) *RevocationStore {
	return &RevocationStore{rdb: rdb, ttl: ttl}
}

func (s *RevocationStore) RevokeUser(ctx context.Context, userID primitive.ObjectID) error {
	return s.rdb.Set(ctx, RevokedUserKeyPrefix+userID.Hex(), time.Now().Unix(), s.ttl).Err()
}

func (s *RevocationStore) IsRevoked(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	err := s.rdb.Get(ctx, RevokedUserKeyPrefix+userID.Hex()).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
