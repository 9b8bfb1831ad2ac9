package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultTokenTTL matches the 360000 second expiry handed to clients.
const DefaultTokenTTL = 100 * time.Hour

// ErrInvalidToken covers every reason a token is refused: bad signature,
// wrong algorithm, expiry, or a missing user id.
var ErrInvalidToken = errors.New("invalid token")

type userClaim struct {
	ID string `json:"id"`
}

// Claims is the token payload: {"user":{"id":...}} plus the registered claims.
type Claims struct {
	User userClaim `json:"user"`
	jwt.RegisteredClaims
}

// Identity is what a verified token proves about the caller.
type Identity struct {
	UserID    primitive.ObjectID
	TokenID   string
	ExpiresAt time.Time
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

// Sign issues an HS256 token for userID.
func (s *TokenService) Sign(userID primitive.ObjectID) (string, error) {
	now := s.now()
	claims := Claims{
		User: userClaim{ID: userID.Hex()},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) Verify(tokenString string) (Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	var claims Claims
	token, err := parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(claims.User.ID)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	return Identity{
		UserID:    userID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
