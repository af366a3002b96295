// File: /services/token_service.go
package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"localevents-api/models"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const refreshKeyPrefix = "refresh_token:"

// TokenService issues HS256 access tokens and keeps opaque refresh tokens in
// redis so they can be rotated and revoked.
type TokenService struct {
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	rdb        *redis.Client
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration, rdb *redis.Client) *TokenService {
	return &TokenService{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		rdb:        rdb,
	}
}

func (ts *TokenService) IssueAccessToken(userID string, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(ts.accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ts.secret))
}

// VerifyAccessToken validates the signature and expiry and returns the
// embedded principal.
func (ts *TokenService) VerifyAccessToken(tokenString string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(ts.secret), nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return Principal{}, ErrInvalidToken
	}

	return Principal{ID: userID, Role: models.Role(role)}, nil
}

// IssueRefreshToken stores an opaque token with the configured TTL.
func (ts *TokenService) IssueRefreshToken(ctx context.Context, userID string) (string, error) {
	token := uuid.New().String()
	if err := ts.rdb.Set(ctx, refreshKeyPrefix+token, userID, ts.refreshTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// RotateRefreshToken consumes a refresh token and issues a replacement. A
// token can only be rotated once; replays after rotation fail.
func (ts *TokenService) RotateRefreshToken(ctx context.Context, token string) (string, string, error) {
	userID, err := ts.rdb.Get(ctx, refreshKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", "", ErrInvalidToken
		}
		return "", "", err
	}

	if err := ts.rdb.Del(ctx, refreshKeyPrefix+token).Err(); err != nil {
		return "", "", err
	}

	newToken, err := ts.IssueRefreshToken(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return userID, newToken, nil
}

// RevokeRefreshToken invalidates a refresh token. Unknown tokens are a no-op
// so logout is idempotent.
func (ts *TokenService) RevokeRefreshToken(ctx context.Context, token string) error {
	return ts.rdb.Del(ctx, refreshKeyPrefix+token).Err()
}
