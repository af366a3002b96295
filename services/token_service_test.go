// File: /services/token_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localevents-api/models"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	ts := NewTokenService("test-secret", time.Hour, time.Hour, nil)

	token, err := ts.IssueAccessToken("user-42", models.RoleAdmin)
	require.NoError(t, err)

	principal, err := ts.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", principal.ID)
	assert.Equal(t, models.RoleAdmin, principal.Role)
}

func TestVerifyAccessTokenRejectsBadInput(t *testing.T) {
	ts := NewTokenService("test-secret", time.Hour, time.Hour, nil)

	// garbage
	_, err := ts.VerifyAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// wrong secret
	other := NewTokenService("other-secret", time.Hour, time.Hour, nil)
	token, err := other.IssueAccessToken("user-1", models.RoleUser)
	require.NoError(t, err)
	_, err = ts.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// expired
	expired := NewTokenService("test-secret", -time.Minute, time.Hour, nil)
	token, err = expired.IssueAccessToken("user-1", models.RoleUser)
	require.NoError(t, err)
	_, err = ts.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueRefreshTokenStoresWithTTL(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	ts := NewTokenService("test-secret", time.Hour, 24*time.Hour, rdb)

	mock.Regexp().ExpectSet(`refresh_token:.+`, `user-1`, 24*time.Hour).SetVal("OK")

	token, err := ts.IssueRefreshToken(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRotateRefreshTokenConsumesOldToken(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	ts := NewTokenService("test-secret", time.Hour, 24*time.Hour, rdb)

	mock.Regexp().ExpectGet(`refresh_token:old-token`).SetVal("user-1")
	mock.Regexp().ExpectDel(`refresh_token:old-token`).SetVal(1)
	mock.Regexp().ExpectSet(`refresh_token:.+`, `user-1`, 24*time.Hour).SetVal("OK")

	userID, newToken, err := ts.RotateRefreshToken(context.Background(), "old-token")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.NotEqual(t, "old-token", newToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRotateUnknownRefreshTokenFails(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	ts := NewTokenService("test-secret", time.Hour, 24*time.Hour, rdb)

	mock.ExpectGet("refresh_token:gone").RedisNil()

	_, _, err := ts.RotateRefreshToken(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevokeRefreshTokenIsIdempotent(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	ts := NewTokenService("test-secret", time.Hour, 24*time.Hour, rdb)

	mock.ExpectDel("refresh_token:gone").SetVal(0)

	assert.NoError(t, ts.RevokeRefreshToken(context.Background(), "gone"))
}
