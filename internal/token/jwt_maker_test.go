package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func randomSecretKey() string {
	return strings.Repeat(uuid.NewString(), 2)[:minSecretKeySize]
}

func TestJWTMaker(t *testing.T) {
	maker, err := NewJWTMaker(randomSecretKey())
	require.NoError(t, err)

	userID := uuid.NewString()
	duration := time.Minute

	issuedAt := time.Now()
	expiredAt := issuedAt.Add(duration)

	tokenString, payload, err := maker.CreateToken(userID, "seller", duration)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	require.NotEmpty(t, payload)

	payload, err = maker.VerifyToken(tokenString)
	require.NoError(t, err)
	require.NotEmpty(t, payload)

	require.NotEmpty(t, payload.ID)
	require.Equal(t, userID, payload.UserID())
	require.Equal(t, "seller", payload.Role)
	require.WithinDuration(t, issuedAt, payload.IssuedAt.Time, time.Second)
	require.WithinDuration(t, expiredAt, payload.ExpiresAt.Time, time.Second)
}

func TestExpiredJWTToken(t *testing.T) {
	maker, err := NewJWTMaker(randomSecretKey())
	require.NoError(t, err)

	tokenString, payload, err := maker.CreateToken(uuid.NewString(), "seller", -time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	require.NotEmpty(t, payload)

	payload, err = maker.VerifyToken(tokenString)
	require.ErrorIs(t, err, ErrExpiredToken)
	require.Nil(t, payload)
}

func TestInvalidJWTTokenAlgNone(t *testing.T) {
	payload, err := NewPayload(uuid.NewString(), "seller", time.Minute)
	require.NoError(t, err)

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodNone, &payload)
	tokenString, err := jwtToken.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	maker, err := NewJWTMaker(randomSecretKey())
	require.NoError(t, err)

	verified, err := maker.VerifyToken(tokenString)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Nil(t, verified)
}

func TestTooShortSecretKey(t *testing.T) {
	maker, err := NewJWTMaker("short")
	require.Error(t, err)
	require.Nil(t, maker)
}
