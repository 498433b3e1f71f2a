package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", "ana@example.com", "secret", 7*24*time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTRejectsBadTokens(t *testing.T) {
	token, err := GenerateJWT("user-1", "ana@example.com", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseJWT("not-a-token", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := GenerateJWT("user-1", "ana@example.com", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret")
	assert.ErrorIs(t, err, ErrExpiredToken)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Email: "x@example.com"})
	signed, err := noSubject.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ParseJWT(signed, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRedemptionCodesAreUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		code := NewRedemptionCode()
		assert.True(t, strings.HasPrefix(code, RedemptionCodePrefix))
		_, dup := seen[code]
		require.False(t, dup, "duplicate code %s", code)
		seen[code] = struct{}{}
	}
}

func TestQRCodePNG(t *testing.T) {
	png, err := QRCodePNG(NewRedemptionCode(), 256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestCacheHelpers(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	require.NoError(t, SetCache(ctx, rdb, EventsKey("active"), []string{"a", "b"}, time.Minute))
	require.NoError(t, SetCache(ctx, rdb, EventsKey(""), []string{"c"}, time.Minute))
	require.NoError(t, SetCache(ctx, rdb, ReportsKey, map[string]int{"n": 1}, time.Minute))

	var got []string
	found, err := GetCache(ctx, rdb, EventsKey("active"), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got)

	require.NoError(t, DeleteCachePrefix(ctx, rdb, EventsKeyPrefix))
	found, err = GetCache(ctx, rdb, EventsKey("active"), &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, mr.Exists(ReportsKey))

	found, err = GetCache(ctx, nil, ReportsKey, &got)
	assert.NoError(t, err)
	assert.False(t, found)
}
