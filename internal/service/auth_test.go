package service

import (
	"context"
	"testing"
	"time"

	"eventpay/internal/apperr"
	"eventpay/internal/domain"
	"eventpay/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.st.Users, testSecret, time.Hour)
	ctx := context.Background()

	sess, err := auth.Register(ctx, RegisterInput{Email: " Ana@Example.com ", Password: "pw123456", Name: "Ana"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "ana@example.com", sess.User.Email)
	assert.Equal(t, domain.RoleUser, sess.User.Role)
	assert.True(t, sess.User.Credits.IsZero())

	_, err = auth.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "other", Name: "Again"})
	assert.True(t, apperr.Is(err, apperr.Conflict))

	logged, err := auth.Login(ctx, "ANA@example.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, logged.User.ID)

	_, err = auth.Login(ctx, "ana@example.com", "wrong")
	assert.True(t, apperr.Is(err, apperr.Unauthorized))
	_, err = auth.Login(ctx, "nobody@example.com", "pw123456")
	assert.True(t, apperr.Is(err, apperr.Unauthorized))

	me, err := auth.Authenticate(ctx, logged.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, me.ID)
}

func TestAuthenticateRejects(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.st.Users, testSecret, time.Hour)
	ctx := context.Background()
	u := f.user(t, "bo@example.com", domain.RoleUser, "0")

	_, err := auth.Authenticate(ctx, "garbage")
	assert.True(t, apperr.Is(err, apperr.Unauthorized))

	expired, err := utils.GenerateJWT(u.ID, u.Email, testSecret, -time.Minute)
	require.NoError(t, err)
	_, err = auth.Authenticate(ctx, expired)
	assert.True(t, apperr.Is(err, apperr.Unauthorized))

	foreign, err := utils.GenerateJWT(u.ID, u.Email, "another-secret", time.Hour)
	require.NoError(t, err)
	_, err = auth.Authenticate(ctx, foreign)
	assert.True(t, apperr.Is(err, apperr.Unauthorized))

	ghost, err := utils.GenerateJWT("no-such-user", "ghost@example.com", testSecret, time.Hour)
	require.NoError(t, err)
	_, err = auth.Authenticate(ctx, ghost)
	assert.True(t, apperr.Is(err, apperr.Unauthorized))
}

func TestAuthenticateSeesRoleChanges(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.st.Users, testSecret, time.Hour)
	ctx := context.Background()

	sess, err := auth.Register(ctx, RegisterInput{Email: "cy@example.com", Password: "pw", Name: "Cy"})
	require.NoError(t, err)
	require.NoError(t, f.st.Users.SetRole(ctx, sess.User.ID, domain.RoleAdmin))

	me, err := auth.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	assert.True(t, me.IsAdmin())
}
