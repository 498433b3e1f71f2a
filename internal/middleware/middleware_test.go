package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventpay/internal/domain"
	"eventpay/internal/service"
	"eventpay/internal/store"
	"eventpay/internal/testutil"
	"eventpay/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "mw-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(t *testing.T) (*gin.Engine, *store.Store) {
	st := store.New(testutil.NewDB(t))
	auth := service.NewAuthService(st.Users, secret, time.Hour)

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/me", Authenticate(auth), func(c *gin.Context) {
		u, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": u.ID})
	})
	r.GET("/admin", Authenticate(auth), RequireRole(domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, st
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	r, st := setup(t)
	u := &domain.User{Email: "ana@example.com", PasswordHash: "x", Name: "Ana", Role: domain.RoleUser}
	require.NoError(t, st.Users.Create(context.Background(), u))

	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "not-a-token").Code)

	token, err := utils.GenerateJWT(u.ID, u.Email, secret, time.Hour)
	require.NoError(t, err)
	w := do(r, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), u.ID)

	ghost, err := utils.GenerateJWT("ghost", "ghost@example.com", secret, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", ghost).Code)
}

func TestRequireRole(t *testing.T) {
	r, st := setup(t)
	ctx := context.Background()
	user := &domain.User{Email: "bo@example.com", PasswordHash: "x", Name: "Bo", Role: domain.RoleUser}
	admin := &domain.User{Email: "cy@example.com", PasswordHash: "x", Name: "Cy", Role: domain.RoleAdmin}
	require.NoError(t, st.Users.Create(ctx, user))
	require.NoError(t, st.Users.Create(ctx, admin))

	userToken, err := utils.GenerateJWT(user.ID, user.Email, secret, time.Hour)
	require.NoError(t, err)
	adminToken, err := utils.GenerateJWT(admin.ID, admin.Email, secret, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, do(r, "/admin", userToken).Code)
	assert.Equal(t, http.StatusNoContent, do(r, "/admin", adminToken).Code)

	// promotion takes effect on the next request with the same token
	require.NoError(t, st.Users.SetRole(ctx, user.ID, domain.RoleAdmin))
	assert.Equal(t, http.StatusNoContent, do(r, "/admin", userToken).Code)
}

func TestAllows(t *testing.T) {
	assert.False(t, Allows(nil, domain.RoleUser))
	assert.True(t, Allows(&domain.User{Role: domain.RoleUser}, domain.RoleUser))
	assert.False(t, Allows(&domain.User{Role: domain.RoleUser}, domain.RoleAdmin))
	assert.True(t, Allows(&domain.User{Role: domain.RoleAdmin}, domain.RoleUser))
}

func preflight(r *gin.Engine, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/me", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSPreflight(t *testing.T) {
	open := gin.New()
	open.Use(CORS([]string{"*"}))
	open.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := preflight(open, "http://localhost:8081")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	closed := gin.New()
	closed.Use(CORS([]string{"https://app.eventpay.io"}))
	closed.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	w = preflight(closed, "https://app.eventpay.io")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.eventpay.io", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight(closed, "https://evil.example.com")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
