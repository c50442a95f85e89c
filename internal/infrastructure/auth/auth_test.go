package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"love-unlock/internal/config"
)

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func router(v *Validator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", v.Middleware(), func(c *gin.Context) {
		owner, _ := OwnerFromContext(c)
		c.String(http.StatusOK, owner)
	})
	return r
}

func TestMiddlewareWithSharedSecret(t *testing.T) {
	cfg := &config.Config{AuthEnabled: true, AuthJWTSecret: "shh", AuthIssuer: "love"}
	v, err := NewValidator(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	r := router(v)

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, ""},
		{"not bearer", "Basic abc", http.StatusUnauthorized, ""},
		{"valid", "Bearer " + signed(t, "shh", jwt.MapClaims{"sub": "user-7", "iss": "love", "exp": time.Now().Add(time.Hour).Unix()}), http.StatusOK, "user-7"},
		{"wrong secret", "Bearer " + signed(t, "nope", jwt.MapClaims{"sub": "user-7", "iss": "love", "exp": time.Now().Add(time.Hour).Unix()}), http.StatusUnauthorized, ""},
		{"expired", "Bearer " + signed(t, "shh", jwt.MapClaims{"sub": "user-7", "iss": "love", "exp": time.Now().Add(-time.Hour).Unix()}), http.StatusUnauthorized, ""},
		{"wrong issuer", "Bearer " + signed(t, "shh", jwt.MapClaims{"sub": "user-7", "iss": "other", "exp": time.Now().Add(time.Hour).Unix()}), http.StatusUnauthorized, ""},
		{"no subject", "Bearer " + signed(t, "shh", jwt.MapClaims{"iss": "love", "exp": time.Now().Add(time.Hour).Unix()}), http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}

func TestMiddlewareDisabledUsesHeader(t *testing.T) {
	v, err := NewValidator(context.Background(), &config.Config{AuthEnabled: false}, zerolog.Nop())
	require.NoError(t, err)
	r := router(v)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(DevOwnerHeader, "alice")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "alice", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, devOwnerID, w.Body.String())
}
