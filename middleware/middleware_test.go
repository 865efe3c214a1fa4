package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcraft/globals"
	"tripcraft/models"
	"tripcraft/utils"
)

func sign(t *testing.T, secret, userID, role string, ttl time.Duration) string {
	t.Helper()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func whoami(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"id":   utils.GetUserIDFromRequest(r),
		"role": utils.GetRoleFromRequest(r),
	})
}

func call(h httprouter.Handle, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h(rec, req, nil)
	return rec
}

func TestAuthenticate(t *testing.T) {
	a := NewAuth("s3cret")

	tests := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, "Missing token"},
		{"no bearer", "Token abc", http.StatusUnauthorized, "Invalid token"},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized, "Invalid token"},
		{"wrong secret", "Bearer " + sign(t, "other", "u_1", models.RoleAdmin, time.Hour), http.StatusUnauthorized, "Invalid token"},
		{"expired", "Bearer " + sign(t, "s3cret", "u_1", models.RoleAdmin, -time.Hour), http.StatusUnauthorized, "Invalid token"},
		{"valid", "Bearer " + sign(t, "s3cret", "u_1", models.RoleAdmin, time.Hour), http.StatusOK, `"id":"u_1"`},
		{"demo", "Bearer " + globals.DemoToken, http.StatusOK, `"id":"u_demo"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(a.Authenticate(whoami), tt.header)
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestOptionalAuthProceedsAnonymously(t *testing.T) {
	a := NewAuth("s3cret")

	rec := call(a.OptionalAuth(whoami), "Bearer nonsense")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":""`)

	rec = call(a.OptionalAuth(whoami), "Bearer "+sign(t, "s3cret", "u_2", models.RoleProvider, time.Hour))
	assert.Contains(t, rec.Body.String(), `"role":"provider"`)
}

func TestRequireRole(t *testing.T) {
	a := NewAuth("s3cret")
	h := a.RequireRole(whoami, models.RoleAdmin, models.RoleProvider)

	assert.Equal(t, http.StatusUnauthorized, call(h, "").Code)
	assert.Equal(t, http.StatusForbidden, call(h, "Bearer demo").Code)
	assert.Equal(t, http.StatusOK, call(h, "Bearer "+sign(t, "s3cret", "u_3", models.RoleProvider, time.Hour)).Code)
}

func TestWebSocketUpgradePassesThrough(t *testing.T) {
	a := NewAuth("s3cret")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()
	a.Authenticate(whoami)(rec, req, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
