package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcraft/middleware"
	"tripcraft/models"
)

func newService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService("test-secret", time.Hour)
	require.NoError(t, err)
	return svc
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc := newService(t)

	token, user, err := svc.Login("Provider@Provider.com ", "provider")
	require.NoError(t, err)
	assert.Equal(t, models.SessionUser{ID: "u_provider", Role: models.RoleProvider}, user)

	claims, err := middleware.NewAuth("test-secret").ValidateJWT("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u_provider", claims.UserID)
	assert.Equal(t, models.RoleProvider, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newService(t)

	_, _, err := svc.Login("admin@admin.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login("nobody@admin.com", "admin")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUsersHidesHashes(t *testing.T) {
	svc := newService(t)
	users := svc.Users()
	require.Len(t, users, 3)
	assert.Equal(t, "u_admin", users[0].UserID)

	users[0].Role = "changed"
	assert.Equal(t, models.RoleAdmin, svc.Users()[0].Role)
}

func TestLoginHandler(t *testing.T) {
	h := NewHandler(newService(t))

	tests := []struct {
		name string
		body string
		code int
		want string
	}{
		{"ok", `{"email":"user@user.com","password":"user"}`, http.StatusOK, `"role":"tourist"`},
		{"wrong password", `{"email":"user@user.com","password":"nope1"}`, http.StatusUnauthorized, "Invalid email or password"},
		{"not an email", `{"email":"user","password":"user"}`, http.StatusBadRequest, "Invalid credentials format"},
		{"short password", `{"email":"user@user.com","password":"abc"}`, http.StatusBadRequest, "Invalid credentials format"},
		{"bad json", `{`, http.StatusBadRequest, "Invalid credentials format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Login(rec, req, nil)
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}
