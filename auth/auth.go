// Package auth signs in the demo accounts and issues JWTs for them.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"tripcraft/middleware"
	"tripcraft/models"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type demoAccount struct {
	id, email, password, role, name string
}

var demoAccounts = []demoAccount{
	{"u_admin", "admin@admin.com", "admin", models.RoleAdmin, "Admin"},
	{"u_user", "user@user.com", "user", models.RoleTourist, "Tourist"},
	{"u_provider", "provider@provider.com", "provider", models.RoleProvider, "Provider"},
}

// Service checks credentials against the demo accounts.
type Service struct {
	secret []byte
	ttl    time.Duration
	users  []models.User
}

// NewService hashes the demo passwords. Tokens are signed with secret and
// expire after ttl.
func NewService(secret string, ttl time.Duration) (*Service, error) {
	users := make([]models.User, 0, len(demoAccounts))
	for _, a := range demoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", a.email, err)
		}
		users = append(users, models.User{
			UserID:       a.id,
			Email:        a.email,
			PasswordHash: string(hash),
			Role:         a.role,
			Name:         a.name,
		})
	}
	return &Service{secret: []byte(secret), ttl: ttl, users: users}, nil
}

// Login returns a signed token for a matching account.
func (s *Service) Login(email, password string) (string, models.SessionUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
			break
		}
		session := models.SessionUser{ID: u.UserID, Role: u.Role}
		token, err := s.IssueToken(session)
		if err != nil {
			return "", models.SessionUser{}, err
		}
		return token, session, nil
	}
	return "", models.SessionUser{}, ErrInvalidCredentials
}

func (s *Service) IssueToken(u models.SessionUser) (string, error) {
	now := time.Now()
	claims := middleware.Claims{
		UserID: u.ID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Users lists the accounts without password hashes.
func (s *Service) Users() []models.User {
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}
