package models

import (
	"context"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionUser is the authenticated caller extracted from a verified token.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionUserKey struct{}

// WithSessionUser returns a copy of ctx carrying the authenticated user.
func WithSessionUser(ctx context.Context, u *SessionUser) context.Context {
	return context.WithValue(ctx, sessionUserKey{}, u)
}

// SessionUserFromContext returns the authenticated user or nil.
func SessionUserFromContext(ctx context.Context) *SessionUser {
	u, _ := ctx.Value(sessionUserKey{}).(*SessionUser)
	return u
}
