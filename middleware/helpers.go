package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/college-cricket/models"
)

// Определяем константы для имен JWT claims
const (
	jwtClaimUserID = "user_id"
	jwtClaimEmail  = "email"
	jwtClaimName   = "name"
)

// CurrentUser returns the authenticated caller, or nil for anonymous requests.
func CurrentUser(ctx context.Context) *models.SessionUser {
	return models.SessionUserFromContext(ctx)
}

func GetUserIDFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context or invalid type")
	}
	return stringClaim(claims, jwtClaimUserID)
}

func stringClaim(claims jwt.MapClaims, name string) (string, error) {
	raw, ok := claims[name]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", name)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", name, raw)
	}
	return value, nil
}

func sessionUserFromClaims(claims jwt.MapClaims) (*models.SessionUser, error) {
	id, err := stringClaim(claims, jwtClaimUserID)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("empty '%s' claim in token", jwtClaimUserID)
	}
	// email and name are informational; older tokens may lack them.
	email, _ := stringClaim(claims, jwtClaimEmail)
	name, _ := stringClaim(claims, jwtClaimName)
	return &models.SessionUser{ID: id, Email: email, Name: name}, nil
}
