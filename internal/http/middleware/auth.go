// Package middleware holds HTTP middleware shared by the API handlers.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey int

const ownerKey contextKey = iota

// Auth validates the bearer token and stores the owner id from the
// subject claim in the request context.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID, err := parseToken(r, secret)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ownerKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithOwnerID returns a context carrying the owner id the way Auth
// stores it, for handlers invoked outside the middleware chain.
func WithOwnerID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerKey, id)
}

// OwnerID returns the authenticated owner id stored by Auth.
func OwnerID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ownerKey).(uuid.UUID)
	return id, ok
}

func parseToken(r *http.Request, secret string) (uuid.UUID, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return uuid.Nil, fmt.Errorf("missing authorization header")
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("missing subject claim")
	}

	ownerID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("subject is not a valid owner id")
	}

	return ownerID, nil
}
