package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wandermatch/backend/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the verified caller extracted from a bearer token.
// The auth provider owns these fields; the API trusts them without
// re-verification once the signature checks out.
type Identity struct {
	UserID          string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

// Profile converts the identity into the upsert payload for the users table.
func (id Identity) Profile() domain.UserProfile {
	p := domain.UserProfile{
		ID:              id.UserID,
		FirstName:       id.FirstName,
		LastName:        id.LastName,
		ProfileImageURL: id.ProfileImageURL,
	}
	if id.Email != "" {
		email := id.Email
		p.Email = &email
	}
	return p
}

// NewAuthenticator returns a middleware that requires a valid HS256 bearer
// token signed with secret. The verified identity is placed in the request
// context for IdentityFrom. Missing or invalid tokens get a 401 JSON body.
func NewAuthenticator(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "Authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, "Invalid authorization header format")
				return
			}

			identity, err := parseToken(parts[1], secret)
			if err != nil {
				unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom extracts the verified caller from the request context.
// The second return is false outside the Authenticator middleware.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// WithIdentity returns a context carrying the given identity.
// Intended for handler tests that bypass the Authenticator middleware.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// parseToken verifies the HS256 signature and pulls the profile claims the
// auth provider issues alongside the subject.
func parseToken(tokenString, secret string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, fmt.Errorf("token missing sub claim")
	}

	return Identity{
		UserID:          sub,
		Email:           stringClaim(claims, "email"),
		FirstName:       stringClaim(claims, "given_name"),
		LastName:        stringClaim(claims, "family_name"),
		ProfileImageURL: stringClaim(claims, "picture"),
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}

// unauthorized writes a 401 with the same JSON error envelope the handlers use.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
