package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

type contextKey string

const ownerKey contextKey = "owner"

var revocations *redis.Client

// InitAuthMiddleware enables the revoked-token check against Redis.
// A nil client disables it.
func InitAuthMiddleware(client *redis.Client) {
	revocations = client
}

// WithOwner returns a copy of ctx carrying the authenticated user id.
func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

// OwnerFromContext returns the authenticated user id, if any.
func OwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ownerKey).(string)
	return owner, ok && owner != ""
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Get token from Authorization header
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(w, "Invalid authorization header format")
			return
		}
		token := parts[1]

		if revoked(r.Context(), token) {
			unauthorized(w, "Token revoked")
			return
		}

		userID, err := validateToken(token)
		if err != nil {
			unauthorized(w, "Invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), userID)))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error":%q}`, message)
}

func revoked(ctx context.Context, token string) bool {
	if revocations == nil {
		return false
	}
	n, err := revocations.Exists(ctx, "blacklist:"+token).Result()
	return err == nil && n > 0
}

func validateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(viper.GetString("jwt.secret_key")), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("unexpected claims type")
	}

	switch userID := claims["user_id"].(type) {
	case string:
		if userID != "" {
			return userID, nil
		}
	case float64:
		return fmt.Sprintf("%.0f", userID), nil
	}
	return "", errors.New("token has no user_id claim")
}
