// FilePath: api/middleware/api.middleware.auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Kraikuppp/webmeter-hub/internal/errors"
)

type JWTConfig struct {
	Secret string
}

type JWTMiddleware struct {
	config JWTConfig
}

type UserContext struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

func NewJWTMiddleware(config JWTConfig) *JWTMiddleware {
	return &JWTMiddleware{config: config}
}

// Authenticate validates the bearer token and adds user info to context
func (m *JWTMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			handleError(w, errors.NewAuthError("no token provided", nil))
			return
		}

		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.NewAuthError("unexpected signing method", nil)
			}
			return []byte(m.config.Secret), nil
		})
		if err != nil || !parsed.Valid {
			handleError(w, errors.NewAuthError("invalid token", err))
			return
		}

		user := createUserContext(claims)

		// Add user context to request context
		ctx := context.WithValue(r.Context(), "user", user)
		ctx = context.WithValue(ctx, "user_id", user.ID)
		ctx = context.WithValue(ctx, "user_roles", user.Roles)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles middleware ensures user has required roles
func (m *JWTMiddleware) RequireRoles(roles []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := r.Context().Value("user").(*UserContext)
			if !ok {
				handleError(w, errors.NewAuthError("no user context found", nil))
				return
			}

			if !hasRequiredRoles(user.Roles, roles) {
				handleError(w, errors.NewAuthorizationError("insufficient permissions", nil))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Helper functions

func createUserContext(claims jwt.MapClaims) *UserContext {
	user := &UserContext{}
	if sub, ok := claims["sub"].(string); ok {
		user.ID = sub
	}
	if name, ok := claims["preferred_username"].(string); ok {
		user.Username = name
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	user.Roles = extractRoles(claims)
	return user
}

func extractToken(r *http.Request) string {
	bearerToken := r.Header.Get("Authorization")
	if len(strings.Split(bearerToken, " ")) == 2 {
		return strings.Split(bearerToken, " ")[1]
	}
	return ""
}

func extractRoles(claims jwt.MapClaims) []string {
	raw, ok := claims["roles"].([]interface{})
	if !ok {
		return nil
	}
	var roles []string
	for _, role := range raw {
		if s, ok := role.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}

func hasRequiredRoles(userRoles, requiredRoles []string) bool {
	if len(requiredRoles) == 0 {
		return true
	}

	roleMap := make(map[string]bool)
	for _, role := range userRoles {
		roleMap[role] = true
	}

	for _, required := range requiredRoles {
		if required == "*" {
			return true
		}
		if !roleMap[required] {
			return false
		}
	}
	return true
}

func handleError(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*errors.APIError); ok {
		http.Error(w, apiErr.Message, apiErr.Code)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
