package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/MaximSupreme/api-final-yatube/internal/authz"
	"github.com/MaximSupreme/api-final-yatube/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// JWTAuthMiddleware requires a valid JWT and stores the principal in
// the request context.
func JWTAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := principalFromHeader(c)
			if err != nil {
				return err
			}
			if !p.Authenticated() {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// OptionalJWTAuthMiddleware extracts the principal when a token is
// present and lets the request through as anonymous when it is not.
// Handlers decide per action whether anonymous is acceptable. A token
// that is present but invalid is still rejected.
func OptionalJWTAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := principalFromHeader(c)
			if err != nil {
				return err
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// PrincipalFromContext returns the principal the auth middleware
// stored, or the anonymous principal when none is set.
func PrincipalFromContext(c echo.Context) authz.Principal {
	if p, ok := c.Get(principalKey).(authz.Principal); ok {
		return p
	}
	return authz.Principal{}
}

// principalFromHeader parses the Authorization header. No header means
// anonymous; a malformed or invalid token is an error.
func principalFromHeader(c echo.Context) (authz.Principal, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return authz.Principal{}, nil
	}

	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return authz.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	tokenString := parts[1]

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(JWTSecret()), nil
	})
	if err != nil {
		if err == jwt.ErrSignatureInvalid {
			return authz.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token signature")
		}
		return authz.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	if !token.Valid {
		return authz.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	return authz.Principal{UserID: claims.UserID, Username: claims.Username}, nil
}

// JWTSecret returns the HMAC signing secret. Must match the secret the
// auth handler signs with.
func JWTSecret() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "supersecretjwtkey"
}
