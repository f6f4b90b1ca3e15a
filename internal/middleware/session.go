package middleware

import (
	"net/http"
	"strings"

	"github.com/fundspace/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Session is the single injected identity object every handler consumes.
// There is no fallback lookup path: if the token does not resolve to a
// session, the request is rejected.
type Session struct {
	UserID  uuid.UUID
	IsAdmin bool
}

const sessionContextKey = "session"

// SessionAuthMiddleware checks for a JWT signed with the given secret and
// stores the resolved Session on the request context.
func SessionAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}
			tokenString := parts[1]

			claims := &models.SessionClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid user identifier in token")
			}

			c.Set(sessionContextKey, &Session{UserID: userID, IsAdmin: claims.IsAdmin})
			return next(c)
		}
	}
}

// SessionFromContext returns the Session stored by SessionAuthMiddleware.
func SessionFromContext(c echo.Context) (*Session, bool) {
	session, ok := c.Get(sessionContextKey).(*Session)
	return session, ok && session != nil
}
