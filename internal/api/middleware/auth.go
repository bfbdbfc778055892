package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobboard/job-portal/internal/core/ports"
)

// Context keys set by Auth.
const (
	ContextUserID    = "user_id"
	ContextRole      = "role"
	ContextTokenID   = "token_id"
	ContextTokenExp  = "token_exp"
	bearerAuthScheme = "bearer"
)

// Auth validates the bearer JWT, rejects revoked tokens and injects the
// caller's identity into the context. A nil denylist disables revocation.
func Auth(jwtSecret string, denylist ports.TokenDenylist, log zerolog.Logger) echo.MiddlewareFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized to access this route")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], bearerAuthScheme) || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := parser.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, _ := claims["id"].(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			role, _ := claims["role"].(string)
			tokenID, _ := claims["jti"].(string)

			var expiresAt time.Time
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				expiresAt = exp.Time
			}

			if denylist != nil && tokenID != "" {
				revoked, err := denylist.IsRevoked(c.Request().Context(), tokenID)
				if err != nil {
					log.Warn().Err(err).Str("token_id", tokenID).Msg("token denylist unavailable")
				} else if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token has been revoked")
				}
			}

			c.Set(ContextUserID, userID)
			c.Set(ContextRole, role)
			c.Set(ContextTokenID, tokenID)
			c.Set(ContextTokenExp, expiresAt)

			return next(c)
		}
	}
}
