package middleware

import (
	"context"
	"myStarCompanion/pkg/logger"
	"myStarCompanion/pkg/utils"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsonres "myStarCompanion/pkg/response"

	"github.com/labstack/echo/v4"
)

const sessionLookupTimeout = 5 * time.Second

// TokenValidator checks that a token is still the active session in redis.
type TokenValidator interface {
	ValidateTokenFromRedis(ctx context.Context, token string) (string, error)
}

func deny(c echo.Context, status int, message string) error {
	return c.JSON(status, jsonres.Error(statusCode(status), message, nil))
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}

// AuthMiddleware validates the bearer JWT and its redis session, then sets
// user_id, role and token on the context.
func AuthMiddleware(tokenValidator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return deny(c, http.StatusUnauthorized, "Missing authorization header")
			}

			token, ok := bearerToken(header)
			if !ok {
				return deny(c, http.StatusUnauthorized, "Invalid authorization format")
			}

			claims, err := utils.ParseJWT(token)
			if err != nil {
				logger.Debug("Rejected bearer token", err)
				return deny(c, http.StatusUnauthorized, "Invalid token")
			}

			expAt, err := claims.GetExpirationTime()
			if err != nil || expAt == nil {
				return deny(c, http.StatusForbidden, "Token has no expiry")
			}
			if time.Now().After(expAt.Time) {
				return deny(c, http.StatusForbidden, "Token expired")
			}

			userID, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil {
				logger.Error("Token carries a non-numeric user id", err)
				return deny(c, http.StatusForbidden, "Invalid user ID in token")
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), sessionLookupTimeout)
			defer cancel()

			sessionUserID, err := tokenValidator.ValidateTokenFromRedis(ctx, token)
			if err != nil {
				logger.Warn("No active session for token", "user_id", claims.UserID, "error", err)
				return deny(c, http.StatusUnauthorized, "Token expired or invalid")
			}
			if sessionUserID != claims.UserID {
				logger.Error("Session user does not match token", "jwt_user_id", claims.UserID, "session_user_id", sessionUserID)
				return deny(c, http.StatusUnauthorized, "Invalid token")
			}

			c.Set("user_id", uint(userID))
			c.Set("role", claims.Role)
			c.Set("token", token)

			return next(c)
		}
	}
}

func isAdmin(c echo.Context) bool {
	role, ok := c.Get("role").(string)
	return ok && strings.EqualFold(role, "admin")
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !isAdmin(c) {
				return deny(c, http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}

// SelfOrAdmin lets admins through and otherwise requires :id to be the caller.
func SelfOrAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			callerID, ok := c.Get("user_id").(uint)
			if !ok {
				return deny(c, http.StatusUnauthorized, "User not authenticated")
			}
			if isAdmin(c) {
				return next(c)
			}

			targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
			if err != nil {
				return deny(c, http.StatusBadRequest, "Invalid user ID")
			}
			if uint(targetID) != callerID {
				return deny(c, http.StatusForbidden, "You can only access your own data")
			}

			return next(c)
		}
	}
}
