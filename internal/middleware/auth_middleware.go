package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kpsunited/kps-admin-backend/internal/app/service"
	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/pkg/util"
)

// SessionStateKey is the context key holding the guard's verdict for
// the current request.
const SessionStateKey = "session_state"

type AuthMiddleware struct {
	authService service.AuthService
}

func NewAuthMiddleware(authService service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Authenticate validates the bearer token and the persisted session
// record. The record is the source of truth: a valid token with an
// expired record is still rejected.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				errors.RespondWithError(c, http.StatusUnauthorized, errors.SessionTokenInvalid, "Invalid authorization header format")
				c.Abort()
				return
			}
			token = parts[1]
		} else {
			// If no Authorization header, try the query parameter (for WebSocket)
			token = c.Query("token")
			if token == "" {
				log.Warn("Missing authorization header", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				errors.Unauthorized(c, "Login required")
				c.Abort()
				return
			}
			log.Debug("Using token from query parameter", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
		}

		if err := m.authService.ValidateToken(token); err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.SessionExpired, "Session has expired")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.SessionTokenInvalid, "Invalid session token")
			}
			c.Abort()
			return
		}

		state, _, err := m.authService.SessionState(c.Request.Context())
		if err != nil {
			log.Error("Failed to evaluate session state", err, map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.InternalError(c, "")
			c.Abort()
			return
		}
		switch state {
		case service.StateAuthenticated:
			c.Set(SessionStateKey, state)
		case service.StateExpired:
			log.Warn("Session record expired", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.SessionExpired, "Session has expired")
			c.Abort()
			return
		default:
			errors.Unauthorized(c, "Login required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetSessionState extracts the guard verdict from context.
func GetSessionState(c *gin.Context) (service.SessionState, bool) {
	state, exists := c.Get(SessionStateKey)
	if !exists {
		return "", false
	}
	return state.(service.SessionState), true
}
