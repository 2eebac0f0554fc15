package middleware

import (
	"ctchen222/bucketlist/internal/api/response"
	"ctchen222/bucketlist/internal/api/service"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = "auth.user_id"

// accessDenied matches the wording clients have always seen; missing
// header, malformed header, bad signature and expiry all produce it.
const accessDenied = "Access Denied. Log in Again."

// RequireAuth gates every protected route. It extracts the bearer
// token, verifies it and stores the resolved user id in the request
// context; on any failure it aborts without invoking the handler.
func RequireAuth(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			response.AbortError(c, http.StatusUnauthorized, accessDenied)
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			// Expired vs tampered matters for the logs only.
			slog.DebugContext(c.Request.Context(), "token rejected", "reason", err)
			response.AbortError(c, http.StatusUnauthorized, accessDenied)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the verified user id placed by RequireAuth.
// The second return is false on unprotected routes.
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
