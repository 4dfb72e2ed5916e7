package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"coursemcq/internal/pkg/jwtutil"
	"coursemcq/internal/transport/http/response"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"

	bearerPrefix = "Bearer "
)

// AuthJWT rejects requests without a valid bearer token and stores the
// caller's identity on the gin context.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "missing or malformed authorization header")
			return
		}

		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, message string) {
	response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, message)
	c.Abort()
}
