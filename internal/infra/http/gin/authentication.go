package ginserver

import (
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"wanderstay/internal/infra/security"
)

const userContextKey = "wanderstay.user"

// AuthMiddleware resolves a bearer JWT into the requesting user id. Requests
// without a valid token proceed anonymously; handlers that need an identity
// call requireUser.
type AuthMiddleware struct {
	Tokens security.JWTSigner
	Logger *slog.Logger
}

func (m AuthMiddleware) Handle(c *gin.Context) {
	token := extractBearerToken(c.GetHeader("Authorization"))
	if token == "" {
		c.Next()
		return
	}
	claims, err := m.Tokens.Verify(token)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Debug("token validation failed", "error", err)
		}
		c.Next()
		return
	}
	c.Set(userContextKey, claims.UserID)
	c.Next()
}

func currentUserID(c *gin.Context) (string, bool) {
	val, exists := c.Get(userContextKey)
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}

func requireUser(c *gin.Context) (string, bool) {
	id, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return "", false
	}
	return id, true
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
