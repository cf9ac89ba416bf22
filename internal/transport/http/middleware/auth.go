package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AVIDS2/Astris-Blog/internal/auth"
)

// SubjectKey is the gin context key holding the authenticated username.
const SubjectKey = "auth.subject"

// RequireAuth rejects requests without a valid bearer token and stores the
// token subject in the context for downstream handlers.
func RequireAuth(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		subject, err := tokens.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(SubjectKey, subject)
		c.Next()
	}
}
