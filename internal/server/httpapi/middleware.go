package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Prathamesh2640/AI-Hackathon/internal/common"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/auth"
)

const memberIDKey = "memberID"

// authMiddleware validates the bearer token and stores the member ID in the
// request context.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		memberID, err := auth.GetMemberIDFromToken(token, s.secretKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(memberIDKey, memberID)
		c.Next()
	}
}

// currentMemberID returns the member ID stored by authMiddleware.
func currentMemberID(c *gin.Context) string {
	return c.GetString(memberIDKey)
}
