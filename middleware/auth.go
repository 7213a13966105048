package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"playarena/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// JWTAuthMiddleware validates the gateway-issued bearer token, rejects
// revoked tokens via the auth cache blacklist, and stores the caller's
// attuid in the gin context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Insufficient authorization",
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Revoked tokens are blacklisted by the gateway until they expire.
		authCache := utils.GetAuthCacheClient()
		if _, err := authCache.Get(ctx, utils.BlacklistPrefix+tokenString).Result(); err == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Token has been revoked",
			})
			return
		} else if err != redis.Nil {
			logger.Error("blacklist check failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": "Authorization service unavailable",
			})
			return
		}

		attuid, err := utils.ExtractATTUIDFromToken(tokenString)
		if err != nil || attuid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Insufficient authorization",
			})
			return
		}

		c.Set("attuid", attuid)
		c.Next()
	}
}
