package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/staffing-graph-backend/internal/platform/logger"
)

// AdminAuthMiddleware guards the destructive admin endpoints with an HS256
// bearer token. With no secret configured the guard is disabled; that keeps
// local development working but is logged loudly once at startup.
type AdminAuthMiddleware struct {
	log    *logger.Logger
	secret []byte
}

func NewAdminAuthMiddleware(log *logger.Logger, secret string) *AdminAuthMiddleware {
	mwLog := log.With("Middleware", "AdminAuthMiddleware")
	secret = strings.TrimSpace(secret)
	if secret == "" {
		mwLog.Warn("ADMIN_JWT_SECRET unset, admin endpoints are unauthenticated")
		return &AdminAuthMiddleware{log: mwLog}
	}
	return &AdminAuthMiddleware{log: mwLog, secret: []byte(secret)}
}

func (am *AdminAuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(am.secret) == 0 {
			c.Next()
			return
		}
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthorized"},
			})
			return
		}
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return am.secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthorized"},
			})
			return
		}
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
