package middleware

import (
	"strings"

	"studyquest_backend/internal/util"
	"studyquest_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TryAuth 尽力解析Bearer Token并注入claims。
// 无Token不拦截：后续按演示账号处理；Token无效才返回401。
func TryAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := util.ParseJWT(tokenString, jwtSecret)
		if err != nil {
			logger.Log.Debug("JWT parse failed", zap.Error(err))
			util.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}
