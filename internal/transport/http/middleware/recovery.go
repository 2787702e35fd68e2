package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "mentorize-api/internal/transport/http/response"
)

// Recovery 单个请求 panic 不拖垮进程
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
				)
				resp.AbortErr(c, http.StatusInternalServerError, "internal error")
			}
		}()
		c.Next()
	}
}
