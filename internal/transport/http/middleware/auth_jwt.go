package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mentorize-api/internal/core/auth"
	resp "mentorize-api/internal/transport/http/response"
)

const (
	KeyUserID = "userId"
	KeyEmail  = "email"
	KeyRole   = "role"
)

// AuthJWT 从 Bearer 头还原 {userId, email, role} 放进 context，
// requireRole 非空时再做角色限制（管理端用）
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.AbortErr(c, http.StatusUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.AbortErr(c, http.StatusUnauthorized, "invalid token")
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			resp.AbortErr(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Set(KeyUserID, claims.Subject)
		c.Set(KeyEmail, claims.Email)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}
