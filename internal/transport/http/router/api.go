package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"mentorize-api/internal/core/auth"
	"mentorize-api/internal/transport/http/handler"
	mdw "mentorize-api/internal/transport/http/middleware"
)

// NewAPIEngine 公开端路由：/auth、/users、/mentorships
func NewAPIEngine(l *zap.Logger, authH *handler.AuthHandler, userH *handler.UserHandler, mentorshipH *handler.MentorshipHandler, jwter *auth.JWTer, corsOrigin string) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	cc := cors.DefaultConfig()
	if corsOrigin != "" {
		cc.AllowOrigins = []string{corsOrigin}
		cc.AllowCredentials = true
	} else {
		cc.AllowAllOrigins = true
	}
	cc.AllowMethods = []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE", "OPTIONS"}
	cc.AllowHeaders = append(cc.AllowHeaders, "Authorization")
	r.Use(cors.New(cc))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 公开口：登录/注册每 IP 单独限速
	authPublic := r.Group("/auth")
	authPublic.Use(mdw.RateLimitPerIP(5, 10))
	authPublic.POST("/login", authH.Login)
	authPublic.POST("/register", authH.Register)

	authed := r.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))
	authed.POST("/auth/logout", authH.Logout)
	authed.GET("/auth/me", authH.Me)

	// 用户目录历史上就是公开的（前端推荐导师列表用）
	r.GET("/users", userH.List)
	authed.PATCH("/users/:id", userH.Update)
	authed.DELETE("/users/:id", userH.Delete)

	r.GET("/mentorships", mentorshipH.List)
	authed.POST("/mentorships", mentorshipH.Create)
	authed.DELETE("/mentorships/:id", mentorshipH.Cancel)
	authed.PATCH("/mentorships/:id/confirm", mentorshipH.Confirm)

	return r
}
