package router

import (
	"net/http"
	"strings"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"mentorize-api/internal/core/auth"
	"mentorize-api/internal/core/cache"
	"mentorize-api/internal/domain"
	httpez "mentorize-api/internal/transport/http/ez"
	mdw "mentorize-api/internal/transport/http/middleware"
)

// NewAdminEngine 后台端：用户列表 / 封禁，要求 ADMIN 角色。lc 可为 nil
func NewAdminEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, lc cache.Loader) *gin.Engine {
	r := gin.New()

	r.Use(ginzap.Ginzap(l, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(l, true))
	r.Use(mdw.RequestID(), mdw.Metrics())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, domain.RoleAdmin))

	mountAdminActions(admin, db, lc)

	return r
}

func mountAdminActions(admin *gin.RouterGroup, db *gorm.DB, lc cache.Loader) {
	ez := httpez.New(admin)

	// --- GET /admin/v1/users 用户列表（可模糊搜、可含软删） ---
	type listQ struct {
		Offset      int    `form:"offset,default=0"`
		Limit       int    `form:"limit,default=20"`
		Q           string `form:"q"`
		WithDeleted bool   `form:"with_deleted"`
	}
	type row struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		Name      string `json:"name"`
		Role      string `json:"role"`
		CreatedAt string `json:"createdAt"`
	}
	type listOut struct {
		Total int64 `json:"total"`
		Items []row `json:"items"`
	}

	httpez.RegisterAction[listQ, listOut](ez, db, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, tx *gorm.DB, in *listQ) (listOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			q := tx.Model(&domain.User{})
			if in.WithDeleted {
				q = q.Unscoped()
			}
			if s := strings.TrimSpace(in.Q); s != "" {
				like := "%" + s + "%"
				q = q.Where("email LIKE ? OR name LIKE ?", like, like)
			}

			var total int64
			if err := q.Count(&total).Error; err != nil {
				return listOut{}, httpez.Internal("count users failed", err)
			}

			var us []domain.User
			if err := q.Order("created_at DESC").Limit(in.Limit).Offset(in.Offset).Find(&us).Error; err != nil {
				return listOut{}, httpez.Internal("list users failed", err)
			}

			out := listOut{Total: total, Items: make([]row, 0, len(us))}
			for _, u := range us {
				out.Items = append(out.Items, row{
					ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role,
					CreatedAt: u.CreatedAt.Format(time.RFC3339),
				})
			}
			return out, nil
		},
	})

	// --- POST /admin/v1/users/:id/ban 封禁（软删） ---
	httpez.RegisterAction[struct{}, gin.H](ez, db, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if id == "" {
				return nil, httpez.BadRequest("missing id")
			}
			res := tx.Where("id = ?", id).Delete(&domain.User{})
			if res.Error != nil {
				return nil, httpez.Internal("ban user failed", res.Error)
			}
			if res.RowsAffected == 0 {
				return nil, httpez.NotFound("user not found")
			}
			// 封禁后 API 端的两份列表快照都作废
			if lc != nil {
				lc.Invalidate(c.Request.Context(), cache.KeyUsersAll, cache.KeyMentorshipsAll)
			}
			return gin.H{"id": id}, nil
		},
	})
}
