package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorize-api/internal/core/cache"
	"mentorize-api/internal/domain"
	"mentorize-api/internal/service"
	mdw "mentorize-api/internal/transport/http/middleware"
	resp "mentorize-api/internal/transport/http/response"
)

type UserHandler struct {
	svc   *service.UserService
	cache cache.Loader // 可为 nil
}

func NewUserHandler(svc *service.UserService, c cache.Loader) *UserHandler {
	return &UserHandler{svc: svc, cache: c}
}

func (h *UserHandler) List(c *gin.Context) {
	out, err := cache.GetOrLoadJSON(h.cache, c.Request.Context(), cache.KeyUsersAll, cache.ListTTL,
		func(ctx context.Context) ([]domain.User, error) {
			return h.svc.List(ctx)
		})
	if err != nil {
		resp.Err(c, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []domain.User{}
	}
	c.JSON(http.StatusOK, out)
}

type updateUserIn struct {
	Name  string `json:"name" binding:"omitempty,max=64"`
	Email string `json:"email" binding:"omitempty,email"`
}

func (h *UserHandler) Update(c *gin.Context) {
	var in updateUserIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.Update(c.Request.Context(), c.Param("id"), c.GetString(mdw.KeyUserID),
		service.UpdateUserInput{Name: in.Name, Email: in.Email})
	if err != nil {
		h.writeErr(c, err)
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), c.GetString(mdw.KeyUserID)); err != nil {
		h.writeErr(c, err)
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *UserHandler) writeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		resp.Err(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		resp.Err(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		resp.Err(c, http.StatusConflict, err.Error())
	default:
		resp.Err(c, http.StatusInternalServerError, "internal error")
	}
}

// 用户变更连带失效 mentorship 快照：投影里嵌着用户邮箱
func (h *UserHandler) invalidate(c *gin.Context) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), cache.KeyUsersAll, cache.KeyMentorshipsAll)
	}
}
