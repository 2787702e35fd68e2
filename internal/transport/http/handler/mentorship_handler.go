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

type MentorshipHandler struct {
	svc   *service.MentorshipService
	cache cache.Loader // 可为 nil
}

func NewMentorshipHandler(svc *service.MentorshipService, c cache.Loader) *MentorshipHandler {
	return &MentorshipHandler{svc: svc, cache: c}
}

type createMentorshipIn struct {
	Description string `json:"description" binding:"required"`
	Duration    int    `json:"duration" binding:"required,gt=0"`
	MentorID    string `json:"mentorId" binding:"required"`
	// 请求体里的 studentId 一律忽略，身份只认 token
}

func (h *MentorshipHandler) Create(c *gin.Context) {
	var in createMentorshipIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.svc.Create(c.Request.Context(), service.CreateMentorshipInput{
		Description: in.Description,
		Duration:    in.Duration,
		MentorID:    in.MentorID,
	}, c.GetString(mdw.KeyUserID))
	if err != nil {
		resp.Err(c, http.StatusInternalServerError, "internal error")
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusCreated, m)
}

func (h *MentorshipHandler) List(c *gin.Context) {
	out, err := cache.GetOrLoadJSON(h.cache, c.Request.Context(), cache.KeyMentorshipsAll, cache.ListTTL,
		func(ctx context.Context) ([]domain.MentorshipWithUsers, error) {
			return h.svc.List(ctx)
		})
	if err != nil {
		resp.Err(c, http.StatusInternalServerError, "internal error")
		return
	}
	if out == nil {
		out = []domain.MentorshipWithUsers{}
	}
	c.JSON(http.StatusOK, out)
}

func (h *MentorshipHandler) Cancel(c *gin.Context) {
	count, err := h.svc.Cancel(c.Request.Context(), c.Param("id"), c.GetString(mdw.KeyUserID))
	if err != nil {
		resp.Err(c, http.StatusInternalServerError, "internal error")
		return
	}
	if count > 0 {
		h.invalidate(c)
	}
	c.JSON(http.StatusOK, gin.H{"removedCount": count})
}

type confirmIn struct {
	IsConfirmed *bool `json:"isConfirmed" binding:"required"`
}

func (h *MentorshipHandler) Confirm(c *gin.Context) {
	var in confirmIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.svc.Confirm(c.Request.Context(), c.Param("id"), c.GetString(mdw.KeyUserID), *in.IsConfirmed)
	if err != nil {
		if errors.Is(err, service.ErrNotFoundOrUnauthorized) {
			resp.Err(c, http.StatusNotFound, err.Error())
			return
		}
		resp.Err(c, http.StatusInternalServerError, "internal error")
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, m)
}

func (h *MentorshipHandler) invalidate(c *gin.Context) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), cache.KeyMentorshipsAll)
	}
}
