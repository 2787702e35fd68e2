package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorize-api/internal/service"
	mdw "mentorize-api/internal/transport/http/middleware"
	resp "mentorize-api/internal/transport/http/response"
)

type AuthHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

func NewAuthHandler(auth *service.AuthService, users *service.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

type loginIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 凭证错误按前端的约定返回 200 + {"error": ...}，不是 401
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.auth.ValidateCredentials(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		resp.Err(c, http.StatusInternalServerError, "internal error")
		return
	}
	if u == nil {
		c.JSON(http.StatusOK, gin.H{"error": "Invalid credentials"})
		return
	}
	token, err := h.auth.IssueSession(u)
	if err != nil {
		resp.Err(c, http.StatusInternalServerError, "issue token failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

type registerIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,max=64"`
	Role     string `json:"role" binding:"omitempty,oneof=STUDENT MENTOR"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:    in.Email,
		Password: in.Password,
		Name:     in.Name,
		Role:     in.Role,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			resp.Err(c, http.StatusConflict, err.Error())
			return
		}
		resp.Err(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Logout 无服务端会话可销毁，token 由前端丢弃
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out (frontend removes token)"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		resp.Err(c, http.StatusInternalServerError, "internal error")
		return
	}
	if u == nil {
		resp.Err(c, http.StatusNotFound, "user not found")
		return
	}
	c.JSON(http.StatusOK, u)
}
