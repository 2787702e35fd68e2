package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"mentorize-api/internal/core/auth"
	"mentorize-api/internal/domain"
	"mentorize-api/pkg/utils"
)

// AuthService 负责凭证校验、注册和签发会话 token
type AuthService struct {
	users      domain.UserRepository
	jwter      *auth.JWTer
	bcryptCost int
	log        *zap.Logger
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer, bcryptCost int, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwter: jwter, bcryptCost: bcryptCost, log: log}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// ValidateCredentials 凭证不对不算错误：查无此人和密码不符都返回 (nil, nil)
// 命中时返回副本并清掉哈希，调用方拿不到摘要
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		s.log.Debug("password mismatch", zap.String("email", email))
		return nil, nil
	}
	out := *u
	out.PasswordHash = ""
	return &out, nil
}

// IssueSession sub=用户 id，email/role 随载荷带出，供网关侧中间件还原身份
func (s *AuthService) IssueSession(u *domain.User) (string, error) {
	return s.jwter.Issue(u.ID, u.Email, u.Role)
}

// Register 不做存在性预查，重复邮箱靠唯一索引兜底；返回值不带哈希
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	role := strings.ToUpper(strings.TrimSpace(in.Role))
	if role != domain.RoleMentor {
		role = domain.RoleStudent
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        strings.TrimSpace(in.Email),
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: utils.HashPassword(in.Password, s.bcryptCost),
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if isDupKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("role", u.Role))

	out := *u
	out.PasswordHash = ""
	return &out, nil
}
