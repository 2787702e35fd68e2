package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"mentorize-api/internal/domain"
)

type UserService struct {
	users domain.UserRepository
	log   *zap.Logger
}

func NewUserService(users domain.UserRepository, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

type UpdateUserInput struct {
	Name  string
	Email string
}

// Update 只允许本人改自己的资料
func (s *UserService) Update(ctx context.Context, id, callerID string, in UpdateUserInput) (*domain.User, error) {
	if id != callerID {
		return nil, ErrForbidden
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		u.Email = email
	}
	if err := s.users.Update(ctx, u); err != nil {
		if isDupKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Delete 软删，同样只允许本人
func (s *UserService) Delete(ctx context.Context, id, callerID string) error {
	if id != callerID {
		return ErrForbidden
	}
	affected, err := s.users.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	s.log.Info("user deleted", zap.String("user_id", id))
	return nil
}
