// Package testutil 内存版仓储，单测不依赖真实数据库。
// 语义对齐 GORM 实现：找不到返回 nil，条件删除/更新返回受影响行数。
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"mentorize-api/internal/domain"
)

type MemUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{users: make(map[string]domain.User)}
}

var _ domain.UserRepository = (*MemUserRepo)(nil)

func (r *MemUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			// 和 postgres 的文案保持一致，触发上层的唯一冲突识别
			return errors.New("duplicate key value violates unique constraint \"idx_users_email\"")
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = *u
	return nil
}

func (r *MemUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		out := u
		return &out, nil
	}
	return nil, nil
}

func (r *MemUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *MemUserRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.users {
		if id != u.ID && existing.Email == u.Email {
			return errors.New("duplicate key value violates unique constraint \"idx_users_email\"")
		}
	}
	u.UpdatedAt = time.Now()
	r.users[u.ID] = *u
	return nil
}

func (r *MemUserRepo) SoftDelete(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

type MemMentorshipRepo struct {
	mu       sync.Mutex
	requests map[string]domain.MentorshipRequest
	users    *MemUserRepo // 投影用，可为 nil
}

func NewMemMentorshipRepo(users *MemUserRepo) *MemMentorshipRepo {
	return &MemMentorshipRepo{
		requests: make(map[string]domain.MentorshipRequest),
		users:    users,
	}
}

var _ domain.MentorshipRepository = (*MemMentorshipRepo)(nil)

func (r *MemMentorshipRepo) Create(_ context.Context, m *domain.MentorshipRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	r.requests[m.ID] = *m
	return nil
}

func (r *MemMentorshipRepo) FindByID(_ context.Context, id string) (*domain.MentorshipRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.requests[id]; ok {
		out := m
		return &out, nil
	}
	return nil, nil
}

func (r *MemMentorshipRepo) ListWithUsers(ctx context.Context) ([]domain.MentorshipWithUsers, error) {
	r.mu.Lock()
	requests := make([]domain.MentorshipRequest, 0, len(r.requests))
	for _, m := range r.requests {
		requests = append(requests, m)
	}
	r.mu.Unlock()

	out := make([]domain.MentorshipWithUsers, 0, len(requests))
	for _, m := range requests {
		row := domain.MentorshipWithUsers{MentorshipRequest: m}
		if r.users != nil {
			if u, _ := r.users.FindByID(ctx, m.MentorID); u != nil {
				row.Mentor = &domain.UserRef{ID: u.ID, Email: u.Email}
			}
			if u, _ := r.users.FindByID(ctx, m.StudentID); u != nil {
				row.Student = &domain.UserRef{ID: u.ID, Email: u.Email}
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *MemMentorshipRepo) DeleteOwned(_ context.Context, id, studentID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.requests[id]; ok && m.StudentID == studentID {
		delete(r.requests, id)
		return 1, nil
	}
	return 0, nil
}

func (r *MemMentorshipRepo) ConfirmOwned(_ context.Context, id, mentorID string, decision bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.requests[id]
	if !ok || m.MentorID != mentorID {
		return 0, nil
	}
	d := decision
	m.IsConfirmed = &d
	m.UpdatedAt = time.Now()
	r.requests[id] = m
	return 1, nil
}
