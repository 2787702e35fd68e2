package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mentorize-api/internal/domain"
)

type MentorshipRepo struct{ db *gorm.DB }

func NewMentorshipRepo(db *gorm.DB) *MentorshipRepo { return &MentorshipRepo{db: db} }

var _ domain.MentorshipRepository = (*MentorshipRepo)(nil)

func (r *MentorshipRepo) Create(ctx context.Context, m *domain.MentorshipRequest) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MentorshipRepo) FindByID(ctx context.Context, id string) (*domain.MentorshipRequest, error) {
	var m domain.MentorshipRequest
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListWithUsers 两趟查询：先取全部请求，再批量取关联用户，内存里拼 id+email 投影。
// 软删用户的投影为 nil（外键是弱引用，不保证完整性）。
func (r *MentorshipRepo) ListWithUsers(ctx context.Context) ([]domain.MentorshipWithUsers, error) {
	var requests []domain.MentorshipRequest
	if err := r.db.WithContext(ctx).Find(&requests).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(requests)*2)
	seen := make(map[string]struct{}, len(requests)*2)
	for _, m := range requests {
		for _, id := range []string{m.MentorID, m.StudentID} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	refs := make(map[string]*domain.UserRef, len(ids))
	if len(ids) > 0 {
		var users []domain.User
		if err := r.db.WithContext(ctx).Select("id", "email").Find(&users, "id IN ?", ids).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			refs[u.ID] = &domain.UserRef{ID: u.ID, Email: u.Email}
		}
	}

	out := make([]domain.MentorshipWithUsers, 0, len(requests))
	for _, m := range requests {
		out = append(out, domain.MentorshipWithUsers{
			MentorshipRequest: m,
			Mentor:            refs[m.MentorID],
			Student:           refs[m.StudentID],
		})
	}
	return out, nil
}

func (r *MentorshipRepo) DeleteOwned(ctx context.Context, id, studentID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND student_id = ?", id, studentID).
		Delete(&domain.MentorshipRequest{})
	return res.RowsAffected, res.Error
}

// ConfirmOwned 单条 UPDATE 带归属条件，受影响行数为 0 即不存在或不属于该导师，
// 调用方无从区分，也消除了读改写竞态。
func (r *MentorshipRepo) ConfirmOwned(ctx context.Context, id, mentorID string, decision bool) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.MentorshipRequest{}).
		Where("id = ? AND mentor_id = ?", id, mentorID).
		Update("is_confirmed", decision)
	return res.RowsAffected, res.Error
}
