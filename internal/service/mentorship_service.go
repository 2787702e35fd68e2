package service

import (
	"context"

	"go.uber.org/zap"

	"mentorize-api/internal/domain"
	"mentorize-api/pkg/utils"
)

type MentorshipService struct {
	requests domain.MentorshipRepository
	log      *zap.Logger
}

func NewMentorshipService(requests domain.MentorshipRepository, log *zap.Logger) *MentorshipService {
	return &MentorshipService{requests: requests, log: log}
}

type CreateMentorshipInput struct {
	Description string
	Duration    int
	MentorID    string
}

// Create studentID 永远来自已认证的调用者，请求体里带什么都不认
func (s *MentorshipService) Create(ctx context.Context, in CreateMentorshipInput, studentID string) (*domain.MentorshipRequest, error) {
	m := &domain.MentorshipRequest{
		ID:          utils.NewID(),
		Description: in.Description,
		Duration:    in.Duration,
		MentorID:    in.MentorID,
		StudentID:   studentID,
		IsConfirmed: nil, // 待定
	}
	if err := s.requests.Create(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info("mentorship created",
		zap.String("id", m.ID),
		zap.String("student_id", studentID),
		zap.String("mentor_id", in.MentorID),
	)
	return m, nil
}

func (s *MentorshipService) List(ctx context.Context) ([]domain.MentorshipWithUsers, error) {
	return s.requests.ListWithUsers(ctx)
}

// Cancel 非本人或不存在都只是删了 0 行，不报错，调用方拿 count 自行判断
func (s *MentorshipService) Cancel(ctx context.Context, id, studentID string) (int64, error) {
	count, err := s.requests.DeleteOwned(ctx, id, studentID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.log.Info("mentorship cancelled", zap.String("id", id), zap.String("student_id", studentID))
	}
	return count, nil
}

// Confirm 一条带归属条件的 UPDATE；0 行受影响统一报 ErrNotFoundOrUnauthorized。
// 导师可以在接受/拒绝之间反复切换，没有终态。
func (s *MentorshipService) Confirm(ctx context.Context, id, mentorID string, decision bool) (*domain.MentorshipRequest, error) {
	affected, err := s.requests.ConfirmOwned(ctx, id, mentorID, decision)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFoundOrUnauthorized
	}
	m, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		// 更新和回读之间被学生删掉了
		return nil, ErrNotFoundOrUnauthorized
	}
	s.log.Info("mentorship confirmed",
		zap.String("id", id),
		zap.String("mentor_id", mentorID),
		zap.Bool("decision", decision),
	)
	return m, nil
}
