package domain

import (
	"context"
	"time"
)

// MentorshipRequest 的确认状态是三态的：
// nil = 待定，true = 已接受，false = 已拒绝（导师可反复切换）
type MentorshipRequest struct {
	ID          string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Duration    int       `gorm:"not null" json:"duration"` // 分钟
	MentorID    string    `gorm:"size:32;index;not null" json:"mentorId"`
	StudentID   string    `gorm:"size:32;index;not null" json:"studentId"`
	IsConfirmed *bool     `json:"isConfirmed"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (MentorshipRequest) TableName() string { return "mentorship_requests" }

// UserRef 列表里只暴露关联用户的 id + email
type UserRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type MentorshipWithUsers struct {
	MentorshipRequest
	Mentor  *UserRef `json:"mentor"`
	Student *UserRef `json:"student"`
}

type MentorshipRepository interface {
	Create(ctx context.Context, m *MentorshipRequest) error
	FindByID(ctx context.Context, id string) (*MentorshipRequest, error)
	ListWithUsers(ctx context.Context) ([]MentorshipWithUsers, error)
	// DeleteOwned 只删除 id 和 student_id 同时匹配的记录，返回删除行数
	DeleteOwned(ctx context.Context, id, studentID string) (int64, error)
	// ConfirmOwned 条件更新（id + mentor_id 匹配才生效），返回受影响行数
	ConfirmOwned(ctx context.Context, id, mentorID string, decision bool) (int64, error)
}
