package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent = "STUDENT"
	RoleMentor  = "MENTOR"
	RoleAdmin   = "ADMIN"
)

type User struct {
	ID           string         `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name         string         `gorm:"size:64;not null" json:"name"`
	PasswordHash string         `gorm:"size:100;not null" json:"-"`
	Role         string         `gorm:"size:16;not null;default:STUDENT" json:"role"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	SoftDelete(ctx context.Context, id string) (int64, error)
}
