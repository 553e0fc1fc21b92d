package user

import (
	"context"
	"time"

	"celebnetwork/internal/core/celebrity"
	"celebnetwork/internal/core/fan"
	"celebnetwork/internal/core/user"
	celebrityPort "celebnetwork/internal/ports/celebrity"
	fanPort "celebnetwork/internal/ports/fan"
)

// UserRepository پورت برای ذخیره‌سازی و بازیابی کاربران
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	// CreateFan و CreateCelebrity کاربر و پروفایل نقش را در یک تراکنش می‌سازند
	CreateFan(ctx context.Context, u *user.User, f *fan.Fan) error
	CreateCelebrity(ctx context.Context, u *user.User, c *celebrity.Celebrity) error
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	// Update فقط ستون‌های نام‌برده را از changes بازنویسی می‌کند
	Update(ctx context.Context, id string, changes *user.User, columns []string) (*user.User, error)
	TouchLogin(ctx context.Context, id string, at time.Time) error
}

// DTOها برای UseCase
type UserDTO struct {
	ID          string           `json:"id"`
	Email       string           `json:"email"`
	Role        string           `json:"role"`
	FirstName   string           `json:"firstName"`
	LastName    string           `json:"lastName"`
	Phone       string           `json:"phone,omitempty"`
	Bio         string           `json:"bio,omitempty"`
	Avatar      string           `json:"avatar,omitempty"`
	SocialLinks user.SocialLinks `json:"socialLinks"`
	IsActive    bool             `json:"isActive"`
	LastLoginAt *time.Time       `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// RegisterInput بدنه‌ی درخواست ثبت‌نام
type RegisterInput struct {
	Email       string           `json:"email" validate:"required,email,max=191"`
	Password    string           `json:"password" validate:"required,min=8,max=72,password"`
	Role        string           `json:"role" validate:"required,oneof=fan celebrity"`
	FirstName   string           `json:"firstName" validate:"required,max=64"`
	LastName    string           `json:"lastName" validate:"required,max=64"`
	Phone       string           `json:"phone" validate:"omitempty,max=32"`
	Bio         string           `json:"bio" validate:"omitempty,max=2000"`
	Avatar      string           `json:"avatar" validate:"omitempty,url,max=512"`
	SocialLinks user.SocialLinks `json:"socialLinks"`

	// فیلدهای سلبریتی
	StageName  string   `json:"stageName" validate:"required_if=Role celebrity,max=128"`
	Industries []string `json:"industries" validate:"omitempty,max=20,dive,required,max=64"`

	// فیلدهای فن
	Interests   []string `json:"interests" validate:"omitempty,max=50,dive,required,max=64"`
	DateOfBirth string   `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Location    string   `json:"location" validate:"omitempty,max=128"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserInput فیلدهای nil تغییر نمی‌کنند
type UpdateUserInput struct {
	FirstName   *string           `json:"firstName" validate:"omitempty,min=1,max=64"`
	LastName    *string           `json:"lastName" validate:"omitempty,min=1,max=64"`
	Phone       *string           `json:"phone" validate:"omitempty,max=32"`
	Bio         *string           `json:"bio" validate:"omitempty,max=2000"`
	Avatar      *string           `json:"avatar" validate:"omitempty,max=512"`
	SocialLinks *user.SocialLinks `json:"socialLinks"`
}

type AuthResponse struct {
	User        *UserDTO `json:"user"`
	AccessToken string   `json:"accessToken"`
	ExpiresAt   int64    `json:"expiresAt"`
}

// ProfileDTO کاربر به همراه پروفایل نقش او
type ProfileDTO struct {
	User      *UserDTO                    `json:"user"`
	Celebrity *celebrityPort.CelebrityDTO `json:"celebrity,omitempty"`
	Fan       *fanPort.FanDTO             `json:"fan,omitempty"`
}

// ToUserDTO نسخه‌ی بدون رمز عبور کاربر
func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:          u.ID.String(),
		Email:       u.Email,
		Role:        string(u.Role),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		Bio:         u.Bio,
		Avatar:      u.Avatar,
		SocialLinks: u.SocialLinks,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
