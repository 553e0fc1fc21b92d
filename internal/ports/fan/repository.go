package fan

import (
	"context"
	"time"

	"celebnetwork/internal/core/fan"
)

// FanRepository پورت برای ذخیره‌سازی و بازیابی فن‌ها
type FanRepository interface {
	FindByID(ctx context.Context, id string) (*fan.Fan, error)
	FindByUserID(ctx context.Context, userID string) (*fan.Fan, error)
	Update(ctx context.Context, id string, changes *fan.Fan, columns []string) error
}

// DTOها برای UseCase
type FanDTO struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	Avatar              string    `json:"avatar,omitempty"`
	Interests           []string  `json:"interests"`
	FavoriteCelebrities []string  `json:"favoriteCelebrities"`
	DateOfBirth         string    `json:"dateOfBirth,omitempty"`
	Location            string    `json:"location,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// UpdateFanInput فیلدهای nil تغییر نمی‌کنند
type UpdateFanInput struct {
	Interests           *[]string `json:"interests" validate:"omitempty,max=50,dive,required,max=64"`
	FavoriteCelebrities *[]string `json:"favoriteCelebrities" validate:"omitempty,max=200,dive,uuid"`
	DateOfBirth         *string   `json:"dateOfBirth"` // YYYY-MM-DD؛ رشته‌ی خالی پاک می‌کند
	Location            *string   `json:"location" validate:"omitempty,max=128"`
}

const DateLayout = "2006-01-02"

func ToFanDTO(f *fan.Fan) *FanDTO {
	dto := &FanDTO{
		ID:                  f.ID.String(),
		UserID:              f.UserID.String(),
		FirstName:           f.User.FirstName,
		LastName:            f.User.LastName,
		Avatar:              f.User.Avatar,
		Interests:           f.Interests,
		FavoriteCelebrities: f.FavoriteCelebrities,
		Location:            f.Location,
		CreatedAt:           f.CreatedAt,
	}
	if dto.Interests == nil {
		dto.Interests = []string{}
	}
	if dto.FavoriteCelebrities == nil {
		dto.FavoriteCelebrities = []string{}
	}
	if f.DateOfBirth != nil {
		dto.DateOfBirth = f.DateOfBirth.Format(DateLayout)
	}
	return dto
}
