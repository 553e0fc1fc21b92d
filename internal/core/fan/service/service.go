package fanapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"celebnetwork/internal/config"
	"celebnetwork/internal/core/errs"
	fanEntity "celebnetwork/internal/core/fan"
	userEntity "celebnetwork/internal/core/user"
	fanPort "celebnetwork/internal/ports/fan"
	"celebnetwork/internal/validation"

	"go.uber.org/zap"
)

type FanService struct {
	FanRepository fanPort.FanRepository
}

func NewFanService(repo fanPort.FanRepository) *FanService {
	return &FanService{
		FanRepository: repo,
	}
}

func (s *FanService) Get(ctx context.Context, id string) (*fanPort.FanDTO, error) {
	f, err := s.FanRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return fanPort.ToFanDTO(f), nil
}

// Update فقط صاحب پروفایل یا ادمین؛ فیلدهای ارسال‌نشده دست نمی‌خورند
func (s *FanService) Update(ctx context.Context, actor userEntity.Actor, id string, in fanPort.UpdateFanInput) (*fanPort.FanDTO, error) {
	f, err := s.FanRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.UserID.String() != actor.UserID && !actor.IsAdmin() {
		config.Logger.Warn("⚠️ Fan update by non-owner", zap.String("userID", actor.UserID), zap.String("fanID", id))
		return nil, fmt.Errorf("%w: only the owner or an admin can update this profile", errs.ErrForbidden)
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	changes := &fanEntity.Fan{}
	var columns []string
	if in.Interests != nil {
		changes.Interests = *in.Interests
		columns = append(columns, "interests")
	}
	if in.FavoriteCelebrities != nil {
		changes.FavoriteCelebrities = *in.FavoriteCelebrities
		columns = append(columns, "favorite_celebrities")
	}
	if in.DateOfBirth != nil {
		// رشته‌ی خالی تاریخ تولد را پاک می‌کند
		if v := strings.TrimSpace(*in.DateOfBirth); v != "" {
			d, err := time.Parse(fanPort.DateLayout, v)
			if err != nil {
				return nil, fmt.Errorf("%w: dateOfBirth must be a date in YYYY-MM-DD format", errs.ErrValidation)
			}
			changes.DateOfBirth = &d
		}
		columns = append(columns, "date_of_birth")
	}
	if in.Location != nil {
		changes.Location = *in.Location
		columns = append(columns, "location")
	}

	if err := s.FanRepository.Update(ctx, id, changes, columns); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
