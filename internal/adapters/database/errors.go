package database

import (
	"errors"
	"fmt"

	"celebnetwork/internal/core/errs"

	"gorm.io/gorm"
)

// translate خطاهای gorm را به خطاهای دامنه تبدیل می‌کند
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", errs.ErrNotFound, what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s already exists", errs.ErrConflict, what)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
