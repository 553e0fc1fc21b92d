package errs

import "errors"

// خطاهای دامنه؛ لایه‌ی HTTP با errors.Is آن‌ها را به status تبدیل می‌کند
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
