package security

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword هش کردن پسورد با bcrypt؛ cost نامعتبر به مقدار پیش‌فرض برمی‌گردد
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword مقایسه پسورد هش‌شده با ورودی کاربر
func CheckPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
