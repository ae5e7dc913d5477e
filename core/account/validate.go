package account

import (
	"regexp"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+@[A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)+$`)

func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

// ValidateUsername 2-20 个字符
func ValidateUsername(username string) error {
	if !lengthBetween(username, 2, 20) {
		return ErrUsernameLength
	}
	return nil
}

// ValidatePassword 6-16 个字符
func ValidatePassword(password string) error {
	if !lengthBetween(password, 6, 16) {
		return ErrPasswordLength
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrEmailFormat
	}
	return nil
}

// ValidateCode 验证码固定 6 位
func ValidateCode(code string) error {
	if utf8.RuneCountInString(code) != 6 {
		return ErrCodeLength
	}
	return nil
}
