package account

import (
	"errors"
	"fmt"

	"ProgressiveBBS/repository"
)

// Rejection 可预期的业务拒绝，消息直接返回给调用方，不记为错误日志。
// 其余错误一律视为系统错误。
type Rejection struct {
	Msg string
}

func (r *Rejection) Error() string {
	return r.Msg
}

func reject(msg string) *Rejection {
	return &Rejection{Msg: msg}
}

var (
	ErrNotStructured   = reject("not a structured payload")
	ErrUsernameLength  = reject("username must be 2-20 characters")
	ErrPasswordLength  = reject("password must be 6-16 characters")
	ErrEmailFormat     = reject("invalid email format")
	ErrCodeLength      = reject("code must be 6 characters")
	ErrAccountRequired = reject("account is required")

	ErrUsernameTaken   = reject("username already used")
	ErrEmailTaken      = reject("email already registered")
	ErrInvalidCode     = reject("invalid code")
	ErrAccountNotFound = reject("account not found")
	ErrUseGitHub       = reject("please log in with GitHub")
	ErrWrongPassword   = reject("incorrect password")
	ErrUserNotFound    = reject("user not found")
)

// AsRejection 判断 err 是否为业务拒绝
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// conflict 把写入时撞上唯一索引的错误转换为与预检查相同的提示
func conflict(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		return ErrUsernameTaken
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailTaken
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
