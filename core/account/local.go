package account

import (
	"context"
	"fmt"

	"ProgressiveBBS/model"
)

// RegisterInput 注册表单
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Code     string `json:"captcha"`
}

// ResetInput 找回密码表单
type ResetInput struct {
	Username string `json:"username"`
	Code     string `json:"captcha"`
	Password string `json:"password"`
}

// Register 本地注册：校验 -> 用户名 -> 邮箱 -> 验证码 -> 哈希 -> 写入
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	if err := ValidateUsername(in.Username); err != nil {
		return err
	}
	if err := ValidatePassword(in.Password); err != nil {
		return err
	}
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if err := ValidateCode(in.Code); err != nil {
		return err
	}

	if err := s.unique.requireUsernameFree(ctx, in.Username, 0); err != nil {
		return err
	}
	if err := s.unique.requireEmailFree(ctx, in.Email, 0); err != nil {
		return err
	}
	if err := s.checkCode(ctx, in.Email, in.Code); err != nil {
		return err
	}

	hash, err := s.hasher.HashPassword(in.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:     in.Username,
		Email:        model.StringPtr(in.Email),
		PasswordHash: &hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return conflict("create user", err)
	}
	return nil
}

// Login account 可以是用户名或邮箱，成功返回登录令牌
func (s *Service) Login(ctx context.Context, account, password string) (string, error) {
	if account == "" {
		return "", ErrAccountRequired
	}
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	user, err := s.users.GetUserByAccount(ctx, account)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrAccountNotFound
	}

	switch cred := user.Credential().(type) {
	case model.FederatedOnly:
		return "", ErrUseGitHub
	case model.LocalCredential:
		ok, err := s.hasher.VerifyPassword(password, cred.Hash)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrWrongPassword
		}
	default:
		return "", fmt.Errorf("unknown credential %T for user %d", cred, user.ID)
	}

	token, err := s.tokens.IssueToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// ForgotPassword 凭发到用户名下的验证码重置密码
func (s *Service) ForgotPassword(ctx context.Context, in ResetInput) error {
	if err := ValidateUsername(in.Username); err != nil {
		return err
	}
	if err := ValidateCode(in.Code); err != nil {
		return err
	}
	if err := ValidatePassword(in.Password); err != nil {
		return err
	}

	if err := s.checkCode(ctx, in.Username, in.Code); err != nil {
		return err
	}

	hash, err := s.hasher.HashPassword(in.Password)
	if err != nil {
		return err
	}

	n, err := s.users.UpdatePasswordByUsername(ctx, in.Username, hash)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// checkCode 缓存中不存在或不一致都视为验证码错误
func (s *Service) checkCode(ctx context.Context, identifier, code string) error {
	cached, ok, err := s.codes.GetCode(ctx, identifier)
	if err != nil {
		return err
	}
	if !ok || cached != code {
		return ErrInvalidCode
	}
	return nil
}
