// Package account 账号核心逻辑：本地注册登录、找回密码、GitHub 账号合并与个人资料。
//
// 每个操作都是一串顺序执行的外部调用，任何一步失败立即返回。
// 返回的 *Rejection 是面向用户的业务拒绝，其余 error 为系统错误，由调用方记录日志并统一提示。
package account

import (
	"context"

	"ProgressiveBBS/repository"
)

// CodeStore 验证码缓存
type CodeStore interface {
	GetCode(ctx context.Context, identifier string) (code string, ok bool, err error)
}

// PasswordHasher 密码哈希与校验
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) (bool, error)
}

// TokenIssuer 按用户ID签发登录令牌
type TokenIssuer interface {
	IssueToken(userID int64) (string, error)
}

// Options 构造时传入的配置
type Options struct {
	// GitHubCallbackURL GitHub 登录成功后携带 token 跳转的前端地址
	GitHubCallbackURL string
}

// Service 账号服务，本身不持有可变状态，可被并发调用
type Service struct {
	users  repository.UserRepository
	topics repository.TopicRepository
	codes  CodeStore
	hasher PasswordHasher
	tokens TokenIssuer
	unique *UniquenessChecker
	opts   Options
}

// NewService 创建账号服务
func NewService(
	users repository.UserRepository,
	topics repository.TopicRepository,
	codes CodeStore,
	hasher PasswordHasher,
	tokens TokenIssuer,
	opts Options,
) *Service {
	return &Service{
		users:  users,
		topics: topics,
		codes:  codes,
		hasher: hasher,
		tokens: tokens,
		unique: NewUniquenessChecker(users),
		opts:   opts,
	}
}
