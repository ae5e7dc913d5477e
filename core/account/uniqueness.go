package account

import (
	"context"
	"fmt"

	"ProgressiveBBS/repository"
)

// UniquenessChecker 查询用户名/邮箱是否已被其他账号占用。
// 检查与随后的写入不在同一事务中，最终由表上的唯一索引裁决。
type UniquenessChecker struct {
	users repository.UserRepository
}

// NewUniquenessChecker creates a checker backed by the user repository.
func NewUniquenessChecker(users repository.UserRepository) *UniquenessChecker {
	return &UniquenessChecker{users: users}
}

// IsUsernameTaken excludeID 为当前账号ID，新建账号时传 0
func (c *UniquenessChecker) IsUsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	taken, err := c.users.UsernameExists(ctx, username, excludeID)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return taken, nil
}

func (c *UniquenessChecker) IsEmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	taken, err := c.users.EmailExists(ctx, email, excludeID)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return taken, nil
}

// requireUsernameFree 已占用时返回 ErrUsernameTaken
func (c *UniquenessChecker) requireUsernameFree(ctx context.Context, username string, excludeID int64) error {
	taken, err := c.IsUsernameTaken(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}
	return nil
}

func (c *UniquenessChecker) requireEmailFree(ctx context.Context, email string, excludeID int64) error {
	taken, err := c.IsEmailTaken(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	return nil
}
