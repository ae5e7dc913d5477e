package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

var (
	// ErrDuplicateUser 违反了 users 表上某个未识别的唯一约束
	ErrDuplicateUser = errors.New("duplicate user")
	// ErrDuplicateUsername 用户名唯一索引冲突
	ErrDuplicateUsername = errors.New("duplicate username")
	// ErrDuplicateEmail 邮箱唯一索引冲突
	ErrDuplicateEmail = errors.New("duplicate email")
	// ErrDuplicateGitHubID GitHub ID 唯一索引冲突
	ErrDuplicateGitHubID = errors.New("duplicate github id")
)

// translateError 把 MySQL 唯一索引冲突映射为具体的哨兵错误，其余错误原样返回
func translateError(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != mysqlDuplicateEntry {
		return err
	}

	// Duplicate entry 'alice' for key 'users.idx_users_username'
	switch {
	case strings.Contains(me.Message, "idx_users_username"):
		return fmt.Errorf("%w: %s", ErrDuplicateUsername, me.Message)
	case strings.Contains(me.Message, "idx_users_email"):
		return fmt.Errorf("%w: %s", ErrDuplicateEmail, me.Message)
	case strings.Contains(me.Message, "idx_users_github_id"):
		return fmt.Errorf("%w: %s", ErrDuplicateGitHubID, me.Message)
	default:
		return fmt.Errorf("%w: %s", ErrDuplicateUser, me.Message)
	}
}
