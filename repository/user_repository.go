package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ProgressiveBBS/model"

	"gorm.io/gorm"
)

// ProfileUpdate 用户自助修改的资料，邮箱不在其中
type ProfileUpdate struct {
	Username     string
	Website      string
	Introduction string
	Location     string
	GitHub       string
	Sex          string
}

// LinkedUpdate GitHub 登录时用提供方资料刷新的字段
type LinkedUpdate struct {
	Username     string
	Email        *string // nil 表示保留原邮箱
	Avatar       string
	Website      string
	Introduction string
	Location     string
	GitHub       string
}

// UserRepository defines the interface for user data operations.
// Getters return (nil, nil) when no row matches.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByAccount(ctx context.Context, account string) (*model.User, error)
	GetUserByGitHubID(ctx context.Context, githubID string) (*model.User, error)
	UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	UpdateProfile(ctx context.Context, id int64, p ProfileUpdate) error
	UpdateLinkedAccount(ctx context.Context, id int64, u LinkedUpdate) error
	UpdatePasswordByUsername(ctx context.Context, username, passwordHash string) (int64, error)
}

// gormUserRepository GORM 实现
type gormUserRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormUserRepository 创建 GORM 用户仓库
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db, now: time.Now}
}

// CreateUser 插入用户，成功后 user.ID 为自增主键
func (r *gormUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	now := r.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.Username, translateError(err))
	}
	return nil
}

// GetUserByID 根据ID获取用户
func (r *gormUserRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetUserByAccount 按用户名或邮箱查找
func (r *gormUserRepository) GetUserByAccount(ctx context.Context, account string) (*model.User, error) {
	return r.first(ctx, "username = ? OR email = ?", account, account)
}

// GetUserByGitHubID 按 GitHub ID 查找
func (r *gormUserRepository) GetUserByGitHubID(ctx context.Context, githubID string) (*model.User, error) {
	return r.first(ctx, "github_id = ?", githubID)
}

func (r *gormUserRepository) first(ctx context.Context, query string, args ...interface{}) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user (%s): %w", query, err)
	}
	return &user, nil
}

// UsernameExists 用户名是否已被 excludeID 以外的账号占用，excludeID 为 0 时不排除
func (r *gormUserRepository) UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error) {
	return r.exists(ctx, "username = ?", username, excludeID)
}

// EmailExists 邮箱是否已被 excludeID 以外的账号占用
func (r *gormUserRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.exists(ctx, "email = ?", email, excludeID)
}

func (r *gormUserRepository) exists(ctx context.Context, query string, value string, excludeID int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&model.User{}).Where(query, value)
	if excludeID > 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count users (%s): %w", query, err)
	}
	return count > 0, nil
}

// UpdateProfile 更新个人资料，不修改邮箱和密码
func (r *gormUserRepository) UpdateProfile(ctx context.Context, id int64, p ProfileUpdate) error {
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"username":     p.Username,
			"website":      p.Website,
			"introduction": p.Introduction,
			"location":     p.Location,
			"github":       p.GitHub,
			"sex":          p.Sex,
			"updated_at":   r.now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update profile of user %d: %w", id, translateError(err))
	}
	return nil
}

// UpdateLinkedAccount 用 GitHub 资料刷新已绑定账号
func (r *gormUserRepository) UpdateLinkedAccount(ctx context.Context, id int64, u LinkedUpdate) error {
	fields := map[string]interface{}{
		"username":     u.Username,
		"avatar":       u.Avatar,
		"website":      u.Website,
		"introduction": u.Introduction,
		"location":     u.Location,
		"github":       u.GitHub,
		"updated_at":   r.now(),
	}
	if u.Email != nil {
		fields["email"] = *u.Email
	}

	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("failed to update linked user %d: %w", id, translateError(err))
	}
	return nil
}

// UpdatePasswordByUsername 覆盖密码哈希，返回受影响的行数
func (r *gormUserRepository) UpdatePasswordByUsername(ctx context.Context, username, passwordHash string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Updates(map[string]interface{}{
			"password":   passwordHash,
			"updated_at": r.now(),
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update password of %s: %w", username, res.Error)
	}
	return res.RowsAffected, nil
}
