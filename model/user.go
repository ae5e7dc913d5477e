package model

import "time"

// User 论坛账号，本地注册或通过 GitHub 首次登录创建
type User struct {
	ID           int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string  `json:"username" gorm:"size:64;not null;uniqueIndex:idx_users_username"`
	Email        *string `json:"email" gorm:"size:255;uniqueIndex:idx_users_email"`
	PasswordHash *string `json:"-" gorm:"column:password;size:255"` // NULL 表示只能通过 GitHub 登录
	GitHubID     *string `json:"githubId,omitempty" gorm:"column:github_id;size:64;uniqueIndex:idx_users_github_id"`

	Avatar       string `json:"avatar" gorm:"size:512"`
	Website      string `json:"website" gorm:"size:255"`
	Introduction string `json:"introduction" gorm:"size:512"`
	Location     string `json:"location" gorm:"size:100"`
	GitHub       string `json:"github" gorm:"column:github;size:100"` // GitHub 主页用户名
	Sex          string `json:"sex" gorm:"size:10"`

	CreatedAt time.Time `json:"createAt"`
	UpdatedAt time.Time `json:"updateAt"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// Credential 账号的登录方式，只有两种实现
type Credential interface {
	credential()
}

// LocalCredential 持有 bcrypt 哈希，可用密码登录
type LocalCredential struct {
	Hash string
}

// FederatedOnly 没有本地密码，只能走 GitHub 登录
type FederatedOnly struct{}

func (LocalCredential) credential() {}
func (FederatedOnly) credential()   {}

// Credential 根据密码字段推导登录方式
func (u *User) Credential() Credential {
	if u.PasswordHash == nil || *u.PasswordHash == "" {
		return FederatedOnly{}
	}
	return LocalCredential{Hash: *u.PasswordHash}
}

// EmailValue 返回邮箱，未绑定时为空串
func (u *User) EmailValue() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

// Public 返回去掉密码哈希的副本；哈希本来就为空时同样适用
func (u *User) Public() *User {
	out := *u
	out.PasswordHash = nil
	return &out
}

// StringPtr 空串转为 nil，用于可空的唯一列
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
