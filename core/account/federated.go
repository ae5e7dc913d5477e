package account

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"ProgressiveBBS/model"
	"ProgressiveBBS/repository"
)

// ExternalIdentity GitHub 认证后得到的身份与资料
type ExternalIdentity struct {
	ProviderID string
	Username   string
	Email      string
	Avatar     string
	Website    string
	Bio        string
	Location   string
}

// Redirect 登录成功后的跳转目标
type Redirect struct {
	URL   string
	Token string
}

var errMissingProviderID = errors.New("external identity has no provider id")

// ReconcileGitHub 合并或创建 GitHub 账号并签发令牌。
// 冲突时返回 Rejection，调用方应回 JSON 错误而不是跳转。
func (s *Service) ReconcileGitHub(ctx context.Context, id ExternalIdentity) (*Redirect, error) {
	if id.ProviderID == "" {
		return nil, errMissingProviderID
	}

	user, err := s.users.GetUserByGitHubID(ctx, id.ProviderID)
	if err != nil {
		return nil, err
	}

	var userID int64
	if user != nil {
		userID, err = s.refreshLinked(ctx, user, id)
	} else {
		userID, err = s.createFederated(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueToken(userID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return s.redirectWithToken(token)
}

// refreshLinked 已绑定账号：只在用户名/邮箱变化时检查冲突，并排除自身
func (s *Service) refreshLinked(ctx context.Context, user *model.User, id ExternalIdentity) (int64, error) {
	if id.Username != user.Username {
		if err := s.unique.requireUsernameFree(ctx, id.Username, user.ID); err != nil {
			return 0, err
		}
	}

	// GitHub 未公开邮箱时保留原邮箱
	email := model.StringPtr(id.Email)
	if email != nil && *email != user.EmailValue() {
		if err := s.unique.requireEmailFree(ctx, *email, user.ID); err != nil {
			return 0, err
		}
	}

	err := s.users.UpdateLinkedAccount(ctx, user.ID, repository.LinkedUpdate{
		Username:     id.Username,
		Email:        email,
		Avatar:       id.Avatar,
		Website:      id.Website,
		Introduction: id.Bio,
		Location:     id.Location,
		GitHub:       id.Username,
	})
	if err != nil {
		return 0, conflict("update linked user", err)
	}
	return user.ID, nil
}

// createFederated 首次登录：不能占用已存在账号的用户名或邮箱
func (s *Service) createFederated(ctx context.Context, id ExternalIdentity) (int64, error) {
	if err := s.unique.requireUsernameFree(ctx, id.Username, 0); err != nil {
		return 0, err
	}
	email := model.StringPtr(id.Email)
	if email != nil {
		if err := s.unique.requireEmailFree(ctx, *email, 0); err != nil {
			return 0, err
		}
	}

	providerID := id.ProviderID
	err := s.users.CreateUser(ctx, &model.User{
		GitHubID:     &providerID,
		Username:     id.Username,
		Email:        email,
		Avatar:       id.Avatar,
		Website:      id.Website,
		Introduction: id.Bio,
		Location:     id.Location,
		GitHub:       id.Username,
	})
	if err != nil {
		return 0, conflict("create federated user", err)
	}

	created, err := s.users.GetUserByGitHubID(ctx, providerID)
	if err != nil {
		return 0, err
	}
	if created == nil {
		return 0, fmt.Errorf("user with github id %s missing after insert", providerID)
	}
	return created.ID, nil
}

func (s *Service) redirectWithToken(token string) (*Redirect, error) {
	u, err := url.Parse(s.opts.GitHubCallbackURL)
	if err != nil {
		return nil, fmt.Errorf("parse callback url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return &Redirect{URL: u.String(), Token: token}, nil
}
