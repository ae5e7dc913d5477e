package account

import (
	"context"

	"ProgressiveBBS/model"
	"ProgressiveBBS/repository"
)

// ProfileInput 个人资料修改表单，邮箱不可在此修改
type ProfileInput struct {
	Username     string `json:"username"`
	Website      string `json:"website"`
	Introduction string `json:"introduction"`
	Location     string `json:"location"`
	GitHub       string `json:"github"`
	Sex          string `json:"sex"`
}

// EditProfile 修改当前登录用户的资料
func (s *Service) EditProfile(ctx context.Context, userID int64, in ProfileInput) error {
	if err := ValidateUsername(in.Username); err != nil {
		return err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if in.Username != user.Username {
		if err := s.unique.requireUsernameFree(ctx, in.Username, user.ID); err != nil {
			return err
		}
	}

	err = s.users.UpdateProfile(ctx, user.ID, repository.ProfileUpdate{
		Username:     in.Username,
		Website:      in.Website,
		Introduction: in.Introduction,
		Location:     in.Location,
		GitHub:       in.GitHub,
		Sex:          in.Sex,
	})
	if err != nil {
		return conflict("update profile", err)
	}
	return nil
}

// GetSelf 当前登录用户的完整资料，不含密码哈希
func (s *Service) GetSelf(ctx context.Context, userID int64) (*model.User, error) {
	return s.GetByID(ctx, userID)
}

// GetByID 按ID读取用户资料，不含密码哈希
func (s *Service) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user.Public(), nil
}

// GetPublicProfile 用户主页：资料、发表的帖子（按时间升序）和收藏的帖子
func (s *Service) GetPublicProfile(ctx context.Context, id int64) (*model.PublicProfile, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	topics, err := s.topics.GetTopicsByAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	collected, err := s.topics.GetCollectedTopics(ctx, id)
	if err != nil {
		return nil, err
	}

	if topics == nil {
		topics = []model.TopicSummary{}
	}
	if collected == nil {
		collected = []model.TopicSummary{}
	}
	return &model.PublicProfile{User: user, Topics: topics, CollectTopics: collected}, nil
}
