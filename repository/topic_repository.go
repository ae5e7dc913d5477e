package repository

import (
	"context"
	"fmt"

	"ProgressiveBBS/model"

	"gorm.io/gorm"
)

// TopicRepository 个人主页所需的帖子查询，帖子与收藏表由论坛的其他模块维护
type TopicRepository interface {
	GetTopicsByAuthor(ctx context.Context, userID int64) ([]model.TopicSummary, error)
	GetCollectedTopics(ctx context.Context, userID int64) ([]model.TopicSummary, error)
}

type gormTopicRepository struct {
	db *gorm.DB
}

// NewGormTopicRepository 创建 GORM 帖子仓库
func NewGormTopicRepository(db *gorm.DB) TopicRepository {
	return &gormTopicRepository{db: db}
}

const authoredTopicsSQL = `SELECT topics.id, topics.title, topics.tab, users.avatar,
	users.username AS author, users.id AS uid, topics.created_at
	FROM topics LEFT JOIN users ON topics.author_id = users.id
	WHERE users.id = ?
	ORDER BY topics.created_at ASC`

const collectedTopicsSQL = `SELECT topics.id, topics.title, topics.tab, topics.body, users.avatar,
	users.username AS author, users.id AS uid, topics.created_at
	FROM collects LEFT JOIN topics ON topics.id = collects.tid
	LEFT JOIN users ON users.id = topics.author_id
	WHERE collects.uid = ?
	ORDER BY collects.id ASC`

// GetTopicsByAuthor 用户发表的帖子，按创建时间升序
func (r *gormTopicRepository) GetTopicsByAuthor(ctx context.Context, userID int64) ([]model.TopicSummary, error) {
	topics := []model.TopicSummary{}
	if err := r.db.WithContext(ctx).Raw(authoredTopicsSQL, userID).Scan(&topics).Error; err != nil {
		return nil, fmt.Errorf("failed to query topics of user %d: %w", userID, err)
	}
	return topics, nil
}

// GetCollectedTopics 用户收藏的帖子
func (r *gormTopicRepository) GetCollectedTopics(ctx context.Context, userID int64) ([]model.TopicSummary, error) {
	topics := []model.TopicSummary{}
	if err := r.db.WithContext(ctx).Raw(collectedTopicsSQL, userID).Scan(&topics).Error; err != nil {
		return nil, fmt.Errorf("failed to query collected topics of user %d: %w", userID, err)
	}
	return topics, nil
}
