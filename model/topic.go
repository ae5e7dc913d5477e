package model

import "time"

// TopicSummary 个人主页展示的帖子摘要，来自 Topic 表与 User 表的联表查询
type TopicSummary struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Tab       string    `json:"tab"`
	Body      string    `json:"body,omitempty"` // 仅收藏列表返回正文
	Avatar    string    `json:"avatar"`
	Author    string    `json:"author"`
	UID       int64     `json:"uid"`
	CreatedAt time.Time `json:"createAt"`
}

// PublicProfile 用户主页：去掉密码的用户信息、发表的帖子和收藏的帖子
type PublicProfile struct {
	User          *User          `json:"user"`
	Topics        []TopicSummary `json:"topics"`
	CollectTopics []TopicSummary `json:"collect_topics"`
}
