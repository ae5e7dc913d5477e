package account

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"ProgressiveBBS/core/auth"
	"ProgressiveBBS/model"
	"ProgressiveBBS/repository"

	"golang.org/x/crypto/bcrypt"
)

// memUserRepo 内存用户仓库，写入时按唯一索引的语义拒绝重复值
type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*model.User
	calls  int

	// failOn 指定方法返回的系统错误
	failOn map[string]error
	// beforeCreate 在插入前调用，用于模拟并发窗口
	beforeCreate func()
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{rows: map[int64]*model.User{}, failOn: map[string]error{}}
}

func (r *memUserRepo) fail(method string) error {
	r.calls++
	return r.failOn[method]
}

func clone(u *model.User) *model.User {
	out := *u
	return &out
}

func (r *memUserRepo) seed(u *model.User) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.rows[u.ID] = clone(u)
	return u
}

func (r *memUserRepo) get(id int64) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.rows[id]; ok {
		return clone(u)
	}
	return nil
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// violates 检查 u 写入后是否违反唯一约束
func (r *memUserRepo) violates(u *model.User) error {
	for id, other := range r.rows {
		if id == u.ID {
			continue
		}
		if other.Username == u.Username {
			return fmt.Errorf("%w: %s", repository.ErrDuplicateUsername, u.Username)
		}
		if u.Email != nil && other.Email != nil && *other.Email == *u.Email {
			return fmt.Errorf("%w: %s", repository.ErrDuplicateEmail, *u.Email)
		}
		if u.GitHubID != nil && other.GitHubID != nil && *other.GitHubID == *u.GitHubID {
			return fmt.Errorf("%w: %s", repository.ErrDuplicateGitHubID, *u.GitHubID)
		}
	}
	return nil
}

func (r *memUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("CreateUser"); err != nil {
		return err
	}
	if err := r.violates(user); err != nil {
		return err
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.rows[user.ID] = clone(user)
	return nil
}

func (r *memUserRepo) find(match func(*model.User) bool) *model.User {
	for id := int64(1); id <= r.nextID; id++ {
		if u, ok := r.rows[id]; ok && match(u) {
			return clone(u)
		}
	}
	return nil
}

func (r *memUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("GetUserByID"); err != nil {
		return nil, err
	}
	return r.find(func(u *model.User) bool { return u.ID == id }), nil
}

func (r *memUserRepo) GetUserByAccount(ctx context.Context, account string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("GetUserByAccount"); err != nil {
		return nil, err
	}
	return r.find(func(u *model.User) bool { return u.Username == account || u.EmailValue() == account }), nil
}

func (r *memUserRepo) GetUserByGitHubID(ctx context.Context, githubID string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("GetUserByGitHubID"); err != nil {
		return nil, err
	}
	return r.find(func(u *model.User) bool { return u.GitHubID != nil && *u.GitHubID == githubID }), nil
}

func (r *memUserRepo) UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("UsernameExists"); err != nil {
		return false, err
	}
	return r.find(func(u *model.User) bool { return u.Username == username && u.ID != excludeID }) != nil, nil
}

func (r *memUserRepo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("EmailExists"); err != nil {
		return false, err
	}
	return r.find(func(u *model.User) bool { return u.EmailValue() == email && u.ID != excludeID }) != nil, nil
}

func (r *memUserRepo) update(id int64, apply func(*model.User)) error {
	u, ok := r.rows[id]
	if !ok {
		return nil
	}
	next := clone(u)
	apply(next)
	next.UpdatedAt = time.Now()
	if err := r.violates(next); err != nil {
		return err
	}
	r.rows[id] = next
	return nil
}

func (r *memUserRepo) UpdateProfile(ctx context.Context, id int64, p repository.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("UpdateProfile"); err != nil {
		return err
	}
	return r.update(id, func(u *model.User) {
		u.Username = p.Username
		u.Website = p.Website
		u.Introduction = p.Introduction
		u.Location = p.Location
		u.GitHub = p.GitHub
		u.Sex = p.Sex
	})
}

func (r *memUserRepo) UpdateLinkedAccount(ctx context.Context, id int64, l repository.LinkedUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("UpdateLinkedAccount"); err != nil {
		return err
	}
	return r.update(id, func(u *model.User) {
		u.Username = l.Username
		if l.Email != nil {
			u.Email = l.Email
		}
		u.Avatar = l.Avatar
		u.Website = l.Website
		u.Introduction = l.Introduction
		u.Location = l.Location
		u.GitHub = l.GitHub
	})
}

func (r *memUserRepo) UpdatePasswordByUsername(ctx context.Context, username, passwordHash string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("UpdatePasswordByUsername"); err != nil {
		return 0, err
	}
	u := r.find(func(u *model.User) bool { return u.Username == username })
	if u == nil {
		return 0, nil
	}
	_ = r.update(u.ID, func(u *model.User) { u.PasswordHash = &passwordHash })
	return 1, nil
}

type memCodes struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func (c *memCodes) GetCode(ctx context.Context, identifier string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return "", false, c.err
	}
	code, ok := c.codes[identifier]
	return code, ok, nil
}

type memTopics struct {
	authored  map[int64][]model.TopicSummary
	collected map[int64][]model.TopicSummary
	err       error
}

func (m *memTopics) GetTopicsByAuthor(ctx context.Context, userID int64) ([]model.TopicSummary, error) {
	return m.authored[userID], m.err
}

func (m *memTopics) GetCollectedTopics(ctx context.Context, userID int64) ([]model.TopicSummary, error) {
	return m.collected[userID], m.err
}

type failingTokens struct{}

func (failingTokens) IssueToken(int64) (string, error) { return "", errors.New("signer down") }

type fixture struct {
	svc    *Service
	users  *memUserRepo
	codes  *memCodes
	topics *memTopics
	tokens *auth.TokenIssuer
	hasher *auth.Hasher
}

const callbackURL = "http://localhost:3000/login/callback"

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:  newMemUserRepo(),
		codes:  &memCodes{codes: map[string]string{}},
		topics: &memTopics{authored: map[int64][]model.TopicSummary{}, collected: map[int64][]model.TopicSummary{}},
		tokens: auth.NewTokenIssuer("test-secret", time.Hour),
		hasher: auth.NewHasher(bcrypt.MinCost),
	}
	f.svc = NewService(f.users, f.topics, f.codes, f.hasher, f.tokens, Options{GitHubCallbackURL: callbackURL})
	return f
}

// localUser 直接写入一个有密码的账号
func (f *fixture) localUser(t *testing.T, username, email, password string) *model.User {
	t.Helper()
	hash, err := f.hasher.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return f.users.seed(&model.User{Username: username, Email: model.StringPtr(email), PasswordHash: &hash})
}
