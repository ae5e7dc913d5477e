package account

import (
	"context"
	"testing"

	"ProgressiveBBS/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditProfile(t *testing.T) {
	f := newFixture(t)
	u := f.localUser(t, "alice", "alice@example.com", "secret1")
	ctx := context.Background()

	err := f.svc.EditProfile(ctx, u.ID, ProfileInput{
		Username: "alice2", Website: "https://alice.dev", Introduction: "hi",
		Location: "Beijing", GitHub: "alice-gh", Sex: "female",
	})
	require.NoError(t, err)

	got := f.users.get(u.ID)
	assert.Equal(t, "alice2", got.Username)
	assert.Equal(t, "https://alice.dev", got.Website)
	assert.Equal(t, "alice-gh", got.GitHub)
	assert.Equal(t, "female", got.Sex)
	assert.Equal(t, "alice@example.com", got.EmailValue())
	assert.True(t, got.UpdatedAt.After(u.UpdatedAt) || got.UpdatedAt.Equal(u.UpdatedAt))
}

func TestEditProfile_KeepOwnUsername(t *testing.T) {
	f := newFixture(t)
	u := f.localUser(t, "alice", "alice@example.com", "secret1")

	require.NoError(t, f.svc.EditProfile(context.Background(), u.ID, ProfileInput{Username: "alice", Location: "Shanghai"}))
	assert.Equal(t, "Shanghai", f.users.get(u.ID).Location)
}

func TestEditProfile_Rejections(t *testing.T) {
	f := newFixture(t)
	u := f.localUser(t, "alice", "alice@example.com", "secret1")
	f.localUser(t, "bob", "bob@example.com", "secret1")
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.EditProfile(ctx, u.ID, ProfileInput{Username: "a"}), ErrUsernameLength)
	assert.ErrorIs(t, f.svc.EditProfile(ctx, u.ID, ProfileInput{Username: "bob"}), ErrUsernameTaken)
	assert.ErrorIs(t, f.svc.EditProfile(ctx, 404, ProfileInput{Username: "carol"}), ErrUserNotFound)

	got := f.users.get(u.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.EmailValue())
}

func TestGetSelfAndByID_StripHash(t *testing.T) {
	f := newFixture(t)
	u := f.localUser(t, "alice", "alice@example.com", "secret1")
	gh := f.users.seed(&model.User{Username: "octo", GitHubID: model.StringPtr("1")})
	ctx := context.Background()

	self, err := f.svc.GetSelf(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, self.PasswordHash)
	assert.Equal(t, "alice", self.Username)

	byID, err := f.svc.GetByID(ctx, gh.ID)
	require.NoError(t, err)
	assert.Nil(t, byID.PasswordHash)

	_, err = f.svc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetPublicProfile(t *testing.T) {
	f := newFixture(t)
	u := f.localUser(t, "alice", "alice@example.com", "secret1")
	f.topics.authored[u.ID] = []model.TopicSummary{{ID: 1, Title: "hello", Author: "alice", UID: u.ID}}
	ctx := context.Background()

	p, err := f.svc.GetPublicProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, p.User.PasswordHash)
	assert.Len(t, p.Topics, 1)
	assert.NotNil(t, p.CollectTopics)
	assert.Empty(t, p.CollectTopics)

	_, err = f.svc.GetPublicProfile(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
