// Package github GitHub OAuth2 登录：生成授权地址，用回调的 code 换取用户资料。
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"ProgressiveBBS/core/account"

	"golang.org/x/oauth2"
	githubendpoint "golang.org/x/oauth2/github"
)

const defaultUserInfoURL = "https://api.github.com/user"

// Client GitHub OAuth2 客户端
type Client struct {
	config oauth2.Config

	// UserInfoURL 拉取用户资料的地址，测试时可替换
	UserInfoURL string
}

// NewClient redirectURL 是 GitHub 授权完成后回调本服务的地址
func NewClient(clientID, clientSecret, redirectURL string) *Client {
	return &Client{
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     githubendpoint.Endpoint,
		},
		UserInfoURL: defaultUserInfoURL,
	}
}

// SetEndpoint 替换授权与换取令牌的地址
func (c *Client) SetEndpoint(ep oauth2.Endpoint) {
	c.config.Endpoint = ep
}

// AuthCodeURL 跳转到 GitHub 授权页的地址
func (c *Client) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state)
}

// userInfo GitHub /user 接口返回的字段
type userInfo struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Blog      string `json:"blog"`
	Bio       string `json:"bio"`
	Location  string `json:"location"`
}

// Exchange 用授权码换取访问令牌并读取用户资料
func (c *Client) Exchange(ctx context.Context, code string) (account.ExternalIdentity, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return account.ExternalIdentity{}, fmt.Errorf("github code exchange: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.UserInfoURL, nil)
	if err != nil {
		return account.ExternalIdentity{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.config.Client(ctx, token).Do(req)
	if err != nil {
		return account.ExternalIdentity{}, fmt.Errorf("failed getting user info from github: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return account.ExternalIdentity{}, fmt.Errorf("github user info: unexpected status %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return account.ExternalIdentity{}, fmt.Errorf("failed to parse user info: %w", err)
	}
	if info.ID == 0 {
		return account.ExternalIdentity{}, fmt.Errorf("github user info has no id")
	}

	return account.ExternalIdentity{
		ProviderID: strconv.FormatInt(info.ID, 10),
		Username:   info.Login,
		Email:      info.Email,
		Avatar:     info.AvatarURL,
		Website:    info.Blog,
		Bio:        info.Bio,
		Location:   info.Location,
	}, nil
}
