package server

import (
	"net/http"

	"ProgressiveBBS/core/account"
	"ProgressiveBBS/logger"
	"ProgressiveBBS/metrics"

	"github.com/google/uuid"
)

// 流程名，用于日志的 flow 字段和指标标签
const (
	flowRegister       = "register"
	flowLogin          = "login"
	flowForgotPassword = "forgot_password"
	flowGitHubLogin    = "github_login"
	flowUserInfo       = "user_info"
	flowEditProfile    = "edit_profile"
	flowUserInfoByID   = "user_info_by_id"
	flowPublicProfile  = "public_profile"
)

const oauthStateCookie = "oauthstate"

var errInvalidState = &account.Rejection{Msg: "invalid oauth state"}

// LoginRequest account 可以是用户名或邮箱
type LoginRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

// LogupHandler 本地注册
func (h *Handler) LogupHandler(w http.ResponseWriter, r *http.Request) {
	var req account.RegisterInput
	if err := decodePayload(r, &req); err != nil {
		h.fail(w, r, flowRegister, err)
		return
	}

	if err := h.accounts.Register(r.Context(), req); err != nil {
		h.fail(w, r, flowRegister, err)
		return
	}

	logger.Info("[Register] 注册成功", logger.String("username", req.Username))
	h.ok(w, flowRegister, nil)
}

// LoginHandler 用户名或邮箱加密码登录
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodePayload(r, &req); err != nil {
		h.fail(w, r, flowLogin, err)
		return
	}

	token, err := h.accounts.Login(r.Context(), req.Account, req.Password)
	if err != nil {
		h.fail(w, r, flowLogin, err)
		return
	}

	h.ok(w, flowLogin, map[string]interface{}{"token": token, "msg": "login succeeded"})
}

// ForgotPasswordHandler 凭验证码重置密码
func (h *Handler) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req account.ResetInput
	if err := decodePayload(r, &req); err != nil {
		h.fail(w, r, flowForgotPassword, err)
		return
	}

	if err := h.accounts.ForgotPassword(r.Context(), req); err != nil {
		h.fail(w, r, flowForgotPassword, err)
		return
	}

	logger.Info("[ForgotPassword] 密码已重置", logger.String("username", req.Username))
	h.ok(w, flowForgotPassword, map[string]interface{}{"msg": "password reset"})
}

// GitHubRedirectHandler 生成 state 写入 cookie 后跳转到 GitHub 授权页
func (h *Handler) GitHubRedirectHandler(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/auth/github",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GitHubCallbackHandler 成功时携带 token 跳转前端，失败时返回 JSON
func (h *Handler) GitHubCallbackHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || r.FormValue("state") != cookie.Value {
		h.fail(w, r, flowGitHubLogin, errInvalidState)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Path: "/api/auth/github", MaxAge: -1})

	identity, err := h.oauth.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		h.fail(w, r, flowGitHubLogin, err)
		return
	}

	redirect, err := h.accounts.ReconcileGitHub(r.Context(), identity)
	if err != nil {
		h.fail(w, r, flowGitHubLogin, err)
		return
	}

	logger.Info("[GitHubLogin] 登录成功", logger.String("github_id", identity.ProviderID))
	h.metrics.RecordOutcome(flowGitHubLogin, metrics.OutcomeSuccess)
	http.Redirect(w, r, redirect.URL, http.StatusFound)
}
