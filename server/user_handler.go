package server

import (
	"errors"
	"net/http"
	"strconv"

	"ProgressiveBBS/core/account"

	"github.com/gorilla/mux"
)

// pathID 非数字的 ID 不可能对应任何用户
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, account.ErrUserNotFound
	}
	return id, nil
}

// GetUserInfoHandler 当前登录用户的资料
func (h *Handler) GetUserInfoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		h.fail(w, r, flowUserInfo, errors.New("user id missing from request context"))
		return
	}

	user, err := h.accounts.GetSelf(r.Context(), userID)
	if err != nil {
		h.fail(w, r, flowUserInfo, err)
		return
	}
	h.ok(w, flowUserInfo, map[string]interface{}{"user": user})
}

// EditUserInfoHandler 修改当前登录用户的资料
func (h *Handler) EditUserInfoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		h.fail(w, r, flowEditProfile, errors.New("user id missing from request context"))
		return
	}

	var req account.ProfileInput
	if err := decodePayload(r, &req); err != nil {
		h.fail(w, r, flowEditProfile, err)
		return
	}

	if err := h.accounts.EditProfile(r.Context(), userID, req); err != nil {
		h.fail(w, r, flowEditProfile, err)
		return
	}
	h.ok(w, flowEditProfile, map[string]interface{}{"msg": "profile updated"})
}

// GetUserInfoByIDHandler 按ID查看用户资料
func (h *Handler) GetUserInfoByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, flowUserInfoByID, err)
		return
	}

	user, err := h.accounts.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, flowUserInfoByID, err)
		return
	}
	h.ok(w, flowUserInfoByID, map[string]interface{}{"user": user})
}

// GetUserHandler 用户主页：资料、发表的帖子和收藏
func (h *Handler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, flowPublicProfile, err)
		return
	}

	profile, err := h.accounts.GetPublicProfile(r.Context(), id)
	if err != nil {
		h.fail(w, r, flowPublicProfile, err)
		return
	}
	h.ok(w, flowPublicProfile, map[string]interface{}{
		"user":           profile.User,
		"topics":         profile.Topics,
		"collect_topics": profile.CollectTopics,
	})
}
