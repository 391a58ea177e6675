package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/service"
)

// AuthClaims 中的 ID 是会话 ID，令牌本身不携带权限信息
type AuthClaims struct {
	jwt.RegisteredClaims
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, "请求格式错误")
		return
	}

	user, err := h.identity.Register(r.Context(), req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "注册成功", user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginInput
	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, "请求格式错误")
		return
	}

	sess, err := h.identity.Login(r.Context(), req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	ss, err := h.signToken(sess)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 通过 http-only 的 cookie 返回给客户端
	cookie := &http.Cookie{
		Name:     h.config.Session.CookieName,
		Value:    ss,
		Expires:  sess.ExpiresAt,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)

	h.successResponse(w, r, "登录成功", sess)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := currentSession(r); sess != nil {
		if err := h.identity.Logout(r.Context(), sess.ID); err != nil {
			h.serviceError(w, r, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:    h.config.Session.CookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})

	h.successResponse(w, r, "登出成功", nil)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "获取登录信息成功", currentSession(r))
}

func (h *Handler) signToken(sess *domain.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   strconv.FormatInt(sess.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
			NotBefore: jwt.NewNumericDate(sess.CreatedAt),
		},
	})
	return token.SignedString([]byte(h.config.JWT.Secret))
}
