package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/service"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("已处理请求", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // 这里如果用 slog 的话会很乱
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// session 从 cookie 中恢复会话。没有 cookie、令牌无效或会话已失效时按未登录处理
func (h *Handler) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.config.Session.CookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		claims := &AuthClaims{}
		_, err = jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := h.identity.CurrentSession(r.Context(), claims.ID)
		if err != nil {
			if errors.Is(err, service.ErrAuthentication) {
				next.ServeHTTP(w, r)
				return
			}
			h.serviceError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), SessionCtx, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentSession 返回 nil 表示未登录
func currentSession(r *http.Request) *domain.Session {
	sess, _ := r.Context().Value(SessionCtx).(*domain.Session)
	return sess
}

func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentSession(r) == nil {
			h.errorResponse(w, r, http.StatusUnauthorized, "用户未登录")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		if sess == nil {
			h.errorResponse(w, r, http.StatusUnauthorized, "用户未登录")
			return
		}
		if !sess.IsAdmin {
			h.errorResponse(w, r, http.StatusForbidden, "权限不足")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) job(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jobID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			h.badRequest(w, r, "职位ID无效")
			return
		}

		job, err := h.catalog.GetJob(r.Context(), jobID)
		if err != nil {
			h.serviceError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), JobCtx, job)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
