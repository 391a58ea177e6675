package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/config"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/service"
)

type Handler struct {
	config       *config.Config
	identity     *service.Identity
	catalog      *service.Catalog
	applications *service.Applications

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, identity *service.Identity, catalog *service.Catalog, applications *service.Applications) *Handler {
	return &Handler{
		config:       cfg,
		identity:     identity,
		catalog:      catalog,
		applications: applications,

		Mux: chi.NewRouter(),
	}
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	// 所有请求都尝试恢复会话，具体是否需要登录由业务层判断
	h.Mux.Use(h.session)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.With(h.requireSession).Get("/session", h.GetSession)
	})

	h.Mux.Route("/jobs", func(r chi.Router) {
		r.Get("/", h.GetAllJobs) // 未登录也可以浏览职位
		r.With(h.requireAdmin).Post("/", h.CreateJob)
		r.With(h.job).Get("/{id}", h.GetJob)
		// 申请时先由业务层检查登录和权限，再检查职位是否存在
		r.Post("/{id}/applications", h.Apply)
	})

	h.Mux.Group(func(r chi.Router) {
		r.Use(h.requireSession)
		r.Get("/my-applications", h.GetMyApplications)
		r.Route("/applications", func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Get("/", h.GetAllApplications)
			r.Patch("/{id}/status", h.UpdateApplicationStatus)
		})
	})
}
