package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/service"
)

func (h *Handler) GetAllJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.catalog.ListJobs(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取职位列表成功", jobs)
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req service.CreateJobInput
	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, "请求格式错误")
		return
	}

	job, err := h.catalog.CreateJob(r.Context(), currentSession(r), req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建职位成功", job)
}

type jobResponse struct {
	*domain.Job
	HasApplied bool `json:"hasApplied"`
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtx).(*domain.Job)
	resp := jobResponse{Job: job}

	if sess := currentSession(r); sess != nil && !sess.IsAdmin {
		applied, err := h.applications.HasApplied(r.Context(), job.ID, sess.UserID)
		if err != nil {
			h.serviceError(w, r, err)
			return
		}
		resp.HasApplied = applied
	}

	h.successResponse(w, r, "获取职位信息成功", resp)
}
