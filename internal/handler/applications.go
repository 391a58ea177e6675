package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/service"
)

// Apply 未登录或管理员调用时由业务层返回对应的错误
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.badRequest(w, r, "职位ID无效")
		return
	}

	app, err := h.applications.Apply(r.Context(), currentSession(r), jobID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "申请成功", app)
}

func (h *Handler) GetAllApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.applications.ListApplicationsForAdmin(r.Context(), currentSession(r))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取申请列表成功", apps)
}

func (h *Handler) GetMyApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.applications.ListMyApplications(r.Context(), currentSession(r))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取我的申请成功", apps)
}

func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	applicationID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.badRequest(w, r, "申请ID无效")
		return
	}

	var req service.SetStatusInput
	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, "请求格式错误")
		return
	}

	app, err := h.applications.SetStatus(r.Context(), currentSession(r), applicationID, req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新申请状态成功", app)
}
