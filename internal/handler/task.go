package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskflow-api/internal/auth"
	"github.com/BuzzLyutic/taskflow-api/internal/model"
	"github.com/BuzzLyutic/taskflow-api/internal/repo"
	"github.com/BuzzLyutic/taskflow-api/internal/service"
	"github.com/BuzzLyutic/taskflow-api/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

// Routes mounts the task endpoints. Every route is guarded by its operation
// in the authorization table.
func (h *TaskHandler) Routes(r chi.Router) {
	r.With(auth.Authorize(auth.OpTaskCreate)).Post("/", h.Create)
	r.With(auth.Authorize(auth.OpTaskListAssigned)).Get("/assigned", h.ListAssigned)
	r.With(auth.Authorize(auth.OpTaskCompletedPayments)).Get("/completed/payments", h.ListCompletedPayments)
	r.With(auth.Authorize(auth.OpTaskListProject)).Get("/project/{projectId}", h.ListByProject)
	r.With(auth.Authorize(auth.OpTaskGet)).Get("/{id}", h.Get)
	r.With(auth.Authorize(auth.OpTaskUpdate)).Patch("/{id}", h.Update)
	r.With(auth.Authorize(auth.OpTaskUpdateStatus)).Patch("/{id}/status-update", h.UpdateStatus)
	r.With(auth.Authorize(auth.OpTaskApprove)).Patch("/{id}/status", h.SetApproval)
	r.With(auth.Authorize(auth.OpTaskPayment)).Patch("/{id}/payment", h.SetPayment)
	r.With(auth.Authorize(auth.OpTaskDelete)).Delete("/{id}", h.Delete)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req model.TaskInput
	if err := decodeBody(r, &req); err != nil {
		h.logger.Debug("failed to decode task", zap.Error(err))
		h.handleErrors(w, r, err)
		return
	}

	task, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.Header().Set("Location", "/task/"+task.ID)
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	filter := taskFilterFromQuery(r)
	if assignee := r.URL.Query().Get("assignedTo"); assignee != "" {
		filter.AssignedTo = &assignee
	}

	list, err := h.service.ListByProject(r.Context(), chi.URLParam(r, "projectId"), filter)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list)
}

func (h *TaskHandler) ListAssigned(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.service.ListAssigned(r.Context(), actor, taskFilterFromQuery(r), page, limit)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list)
}

func (h *TaskHandler) ListCompletedPayments(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	list, err := h.service.ListCompletedPayments(r.Context(), actor)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.TaskPatch
	if err := decodeBody(r, &req); err != nil {
		h.handleErrors(w, r, err)
		return
	}

	task, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

type statusRequest struct {
	Status model.Status `json:"status"`
}

func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	var req statusRequest
	if err := decodeBody(r, &req); err != nil {
		h.handleErrors(w, r, err)
		return
	}

	task, err := h.service.UpdateStatus(r.Context(), actor, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

type approvalRequest struct {
	ApprovedByManager *bool `json:"approvedByManager"`
}

func (h *TaskHandler) SetApproval(w http.ResponseWriter, r *http.Request) {
	var req approvalRequest
	if err := decodeBody(r, &req); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	if req.ApprovedByManager == nil {
		respond.ValidationError(w, r, map[string]string{"approvedByManager": "is required"})
		return
	}

	task, err := h.service.SetApproval(r.Context(), chi.URLParam(r, "id"), *req.ApprovedByManager)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) SetPayment(w http.ResponseWriter, r *http.Request) {
	var req model.Payment
	if err := decodeBody(r, &req); err != nil {
		h.handleErrors(w, r, err)
		return
	}

	task, err := h.service.SetPayment(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func taskFilterFromQuery(r *http.Request) model.TaskFilter {
	q := r.URL.Query()
	filter := model.TaskFilter{Search: q.Get("search")}
	if status := q.Get("status"); status != "" {
		s := model.Status(status)
		filter.Status = &s
	}
	return filter
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	handleErrors(w, r, h.logger, err)
}

func handleErrors(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respond.ValidationError(w, r, verr.Fields)
	case errors.Is(err, errInvalidJSON):
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, "validation error")
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, repo.ErrorConflict):
		respond.Error(w, r, http.StatusConflict, "conflict")
	default:
		logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
