package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskflow-api/internal/auth"
	"github.com/BuzzLyutic/taskflow-api/internal/service"
	"github.com/BuzzLyutic/taskflow-api/pkg/respond"
)

type NotificationHandler struct {
	service *service.NotificationService
	logger  *zap.Logger
}

func NewNotificationHandler(srv *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *NotificationHandler) Routes(r chi.Router) {
	r.With(auth.Authorize(auth.OpNotificationRead)).Get("/", h.List)
	r.With(auth.Authorize(auth.OpNotificationRead)).Get("/count", h.Count)
	r.With(auth.Authorize(auth.OpNotificationDelete)).Delete("/", h.MarkAllRead)
	r.With(auth.Authorize(auth.OpNotificationDelete)).Delete("/{id}", h.MarkRead)
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.service.List(r.Context(), actor, page, limit)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list)
}

func (h *NotificationHandler) Count(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	n, err := h.service.Count(r.Context(), actor)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]int{"count": n})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	if err := h.service.MarkRead(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]string{"message": "notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	n, err := h.service.MarkAllRead(r.Context(), actor)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]int64{"deletedCount": n})
}
