package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskflow-api/internal/auth"
	"github.com/BuzzLyutic/taskflow-api/internal/mocks"
	"github.com/BuzzLyutic/taskflow-api/internal/model"
	"github.com/BuzzLyutic/taskflow-api/internal/notify"
	"github.com/BuzzLyutic/taskflow-api/internal/service"
)

const (
	adminID     = "0a4f9c6e-1d2b-4c3a-9e8f-7a6b5c4d3e2f"
	assigneeID  = "2c6f9e8d-3f4a-4b5c-9d0e-1f2a3b4c5d6e"
	projectID   = "3d7a0f9e-4a5b-4c6d-8e1f-2a3b4c5d6e7f"
	taskID      = "4e8b1a0f-5b6c-4d7e-9f2a-3b4c5d6e7f8a"
	clientID    = "5f9c2b1a-6c7d-4e8f-8a3b-4c5d6e7f8a9b"
	notifyRecID = "6a0d3c2b-7d8e-4f9a-9b4c-5d6e7f8a9b0c"
)

var (
	admin     = model.Actor{ID: adminID, Role: model.RoleAdmin}
	associate = model.Actor{ID: assigneeID, Role: model.RoleAssociate}
	client    = model.Actor{ID: clientID, Role: model.RoleClient}
)

// recordingNotifier stands in for the notification fan-out.
type recordingNotifier struct {
	mock.Mock
}

func (n *recordingNotifier) Notify(ctx context.Context, ev notify.Event) notify.Report {
	n.Called(ev.Kind, ev.Task.ID)
	return notify.Report{Kind: ev.Kind, TaskID: ev.Task.ID}
}

type server struct {
	tasks         *mocks.TaskRepository
	projects      *mocks.ProjectRepository
	users         *mocks.UserRepository
	notifications *mocks.NotificationRepository
	notifier      *recordingNotifier
	router        http.Handler
}

func newServer() *server {
	s := &server{
		tasks:         new(mocks.TaskRepository),
		projects:      new(mocks.ProjectRepository),
		users:         new(mocks.UserRepository),
		notifications: new(mocks.NotificationRepository),
		notifier:      new(recordingNotifier),
	}
	logger := zap.NewNop()

	taskHandler := NewTaskHandler(service.NewTaskService(s.tasks, s.projects, s.users, s.notifier, logger), logger)
	notificationHandler := NewNotificationHandler(service.NewNotificationService(s.notifications, logger), logger)

	r := chi.NewRouter()
	r.Use(auth.Middleware(auth.GatewayHeaders{}))
	r.Route("/task", taskHandler.Routes)
	r.Route("/notification", notificationHandler.Routes)
	s.router = r
	return s
}

func (s *server) do(actor *model.Actor, method, target string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req.Header.Set(auth.HeaderUserID, actor.ID)
		req.Header.Set(auth.HeaderUserRole, string(actor.Role))
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v))
}
