package notify

import (
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskflow-api/internal/mocks"
	"github.com/BuzzLyutic/taskflow-api/internal/model"
)

const (
	adminID     = "0a4f9c6e-1d2b-4c3a-9e8f-7a6b5c4d3e2f"
	managerID   = "1b5e8d7c-2e3f-4a5b-8c9d-0e1f2a3b4c5d"
	assigneeID  = "2c6f9e8d-3f4a-4b5c-9d0e-1f2a3b4c5d6e"
	projectID   = "3d7a0f9e-4a5b-4c6d-8e1f-2a3b4c5d6e7f"
	taskID      = "4e8b1a0f-5b6c-4d7e-9f2a-3b4c5d6e7f8a"
	otherUserID = "5f9c2b1a-6c7d-4e8f-8a3b-4c5d6e7f8a9b"
)

func sampleTask() model.Task {
	deadline := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	return model.Task{
		ID:         taskID,
		Title:      "Write onboarding guide",
		Status:     model.StatusInProgress,
		Priority:   model.PriorityHigh,
		ProjectID:  projectID,
		AssignedTo: assigneeID,
		Deadline:   &deadline,
	}
}

type fixture struct {
	users         *mocks.UserRepository
	projects      *mocks.ProjectRepository
	notifications *mocks.NotificationRepository
	realtime      *mocks.RealtimeChannel
	email         *mocks.EmailGateway
	resolver      *Resolver
	dispatcher    *Dispatcher
}

func newFixture() *fixture {
	f := &fixture{
		users:         new(mocks.UserRepository),
		projects:      new(mocks.ProjectRepository),
		notifications: new(mocks.NotificationRepository),
		realtime:      new(mocks.RealtimeChannel),
		email:         new(mocks.EmailGateway),
	}
	logger := zap.NewNop()
	f.resolver = NewResolver(f.users, f.projects, logger)
	f.dispatcher = NewDispatcher(f.notifications, f.users, f.projects, f.realtime, f.email, logger)
	return f
}
