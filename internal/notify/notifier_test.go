package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
)

func TestNotifier_CompletedReachesAdminAndManager(t *testing.T) {
	f := newFixture()
	task := sampleTask()
	task.Status = model.StatusCompleted

	f.users.On("FindByRole", mock.Anything, model.RoleAdmin).Return(model.User{ID: adminID, Role: model.RoleAdmin}, nil)
	f.projects.On("Get", mock.Anything, projectID).Return(model.Project{ID: projectID, Name: "Docs", ManagerID: strPtr(managerID)}, nil)
	f.users.On("Get", mock.Anything, assigneeID).Return(model.User{ID: assigneeID, FirstName: "Ana"}, nil)
	f.users.On("Get", mock.Anything, adminID).Return(model.User{ID: adminID, Email: "root@example.com"}, nil)
	f.users.On("Get", mock.Anything, managerID).Return(model.User{ID: managerID, Email: "mia@example.com"}, nil)
	f.notifications.On("Create", mock.Anything, mock.Anything).Return(model.Notification{ID: "n", CreatedAt: created}, nil)
	f.realtime.On("Emit", mock.Anything, RealtimeEvent, mock.Anything).Return(nil)
	f.email.On("Send", mock.Anything, mock.Anything, "Task Completed", mock.Anything).Return(nil)

	n := NewNotifier(f.resolver, f.dispatcher, zap.NewNop())
	report := n.Notify(context.Background(), Completed(task, model.StatusInProgress))

	assert.Equal(t, KindCompleted, report.Kind)
	assert.Equal(t, taskID, report.TaskID)
	assert.Empty(t, report.Failures())
	assert.Equal(t, 2, report.Delivered(ChannelRecord))
	f.email.AssertCalled(t, "Send", mock.Anything, "root@example.com", "Task Completed", mock.Anything)
	f.email.AssertCalled(t, "Send", mock.Anything, "mia@example.com", "Task Completed", mock.Anything)
}

func TestNotifier_NobodyToTell(t *testing.T) {
	f := newFixture()
	f.users.On("FindByRole", mock.Anything, model.RoleAdmin).Return(model.User{}, assert.AnError)

	n := NewNotifier(f.resolver, f.dispatcher, zap.NewNop())
	report := n.Notify(context.Background(), StatusChanged(sampleTask(), model.StatusAssigned, model.StatusPending))

	assert.Empty(t, report.Results)
	f.notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
