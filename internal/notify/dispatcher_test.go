package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
	"github.com/BuzzLyutic/taskflow-api/internal/repo"
)

var created = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func notificationFor(recipient string) interface{} {
	return mock.MatchedBy(func(n model.Notification) bool { return n.RecipientID == recipient })
}

func TestDispatcher_AllChannelsSucceed(t *testing.T) {
	f := newFixture()
	task := sampleTask()

	f.notifications.On("Create", mock.Anything, notificationFor(assigneeID)).
		Return(model.Notification{ID: "n1", RecipientID: assigneeID, CreatedAt: created}, nil)
	f.realtime.On("Emit", assigneeID, RealtimeEvent, mock.MatchedBy(func(p Payload) bool {
		return p.Title == "New Task Assigned" && p.Link == "/tasks/"+taskID && p.CreatedAt.Equal(created)
	})).Return(nil)
	f.users.On("Get", mock.Anything, assigneeID).Return(model.User{ID: assigneeID, FirstName: "Ana", Email: "ana@example.com"}, nil)
	f.email.On("Send", mock.Anything, "ana@example.com", "New Task Assigned", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "Hello Ana") && strings.Contains(body, "Deadline: Mon Nov 02 2026")
	})).Return(nil)

	report := f.dispatcher.Dispatch(context.Background(), Assigned(task), []string{assigneeID})

	assert.Empty(t, report.Failures())
	assert.Len(t, report.Results, 3)
	assert.Equal(t, 1, report.Delivered(ChannelRecord))
	f.notifications.AssertExpectations(t)
	f.realtime.AssertExpectations(t)
	f.email.AssertExpectations(t)
}

func TestDispatcher_EmailFailureKeepsRecord(t *testing.T) {
	f := newFixture()
	task := sampleTask()

	f.notifications.On("Create", mock.Anything, notificationFor(assigneeID)).
		Return(model.Notification{ID: "n1", CreatedAt: created}, nil)
	f.realtime.On("Emit", assigneeID, RealtimeEvent, mock.Anything).Return(nil)
	f.users.On("Get", mock.Anything, assigneeID).Return(model.User{ID: assigneeID, Email: "ana@example.com"}, nil)
	f.email.On("Send", mock.Anything, "ana@example.com", mock.Anything, mock.Anything).Return(errors.New("554 relay denied"))

	report := f.dispatcher.Dispatch(context.Background(), ApprovalChanged(task, true), []string{assigneeID})

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, ChannelEmail, failures[0].Channel)
	assert.Equal(t, 1, report.Delivered(ChannelRecord))
	assert.Equal(t, 1, report.Delivered(ChannelRealtime))
	f.notifications.AssertNumberOfCalls(t, "Create", 1)
}

func TestDispatcher_RecordFailureDoesNotStopOtherChannels(t *testing.T) {
	f := newFixture()
	task := sampleTask()

	f.users.On("Get", mock.Anything, assigneeID).Return(model.User{ID: assigneeID, FirstName: "Ana", LastName: "Lima"}, nil)
	f.projects.On("Get", mock.Anything, projectID).Return(model.Project{ID: projectID, Name: "Docs"}, nil)

	f.notifications.On("Create", mock.Anything, notificationFor(adminID)).Return(model.Notification{}, errors.New("disk full"))
	f.notifications.On("Create", mock.Anything, notificationFor(managerID)).Return(model.Notification{ID: "n2", CreatedAt: created}, nil)
	f.realtime.On("Emit", mock.Anything, RealtimeEvent, mock.Anything).Return(nil)
	f.users.On("Get", mock.Anything, adminID).Return(model.User{ID: adminID, FirstName: "Root", Email: "root@example.com"}, nil)
	f.users.On("Get", mock.Anything, managerID).Return(model.User{ID: managerID, FirstName: "Mia", Email: "mia@example.com"}, nil)
	f.email.On("Send", mock.Anything, mock.Anything, "Task Completed", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "by Ana Lima.") && strings.Contains(body, "Project: Docs")
	})).Return(nil)

	report := f.dispatcher.Dispatch(context.Background(), Completed(task, model.StatusInProgress), []string{adminID, managerID})

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, Result{RecipientID: adminID, Channel: ChannelRecord, Err: failures[0].Err}, failures[0])
	f.realtime.AssertNumberOfCalls(t, "Emit", 2)
	f.email.AssertNumberOfCalls(t, "Send", 2)
}

func TestDispatcher_IsolatesPanics(t *testing.T) {
	f := newFixture()
	task := sampleTask()

	f.notifications.On("Create", mock.Anything, mock.Anything).Return(model.Notification{ID: "n1", CreatedAt: created}, nil)
	f.realtime.On("Emit", assigneeID, RealtimeEvent, mock.Anything).Run(func(mock.Arguments) {
		panic("socket closed")
	}).Return(nil)
	f.users.On("Get", mock.Anything, assigneeID).Return(model.User{ID: assigneeID, Email: "ana@example.com"}, nil)
	f.email.On("Send", mock.Anything, "ana@example.com", mock.Anything, mock.Anything).Return(nil)

	var report Report
	require.NotPanics(t, func() {
		report = f.dispatcher.Dispatch(context.Background(), Assigned(task), []string{assigneeID})
	})

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, ChannelRealtime, failures[0].Channel)
	f.email.AssertExpectations(t)
}

func TestDispatcher_RecipientWithoutAddress(t *testing.T) {
	f := newFixture()

	f.notifications.On("Create", mock.Anything, mock.Anything).Return(model.Notification{ID: "n1", CreatedAt: created}, nil)
	f.realtime.On("Emit", assigneeID, RealtimeEvent, mock.Anything).Return(nil)
	f.users.On("Get", mock.Anything, assigneeID).Return(model.User{ID: assigneeID}, nil)

	report := f.dispatcher.Dispatch(context.Background(), Assigned(sampleTask()), []string{assigneeID})

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0].Err, errNoAddress)
	f.email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_UnknownRecipient(t *testing.T) {
	f := newFixture()

	f.notifications.On("Create", mock.Anything, mock.Anything).Return(model.Notification{ID: "n1", CreatedAt: created}, nil)
	f.realtime.On("Emit", otherUserID, RealtimeEvent, mock.Anything).Return(nil)
	f.users.On("Get", mock.Anything, otherUserID).Return(model.User{}, repo.ErrorNotFound)

	report := f.dispatcher.Dispatch(context.Background(), Assigned(sampleTask()), []string{otherUserID})

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0].Err, repo.ErrorNotFound)
}

func TestDispatcher_NoRecipients(t *testing.T) {
	f := newFixture()

	report := f.dispatcher.Dispatch(context.Background(), StatusChanged(sampleTask(), model.StatusAssigned, model.StatusReview), nil)

	assert.Empty(t, report.Results)
	f.notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDispatcher_DuplicateDispatchDuplicatesRecords(t *testing.T) {
	f := newFixture()
	task := sampleTask()

	f.notifications.On("Create", mock.Anything, mock.Anything).Return(model.Notification{ID: "n", CreatedAt: created}, nil)
	f.realtime.On("Emit", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.users.On("Get", mock.Anything, assigneeID).Return(model.User{ID: assigneeID, Email: "ana@example.com"}, nil)
	f.email.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	ev := ApprovalChanged(task, true)
	f.dispatcher.Dispatch(context.Background(), ev, []string{assigneeID})
	f.dispatcher.Dispatch(context.Background(), ev, []string{assigneeID})

	f.notifications.AssertNumberOfCalls(t, "Create", 2)
}
