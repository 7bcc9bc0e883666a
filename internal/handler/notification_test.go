package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
	"github.com/BuzzLyutic/taskflow-api/internal/repo"
)

func TestNotificationHandler_List(t *testing.T) {
	s := newServer()
	s.notifications.On("ListByRecipient", mock.Anything, assigneeID, 20, 0).
		Return([]model.Notification{{ID: notifyRecID, RecipientID: assigneeID, Title: "New Task Assigned"}}, nil)
	s.notifications.On("CountByRecipient", mock.Anything, assigneeID).Return(1, nil)

	w := s.do(&associate, http.MethodGet, "/notification", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var list model.NotificationList
	decode(t, w, &list)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, model.Pagination{Page: 1, Limit: 20, Pages: 1}, list.Pagination)
	assert.Len(t, list.Data, 1)
}

func TestNotificationHandler_Count(t *testing.T) {
	s := newServer()
	s.notifications.On("CountByRecipient", mock.Anything, clientID).Return(3, nil)

	w := s.do(&client, http.MethodGet, "/notification/count", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]int
	decode(t, w, &body)
	assert.Equal(t, 3, body["count"])
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	tests := []struct {
		name     string
		actor    model.Actor
		id       string
		setup    func(*server)
		wantCode int
	}{
		{
			name:  "own notification",
			actor: associate,
			id:    notifyRecID,
			setup: func(s *server) {
				s.notifications.On("DeleteForRecipient", mock.Anything, notifyRecID, assigneeID).Return(nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:  "another user's notification",
			actor: client,
			id:    notifyRecID,
			setup: func(s *server) {
				s.notifications.On("DeleteForRecipient", mock.Anything, notifyRecID, clientID).Return(repo.ErrorNotFound)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "malformed id",
			actor:    client,
			id:       "latest",
			setup:    func(*server) {},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer()
			tt.setup(s)

			w := s.do(&tt.actor, http.MethodDelete, "/notification/"+tt.id, nil)

			assert.Equal(t, tt.wantCode, w.Code)
			s.notifications.AssertExpectations(t)
		})
	}
}

func TestNotificationHandler_MarkAllRead(t *testing.T) {
	s := newServer()
	s.notifications.On("DeleteAllForRecipient", mock.Anything, adminID).Return(int64(5), nil)

	w := s.do(&admin, http.MethodDelete, "/notification", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]int64
	decode(t, w, &body)
	assert.Equal(t, int64(5), body["deletedCount"])
}
