// Package mocks holds testify mocks of the storage and delivery collaborators.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
)

type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, t model.Task) (model.Task, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskRepository) Get(ctx context.Context, id string) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskRepository) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Task), args.Int(1), args.Error(2)
}

func (m *TaskRepository) Update(ctx context.Context, id string, patch model.TaskPatch) (model.Task, model.Status, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.Task), args.Get(1).(model.Status), args.Error(2)
}

func (m *TaskRepository) UpdateStatusForAssignee(ctx context.Context, id, assigneeID string, status model.Status) (model.Task, model.Status, error) {
	args := m.Called(ctx, id, assigneeID, status)
	return args.Get(0).(model.Task), args.Get(1).(model.Status), args.Error(2)
}

func (m *TaskRepository) SetApproval(ctx context.Context, id string, approved bool) (model.Task, error) {
	args := m.Called(ctx, id, approved)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskRepository) SetPayment(ctx context.Context, id string, payment model.Payment) (model.Task, error) {
	args := m.Called(ctx, id, payment)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (model.Project, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Project), args.Error(1)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Get(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserRepository) FindByRole(ctx context.Context, role model.Role) (model.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(model.User), args.Error(1)
}

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, n model.Notification) (model.Notification, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(model.Notification), args.Error(1)
}

func (m *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]model.Notification, error) {
	args := m.Called(ctx, recipientID, limit, offset)
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *NotificationRepository) CountByRecipient(ctx context.Context, recipientID string) (int, error) {
	args := m.Called(ctx, recipientID)
	return args.Int(0), args.Error(1)
}

func (m *NotificationRepository) DeleteForRecipient(ctx context.Context, id, recipientID string) error {
	args := m.Called(ctx, id, recipientID)
	return args.Error(0)
}

func (m *NotificationRepository) DeleteAllForRecipient(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

type RealtimeChannel struct {
	mock.Mock
}

func (m *RealtimeChannel) Emit(recipientID, event string, payload any) error {
	args := m.Called(recipientID, event, payload)
	return args.Error(0)
}

type EmailGateway struct {
	mock.Mock
}

func (m *EmailGateway) Send(ctx context.Context, address, subject, body string) error {
	args := m.Called(ctx, address, subject, body)
	return args.Error(0)
}
