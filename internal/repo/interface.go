package repo

import (
	"context"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
)

// TaskRepository persists tasks. Every mutation is a single atomic statement.
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, id string) (model.Task, error)
	List(ctx context.Context, filter model.TaskFilter) ([]model.Task, int, error)
	// Update applies patch and returns the updated task along with the status
	// it had right before the update.
	Update(ctx context.Context, id string, patch model.TaskPatch) (model.Task, model.Status, error)
	// UpdateStatusForAssignee changes the status only when the task is assigned
	// to assigneeID. A task assigned elsewhere is reported as ErrorNotFound.
	UpdateStatusForAssignee(ctx context.Context, id, assigneeID string, status model.Status) (model.Task, model.Status, error)
	SetApproval(ctx context.Context, id string, approved bool) (model.Task, error)
	SetPayment(ctx context.Context, id string, payment model.Payment) (model.Task, error)
	Delete(ctx context.Context, id string) error
}

type ProjectRepository interface {
	Get(ctx context.Context, id string) (model.Project, error)
}

type UserRepository interface {
	Get(ctx context.Context, id string) (model.User, error)
	// FindByRole returns one user holding role, or ErrorNotFound.
	FindByRole(ctx context.Context, role model.Role) (model.User, error)
}

// NotificationRepository stores per-recipient notifications. Every read and
// delete is scoped by recipient.
type NotificationRepository interface {
	Create(ctx context.Context, n model.Notification) (model.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]model.Notification, error)
	CountByRecipient(ctx context.Context, recipientID string) (int, error)
	DeleteForRecipient(ctx context.Context, id, recipientID string) error
	DeleteAllForRecipient(ctx context.Context, recipientID string) (int64, error)
}
