package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
	"github.com/BuzzLyutic/taskflow-api/internal/notify"
	"github.com/BuzzLyutic/taskflow-api/internal/repo"
)

const (
	defaultAssignedPage  = 1
	defaultAssignedLimit = 100
)

// Notifier delivers a lifecycle event. It never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, ev notify.Event) notify.Report
}

type TaskService struct {
	tasks    repo.TaskRepository
	projects repo.ProjectRepository
	users    repo.UserRepository
	notifier Notifier
	validate *validator.Validate
	logger   *zap.Logger
}

func NewTaskService(
	tasks repo.TaskRepository,
	projects repo.ProjectRepository,
	users repo.UserRepository,
	notifier Notifier,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		tasks:    tasks,
		projects: projects,
		users:    users,
		notifier: notifier,
		validate: newValidator(),
		logger:   logger,
	}
}

func (s *TaskService) Create(ctx context.Context, in model.TaskInput) (model.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := checkStruct(s.validate, in); err != nil {
		return model.Task{}, err
	}

	if _, err := s.projects.Get(ctx, in.ProjectID); err != nil {
		return model.Task{}, err
	}
	if err := s.checkAssignee(ctx, in.AssignedTo); err != nil {
		return model.Task{}, err
	}

	task, err := s.tasks.Create(ctx, model.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		ProjectID:   in.ProjectID,
		AssignedTo:  in.AssignedTo,
		Deadline:    in.Deadline,
		Budget:      in.Budget,
		Attachments: in.Attachments,
		Payment:     model.Payment{Status: model.PaymentPending},
	})
	if err != nil {
		return model.Task{}, err
	}

	s.notify(ctx, notify.Assigned(task))
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (model.Task, error) {
	if err := checkID("id", id); err != nil {
		return model.Task{}, err
	}
	return s.tasks.Get(ctx, id)
}

// ListByProject returns every task of a project matching the optional status,
// assignee and title search filters.
func (s *TaskService) ListByProject(ctx context.Context, projectID string, filter model.TaskFilter) (model.TaskList, error) {
	if err := checkID("projectId", projectID); err != nil {
		return model.TaskList{}, err
	}
	if err := checkFilter(filter); err != nil {
		return model.TaskList{}, err
	}

	filter.ProjectID = &projectID
	filter.Limit, filter.Offset = 0, 0
	tasks, total, err := s.tasks.List(ctx, filter)
	if err != nil {
		return model.TaskList{}, err
	}
	return model.TaskList{Total: total, Results: len(tasks), Data: tasks}, nil
}

// ListAssigned pages through the tasks assigned to the actor, newest first.
func (s *TaskService) ListAssigned(ctx context.Context, actor model.Actor, filter model.TaskFilter, page, limit int) (model.TaskList, error) {
	if err := checkFilter(filter); err != nil {
		return model.TaskList{}, err
	}
	if page < 1 {
		page = defaultAssignedPage
	}
	if limit < 1 {
		limit = defaultAssignedLimit
	}

	filter.ProjectID = nil
	filter.AssignedTo = &actor.ID
	filter.Limit = limit
	filter.Offset = pageOffset(page, limit)
	tasks, total, err := s.tasks.List(ctx, filter)
	if err != nil {
		return model.TaskList{}, err
	}

	p := model.NewPagination(page, limit, total)
	return model.TaskList{Total: total, Results: len(tasks), Pagination: &p, Data: tasks}, nil
}

// ListCompletedPayments returns the actor's completed tasks that a manager
// has approved.
func (s *TaskService) ListCompletedPayments(ctx context.Context, actor model.Actor) (model.TaskList, error) {
	completed := model.StatusCompleted
	approved := true
	tasks, total, err := s.tasks.List(ctx, model.TaskFilter{
		AssignedTo: &actor.ID,
		Status:     &completed,
		Approved:   &approved,
	})
	if err != nil {
		return model.TaskList{}, err
	}
	return model.TaskList{Total: total, Results: len(tasks), Data: tasks}, nil
}

// UpdateStatus changes the status of a task assigned to the actor. A task
// assigned to someone else is reported as not found.
func (s *TaskService) UpdateStatus(ctx context.Context, actor model.Actor, id string, status model.Status) (model.Task, error) {
	if err := checkID("id", id); err != nil {
		return model.Task{}, err
	}
	if !status.Valid() {
		return model.Task{}, fieldError("status", describeTag("taskstatus"))
	}

	task, prev, err := s.tasks.UpdateStatusForAssignee(ctx, id, actor.ID, status)
	if err != nil {
		return model.Task{}, err
	}

	s.notify(ctx, notify.StatusChanged(task, prev, status))
	return task, nil
}

// Update applies an unrestricted patch. Moving a task into Completed raises
// the completion event; any other change is silent.
func (s *TaskService) Update(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	if err := checkID("id", id); err != nil {
		return model.Task{}, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}
	if err := checkStruct(s.validate, patch); err != nil {
		return model.Task{}, err
	}
	if patch.ProjectID != nil {
		if _, err := s.projects.Get(ctx, *patch.ProjectID); err != nil {
			return model.Task{}, err
		}
	}
	if patch.AssignedTo != nil {
		if err := s.checkAssignee(ctx, *patch.AssignedTo); err != nil {
			return model.Task{}, err
		}
	}

	task, prev, err := s.tasks.Update(ctx, id, patch)
	if err != nil {
		return model.Task{}, err
	}

	if prev != model.StatusCompleted && task.Status == model.StatusCompleted {
		s.notify(ctx, notify.Completed(task, prev))
	}
	return task, nil
}

// SetApproval records the manager's approval. Every call notifies the
// assignee, even when the value is unchanged.
func (s *TaskService) SetApproval(ctx context.Context, id string, approved bool) (model.Task, error) {
	if err := checkID("id", id); err != nil {
		return model.Task{}, err
	}

	task, err := s.tasks.SetApproval(ctx, id, approved)
	if err != nil {
		return model.Task{}, err
	}

	s.notify(ctx, notify.ApprovalChanged(task, approved))
	return task, nil
}

// SetPayment replaces the payment details. It raises no event.
func (s *TaskService) SetPayment(ctx context.Context, id string, payment model.Payment) (model.Task, error) {
	if err := checkID("id", id); err != nil {
		return model.Task{}, err
	}
	if err := checkStruct(s.validate, payment); err != nil {
		return model.Task{}, err
	}
	return s.tasks.SetPayment(ctx, id, payment)
}

// Delete removes the task. Notifications that link to it are kept.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := checkID("id", id); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id)
}

// checkAssignee resolves the assignee and verifies its role may hold tasks.
func (s *TaskService) checkAssignee(ctx context.Context, id string) error {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return err
	}
	if !u.Role.CanHoldTasks() {
		return fieldError("assignedTo", "user cannot be assigned tasks")
	}
	return nil
}

// notify runs after the mutation has committed. The request context is
// detached so a disconnecting client does not cut delivery short.
func (s *TaskService) notify(ctx context.Context, ev notify.Event) {
	s.notifier.Notify(context.WithoutCancel(ctx), ev)
}

func checkFilter(f model.TaskFilter) error {
	if f.Status != nil && !f.Status.Valid() {
		return fieldError("status", describeTag("taskstatus"))
	}
	if f.AssignedTo != nil {
		return checkID("assignedTo", *f.AssignedTo)
	}
	return nil
}
