package notify

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
	"github.com/BuzzLyutic/taskflow-api/internal/repo"
)

// Resolver computes who must be told about an event. Lookups are live on
// every call; nothing is cached.
type Resolver struct {
	users    repo.UserRepository
	projects repo.ProjectRepository
	logger   *zap.Logger
}

func NewResolver(users repo.UserRepository, projects repo.ProjectRepository, logger *zap.Logger) *Resolver {
	return &Resolver{
		users:    users,
		projects: projects,
		logger:   logger,
	}
}

// Resolve returns the deduplicated recipient ids for ev, in delivery order.
// A role or manager that cannot be found contributes no recipient.
func (r *Resolver) Resolve(ctx context.Context, ev Event) []string {
	var set recipientSet

	switch ev.Kind {
	case KindAssigned, KindApprovalChanged:
		set.add(ev.Task.AssignedTo)
	case KindStatusChanged:
		set.add(r.administrator(ctx, ev))
	case KindCompleted:
		set.add(r.administrator(ctx, ev))
		set.add(r.projectManager(ctx, ev))
	}
	return set.ids
}

func (r *Resolver) administrator(ctx context.Context, ev Event) string {
	admin, err := r.users.FindByRole(ctx, model.RoleAdmin)
	if err != nil {
		if !errors.Is(err, repo.ErrorNotFound) {
			r.logger.Warn("administrator lookup failed",
				zap.String("event", string(ev.Kind)),
				zap.String("task_id", ev.Task.ID),
				zap.Error(err),
			)
		}
		return ""
	}
	return admin.ID
}

func (r *Resolver) projectManager(ctx context.Context, ev Event) string {
	project, err := r.projects.Get(ctx, ev.Task.ProjectID)
	if err != nil {
		if !errors.Is(err, repo.ErrorNotFound) {
			r.logger.Warn("project manager lookup failed",
				zap.String("event", string(ev.Kind)),
				zap.String("task_id", ev.Task.ID),
				zap.String("project_id", ev.Task.ProjectID),
				zap.Error(err),
			)
		}
		return ""
	}
	if project.ManagerID == nil {
		return ""
	}
	return *project.ManagerID
}

// recipientSet keeps insertion order and drops empty and repeated ids.
type recipientSet struct {
	ids []string
}

func (s *recipientSet) add(id string) {
	if id == "" {
		return
	}
	for _, existing := range s.ids {
		if existing == id {
			return
		}
	}
	s.ids = append(s.ids, id)
}
