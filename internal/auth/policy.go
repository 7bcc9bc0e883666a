package auth

import (
	"net/http"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
	"github.com/BuzzLyutic/taskflow-api/pkg/respond"
)

type Operation string

const (
	OpTaskCreate            Operation = "task.create"
	OpTaskGet               Operation = "task.get"
	OpTaskUpdate            Operation = "task.update"
	OpTaskDelete            Operation = "task.delete"
	OpTaskListProject       Operation = "task.listProject"
	OpTaskListAssigned      Operation = "task.listAssigned"
	OpTaskUpdateStatus      Operation = "task.updateStatus"
	OpTaskCompletedPayments Operation = "task.completedPayments"
	OpTaskApprove           Operation = "task.approve"
	OpTaskPayment           Operation = "task.payment"
	OpNotificationRead      Operation = "notification.read"
	OpNotificationDelete    Operation = "notification.delete"
	OpRealtimeConnect       Operation = "realtime.connect"
)

var (
	managers   = []model.Role{model.RoleAdmin, model.RoleSubAdmin}
	associates = []model.Role{model.RoleAssociate}
	everyone   = []model.Role{model.RoleAdmin, model.RoleSubAdmin, model.RoleAssociate, model.RoleClient}
)

// table is the complete {operation, role} allow list. Anything absent is denied.
var table = map[Operation][]model.Role{
	OpTaskCreate:            managers,
	OpTaskGet:               everyone,
	OpTaskUpdate:            managers,
	OpTaskDelete:            managers,
	OpTaskListProject:       {model.RoleAdmin, model.RoleSubAdmin, model.RoleClient},
	OpTaskListAssigned:      associates,
	OpTaskUpdateStatus:      associates,
	OpTaskCompletedPayments: associates,
	OpTaskApprove:           managers,
	OpTaskPayment:           managers,
	OpNotificationRead:      everyone,
	OpNotificationDelete:    everyone,
	OpRealtimeConnect:       everyone,
}

func Allowed(role model.Role, op Operation) bool {
	for _, r := range table[op] {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize rejects requests whose actor may not perform op. It must run after
// Middleware.
func Authorize(op Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFrom(r.Context())
			if !ok {
				respond.Error(w, r, http.StatusUnauthorized, "unauthenticated")
				return
			}
			if !Allowed(actor.Role, op) {
				respond.Error(w, r, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
