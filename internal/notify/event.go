// Package notify turns task lifecycle events into notifications. It decides
// who must hear about an event and delivers it over three independent
// channels: a persisted inbox record, a real-time push and an email.
package notify

import "github.com/BuzzLyutic/taskflow-api/internal/model"

type Kind string

const (
	KindAssigned        Kind = "assigned"
	KindStatusChanged   Kind = "status_changed"
	KindCompleted       Kind = "completed"
	KindApprovalChanged Kind = "approval_changed"
)

// Event is the classified consequence of one committed task mutation. Task is
// the state after the mutation.
type Event struct {
	Kind      Kind
	Task      model.Task
	OldStatus model.Status
	NewStatus model.Status
	Approved  bool
}

func Assigned(t model.Task) Event {
	return Event{Kind: KindAssigned, Task: t, NewStatus: t.Status}
}

func StatusChanged(t model.Task, from, to model.Status) Event {
	return Event{Kind: KindStatusChanged, Task: t, OldStatus: from, NewStatus: to}
}

func Completed(t model.Task, from model.Status) Event {
	return Event{Kind: KindCompleted, Task: t, OldStatus: from, NewStatus: model.StatusCompleted}
}

func ApprovalChanged(t model.Task, approved bool) Event {
	return Event{Kind: KindApprovalChanged, Task: t, Approved: approved}
}
