package model

import "time"

type Status string

const (
	StatusAssigned   Status = "Assigned"
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusReview     Status = "Review"
	StatusCompleted  Status = "Completed"
)

// Valid reports whether s is one of the known task statuses. Any status may
// follow any other; there is no transition table.
func (s Status) Valid() bool {
	switch s {
	case StatusAssigned, StatusPending, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
)

func (p PaymentStatus) Valid() bool {
	return p == PaymentPending || p == PaymentCompleted
}

type Payment struct {
	Status     PaymentStatus `json:"status" validate:"required,paymentstatus"`
	ScreenShot string        `json:"screenShot,omitempty" validate:"omitempty,uri"`
}

type Task struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Status            Status     `json:"status"`
	Priority          Priority   `json:"priority"`
	ProjectID         string     `json:"projectId"`
	AssignedTo        string     `json:"assignedTo"`
	Deadline          *time.Time `json:"deadline,omitempty"`
	Budget            *float64   `json:"budget,omitempty"`
	Attachments       []string   `json:"attachments"`
	ApprovedByManager bool       `json:"approvedByManager"`
	Payment           Payment    `json:"payment"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// TaskInput is the body of a create request. Every field except attachments
// is required.
type TaskInput struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Status      Status     `json:"status" validate:"required,taskstatus"`
	Priority    Priority   `json:"priority" validate:"required,taskpriority"`
	ProjectID   string     `json:"projectId" validate:"required,uuid"`
	AssignedTo  string     `json:"assignedTo" validate:"required,uuid"`
	Deadline    *time.Time `json:"deadline" validate:"required"`
	Budget      *float64   `json:"budget" validate:"required,gte=0"`
	Attachments []string   `json:"attachments" validate:"omitempty,dive,uri"`
}

// TaskPatch is an unrestricted partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string    `json:"description,omitempty"`
	Status      *Status    `json:"status,omitempty" validate:"omitempty,taskstatus"`
	Priority    *Priority  `json:"priority,omitempty" validate:"omitempty,taskpriority"`
	ProjectID   *string    `json:"projectId,omitempty" validate:"omitempty,uuid"`
	AssignedTo  *string    `json:"assignedTo,omitempty" validate:"omitempty,uuid"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Budget      *float64   `json:"budget,omitempty" validate:"omitempty,gte=0"`
	Attachments []string   `json:"attachments,omitempty" validate:"omitempty,dive,uri"`
}

type TaskFilter struct {
	ProjectID  *string
	AssignedTo *string
	Status     *Status
	Search     string
	Approved   *bool
	Limit      int
	Offset     int
}
