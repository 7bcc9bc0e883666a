package model

// Project is read-only here; ManagerID is nil when no manager is set.
type Project struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ManagerID *string `json:"manager,omitempty"`
}
