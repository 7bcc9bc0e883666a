package model

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleSubAdmin  Role = "subAdmin"
	RoleAssociate Role = "associateUser"
	RoleClient    Role = "client"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSubAdmin, RoleAssociate, RoleClient:
		return true
	}
	return false
}

// CanHoldTasks reports whether users of this role may be the assignee of a task.
func (r Role) CanHoldTasks() bool {
	return r == RoleAssociate
}

type BankInfo struct {
	AccountNumber     string `json:"accountNumber,omitempty"`
	BankName          string `json:"bankName,omitempty"`
	AccountHolderName string `json:"accountHolderName,omitempty"`
}

// AssociateProfile extends users with the associateUser role.
type AssociateProfile struct {
	ExperienceYears int      `json:"experienceYears,omitempty"`
	BankInfo        BankInfo `json:"bankInfo"`
}

// SubAdminProfile extends users with the subAdmin role.
type SubAdminProfile struct {
	PermissionRoleID string `json:"roleId,omitempty"`
}

// User is the base record shared by every role. At most one of the profile
// extensions is set, selected by Role.
type User struct {
	ID        string            `json:"id"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Email     string            `json:"email"`
	Role      Role              `json:"role"`
	Associate *AssociateProfile `json:"associate,omitempty"`
	SubAdmin  *SubAdminProfile  `json:"subAdmin,omitempty"`
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role Role
}
