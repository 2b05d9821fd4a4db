package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Can approve leave/attendance
	RoleEmployee Role = "employee" // Regular employee
	RolePending  Role = "pending"  // Still in onboarding
)

// Caller is the authenticated identity a request acts as.
type Caller struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       Role
}

// IsOwner checks if caller is company owner
func (c Caller) IsOwner() bool {
	return c.Role == RoleOwner
}

// IsManager checks if caller is manager or owner
func (c Caller) IsManager() bool {
	return c.Role == RoleManager || c.Role == RoleOwner
}

// CanApprove checks if caller can decide on requests
func (c Caller) CanApprove() bool {
	return c.IsManager()
}
