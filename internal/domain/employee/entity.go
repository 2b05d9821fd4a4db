package employee

import "time"

// Employee is the slice of the wider HR employee record the attendance engine reads.
type Employee struct {
	ID               string
	UserID           *string
	CompanyID        string
	EmployeeCode     string
	FullName         string
	EmploymentType   EmploymentType
	EmploymentStatus EmploymentStatus
	HireDate         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentType string

const (
	EmploymentTypePermanent  EmploymentType = "permanent"
	EmploymentTypeProbation  EmploymentType = "probation"
	EmploymentTypeContract   EmploymentType = "contract"
	EmploymentTypeInternship EmploymentType = "internship"
	EmploymentTypeFreelance  EmploymentType = "freelance"
)

// AttendanceTypes are the employment types that get a daily attendance record.
var AttendanceTypes = []EmploymentType{
	EmploymentTypePermanent,
	EmploymentTypeContract,
	EmploymentTypeProbation,
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// TracksAttendance reports whether the employee is provisioned a daily attendance record.
func (e Employee) TracksAttendance() bool {
	if e.EmploymentStatus != EmploymentStatusActive {
		return false
	}
	for _, t := range AttendanceTypes {
		if e.EmploymentType == t {
			return true
		}
	}
	return false
}
