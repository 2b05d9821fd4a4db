package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmployee_TracksAttendance(t *testing.T) {
	tests := []struct {
		name   string
		typ    EmploymentType
		status EmploymentStatus
		want   bool
	}{
		{"active permanent", EmploymentTypePermanent, EmploymentStatusActive, true},
		{"active contract", EmploymentTypeContract, EmploymentStatusActive, true},
		{"active probation", EmploymentTypeProbation, EmploymentStatusActive, true},
		{"active intern", EmploymentTypeInternship, EmploymentStatusActive, false},
		{"active freelance", EmploymentTypeFreelance, EmploymentStatusActive, false},
		{"resigned permanent", EmploymentTypePermanent, EmploymentStatusResigned, false},
		{"terminated contract", EmploymentTypeContract, EmploymentStatusTerminated, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Employee{EmploymentType: tt.typ, EmploymentStatus: tt.status}
			assert.Equal(t, tt.want, e.TracksAttendance())
		})
	}
}
