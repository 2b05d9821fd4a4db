package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timeofday"
)

type BreakType string

const (
	BreakTypeLunch    BreakType = "lunch"
	BreakTypeTea      BreakType = "tea"
	BreakTypeMeeting  BreakType = "meeting"
	BreakTypePrayer   BreakType = "prayer"
	BreakTypePersonal BreakType = "personal"
	BreakTypeSmoking  BreakType = "smoking"
	BreakTypeOther    BreakType = "other"
)

// OverdueThreshold is how long a break of this type may run before it is flagged.
func (t BreakType) OverdueThreshold() int {
	if t == BreakTypeLunch {
		return 90
	}
	return 30
}

type BreakStatus string

const (
	BreakStatusOngoing   BreakStatus = "ongoing"
	BreakStatusOverdue   BreakStatus = "overdue"
	BreakStatusCompleted BreakStatus = "completed"
)

// Break is one interval during which an employee stepped away. Times are HH:MM:SS.
type Break struct {
	ID              string
	AttendanceID    string
	EmployeeID      string
	CompanyID       string
	BreakType       BreakType
	StartTime       string
	EndTime         *string
	DurationMinutes *int
	Notes           *string
	Location        *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (b *Break) Start(breakType BreakType, startTime string, notes, location *string) error {
	if _, err := timeofday.Parse(startTime); err != nil {
		return err
	}

	b.BreakType = breakType
	b.StartTime = startTime
	b.Notes = notes
	b.Location = location
	b.IsActive = true
	b.EndTime = nil
	b.DurationMinutes = nil
	return nil
}

func (b *Break) End(endTime string) error {
	minutes, err := timeofday.Between(b.StartTime, endTime)
	if err != nil {
		return err
	}

	b.EndTime = &endTime
	b.DurationMinutes = &minutes
	b.IsActive = false
	return nil
}

func (b Break) IsOngoing() bool {
	return b.EndTime == nil && b.IsActive
}

// Status reports whether the break is still running and, if so, whether it ran past its type's threshold.
func (b Break) Status(now string) BreakStatus {
	if !b.IsOngoing() {
		return BreakStatusCompleted
	}

	elapsed, err := timeofday.Between(b.StartTime, now)
	if err != nil {
		return BreakStatusOngoing
	}
	if elapsed > b.BreakType.OverdueThreshold() {
		return BreakStatusOverdue
	}
	return BreakStatusOngoing
}

func (b Break) IsLongBreak(maxMinutes int) bool {
	return b.DurationMinutes != nil && *b.DurationMinutes > maxMinutes
}

func (b Break) FormattedDuration() string {
	minutes := 0
	if b.DurationMinutes != nil {
		minutes = *b.DurationMinutes
	}

	if hours := minutes / 60; hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
