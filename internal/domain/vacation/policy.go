package vacation

import "time"

// DateRange is a closed interval of calendar dates.
type DateRange struct {
	From time.Time
	To   time.Time
}

func RangeIsValid(from, to time.Time) bool {
	return !from.After(to)
}

// Overlaps reports whether two closed date ranges share at least one day.
func Overlaps(a, b DateRange) bool {
	return !a.From.After(b.To) && !a.To.Before(b.From)
}

// TotalDays counts the calendar days in [from, to], skipping Saturdays and Sundays when excludeWeekends is set.
func TotalDays(from, to time.Time, excludeWeekends bool) int {
	from = truncate(from)
	to = truncate(to)
	if from.After(to) {
		return 0
	}

	if !excludeWeekends {
		return int(to.Sub(from).Hours()/24) + 1
	}

	days := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

func BalanceAvailable(alreadyTaken, requested, maxDaysPerYear int) bool {
	return alreadyTaken+requested <= maxDaysPerYear
}

// TakenDays sums the days of requests of typeID that count against the balance and start in year.
func TakenDays(requests []VacationRequest, typeID string, year int) int {
	taken := 0
	for _, r := range requests {
		if r.TypeID != typeID || !r.CountsAgainstBalance() || r.FromDate.Year() != year {
			continue
		}
		taken += r.TotalDays
	}
	return taken
}

// FindOverlap returns the first request whose range overlaps candidate.
func FindOverlap(requests []VacationRequest, candidate DateRange) (VacationRequest, bool) {
	for _, r := range requests {
		if Overlaps(r.Range(), candidate) {
			return r, true
		}
	}
	return VacationRequest{}, false
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
