package vacation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func rng(from, to string) DateRange {
	return DateRange{From: d(from), To: d(to)}
}

func TestRangeIsValid(t *testing.T) {
	assert.True(t, RangeIsValid(d("2025-01-01"), d("2025-01-05")))
	assert.True(t, RangeIsValid(d("2025-01-01"), d("2025-01-01")))
	assert.False(t, RangeIsValid(d("2025-01-05"), d("2025-01-01")))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b DateRange
		want bool
	}{
		{"disjoint before", rng("2025-01-01", "2025-01-05"), rng("2025-01-06", "2025-01-10"), false},
		{"disjoint after", rng("2025-02-01", "2025-02-05"), rng("2025-01-06", "2025-01-10"), false},
		{"touching end", rng("2025-01-01", "2025-01-05"), rng("2025-01-05", "2025-01-10"), true},
		{"touching start", rng("2025-01-05", "2025-01-10"), rng("2025-01-01", "2025-01-05"), true},
		{"contains", rng("2025-01-01", "2025-01-31"), rng("2025-01-10", "2025-01-12"), true},
		{"contained", rng("2025-01-10", "2025-01-12"), rng("2025-01-01", "2025-01-31"), true},
		{"exact single day", rng("2025-01-03", "2025-01-03"), rng("2025-01-03", "2025-01-03"), true},
		{"partial", rng("2025-01-01", "2025-01-05"), rng("2025-01-03", "2025-01-08"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestTotalDays(t *testing.T) {
	tests := []struct {
		name            string
		from, to        string
		excludeWeekends bool
		want            int
	}{
		{"single day", "2025-01-01", "2025-01-01", false, 1},
		{"five days", "2025-01-01", "2025-01-05", false, 5},
		{"across month", "2025-01-30", "2025-02-02", false, 4},
		{"leap february", "2024-02-28", "2024-03-01", false, 3},
		{"inverted", "2025-01-05", "2025-01-01", false, 0},
		// 2025-01-04 is a Saturday
		{"weekend excluded", "2025-01-01", "2025-01-07", true, 5},
		{"only weekend", "2025-01-04", "2025-01-05", true, 0},
		{"full week included", "2025-01-06", "2025-01-12", false, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalDays(d(tt.from), d(tt.to), tt.excludeWeekends))
		})
	}
}

func TestTotalDays_IgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2025, 3, 29, 23, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, TotalDays(from, to, false))
}

func TestBalanceAvailable(t *testing.T) {
	assert.True(t, BalanceAvailable(5, 5, 10), "exactly at the cap")
	assert.False(t, BalanceAvailable(5, 6, 10), "one day past the cap")
	assert.True(t, BalanceAvailable(0, 0, 0))
	assert.False(t, BalanceAvailable(0, 1, 0))
}

func TestTakenDays(t *testing.T) {
	requests := []VacationRequest{
		{TypeID: "annual", FromDate: d("2025-01-01"), TotalDays: 5, Status: StatusPending},
		{TypeID: "annual", FromDate: d("2025-03-01"), TotalDays: 2, Status: StatusApproved},
		{TypeID: "annual", FromDate: d("2025-04-01"), TotalDays: 3, Status: StatusRejected},
		{TypeID: "annual", FromDate: d("2025-05-01"), TotalDays: 4, Status: StatusCancelled},
		{TypeID: "sick", FromDate: d("2025-06-01"), TotalDays: 1, Status: StatusApproved},
		{TypeID: "annual", FromDate: d("2024-12-20"), TotalDays: 7, Status: StatusApproved},
	}

	assert.Equal(t, 7, TakenDays(requests, "annual", 2025))
	assert.Equal(t, 7, TakenDays(requests, "annual", 2024))
	assert.Equal(t, 1, TakenDays(requests, "sick", 2025))
	assert.Equal(t, 0, TakenDays(nil, "annual", 2025))
}

func TestFindOverlap(t *testing.T) {
	requests := []VacationRequest{
		{ID: "a", FromDate: d("2025-01-01"), ToDate: d("2025-01-05")},
		{ID: "b", FromDate: d("2025-02-01"), ToDate: d("2025-02-03")},
	}

	found, ok := FindOverlap(requests, rng("2025-02-03", "2025-02-10"))
	assert.True(t, ok)
	assert.Equal(t, "b", found.ID)

	_, ok = FindOverlap(requests, rng("2025-01-06", "2025-01-31"))
	assert.False(t, ok)
}
