package postgresql

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timeofday"
	"github.com/jackc/pgx/v5/pgtype"
)

// pgTime converts an HH:MM:SS string into a Postgres time value; nil is NULL.
func pgTime(s *string) (pgtype.Time, error) {
	if s == nil {
		return pgtype.Time{}, nil
	}

	t, err := time.Parse(timeofday.Layout, *s)
	if err != nil {
		return pgtype.Time{}, fmt.Errorf("invalid time of day %q: %w", *s, err)
	}

	seconds := int64(t.Hour()*3600 + t.Minute()*60 + t.Second())
	return pgtype.Time{Microseconds: seconds * int64(time.Second/time.Microsecond), Valid: true}, nil
}

func fromPgTime(t pgtype.Time) *string {
	if !t.Valid {
		return nil
	}

	seconds := t.Microseconds / int64(time.Second/time.Microsecond)
	s := fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds/60)%60, seconds%60)
	return &s
}

// convertTimeFields rewrites the named time-of-day entries of fields into pgtype.Time.
func convertTimeFields(fields map[string]interface{}, columns ...string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}

	for _, col := range columns {
		v, ok := out[col]
		if !ok {
			continue
		}

		var s *string
		switch tv := v.(type) {
		case string:
			s = &tv
		case *string:
			s = tv
		case nil:
		default:
			return nil, fmt.Errorf("column %s: unsupported time value %T", col, v)
		}

		pt, err := pgTime(s)
		if err != nil {
			return nil, err
		}
		out[col] = pt
	}
	return out, nil
}
