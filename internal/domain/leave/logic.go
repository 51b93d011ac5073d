package leave

import "time"

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CalculateDays returns inclusive calendar day count between start and end.
func CalculateDays(start, end time.Time) (int, error) {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return 0, ErrInvalidDateRange
	}
	// Date arithmetic in UTC so DST shifts do not drop or add an hour.
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1, nil
}
