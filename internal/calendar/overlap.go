package calendar

// Span is anything occupying an inclusive range of dates.
type Span interface {
	Span() (start, end Date)
}

// Covers reports whether start <= day <= end.
func Covers(start, end, day Date) bool {
	return !day.Before(start) && !day.After(end)
}

// CoveringDay returns the records whose span contains day, in input
// order. Each call is a fresh linear scan; results are not cached.
func CoveringDay[T Span](records []T, day Date) []T {
	out := make([]T, 0)
	for _, r := range records {
		start, end := r.Span()
		if Covers(start, end, day) {
			out = append(out, r)
		}
	}
	return out
}

// Overlapping returns the records whose span intersects [from, to].
func Overlapping[T Span](records []T, from, to Date) []T {
	out := make([]T, 0)
	for _, r := range records {
		start, end := r.Span()
		if !start.After(to) && !end.Before(from) {
			out = append(out, r)
		}
	}
	return out
}

// DaysInclusive counts the days of [start, end]; zero when end < start.
func DaysInclusive(start, end Date) int {
	if end.Before(start) {
		return 0
	}
	return start.DaysUntil(end) + 1
}
