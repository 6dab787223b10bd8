package calendar

import "time"

// Day is one cell of a month view: a date annotated with its holiday
// classification and the records covering it.
type Day[T Span] struct {
	Date    Date     `json:"date"`
	Weekday string   `json:"weekday"`
	InMonth bool     `json:"inMonth"`
	Weekend bool     `json:"weekend"`
	Holiday *Holiday `json:"holiday,omitempty"`
	Leaves  []T      `json:"leaves"`
}

// Annotate builds the Day for a single date.
func Annotate[T Span](date Date, table Table, records []T) Day[T] {
	wd := date.Weekday()
	day := Day[T]{
		Date:    date,
		Weekday: wd.String(),
		InMonth: true,
		Weekend: wd == time.Saturday || wd == time.Sunday,
		Leaves:  CoveringDay(records, date),
	}
	if h, ok := table.Lookup(date); ok {
		day.Holiday = &h
	}
	return day
}

// Month returns the grid for year/month padded to whole weeks that start
// on weekStart. Padding cells have InMonth=false but are still annotated.
func Month[T Span](year int, month time.Month, table Table, records []T, weekStart time.Weekday) []Day[T] {
	first := NewDate(year, month, 1)
	last := NewDate(year, month+1, 0)

	lead := (int(first.Weekday()) - int(weekStart) + 7) % 7
	trail := (int(weekStart) + 6 - int(last.Weekday()) + 7) % 7

	from := first.AddDays(-lead)
	to := last.AddDays(trail)

	days := make([]Day[T], 0, DaysInclusive(from, to))
	for d := from; !d.After(to); d = d.AddDays(1) {
		cell := Annotate(d, table, records)
		cell.InMonth = d.Month == month && d.Year == first.Year
		days = append(days, cell)
	}
	return days
}
