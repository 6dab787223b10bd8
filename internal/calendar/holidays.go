package calendar

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a holiday table entry.
type Kind string

const (
	// KindHoliday is a statutory day off.
	KindHoliday Kind = "holiday"
	// KindMakeupWorkday is a normally free day turned into a working day
	// to compensate for an adjacent holiday block.
	KindMakeupWorkday Kind = "workday"
)

// ParseKind accepts the stored kind names and a few spellings used in
// holiday files.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "holiday", "off", "offday":
		return KindHoliday, nil
	case "workday", "makeup", "makeup-workday", "workday-makeup":
		return KindMakeupWorkday, nil
	default:
		return "", fmt.Errorf("unknown holiday type %q", s)
	}
}

// Holiday is one authored entry of the holiday table.
type Holiday struct {
	Date Date   `json:"date"`
	Name string `json:"name"`
	Kind Kind   `json:"type"`
}

// Emoji returns the glyph shown next to the holiday in calendar views.
func (h Holiday) Emoji() string {
	switch {
	case strings.Contains(h.Name, "调休") || h.Kind == KindMakeupWorkday:
		return "💼"
	case strings.Contains(h.Name, "春节"):
		return "🧧"
	case strings.Contains(h.Name, "元旦"):
		return "🎊"
	case strings.Contains(h.Name, "清明"):
		return "🌿"
	case strings.Contains(h.Name, "劳动"):
		return "💪"
	case strings.Contains(h.Name, "端午"):
		return "🐲"
	case strings.Contains(h.Name, "中秋"):
		return "🥮"
	case strings.Contains(h.Name, "国庆"):
		return "🇨🇳"
	default:
		return "🎉"
	}
}

// Table is an exact-match date -> Holiday lookup. A Table is never
// mutated after construction; With returns a new one.
type Table struct {
	entries map[Date]Holiday
}

// NewTable builds a table from entries. On duplicate dates the later
// entry wins.
func NewTable(entries ...Holiday) Table {
	t := Table{entries: make(map[Date]Holiday, len(entries))}
	for _, e := range entries {
		t.entries[e.Date] = e
	}
	return t
}

// With returns a copy of t extended by entries.
func (t Table) With(entries ...Holiday) Table {
	merged := make(map[Date]Holiday, len(t.entries)+len(entries))
	for d, h := range t.entries {
		merged[d] = h
	}
	for _, e := range entries {
		merged[e.Date] = e
	}
	return Table{entries: merged}
}

// Lookup returns the entry for date. Dates outside the authored years
// are simply absent.
func (t Table) Lookup(date Date) (Holiday, bool) {
	h, ok := t.entries[date]
	return h, ok
}

// IsHoliday reports whether date is a statutory day off.
func (t Table) IsHoliday(date Date) bool {
	h, ok := t.Lookup(date)
	return ok && h.Kind == KindHoliday
}

// IsMakeupWorkday reports whether date is a compensating working day.
func (t Table) IsMakeupWorkday(date Date) bool {
	h, ok := t.Lookup(date)
	return ok && h.Kind == KindMakeupWorkday
}

// Len returns the number of entries.
func (t Table) Len() int {
	return len(t.entries)
}

// InRange lists entries with from <= date <= to, sorted by date.
func (t Table) InRange(from, to Date) []Holiday {
	out := make([]Holiday, 0)
	for d, h := range t.entries {
		if Covers(from, to, d) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
