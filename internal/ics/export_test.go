package ics

import (
	"strings"
	"testing"
	"time"

	"leavely/internal/calendar"
	"leavely/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportTime = time.Date(2025, 1, 20, 8, 30, 15, 0, time.FixedZone("CST", 8*3600))

func leave(id, name, start, end string, reason *string) models.Leave {
	return models.Leave{
		ID:        id,
		Name:      name,
		Contact:   "tg:" + strings.ToLower(name),
		StartDate: calendar.MustParseDate(start),
		EndDate:   calendar.MustParseDate(end),
		Reason:    reason,
	}
}

// unfold joins folded content lines so assertions can look at whole
// properties.
func unfold(doc string) string {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	doc = strings.ReplaceAll(doc, "\n ", "")
	return strings.ReplaceAll(doc, "\n\t", "")
}

func TestFormatEventExclusiveEnd(t *testing.T) {
	f := NewFormatter("", "")
	doc := unfold(f.FormatEvent(leave("abc", "Alice", "2025-01-28", "2025-02-04", nil), exportTime))

	assert.Contains(t, doc, "BEGIN:VCALENDAR")
	assert.Contains(t, doc, "END:VCALENDAR")
	assert.Contains(t, doc, "PRODID:"+ProductID)
	assert.Contains(t, doc, "METHOD:PUBLISH")
	assert.Contains(t, doc, "X-WR-CALNAME:Alice - Leave")
	assert.Contains(t, doc, "X-WR-TIMEZONE:Asia/Shanghai")
	assert.Contains(t, doc, "UID:abc@leavely")
	assert.Contains(t, doc, "DTSTART;VALUE=DATE:20250128")
	assert.Contains(t, doc, "DTEND;VALUE=DATE:20250205")
	assert.Contains(t, doc, "DTSTAMP:20250120T003015Z")
	assert.Contains(t, doc, "TRANSP:TRANSPARENT")
	assert.Contains(t, doc, "STATUS:CONFIRMED")
	assert.Contains(t, doc, "Alice - Leave")
}

func TestDescriptionReasonSegment(t *testing.T) {
	without := Description(leave("a", "Bob", "2025-06-02", "2025-06-02", nil))
	assert.Equal(t, "Leave period for Bob\nContact: tg:bob", without)
	assert.NotContains(t, without, "Reason")

	empty := ""
	assert.NotContains(t, Description(leave("a", "Bob", "2025-06-02", "2025-06-02", &empty)), "Reason")

	reason := "dentist"
	with := Description(leave("a", "Bob", "2025-06-02", "2025-06-02", &reason))
	assert.Contains(t, with, "Contact: tg:bob")
	assert.Contains(t, with, "Reason: dentist")

	doc := unfold(NewFormatter("", "").FormatEvent(leave("a", "Bob", "2025-06-02", "2025-06-02", &reason), exportTime))
	assert.Contains(t, doc, "Reason: dentist")
	assert.Contains(t, doc, "DTEND;VALUE=DATE:20250603")
}

func TestFormatEventsStableUIDs(t *testing.T) {
	f := NewFormatter("Team", "Europe/Berlin")
	leaves := []models.Leave{
		leave("1", "A", "2025-01-01", "2025-01-02", nil),
		leave("2", "B", "2025-02-01", "2025-02-01", nil),
		leave("3", "C", "2025-12-30", "2026-01-02", nil),
	}

	first := unfold(f.FormatEvents(leaves, exportTime))
	second := unfold(f.FormatEvents(leaves, exportTime.Add(time.Hour)))

	require.Equal(t, 1, strings.Count(first, "BEGIN:VCALENDAR"))
	require.Equal(t, 3, strings.Count(first, "BEGIN:VEVENT"))
	require.Equal(t, 3, strings.Count(first, "END:VEVENT"))
	assert.Contains(t, first, "X-WR-CALNAME:Team")
	assert.Contains(t, first, "X-WR-TIMEZONE:Europe/Berlin")
	assert.Contains(t, first, "DTEND;VALUE=DATE:20260103")

	for _, id := range []string{"1", "2", "3"} {
		uid := "UID:" + id + "@leavely"
		assert.Equal(t, 1, strings.Count(first, uid))
		assert.Equal(t, 1, strings.Count(second, uid))
	}
}

func TestFormatEventsEmpty(t *testing.T) {
	doc := unfold(NewFormatter("", "").FormatEvents(nil, exportTime))
	assert.Contains(t, doc, "BEGIN:VCALENDAR")
	assert.Contains(t, doc, "END:VCALENDAR")
	assert.Contains(t, doc, "X-WR-CALNAME:"+DefaultCalendarName)
	assert.NotContains(t, doc, "BEGIN:VEVENT")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "leave-Alice-2025-01-28.ics", Filename(leave("x", "Alice", "2025-01-28", "2025-02-04", nil)))
}
