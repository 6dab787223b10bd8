// Package ics renders leaves as an iCalendar feed that Outlook, Google
// Calendar and Apple Calendar can import or subscribe to.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"leavely/internal/models"
)

const (
	ProductID           = "-//Leavely//Team Leave Management//EN"
	ContentType         = "text/calendar; charset=utf-8"
	DefaultCalendarName = "Leavely - Team Leaves"
	DefaultTimezone     = "Asia/Shanghai"

	uidDomain = "leavely"
)

// Formatter turns leaves into VCALENDAR documents. The zero value is
// usable and falls back to the default calendar name and timezone.
type Formatter struct {
	// CalendarName is X-WR-CALNAME of multi-leave documents.
	CalendarName string
	// Timezone is the display zone advertised as X-WR-TIMEZONE.
	Timezone string
}

func NewFormatter(calendarName, timezone string) *Formatter {
	return &Formatter{CalendarName: calendarName, Timezone: timezone}
}

// FormatEvents renders all leaves as one document. An empty slice gives a
// valid document without events.
func (f *Formatter) FormatEvents(leaves []models.Leave, now time.Time) string {
	name := f.CalendarName
	if name == "" {
		name = DefaultCalendarName
	}
	cal := f.newCalendar(name)
	for _, leave := range leaves {
		addEvent(cal, leave, now)
	}
	return cal.Serialize()
}

// FormatEvent renders a single leave in a document named after its owner.
func (f *Formatter) FormatEvent(leave models.Leave, now time.Time) string {
	cal := f.newCalendar(leave.Name + " - Leave")
	addEvent(cal, leave, now)
	return cal.Serialize()
}

func (f *Formatter) newCalendar(name string) *ical.Calendar {
	tz := f.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}

	cal := ical.NewCalendar()
	cal.SetVersion("2.0")
	cal.SetProductId(ProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName(name)
	cal.SetXWRTimezone(tz)
	return cal
}

// addEvent appends the VEVENT of one leave. DTEND of an all-day event is
// exclusive, hence the extra day.
func addEvent(cal *ical.Calendar, leave models.Leave, now time.Time) {
	event := cal.AddEvent(UID(leave))
	event.SetDtStampTime(now.UTC())
	event.SetAllDayStartAt(leave.StartDate.Time(time.UTC))
	event.SetAllDayEndAt(leave.EndDate.AddDays(1).Time(time.UTC))
	event.SetSummary(Summary(leave))
	event.SetDescription(Description(leave))
	event.SetTimeTransparency(ical.TransparencyTransparent)
	event.SetStatus(ical.ObjectStatusConfirmed)
}

// UID is stable across exports of the same leave.
func UID(leave models.Leave) string {
	return leave.ID + "@" + uidDomain
}

func Summary(leave models.Leave) string {
	return fmt.Sprintf("🏖️ %s - Leave", leave.Name)
}

// Description lists the owner and contact, and the reason only when one
// was given.
func Description(leave models.Leave) string {
	desc := fmt.Sprintf("Leave period for %s\nContact: %s", leave.Name, leave.Contact)
	if reason := leave.ReasonText(); reason != "" {
		desc += "\nReason: " + reason
	}
	return desc
}

// Filename is the suggested download name for a single-leave export.
func Filename(leave models.Leave) string {
	return fmt.Sprintf("leave-%s-%s.ics", leave.Name, leave.StartDate)
}
