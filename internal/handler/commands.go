package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"leavely/internal/calendar"
	"leavely/internal/models"
	"leavely/internal/service"
)

// maxListed caps list replies so they stay under the message size limit.
const maxListed = 20

// upcomingWindow is how far /holiday without a date looks ahead.
const upcomingWindow = 30

const helpText = `📋 Available commands:

📅 Calendar:
/today [date] - Who is on leave today or on a date
/month [YYYY-MM] - Holidays and leaves of a month
/holiday [date] - Holiday of a date, or the upcoming ones

🏖️ Leaves:
/leaves - All leaves, newest first
/member <name> - Leaves of one team member
/add <name> <contact> <start> <end> [reason] - File a leave
    Example: /add Alice alice@example.com 2025-01-28 2025-02-04 Spring Festival
/delete <id> - Delete a leave

Dates are written as YYYY-MM-DD.`

type reply struct {
	text     string
	keyboard *tgbotapi.InlineKeyboardMarkup
}

func text(format string, args ...any) reply {
	return reply{text: fmt.Sprintf(format, args...)}
}

// respond builds the answer to a command. It never sends anything.
func (h *Handler) respond(ctx context.Context, command, args string) reply {
	args = strings.TrimSpace(args)

	switch command {
	case "start":
		return reply{text: "👋 Welcome to Leavely, the team leave tracker.\n\n" + helpText}
	case "help":
		return reply{text: helpText}
	case "today":
		return h.today(ctx, args)
	case "leaves":
		return h.listLeaves(ctx)
	case "member":
		return h.memberLeaves(ctx, args)
	case "holiday":
		return h.holiday(args)
	case "add":
		return h.addLeave(ctx, args)
	case "delete":
		return h.deleteLeave(ctx, args)
	case "month":
		return h.month(ctx, args)
	default:
		return reply{text: "❌ Unknown command. Use /help to list the commands."}
	}
}

func (h *Handler) today(ctx context.Context, args string) reply {
	date := h.leaves.Today()
	if args != "" {
		d, err := h.leaves.ParseDate(args)
		if err != nil {
			return text("❌ Invalid date %q, use YYYY-MM-DD.", args)
		}
		date = d
	}

	snap := h.store.Fetch(ctx)
	if snap.Err != nil {
		return errorReply(snap.Err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 %s (%s)\n", date, date.Weekday())
	if hol, ok := h.holidays.Lookup(date); ok {
		fmt.Fprintf(&b, "%s %s\n", hol.Emoji(), holidayLabel(hol))
	}
	b.WriteString("\n")

	onLeave := snap.OnDay(date)
	if len(onLeave) == 0 {
		b.WriteString("✅ Nobody is on leave.")
		return reply{text: b.String()}
	}
	fmt.Fprintf(&b, "👥 On leave (%d):\n", len(onLeave))
	for _, l := range onLeave {
		fmt.Fprintf(&b, "• %s (%s) %s → %s\n", l.Name, l.Contact, l.StartDate, l.EndDate)
	}
	return reply{text: strings.TrimRight(b.String(), "\n")}
}

func (h *Handler) listLeaves(ctx context.Context) reply {
	snap := h.store.Fetch(ctx)
	if snap.Err != nil {
		return errorReply(snap.Err)
	}
	if len(snap.Leaves) == 0 {
		return reply{text: "📭 No leaves yet. Use /add to file one."}
	}
	return reply{text: "🏖️ Leaves:\n\n" + formatLeaves(snap.Leaves)}
}

func (h *Handler) memberLeaves(ctx context.Context, name string) reply {
	if name == "" {
		return reply{text: "❌ Usage: /member <name>"}
	}

	snap := h.store.Fetch(ctx)
	if snap.Err != nil {
		return errorReply(snap.Err)
	}
	leaves := snap.ByMember(name)
	if len(leaves) == 0 {
		return text("📭 No leaves for %s.", name)
	}

	total := 0
	for _, l := range leaves {
		total += l.Days()
	}
	return text("👤 %s: %d leave(s), %d day(s)\n\n%s", leaves[0].Name, len(leaves), total, formatLeaves(leaves))
}

func (h *Handler) holiday(args string) reply {
	if args != "" {
		date, err := h.leaves.ParseDate(args)
		if err != nil {
			return text("❌ Invalid date %q, use YYYY-MM-DD.", args)
		}
		hol, ok := h.holidays.Lookup(date)
		if !ok {
			return text("📅 %s is not in the holiday table.", date)
		}
		return text("%s %s: %s", hol.Emoji(), date, holidayLabel(hol))
	}

	from := h.leaves.Today()
	upcoming := h.holidays.InRange(from, from.AddDays(upcomingWindow))
	if len(upcoming) == 0 {
		return text("📅 No holidays in the next %d days.", upcomingWindow)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 Next %d days:\n", upcomingWindow)
	for _, hol := range upcoming {
		fmt.Fprintf(&b, "%s %s %s\n", hol.Emoji(), hol.Date, holidayLabel(hol))
	}
	return reply{text: strings.TrimRight(b.String(), "\n")}
}

func (h *Handler) addLeave(ctx context.Context, args string) reply {
	parts := strings.Fields(args)
	if len(parts) < 4 {
		return reply{text: "❌ Usage: /add <name> <contact> <start> <end> [reason]"}
	}

	input := service.CreateLeaveInput{
		Name:      parts[0],
		Contact:   parts[1],
		StartDate: parts[2],
		EndDate:   parts[3],
	}
	if len(parts) > 4 {
		reason := strings.Join(parts[4:], " ")
		input.Reason = &reason
	}

	snap, created := h.store.Add(ctx, input)
	if snap.Err != nil {
		return errorReply(snap.Err)
	}

	logrus.WithField("leave_id", created.ID).Info("Leave added from Telegram")
	return text("✅ Leave added for %s: %s → %s (%d day(s))\nID: %s",
		created.Name, created.StartDate, created.EndDate, created.Days(), created.ID)
}

func (h *Handler) deleteLeave(ctx context.Context, id string) reply {
	if id == "" {
		return reply{text: "❌ Usage: /delete <id>"}
	}

	snap := h.store.Fetch(ctx)
	if snap.Err != nil {
		return errorReply(snap.Err)
	}
	leave, ok := snap.Find(id)
	if !ok {
		return reply{text: "❌ Leave not found."}
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, delete", confirmDeletePrefix+leave.ID),
			tgbotapi.NewInlineKeyboardButtonData("❌ No, keep it", cancelDelete),
		),
	)
	return reply{
		text:     fmt.Sprintf("⚠️ Delete the leave of %s (%s → %s)?", leave.Name, leave.StartDate, leave.EndDate),
		keyboard: &keyboard,
	}
}

func (h *Handler) confirmDelete(ctx context.Context, id string) reply {
	snap := h.store.Remove(ctx, id)
	if snap.Err != nil {
		return errorReply(snap.Err)
	}
	logrus.WithField("leave_id", id).Info("Leave deleted from Telegram")
	return reply{text: "✅ Leave deleted."}
}

func (h *Handler) month(ctx context.Context, args string) reply {
	today := h.leaves.Today()
	year, month := today.Year, today.Month
	if args != "" {
		t, err := time.Parse("2006-01", args)
		if err != nil {
			return text("❌ Invalid month %q, use YYYY-MM.", args)
		}
		year, month = t.Year(), t.Month()
	}

	days, err := h.leaves.Month(ctx, year, month)
	if err != nil {
		return errorReply(err)
	}
	return reply{text: formatMonth(year, month, days)}
}

func formatLeaves(leaves []models.Leave) string {
	var b strings.Builder
	for i, l := range leaves {
		if i == maxListed {
			fmt.Fprintf(&b, "…and %d more", len(leaves)-maxListed)
			break
		}
		fmt.Fprintf(&b, "• %s: %s → %s (%d day(s))", l.Name, l.StartDate, l.EndDate, l.Days())
		if reason := l.ReasonText(); reason != "" {
			fmt.Fprintf(&b, " - %s", reason)
		}
		fmt.Fprintf(&b, "\n  ID: %s\n", l.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatMonth lists the in-month days that carry a holiday or a leave.
func formatMonth(year int, month time.Month, days []service.LeaveDay) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗓️ %s %d\n", month, year)

	busy := 0
	for _, d := range days {
		if !d.InMonth || (d.Holiday == nil && len(d.Leaves) == 0) {
			continue
		}
		busy++
		fmt.Fprintf(&b, "\n%02d %s", d.Date.Day, d.Weekday[:3])
		if d.Holiday != nil {
			fmt.Fprintf(&b, " %s %s", d.Holiday.Emoji(), holidayLabel(*d.Holiday))
		}
		if len(d.Leaves) > 0 {
			names := make([]string, 0, len(d.Leaves))
			for _, l := range d.Leaves {
				names = append(names, l.Name)
			}
			fmt.Fprintf(&b, " 🏖️ %s", strings.Join(names, ", "))
		}
	}
	if busy == 0 {
		b.WriteString("\nNo holidays or leaves this month.")
	}
	return b.String()
}

func holidayLabel(h calendar.Holiday) string {
	if h.Kind == calendar.KindMakeupWorkday {
		return h.Name + " (makeup workday)"
	}
	return h.Name
}

func errorReply(err error) reply {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return reply{text: "❌ Leave not found."}
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidRange):
		return reply{text: "❌ " + err.Error()}
	default:
		logrus.WithError(err).Error("Telegram command failed")
		return reply{text: "❌ Something went wrong, please try again later."}
	}
}
