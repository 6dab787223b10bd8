package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"leavely/internal/calendar"
	"leavely/internal/ics"
	"leavely/internal/service"
)

// Handler serves the leave, holiday and calendar endpoints.
type Handler struct {
	leaves   *service.LeaveService
	holidays *service.HolidayService
	now      func() time.Time
}

func NewHandler(leaves *service.LeaveService, holidays *service.HolidayService) *Handler {
	return &Handler{leaves: leaves, holidays: holidays, now: time.Now}
}

// MountRoutes registers the API routes on r.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/leaves", func(r chi.Router) {
		r.Get("/", h.listLeaves)
		r.Post("/", h.createLeave)
		r.Get("/{id}", h.getLeave)
		r.Put("/{id}", h.updateLeave)
		r.Delete("/{id}", h.deleteLeave)
	})

	r.Route("/calendar", func(r chi.Router) {
		r.Get("/", h.exportAll)
		r.Get("/month", h.month)
		r.Get("/{id}", h.exportOne)
	})

	r.Get("/holidays", h.listHolidays)
	r.Get("/holidays/{date}", h.getHoliday)
	r.Get("/days/{date}", h.getDay)
	r.Get("/stats", h.stats)
	r.Get("/members", h.members)
}

func (h *Handler) listLeaves(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.ListFilter{Member: q.Get("member"), Query: q.Get("q")}

	var err error
	if filter.From, err = h.optionalDate(q.Get("from")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.To, err = h.optionalDate(q.Get("to")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	leaves, err := h.leaves.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch leaves")
		return
	}
	writeJSON(w, http.StatusOK, leaves)
}

func (h *Handler) createLeave(w http.ResponseWriter, r *http.Request) {
	var input service.CreateLeaveInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	leave, err := h.leaves.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create leave")
		return
	}
	writeJSON(w, http.StatusCreated, leave)
}

func (h *Handler) getLeave(w http.ResponseWriter, r *http.Request) {
	leave, err := h.leaves.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch leave")
		return
	}
	writeJSON(w, http.StatusOK, leave)
}

func (h *Handler) updateLeave(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateLeaveInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	leave, err := h.leaves.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeServiceError(w, r, err, "Failed to update leave")
		return
	}
	writeJSON(w, http.StatusOK, leave)
}

func (h *Handler) deleteLeave(w http.ResponseWriter, r *http.Request) {
	if err := h.leaves.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, "Failed to delete leave")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) exportAll(w http.ResponseWriter, r *http.Request) {
	doc, err := h.leaves.ExportAll(r.Context(), h.now())
	if err != nil {
		writeServiceError(w, r, err, "Failed to generate calendar")
		return
	}
	writeCalendar(w, doc, "leavely.ics")
}

func (h *Handler) exportOne(w http.ResponseWriter, r *http.Request) {
	doc, filename, err := h.leaves.ExportOne(r.Context(), chi.URLParam(r, "id"), h.now())
	if err != nil {
		writeServiceError(w, r, err, "Failed to generate calendar")
		return
	}
	writeCalendar(w, doc, filename)
}

func writeCalendar(w http.ResponseWriter, doc, filename string) {
	w.Header().Set("Content-Type", ics.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", url.PathEscape(filename)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

func (h *Handler) month(w http.ResponseWriter, r *http.Request) {
	today := h.leaves.Today()
	year, month := today.Year, today.Month

	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 || y > 9999 {
			writeError(w, http.StatusBadRequest, "Invalid year")
			return
		}
		year = y
	}
	if v := q.Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			writeError(w, http.StatusBadRequest, "Invalid month")
			return
		}
		month = time.Month(m)
	}

	days, err := h.leaves.Month(r.Context(), year, month)
	if err != nil {
		writeServiceError(w, r, err, "Failed to build calendar")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"year":  year,
		"month": int(month),
		"days":  days,
	})
}

func (h *Handler) listHolidays(w http.ResponseWriter, r *http.Request) {
	today := h.leaves.Today()
	from := calendar.NewDate(today.Year, time.January, 1)
	to := calendar.NewDate(today.Year, time.December, 31)

	q := r.URL.Query()
	if d, err := h.optionalDate(q.Get("from")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	} else if d != nil {
		from = *d
	}
	if d, err := h.optionalDate(q.Get("to")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	} else if d != nil {
		to = *d
	}

	writeJSON(w, http.StatusOK, h.holidays.InRange(from, to))
}

func (h *Handler) getHoliday(w http.ResponseWriter, r *http.Request) {
	date, err := h.leaves.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	holiday, ok := h.holidays.Lookup(date)
	if !ok {
		writeError(w, http.StatusNotFound, "Holiday not found")
		return
	}
	writeJSON(w, http.StatusOK, holiday)
}

func (h *Handler) getDay(w http.ResponseWriter, r *http.Request) {
	date, err := h.leaves.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	day, err := h.leaves.OnDay(r.Context(), date)
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch leaves")
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	today := h.leaves.Today()
	if d, err := h.optionalDate(r.URL.Query().Get("today")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	} else if d != nil {
		today = *d
	}

	stats, err := h.leaves.Stats(r.Context(), today)
	if err != nil {
		writeServiceError(w, r, err, "Failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) members(w http.ResponseWriter, r *http.Request) {
	members, err := h.leaves.Members(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch members")
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *Handler) optionalDate(value string) (*calendar.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := h.leaves.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
