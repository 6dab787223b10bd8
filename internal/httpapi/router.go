// Package httpapi exposes leaves, holidays and calendar exports over a
// JSON HTTP API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"leavely/internal/service"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Leaves     *service.LeaveService
	Holidays   *service.HolidayService
	// CORSOrigin is a comma separated origin allow list; empty disables CORS.
	CORSOrigin string
	// RateLimit is requests per minute per client IP; zero disables it.
	RateLimit int
	// Now overrides the clock used for export stamps.
	Now func() time.Time
}

// NewRouter constructs the chi router with every route mounted.
func NewRouter(params RouterParams) http.Handler {
	h := NewHandler(params.Leaves, params.Holidays)
	if params.Now != nil {
		h.now = params.Now
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(corsHandler(params.CORSOrigin))
	if params.RateLimit > 0 {
		r.Use(httprate.LimitByIP(params.RateLimit, time.Minute))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	h.MountRoutes(r)
	return r
}
