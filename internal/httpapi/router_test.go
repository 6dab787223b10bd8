package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"leavely/internal/calendar"
	"leavely/internal/ics"
	"leavely/internal/models"
	"leavely/internal/repository"
	"leavely/internal/service"
)

var fixedNow = time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	repo, err := repository.NewGormLeaveRepository(db)
	require.NoError(t, err)

	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	holidays := service.NewHolidayService(calendar.DefaultTable())
	leaves := service.NewLeaveService(repo, holidays, ics.NewFormatter("", loc.String()), loc, time.Monday)

	return NewRouter(RouterParams{
		Leaves:     leaves,
		Holidays:   holidays,
		CORSOrigin: "*",
		Now:        func() time.Time { return fixedNow },
	})
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func createLeave(t *testing.T, h http.Handler, body map[string]any) models.Leave {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/leaves", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var leave models.Leave
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &leave))
	return leave
}

func TestHealthz(t *testing.T) {
	rr := do(t, newTestRouter(t), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestLeaveCRUD(t *testing.T) {
	h := newTestRouter(t)

	created := createLeave(t, h, map[string]any{
		"name": "Alice", "contact": "alice@example.com",
		"startDate": "2025-01-28", "endDate": "2025-02-04", "reason": "spring festival",
	})
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "2025-02-04", created.EndDate.String())
	assert.False(t, created.CreatedAt.IsZero())

	rr := do(t, h, http.MethodGet, "/leaves/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	for _, key := range []string{"id", "name", "contact", "startDate", "endDate", "reason", "createdAt"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "2025-01-28", raw["startDate"])

	rr = do(t, h, http.MethodPut, "/leaves/"+created.ID, map[string]any{"endDate": "2025-02-05"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated models.Leave
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "2025-02-05", updated.EndDate.String())
	assert.Equal(t, "spring festival", updated.ReasonText())

	rr = do(t, h, http.MethodGet, "/leaves", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []models.Leave
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rr = do(t, h, http.MethodDelete, "/leaves/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/leaves/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Leave not found"}`, rr.Body.String())
}

func TestUpdateReasonNullClears(t *testing.T) {
	h := newTestRouter(t)
	created := createLeave(t, h, map[string]any{
		"name": "Alice", "contact": "a", "startDate": "2025-03-03", "endDate": "2025-03-04", "reason": "trip",
	})

	rr := do(t, h, http.MethodPut, "/leaves/"+created.ID, map[string]any{"name": "Alicia"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var kept models.Leave
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &kept))
	assert.Equal(t, "trip", kept.ReasonText())

	rr = do(t, h, http.MethodPut, "/leaves/"+created.ID, map[string]any{"reason": nil})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "reason")
	assert.Equal(t, "Alicia", raw["name"])

	rr = do(t, h, http.MethodPut, "/leaves/"+created.ID, map[string]any{"startDate": "2025-03-10"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateLeaveBadRequests(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPost, "/leaves", map[string]any{"name": "A", "contact": "x", "startDate": "2025-01-01"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/leaves", map[string]any{"name": "A", "contact": "x", "startDate": "2025-01-05", "endDate": "2025-01-01"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownIDs(t *testing.T) {
	h := newTestRouter(t)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPut, "/leaves/nope", map[string]any{"name": "x"}).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/leaves/nope", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/calendar/nope", nil).Code)
}

func TestListLeavesFilters(t *testing.T) {
	h := newTestRouter(t)
	createLeave(t, h, map[string]any{"name": "Alice", "contact": "a", "startDate": "2025-01-28", "endDate": "2025-02-04"})
	createLeave(t, h, map[string]any{"name": "Bob", "contact": "b", "startDate": "2025-03-01", "endDate": "2025-03-01"})

	var list []models.Leave
	rr := do(t, h, http.MethodGet, "/leaves?member=alice", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Alice", list[0].Name)

	rr = do(t, h, http.MethodGet, "/leaves?from=2025-02-10&to=2025-03-31", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Bob", list[0].Name)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/leaves?from=yesterday", nil).Code)
}

func TestCalendarExports(t *testing.T) {
	h := newTestRouter(t)
	alice := createLeave(t, h, map[string]any{"name": "Alice", "contact": "a", "startDate": "2025-01-28", "endDate": "2025-02-04"})
	createLeave(t, h, map[string]any{"name": "Bob", "contact": "b", "startDate": "2025-06-02", "endDate": "2025-06-02"})

	rr := do(t, h, http.MethodGet, "/calendar", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, ics.ContentType, rr.Header().Get("Content-Type"))
	assert.Equal(t, 2, strings.Count(rr.Body.String(), "BEGIN:VEVENT"))
	assert.Contains(t, rr.Body.String(), "DTSTAMP:20250120T000000Z")

	rr = do(t, h, http.MethodGet, "/calendar/"+alice.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `attachment; filename="leave-Alice-2025-01-28.ics"`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, 1, strings.Count(rr.Body.String(), "BEGIN:VEVENT"))
	assert.Contains(t, rr.Body.String(), "DTEND;VALUE=DATE:20250205")
}

func TestMonthDaysHolidaysStats(t *testing.T) {
	h := newTestRouter(t)
	createLeave(t, h, map[string]any{"name": "Alice", "contact": "a", "startDate": "2025-01-30", "endDate": "2025-02-02"})

	rr := do(t, h, http.MethodGet, "/calendar/month?year=2025&month=2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var grid struct {
		Year  int `json:"year"`
		Month int `json:"month"`
		Days  []struct {
			Date    string            `json:"date"`
			InMonth bool              `json:"inMonth"`
			Holiday *calendar.Holiday `json:"holiday"`
			Leaves  []models.Leave    `json:"leaves"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &grid))
	assert.Equal(t, 2, grid.Month)
	require.Len(t, grid.Days, 35)
	assert.Equal(t, "2025-01-27", grid.Days[0].Date)
	assert.Len(t, grid.Days[5].Leaves, 1)
	require.NotNil(t, grid.Days[5].Holiday)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/calendar/month?month=13", nil).Code)

	rr = do(t, h, http.MethodGet, "/holidays/2025-01-26", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"type":"workday"`)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/holidays/2025-03-03", nil).Code)

	rr = do(t, h, http.MethodGet, "/holidays?from=2025-04-01&to=2025-04-30", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var hols []calendar.Holiday
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &hols))
	assert.Len(t, hols, 4)

	rr = do(t, h, http.MethodGet, "/days/2025-02-01", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Alice")

	rr = do(t, h, http.MethodGet, "/stats?today=2025-02-01", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"totalLeaves":1,"uniqueMembers":1,"totalDays":4,"onLeaveToday":1}`, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/members", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Alice"`)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/leaves", nil)
	req.Header.Set("Origin", "https://ui.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Less(t, rr.Code, 300)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPost, rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, rr.Header().Values("Vary"), "Origin")

	// A plain OPTIONS without the preflight header reaches the router.
	req = httptest.NewRequest(http.MethodOptions, "/leaves", nil)
	req.Header.Set("Origin", "https://ui.example.com")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestCORSActualRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://ui.example.com")
	rr := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Values("Vary"), "Origin")
}
