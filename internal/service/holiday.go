package service

import (
	"sync"

	"leavely/internal/calendar"
	"leavely/pkg/holidays"

	"github.com/sirupsen/logrus"
)

// HolidayService serves the statutory holiday table, optionally extended
// from a file at startup.
type HolidayService struct {
	mu    sync.RWMutex
	table calendar.Table
}

func NewHolidayService(table calendar.Table) *HolidayService {
	return &HolidayService{table: table}
}

// LoadFromFile merges the days of a YAML or JSON holiday file over the
// current table and returns how many were read.
func (s *HolidayService) LoadFromFile(path string) (int, error) {
	entries, err := holidays.ParseFile(path)
	if err != nil {
		return 0, err
	}

	extra := make([]calendar.Holiday, 0, len(entries))
	for _, e := range entries {
		date, err := calendar.ParseDate(e.Date)
		if err != nil {
			return 0, err
		}
		kind, err := e.Kind()
		if err != nil {
			return 0, err
		}
		extra = append(extra, calendar.Holiday{Date: date, Name: e.Name, Kind: kind})
	}

	s.mu.Lock()
	s.table = s.table.With(extra...)
	total := s.table.Len()
	s.mu.Unlock()

	logrus.WithField("path", path).Infof("Loaded %d holiday entries (%d total)", len(extra), total)
	return len(extra), nil
}

// Table returns the current table.
func (s *HolidayService) Table() calendar.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

func (s *HolidayService) Lookup(date calendar.Date) (calendar.Holiday, bool) {
	return s.Table().Lookup(date)
}

func (s *HolidayService) IsHoliday(date calendar.Date) bool {
	return s.Table().IsHoliday(date)
}

func (s *HolidayService) IsMakeupWorkday(date calendar.Date) bool {
	return s.Table().IsMakeupWorkday(date)
}

// InRange lists holidays and makeup workdays in [from, to].
func (s *HolidayService) InRange(from, to calendar.Date) []calendar.Holiday {
	return s.Table().InRange(from, to)
}
