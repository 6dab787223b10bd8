package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"leavely/internal/calendar"
	"leavely/internal/ics"
	"leavely/internal/models"
	"leavely/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// CreateLeaveInput is the submission form of a leave.
type CreateLeaveInput struct {
	Name      string  `json:"name" validate:"required"`
	Contact   string  `json:"contact" validate:"required"`
	StartDate string  `json:"startDate" validate:"required"`
	EndDate   string  `json:"endDate" validate:"required"`
	Reason    *string `json:"reason,omitempty"`
}

// UpdateLeaveInput holds the fields to change; nil keeps the stored value.
// Reason also distinguishes an explicit null, which clears it.
type UpdateLeaveInput struct {
	Name      *string          `json:"name,omitempty" validate:"omitnil,min=1"`
	Contact   *string          `json:"contact,omitempty" validate:"omitnil,min=1"`
	StartDate *string          `json:"startDate,omitempty" validate:"omitnil,min=1"`
	EndDate   *string          `json:"endDate,omitempty" validate:"omitnil,min=1"`
	Reason    Optional[string] `json:"reason"`
}

// ListFilter narrows List. Zero fields are ignored.
type ListFilter struct {
	Member string
	From   *calendar.Date
	To     *calendar.Date
	Query  string
}

// Stats is the dashboard summary.
type Stats struct {
	TotalLeaves   int `json:"totalLeaves"`
	UniqueMembers int `json:"uniqueMembers"`
	TotalDays     int `json:"totalDays"`
	OnLeaveToday  int `json:"onLeaveToday"`
}

// LeaveDay is a calendar cell of leaves.
type LeaveDay = calendar.Day[models.Leave]

type LeaveService struct {
	repo      repository.LeaveRepository
	holidays  *HolidayService
	formatter *ics.Formatter
	location  *time.Location
	weekStart time.Weekday
	validate  *validator.Validate
	logger    *logrus.Logger
}

func NewLeaveService(
	repo repository.LeaveRepository,
	holidays *HolidayService,
	formatter *ics.Formatter,
	location *time.Location,
	weekStart time.Weekday,
) *LeaveService {
	if location == nil {
		location = time.UTC
	}
	return &LeaveService{
		repo:      repo,
		holidays:  holidays,
		formatter: formatter,
		location:  location,
		weekStart: weekStart,
		validate:  validator.New(),
		logger:    logrus.StandardLogger(),
	}
}

// Location is the display zone dates are interpreted in.
func (s *LeaveService) Location() *time.Location {
	return s.location
}

// Today returns the current date in the display zone.
func (s *LeaveService) Today() calendar.Date {
	return calendar.Today(s.location)
}

// ParseDate reads a date or timestamp in the display zone.
func (s *LeaveService) ParseDate(value string) (calendar.Date, error) {
	d, err := calendar.ParseDateIn(value, s.location)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return d, nil
}

// Create validates input and stores a new leave.
func (s *LeaveService) Create(ctx context.Context, input CreateLeaveInput) (*models.Leave, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Contact = strings.TrimSpace(input.Contact)
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: missing required fields", ErrValidation)
	}

	start, err := s.ParseDate(input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := s.ParseDate(input.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	leave := &models.Leave{
		Name:      input.Name,
		Contact:   input.Contact,
		StartDate: start,
		EndDate:   end,
		Reason:    normalizeReason(input.Reason),
	}
	if err := s.repo.Create(ctx, leave); err != nil {
		return nil, fmt.Errorf("create leave: %w", err)
	}

	s.logger.WithField("leave_id", leave.ID).Infof("Created leave for %s (%s - %s)", leave.Name, start, end)
	return leave, nil
}

// Get returns the leave or ErrNotFound.
func (s *LeaveService) Get(ctx context.Context, id string) (*models.Leave, error) {
	leave, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get leave %s: %w", id, err)
	}
	if leave == nil {
		return nil, ErrNotFound
	}
	return leave, nil
}

// List returns leaves matching filter. Without a member or range it
// returns everything, newest first.
func (s *LeaveService) List(ctx context.Context, filter ListFilter) ([]models.Leave, error) {
	var (
		leaves []models.Leave
		err    error
	)

	hasRange := filter.From != nil || filter.To != nil
	from, to := openRange(filter.From, filter.To)

	switch {
	case filter.Member != "":
		leaves, err = s.repo.GetByMember(ctx, strings.TrimSpace(filter.Member))
		if err == nil && hasRange {
			leaves = calendar.Overlapping(leaves, from, to)
		}
	case hasRange:
		leaves, err = s.repo.GetByDateRange(ctx, from, to)
	default:
		leaves, err = s.repo.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}

	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		matched := make([]models.Leave, 0, len(leaves))
		for _, l := range leaves {
			if strings.Contains(strings.ToLower(l.Name), q) || strings.Contains(strings.ToLower(l.Contact), q) {
				matched = append(matched, l)
			}
		}
		leaves = matched
	}

	if leaves == nil {
		leaves = []models.Leave{}
	}
	return leaves, nil
}

// Update applies input to the stored leave, keeping start <= end.
func (s *LeaveService) Update(ctx context.Context, id string, input UpdateLeaveInput) (*models.Leave, error) {
	input.Name = trimPtr(input.Name)
	input.Contact = trimPtr(input.Contact)
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: fields must not be empty", ErrValidation)
	}

	patch := models.LeavePatch{Name: input.Name, Contact: input.Contact}
	if input.StartDate != nil {
		start, err := s.ParseDate(*input.StartDate)
		if err != nil {
			return nil, err
		}
		patch.StartDate = &start
	}
	if input.EndDate != nil {
		end, err := s.ParseDate(*input.EndDate)
		if err != nil {
			return nil, err
		}
		patch.EndDate = &end
	}
	if input.Reason.Set {
		// An empty patch reason clears the stored one.
		reason := ""
		if input.Reason.Value != nil {
			reason = strings.TrimSpace(*input.Reason.Value)
		}
		patch.Reason = &reason
	}

	ok, err := s.repo.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrInvalidSpan) {
		return nil, ErrInvalidRange
	}
	if err != nil {
		return nil, fmt.Errorf("update leave %s: %w", id, err)
	}
	if !ok {
		return nil, ErrNotFound
	}

	s.logger.WithField("leave_id", id).Info("Updated leave")
	return s.Get(ctx, id)
}

// Delete removes the leave or returns ErrNotFound.
func (s *LeaveService) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete leave %s: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}

	s.logger.WithField("leave_id", id).Info("Deleted leave")
	return nil
}

// OnDay annotates day with its holiday and the leaves covering it.
func (s *LeaveService) OnDay(ctx context.Context, day calendar.Date) (LeaveDay, error) {
	leaves, err := s.repo.GetByDateRange(ctx, day, day)
	if err != nil {
		return LeaveDay{}, fmt.Errorf("leaves on %s: %w", day, err)
	}
	return calendar.Annotate(day, s.holidays.Table(), leaves), nil
}

// Month returns the calendar grid of year/month.
func (s *LeaveService) Month(ctx context.Context, year int, month time.Month) ([]LeaveDay, error) {
	first := calendar.NewDate(year, month, 1)
	last := calendar.NewDate(year, month+1, 0)

	leaves, err := s.repo.GetByDateRange(ctx, first.AddDays(-7), last.AddDays(7))
	if err != nil {
		return nil, fmt.Errorf("leaves of %d-%02d: %w", year, int(month), err)
	}
	return calendar.Month(year, month, s.holidays.Table(), leaves, s.weekStart), nil
}

// Stats summarises all leaves as seen on today.
func (s *LeaveService) Stats(ctx context.Context, today calendar.Date) (Stats, error) {
	leaves, err := s.repo.GetAll(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}

	members := make(map[string]struct{})
	stats := Stats{TotalLeaves: len(leaves)}
	for _, l := range leaves {
		members[strings.ToLower(l.Name)] = struct{}{}
		stats.TotalDays += l.Days()
	}
	stats.UniqueMembers = len(members)
	stats.OnLeaveToday = len(calendar.CoveringDay(leaves, today))
	return stats, nil
}

// Members groups leaves by case-insensitive name. The newest leave
// decides the displayed name and contact.
func (s *LeaveService) Members(ctx context.Context) ([]models.TeamMember, error) {
	leaves, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("members: %w", err)
	}

	index := make(map[string]int)
	members := make([]models.TeamMember, 0)
	for _, l := range leaves {
		key := strings.ToLower(l.Name)
		i, ok := index[key]
		if !ok {
			i = len(members)
			index[key] = i
			members = append(members, models.TeamMember{Name: l.Name, Contact: l.Contact})
		}
		members[i].Leaves = append(members[i].Leaves, l)
	}

	sort.SliceStable(members, func(i, j int) bool {
		return strings.ToLower(members[i].Name) < strings.ToLower(members[j].Name)
	})
	return members, nil
}

// ExportAll renders every leave as one calendar document.
func (s *LeaveService) ExportAll(ctx context.Context, now time.Time) (string, error) {
	leaves, err := s.repo.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return s.formatter.FormatEvents(leaves, now), nil
}

// ExportOne renders a single leave and suggests a file name for it.
func (s *LeaveService) ExportOne(ctx context.Context, id string, now time.Time) (string, string, error) {
	leave, err := s.Get(ctx, id)
	if err != nil {
		return "", "", err
	}
	return s.formatter.FormatEvent(*leave, now), ics.Filename(*leave), nil
}

func normalizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

// openRange fills a missing bound so a one-sided filter stays open.
func openRange(from, to *calendar.Date) (calendar.Date, calendar.Date) {
	lo := calendar.NewDate(1, time.January, 1)
	hi := calendar.NewDate(9999, time.December, 31)
	if from != nil {
		lo = *from
	}
	if to != nil {
		hi = *to
	}
	return lo, hi
}
