// internal/models/leave.go
package models

import (
	"time"

	"leavely/internal/calendar"
)

// Leave is one team member's requested absence. StartDate and EndDate are
// inclusive and StartDate <= EndDate.
type Leave struct {
	ID        string        `gorm:"primaryKey;type:text" json:"id"`
	Name      string        `gorm:"type:text;not null;index:idx_leaves_name" json:"name"`
	Contact   string        `gorm:"type:text;not null" json:"contact"`
	StartDate calendar.Date `gorm:"type:text;not null;index:idx_leaves_dates,priority:1" json:"startDate"`
	EndDate   calendar.Date `gorm:"type:text;not null;index:idx_leaves_dates,priority:2" json:"endDate"`
	Reason    *string       `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt time.Time     `gorm:"not null" json:"createdAt"`
}

func (Leave) TableName() string {
	return "leaves"
}

// Span implements calendar.Span.
func (l Leave) Span() (calendar.Date, calendar.Date) {
	return l.StartDate, l.EndDate
}

// Days returns the number of calendar days the leave covers.
func (l Leave) Days() int {
	return calendar.DaysInclusive(l.StartDate, l.EndDate)
}

// ReasonText returns the reason or "" when none was given.
func (l Leave) ReasonText() string {
	if l.Reason == nil {
		return ""
	}
	return *l.Reason
}

// LeavePatch carries the fields of a partial update; nil means unchanged.
type LeavePatch struct {
	Name      *string
	Contact   *string
	StartDate *calendar.Date
	EndDate   *calendar.Date
	Reason    *string
}

// Apply merges p over l.
func (p LeavePatch) Apply(l Leave) Leave {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Contact != nil {
		l.Contact = *p.Contact
	}
	if p.StartDate != nil {
		l.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		l.EndDate = *p.EndDate
	}
	if p.Reason != nil {
		if *p.Reason == "" {
			l.Reason = nil
		} else {
			reason := *p.Reason
			l.Reason = &reason
		}
	}
	return l
}

// TeamMember groups the leaves filed under one name.
type TeamMember struct {
	Name    string  `json:"name"`
	Contact string  `json:"contact"`
	Leaves  []Leave `json:"leaves"`
}
