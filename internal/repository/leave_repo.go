// internal/repository/leave_repo.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leavely/internal/calendar"
	"leavely/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidSpan is returned by Update when the merged leave would end
// before it starts.
var ErrInvalidSpan = errors.New("leave ends before it starts")

type LeaveRepository interface {
	GetAll(ctx context.Context) ([]models.Leave, error)
	GetByID(ctx context.Context, id string) (*models.Leave, error)
	Create(ctx context.Context, leave *models.Leave) error
	Update(ctx context.Context, id string, patch models.LeavePatch) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByDateRange(ctx context.Context, start, end calendar.Date) ([]models.Leave, error)
	GetByMember(ctx context.Context, name string) ([]models.Leave, error)
}

type GormLeaveRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormLeaveRepository(db *gorm.DB) (*GormLeaveRepository, error) {
	if err := db.AutoMigrate(&models.Leave{}); err != nil {
		return nil, fmt.Errorf("migrate leaves: %w", err)
	}
	return &GormLeaveRepository{db: db, now: time.Now}, nil
}

// GetAll returns every leave, newest first.
func (r *GormLeaveRepository) GetAll(ctx context.Context) ([]models.Leave, error) {
	var leaves []models.Leave
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

// GetByID returns nil, nil when no leave has that id.
func (r *GormLeaveRepository) GetByID(ctx context.Context, id string) (*models.Leave, error) {
	var leave models.Leave
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&leave).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

// Create assigns the id and creation time and inserts the leave.
func (r *GormLeaveRepository) Create(ctx context.Context, leave *models.Leave) error {
	leave.ID = uuid.NewString()
	leave.CreatedAt = r.now().UTC()
	return r.db.WithContext(ctx).Create(leave).Error
}

// Update merges patch over the stored leave and writes back every field
// inside one transaction, so the start <= end check sees the row it
// replaces. It reports false when the id is unknown and returns
// ErrInvalidSpan when the merged leave would end before it starts.
func (r *GormLeaveRepository) Update(ctx context.Context, id string, patch models.LeavePatch) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Leave
		err := tx.Where("id = ?", id).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		updated := patch.Apply(existing)
		if updated.EndDate.Before(updated.StartDate) {
			return ErrInvalidSpan
		}

		result := tx.Model(&models.Leave{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"name":       updated.Name,
				"contact":    updated.Contact,
				"start_date": updated.StartDate,
				"end_date":   updated.EndDate,
				"reason":     updated.Reason,
			})
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (r *GormLeaveRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Leave{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetByDateRange returns leaves intersecting [start, end], ordered by start.
func (r *GormLeaveRepository) GetByDateRange(ctx context.Context, start, end calendar.Date) ([]models.Leave, error) {
	var leaves []models.Leave
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Order("start_date").
		Find(&leaves).Error
	return leaves, err
}

// GetByMember matches the name case-insensitively, newest first.
func (r *GormLeaveRepository) GetByMember(ctx context.Context, name string) ([]models.Leave, error) {
	var leaves []models.Leave
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}
