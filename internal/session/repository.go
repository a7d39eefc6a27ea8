// File: internal/session/repository.go
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"weather_prediction_ui/internal/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Save(ctx context.Context, s *Session) error
	FindByBrowserID(ctx context.Context, browserID string) (*Session, error)
	Delete(ctx context.Context, browserID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// GORMRepository implements the Repository interface using GORM.
type GORMRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM session repository and migrates its table.
func NewGORMRepository(db *gorm.DB) (Repository, error) {
	if err := db.AutoMigrate(&Session{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sessions table: %w", err)
	}
	return &GORMRepository{db: db}, nil
}

// Save inserts the session or replaces the one already stored for the browser.
func (r *GORMRepository) Save(ctx context.Context, s *Session) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "browser_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "token_type", "expires_at", "updated_at"}),
	}).Create(s).Error
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *GORMRepository) FindByBrowserID(ctx context.Context, browserID string) (*Session, error) {
	var s Session
	err := r.db.WithContext(ctx).Where("browser_id = ?", browserID).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Session not found.")
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &s, nil
}

// Delete removes the browser's session. Deleting a missing session is not an error.
func (r *GORMRepository) Delete(ctx context.Context, browserID string) error {
	if err := r.db.WithContext(ctx).Where("browser_id = ?", browserID).Delete(&Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session whose expiry is at or before now.
func (r *GORMRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now.UTC()).
		Delete(&Session{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
