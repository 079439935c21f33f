package library

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository reads and writes library rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// States returns every state row of userID.
func (r *Repository) States(ctx context.Context, userID string) ([]UserGame, error) {
	var rows []UserGame
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error
	return rows, err
}

// Events returns every log row of userID, newest first.
func (r *Repository) Events(ctx context.Context, userID string) ([]GameLog, error) {
	var rows []GameLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

// FindState returns the state row for (userID, gameID), or nil.
func (r *Repository) FindState(ctx context.Context, userID string, gameID int64) (*UserGame, error) {
	var row UserGame
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// SaveState inserts or updates row by primary key.
func (r *Repository) SaveState(ctx context.Context, row *UserGame) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// DeleteState removes the state row with id.
func (r *Repository) DeleteState(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&UserGame{}, id).Error
}

// AppendEvent inserts a log row.
func (r *Repository) AppendEvent(ctx context.Context, row *GameLog) error {
	return r.db.WithContext(ctx).Create(row).Error
}
