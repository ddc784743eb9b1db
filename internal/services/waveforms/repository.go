package waveforms

import (
	"context"
	"errors"

	"github.com/voxnote/memo-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// repository implements Repository on gorm
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new waveform repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetByFileLocation retrieves a stored waveform by source file
func (r *repository) GetByFileLocation(ctx context.Context, fileLocation string) (*models.Waveform, error) {
	var waveform models.Waveform
	err := r.db.WithContext(ctx).
		Where("file_location = ?", fileLocation).
		First(&waveform).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWaveformNotFound
		}
		return nil, err
	}

	return &waveform, nil
}

// Upsert creates or replaces the waveform for a source file
func (r *repository) Upsert(ctx context.Context, waveform *models.Waveform) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "file_location"}},
			UpdateAll: true,
		}).
		Create(waveform).Error
}

// Delete removes the waveform for a source file; absent rows are not an error
func (r *repository) Delete(ctx context.Context, fileLocation string) error {
	return r.db.WithContext(ctx).
		Where("file_location = ?", fileLocation).
		Delete(&models.Waveform{}).Error
}

// DeleteAll removes every stored waveform
func (r *repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.Waveform{}).Error
}
