package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/foodgram/backend/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MeasurementRepository implements outbound.MeasurementRepository with GORM.
type MeasurementRepository struct {
	db *gorm.DB
}

// NewMeasurementRepository creates a new measurement repository.
func NewMeasurementRepository(db *gorm.DB) outbound.MeasurementRepository {
	return &MeasurementRepository{db: db}
}

// FindByID returns the catalog entry, or (nil, nil) when absent.
func (r *MeasurementRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Measurement, error) {
	var model MeasurementModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find measurement: %w", err)
	}
	m := measurementToDomain(model)
	return &m, nil
}

// SearchByNamePrefix lists catalog entries whose name starts with the
// given prefix, case-insensitively, ordered by name then unit.
func (r *MeasurementRepository) SearchByNamePrefix(ctx context.Context, prefix string) ([]*recipe.Measurement, error) {
	query := r.db.WithContext(ctx).Model(&MeasurementModel{})
	if prefix != "" {
		// sqlite has no default LIKE escape character, so the clause
		// must name the one escapeLike uses
		query = query.Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, escapeLike(prefix)+"%")
	}

	var models []MeasurementModel
	if err := query.Order("name, unit").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to search measurements: %w", err)
	}

	results := make([]*recipe.Measurement, len(models))
	for i, model := range models {
		m := measurementToDomain(model)
		results[i] = &m
	}
	return results, nil
}

// Count returns the catalog size.
func (r *MeasurementRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&MeasurementModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count measurements: %w", err)
	}
	return count, nil
}

// SaveBatch inserts catalog entries, skipping (name, unit) pairs that
// already exist. Used by the administrative seed load.
func (r *MeasurementRepository) SaveBatch(ctx context.Context, measurements []*recipe.Measurement) error {
	if len(measurements) == 0 {
		return nil
	}

	models := make([]MeasurementModel, len(measurements))
	for i, m := range measurements {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		models[i] = measurementToModel(*m)
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "unit"}},
			DoNothing: true,
		}).
		CreateInBatches(models, 500).Error
	if err != nil {
		return fmt.Errorf("failed to save measurements: %w", err)
	}
	return nil
}
