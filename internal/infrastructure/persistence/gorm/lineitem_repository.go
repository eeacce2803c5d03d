package gorm

import (
	"context"
	"fmt"

	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/foodgram/backend/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LineItemRepository implements outbound.LineItemRepository with GORM.
type LineItemRepository struct {
	db *gorm.DB
}

// NewLineItemRepository creates a new line item repository.
func NewLineItemRepository(db *gorm.DB) outbound.LineItemRepository {
	return &LineItemRepository{db: db}
}

// GetOrCreate returns the unique row for the (measurement, amount) pair,
// inserting it when absent. The insert races through the uniqueness
// constraint on (measurement_id, amount): ON CONFLICT DO NOTHING makes a
// lost race a no-op, and the unconditional read-back afterwards returns
// the winner's row either way.
func (r *LineItemRepository) GetOrCreate(ctx context.Context, measurementID uuid.UUID, amount recipe.Amount) (*recipe.LineItem, error) {
	model := LineItemModel{
		ID:            uuid.New(),
		MeasurementID: measurementID,
		Amount:        amount.Decimal(),
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "measurement_id"}, {Name: "amount"}},
			DoNothing: true,
		}).
		Create(&model).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}

	var stored LineItemModel
	err = r.db.WithContext(ctx).
		Preload("Measurement").
		Where("measurement_id = ? AND amount = ?", measurementID, amount.Decimal()).
		First(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read ingredient back: %w", err)
	}

	item, err := lineItemToDomain(stored)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByRecipeIDs returns the line items referenced by the given recipes,
// one element per recipe association. The join table drives the result, so
// a row shared by several recipes appears once per referencing recipe.
func (r *LineItemRepository) FindByRecipeIDs(ctx context.Context, recipeIDs []uuid.UUID) ([]recipe.LineItem, error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}

	var models []LineItemModel
	err := r.db.WithContext(ctx).
		Joins("JOIN recipe_ingredients ON recipe_ingredients.line_item_model_id = ingredients.id").
		Where("recipe_ingredients.recipe_model_id IN ?", recipeIDs).
		Preload("Measurement").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart ingredients: %w", err)
	}

	items := make([]recipe.LineItem, len(models))
	for i, m := range models {
		item, err := lineItemToDomain(m)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}
