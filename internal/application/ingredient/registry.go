// Package ingredient provides the ingredient registry: idempotent
// resolution of (measurement, amount) pairs to unique line items.
package ingredient

import (
	"context"

	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/foodgram/backend/internal/ports/outbound"
	"github.com/foodgram/backend/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry validates measurement references and amounts, then delegates
// the atomic get-or-create to the line item store, whose uniqueness
// constraint on (measurement, amount) is the single arbiter of identity.
type Registry struct {
	measurements outbound.MeasurementRepository
	lineItems    outbound.LineItemRepository
	logger       *zap.Logger
}

// NewRegistry creates a new ingredient registry.
func NewRegistry(
	measurements outbound.MeasurementRepository,
	lineItems outbound.LineItemRepository,
	logger *zap.Logger,
) *Registry {
	return &Registry{
		measurements: measurements,
		lineItems:    lineItems,
		logger:       logger.Named("ingredient-registry"),
	}
}

// Resolve returns the unique line item for the given measurement and raw
// amount, creating it if absent. The operation is idempotent: resolving
// the same pair twice yields the same underlying record. It never updates
// or deletes existing rows.
func (r *Registry) Resolve(ctx context.Context, measurementID uuid.UUID, rawAmount string) (*recipe.LineItem, error) {
	amount, err := recipe.ParseAmount(rawAmount)
	if err != nil {
		return nil, errors.NewInvalidAmountError(err.Error()).WithMetadata("amount", rawAmount)
	}

	measurement, err := r.measurements.FindByID(ctx, measurementID)
	if err != nil {
		return nil, errors.NewDatabaseError("find measurement", err)
	}
	if measurement == nil {
		return nil, errors.NewMeasurementNotFoundError(measurementID.String())
	}

	item, err := r.lineItems.GetOrCreate(ctx, measurementID, amount)
	if err != nil {
		return nil, errors.NewDatabaseError("get or create line item", err)
	}

	r.logger.Debug("Resolved ingredient line item",
		zap.String("line_item_id", item.ID.String()),
		zap.String("measurement", measurement.Label()),
		zap.String("amount", item.Amount.String()),
	)

	return item, nil
}
