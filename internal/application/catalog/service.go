// Package catalog provides read access to tags and the measurement
// catalog.
package catalog

import (
	"context"

	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/foodgram/backend/internal/ports/inbound"
	"github.com/foodgram/backend/internal/ports/outbound"
	"github.com/foodgram/backend/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the catalog use cases.
type Service struct {
	tags         outbound.TagRepository
	measurements outbound.MeasurementRepository
	logger       *zap.Logger
}

// NewService creates a new catalog service.
func NewService(
	tags outbound.TagRepository,
	measurements outbound.MeasurementRepository,
	logger *zap.Logger,
) inbound.CatalogService {
	return &Service{
		tags:         tags,
		measurements: measurements,
		logger:       logger.Named("catalog-service"),
	}
}

// ListTags returns every tag.
func (s *Service) ListTags(ctx context.Context) ([]inbound.TagDTO, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list tags", err)
	}

	dtos := make([]inbound.TagDTO, len(tags))
	for i, t := range tags {
		dtos[i] = tagToDTO(t)
	}
	return dtos, nil
}

// GetTag returns one tag by slug.
func (s *Service) GetTag(ctx context.Context, slug string) (*inbound.TagDTO, error) {
	t, err := s.tags.FindBySlug(ctx, slug)
	if err != nil {
		return nil, errors.NewDatabaseError("find tag", err)
	}
	if t == nil {
		return nil, errors.NewTagNotFoundError(slug)
	}
	dto := tagToDTO(*t)
	return &dto, nil
}

// SearchMeasurements lists catalog entries whose name starts with the
// given prefix. An empty prefix lists the whole catalog.
func (s *Service) SearchMeasurements(ctx context.Context, namePrefix string) ([]inbound.MeasurementDTO, error) {
	found, err := s.measurements.SearchByNamePrefix(ctx, namePrefix)
	if err != nil {
		return nil, errors.NewDatabaseError("search measurements", err)
	}

	dtos := make([]inbound.MeasurementDTO, len(found))
	for i, m := range found {
		dtos[i] = measurementToDTO(*m)
	}
	return dtos, nil
}

// GetMeasurement returns one catalog entry by id.
func (s *Service) GetMeasurement(ctx context.Context, id uuid.UUID) (*inbound.MeasurementDTO, error) {
	m, err := s.measurements.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewDatabaseError("find measurement", err)
	}
	if m == nil {
		return nil, errors.NewMeasurementNotFoundError(id.String())
	}
	dto := measurementToDTO(*m)
	return &dto, nil
}

func tagToDTO(t recipe.Tag) inbound.TagDTO {
	return inbound.TagDTO{
		ID:    t.ID,
		Name:  t.Name,
		Color: t.Color,
		Slug:  t.Slug,
	}
}

func measurementToDTO(m recipe.Measurement) inbound.MeasurementDTO {
	return inbound.MeasurementDTO{
		ID:   m.ID,
		Name: m.Name,
		Unit: m.Unit,
	}
}
