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

// TagRepository implements outbound.TagRepository with GORM.
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *gorm.DB) outbound.TagRepository {
	return &TagRepository{db: db}
}

// List returns every tag ordered by name.
func (r *TagRepository) List(ctx context.Context) ([]recipe.Tag, error) {
	var models []TagModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	tags := make([]recipe.Tag, len(models))
	for i, model := range models {
		tags[i] = tagToDomain(model)
	}
	return tags, nil
}

// FindBySlug returns the tag with the given slug, or (nil, nil) when
// absent.
func (r *TagRepository) FindBySlug(ctx context.Context, slug string) (*recipe.Tag, error) {
	var model TagModel
	err := r.db.WithContext(ctx).First(&model, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	t := tagToDomain(model)
	return &t, nil
}

// FindByIDs returns the tags with the given ids, in unspecified order.
func (r *TagRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]recipe.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []TagModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find tags: %w", err)
	}

	tags := make([]recipe.Tag, len(models))
	for i, model := range models {
		tags[i] = tagToDomain(model)
	}
	return tags, nil
}

// SaveBatch inserts tags, skipping slugs that already exist. Used by the
// administrative seed load.
func (r *TagRepository) SaveBatch(ctx context.Context, tags []recipe.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	models := make([]TagModel, len(tags))
	for i, t := range tags {
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		models[i] = tagToModel(t)
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).
		Create(&models).Error
	if err != nil {
		return fmt.Errorf("failed to save tags: %w", err)
	}
	return nil
}
