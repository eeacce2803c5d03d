package gorm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/foodgram/backend/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeRepository implements outbound.RecipeRepository with GORM.
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create persists a new recipe with its tag and ingredient associations.
// Tags and line items already exist; only the join rows are written.
func (r *RecipeRepository) Create(ctx context.Context, entity *recipe.Recipe) error {
	model := recipeToModel(entity)
	err := r.db.WithContext(ctx).
		Omit("Tags.*", "LineItems.*").
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// Update persists recipe changes, replacing the tag and ingredient
// associations with the entity's current sets.
func (r *RecipeRepository) Update(ctx context.Context, entity *recipe.Recipe) error {
	model := recipeToModel(entity)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&RecipeModel{ID: model.ID}).
			Select("Name", "Text", "Image", "CookingTimeMinutes", "UpdatedAt").
			Updates(map[string]interface{}{
				"name":                 model.Name,
				"text":                 model.Text,
				"image":                model.Image,
				"cooking_time_minutes": model.CookingTimeMinutes,
				"updated_at":           model.UpdatedAt,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}

		if err := tx.Model(&RecipeModel{ID: model.ID}).Association("Tags").Replace(model.Tags); err != nil {
			return fmt.Errorf("failed to replace recipe tags: %w", err)
		}
		if err := tx.Model(&RecipeModel{ID: model.ID}).Association("LineItems").Replace(model.LineItems); err != nil {
			return fmt.Errorf("failed to replace recipe ingredients: %w", err)
		}
		return nil
	})
}

// Delete removes a recipe and its association rows. The shared line items
// themselves stay: other recipes may reference them.
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := RecipeModel{ID: id}
		if err := tx.Model(&model).Association("Tags").Clear(); err != nil {
			return fmt.Errorf("failed to clear recipe tags: %w", err)
		}
		if err := tx.Model(&model).Association("LineItems").Clear(); err != nil {
			return fmt.Errorf("failed to clear recipe ingredients: %w", err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&CartEntryModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart entries: %w", err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&FavoriteModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear favorites: %w", err)
		}
		if err := tx.Delete(&RecipeModel{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}

// FindByID returns the recipe with associations, or (nil, nil) when
// absent.
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("LineItems.Measurement").
		First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}
	return recipeToDomain(model)
}

// Find lists recipes matching the criteria, newest first, together with
// the total match count before pagination.
func (r *RecipeRepository) Find(ctx context.Context, criteria outbound.RecipeCriteria) ([]*recipe.Recipe, int, error) {
	if criteria.IDs != nil && len(criteria.IDs) == 0 {
		return nil, 0, nil
	}

	query := r.db.WithContext(ctx).Model(&RecipeModel{})

	if len(criteria.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_model_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_model_id").
			Where("tags.slug IN ?", criteria.TagSlugs).
			Distinct("recipes.*")
	}
	if len(criteria.AuthorIDs) > 0 {
		query = query.Where("recipes.author_id IN ?", criteria.AuthorIDs)
	}
	if criteria.IDs != nil {
		query = query.Where("recipes.id IN ?", criteria.IDs)
	}

	// Counting has to deduplicate on the id column: COUNT over a
	// DISTINCT recipes.* select is not valid SQL.
	var total int64
	if err := query.Session(&gorm.Session{}).Distinct("recipes.id").Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	query = query.Order("recipes.created_at DESC")
	if criteria.Offset > 0 {
		query = query.Offset(criteria.Offset)
	}
	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit)
	}

	var models []RecipeModel
	err := query.
		Preload("Tags").
		Preload("LineItems.Measurement").
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
	}

	results := make([]*recipe.Recipe, len(models))
	for i, model := range models {
		entity, err := recipeToDomain(model)
		if err != nil {
			return nil, 0, err
		}
		results[i] = entity
	}
	return results, int(total), nil
}

// ExistsByAuthorAndName reports whether the author already has a recipe
// with the given name.
func (r *RecipeRepository) ExistsByAuthorAndName(ctx context.Context, authorID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&RecipeModel{}).
		Where("author_id = ? AND name = ?", authorID, name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check recipe name: %w", err)
	}
	return count > 0, nil
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
