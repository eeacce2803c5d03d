package gorm

import (
	"context"
	"fmt"

	"github.com/foodgram/backend/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The cart, favorite and subscription repositories all persist a plain
// user-to-target association with a composite primary key.

// CartRepository implements outbound.CartRepository with GORM.
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(db *gorm.DB) outbound.CartRepository {
	return &CartRepository{db: db}
}

// Add puts a recipe into the user's cart.
func (r *CartRepository) Add(ctx context.Context, userID, recipeID uuid.UUID) error {
	entry := CartEntryModel{UserID: userID, RecipeID: recipeID}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to add cart entry: %w", err)
	}
	return nil
}

// Remove takes a recipe out of the user's cart.
func (r *CartRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&CartEntryModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove cart entry: %w", err)
	}
	return nil
}

// Contains reports whether the recipe is in the user's cart.
func (r *CartRepository) Contains(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&CartEntryModel{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check cart entry: %w", err)
	}
	return count > 0, nil
}

// RecipeIDs lists the recipes in the user's cart.
func (r *CartRepository) RecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&CartEntryModel{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart entries: %w", err)
	}
	return ids, nil
}

// FavoriteRepository implements outbound.FavoriteRepository with GORM.
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository.
func NewFavoriteRepository(db *gorm.DB) outbound.FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add marks a recipe as a favorite of the user.
func (r *FavoriteRepository) Add(ctx context.Context, userID, recipeID uuid.UUID) error {
	entry := FavoriteModel{UserID: userID, RecipeID: recipeID}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove unmarks a favorite.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&FavoriteModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// Contains reports whether the recipe is a favorite of the user.
func (r *FavoriteRepository) Contains(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FavoriteModel{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// RecipeIDs lists the user's favorite recipes.
func (r *FavoriteRepository) RecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&FavoriteModel{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return ids, nil
}

// SubscriptionRepository implements outbound.SubscriptionRepository with GORM.
type SubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository.
func NewSubscriptionRepository(db *gorm.DB) outbound.SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Add subscribes the user to the author.
func (r *SubscriptionRepository) Add(ctx context.Context, userID, authorID uuid.UUID) error {
	entry := SubscriptionModel{UserID: userID, AuthorID: authorID}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to add subscription: %w", err)
	}
	return nil
}

// Remove removes a subscription.
func (r *SubscriptionRepository) Remove(ctx context.Context, userID, authorID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&SubscriptionModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove subscription: %w", err)
	}
	return nil
}

// Contains reports whether the user is subscribed to the author.
func (r *SubscriptionRepository) Contains(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&SubscriptionModel{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return count > 0, nil
}

// AuthorIDs lists the authors the user follows.
func (r *SubscriptionRepository) AuthorIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&SubscriptionModel{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return ids, nil
}
