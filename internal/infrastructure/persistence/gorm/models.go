// Package gorm provides GORM-based persistence adapters for the outbound
// repository ports.
package gorm

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MeasurementModel maps the measurement catalog. The (name, unit) pair is
// unique: "flour (g)" and "flour (kg)" are distinct entries.
type MeasurementModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:200;not null;uniqueIndex:idx_measurements_name_unit;index:idx_measurements_name"`
	Unit      string    `gorm:"size:64;not null;uniqueIndex:idx_measurements_name_unit"`
	CreatedAt time.Time
}

// TableName returns the table name.
func (MeasurementModel) TableName() string {
	return "measurements"
}

// LineItemModel maps deduplicated (measurement, amount) pairs. The
// uniqueness constraint is what makes the registry's get-or-create atomic:
// concurrent inserts of the same pair collapse onto a single row.
// Amounts are stored as decimal(9,3) so that "5" and "5.000" compare
// equal at the database level.
type LineItemModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	MeasurementID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_ingredients_measurement_amount"`
	Measurement   MeasurementModel `gorm:"foreignKey:MeasurementID"`
	Amount        decimal.Decimal  `gorm:"type:decimal(9,3);not null;uniqueIndex:idx_ingredients_measurement_amount"`
	CreatedAt     time.Time
}

// TableName returns the table name.
func (LineItemModel) TableName() string {
	return "ingredients"
}

// TagModel maps recipe tags.
type TagModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:200;not null;uniqueIndex"`
	Color     string    `gorm:"size:7;not null;uniqueIndex"`
	Slug      string    `gorm:"size:200;not null;uniqueIndex"`
	CreatedAt time.Time
}

// TableName returns the table name.
func (TagModel) TableName() string {
	return "tags"
}

// RecipeModel maps recipes. AuthorID is nullable so recipes survive the
// deletion of their author. Cooking time is stored in minutes.
type RecipeModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AuthorID           *uuid.UUID      `gorm:"type:uuid;index"`
	Name               string          `gorm:"size:200;not null;index"`
	Text               string          `gorm:"type:text;not null"`
	Image              string          `gorm:"size:500"`
	CookingTimeMinutes int             `gorm:"not null"`
	Tags               []TagModel      `gorm:"many2many:recipe_tags"`
	LineItems          []LineItemModel `gorm:"many2many:recipe_ingredients"`
	CreatedAt          time.Time       `gorm:"index"`
	UpdatedAt          time.Time
}

// TableName returns the table name.
func (RecipeModel) TableName() string {
	return "recipes"
}

// UserModel maps registered accounts.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"size:150;not null;uniqueIndex"`
	Email        string    `gorm:"size:254;not null;uniqueIndex"`
	FirstName    string    `gorm:"size:150"`
	LastName     string    `gorm:"size:150"`
	PasswordHash string    `gorm:"size:128;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name.
func (UserModel) TableName() string {
	return "users"
}

// CartEntryModel maps the shopping cart association.
type CartEntryModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

// TableName returns the table name.
func (CartEntryModel) TableName() string {
	return "cart_entries"
}

// FavoriteModel maps the favorites association.
type FavoriteModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

// TableName returns the table name.
func (FavoriteModel) TableName() string {
	return "favorites"
}

// SubscriptionModel maps the author subscription association.
type SubscriptionModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	AuthorID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

// TableName returns the table name.
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
