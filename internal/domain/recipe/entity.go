// Package recipe contains the core domain logic for recipes, the
// measurement catalog and deduplicated ingredient line items.
package recipe

import (
	"time"

	"github.com/google/uuid"
)

// MinCookingTime is the smallest cooking time a recipe may declare.
const MinCookingTime = time.Minute

// Recipe is the recipe aggregate. The author is nullable: recipes survive
// deletion of their author. Ingredients are references to shared line items
// resolved through the ingredient registry.
type Recipe struct {
	id          uuid.UUID
	authorID    *uuid.UUID
	name        string
	text        string
	image       string
	cookingTime time.Duration
	tags        []Tag
	lineItems   []LineItem
	createdAt   time.Time
	updatedAt   time.Time
}

// NewRecipe creates a new Recipe with validation.
func NewRecipe(name, text, image string, cookingTime time.Duration, authorID uuid.UUID) (*Recipe, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrTextRequired
	}
	if cookingTime < MinCookingTime {
		return nil, ErrCookingTimeTooLow
	}

	now := time.Now()
	author := authorID
	return &Recipe{
		id:          uuid.New(),
		authorID:    &author,
		name:        name,
		text:        text,
		image:       image,
		cookingTime: cookingTime,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Restore rebuilds a Recipe from persisted state. It bypasses creation
// validation; the store is trusted to hold valid rows.
func Restore(
	id uuid.UUID,
	authorID *uuid.UUID,
	name, text, image string,
	cookingTime time.Duration,
	tags []Tag,
	lineItems []LineItem,
	createdAt, updatedAt time.Time,
) *Recipe {
	return &Recipe{
		id:          id,
		authorID:    authorID,
		name:        name,
		text:        text,
		image:       image,
		cookingTime: cookingTime,
		tags:        tags,
		lineItems:   lineItems,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the recipe's unique identifier.
func (r *Recipe) ID() uuid.UUID {
	return r.id
}

// AuthorID returns the recipe's author, or nil when the author account has
// been deleted.
func (r *Recipe) AuthorID() *uuid.UUID {
	return r.authorID
}

// Name returns the recipe's name.
func (r *Recipe) Name() string {
	return r.name
}

// Text returns the recipe's body text.
func (r *Recipe) Text() string {
	return r.text
}

// Image returns the stored image reference.
func (r *Recipe) Image() string {
	return r.image
}

// CookingTime returns the declared cooking time.
func (r *Recipe) CookingTime() time.Duration {
	return r.cookingTime
}

// Tags returns the recipe's tags.
func (r *Recipe) Tags() []Tag {
	return r.tags
}

// LineItems returns the ingredient line items referenced by the recipe.
func (r *Recipe) LineItems() []LineItem {
	return r.lineItems
}

// CreatedAt returns when the recipe was created.
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the recipe was last updated.
func (r *Recipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// IsAuthoredBy reports whether the given user authored the recipe.
func (r *Recipe) IsAuthoredBy(userID uuid.UUID) bool {
	return r.authorID != nil && *r.authorID == userID
}

// Rename updates the recipe name with validation.
func (r *Recipe) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	r.name = name
	r.updatedAt = time.Now()
	return nil
}

// UpdateText replaces the recipe body text.
func (r *Recipe) UpdateText(text string) error {
	if text == "" {
		return ErrTextRequired
	}
	r.text = text
	r.updatedAt = time.Now()
	return nil
}

// UpdateImage replaces the stored image reference.
func (r *Recipe) UpdateImage(image string) {
	r.image = image
	r.updatedAt = time.Now()
}

// UpdateCookingTime replaces the cooking time with validation.
func (r *Recipe) UpdateCookingTime(d time.Duration) error {
	if d < MinCookingTime {
		return ErrCookingTimeTooLow
	}
	r.cookingTime = d
	r.updatedAt = time.Now()
	return nil
}

// SetTags replaces the recipe's tag set.
func (r *Recipe) SetTags(tags []Tag) {
	r.tags = tags
	r.updatedAt = time.Now()
}

// SetLineItems replaces the recipe's ingredient references. A recipe must
// keep at least one ingredient.
func (r *Recipe) SetLineItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrNoIngredients
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	r.lineItems = items
	r.updatedAt = time.Now()
	return nil
}

// validateName validates a recipe name.
func validateName(name string) error {
	if len(name) < 3 {
		return ErrNameTooShort
	}
	if len(name) > 200 {
		return ErrNameTooLong
	}
	return nil
}
