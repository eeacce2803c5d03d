package recipe

import "errors"

// Domain errors for recipes and the ingredient registry.

var (
	// Entity validation errors
	ErrNameTooShort      = errors.New("recipe name must be at least 3 characters")
	ErrNameTooLong       = errors.New("recipe name must not exceed 200 characters")
	ErrTextRequired      = errors.New("recipe text is required")
	ErrCookingTimeTooLow = errors.New("cooking time must be at least 1 minute")
	ErrNoIngredients     = errors.New("recipe must have at least one ingredient")

	// Ingredient amount errors
	ErrAmountNotDecimal  = errors.New("amount must be a number using a decimal point")
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrAmountTooPrecise  = errors.New("amount must not have more than 3 decimal places")

	// Catalog errors
	ErrMeasurementNameRequired = errors.New("measurement name is required")
	ErrMeasurementUnitRequired = errors.New("measurement unit is required")

	// Business rule violations
	ErrDuplicateRecipeName = errors.New("author already has a recipe with this name")

	// Permission errors
	ErrNotRecipeAuthor = errors.New("only the recipe author can perform this action")
)
