package gorm

import (
	"fmt"
	"time"

	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/foodgram/backend/internal/domain/user"
)

// Mapping between persistence models and domain types. Restoring trusts
// the store except for amounts, which are re-validated so a corrupted row
// surfaces as an error instead of a silent bad quantity.

func measurementToDomain(m MeasurementModel) recipe.Measurement {
	return recipe.Measurement{
		ID:   m.ID,
		Name: m.Name,
		Unit: m.Unit,
	}
}

func measurementToModel(m recipe.Measurement) MeasurementModel {
	return MeasurementModel{
		ID:   m.ID,
		Name: m.Name,
		Unit: m.Unit,
	}
}

func lineItemToDomain(m LineItemModel) (recipe.LineItem, error) {
	amount, err := recipe.NewAmount(m.Amount)
	if err != nil {
		return recipe.LineItem{}, fmt.Errorf("ingredient %s holds invalid amount %s: %w", m.ID, m.Amount, err)
	}
	return recipe.LineItem{
		ID:          m.ID,
		Measurement: measurementToDomain(m.Measurement),
		Amount:      amount,
	}, nil
}

func tagToDomain(m TagModel) recipe.Tag {
	return recipe.Tag{
		ID:    m.ID,
		Name:  m.Name,
		Color: m.Color,
		Slug:  m.Slug,
	}
}

func tagToModel(t recipe.Tag) TagModel {
	return TagModel{
		ID:    t.ID,
		Name:  t.Name,
		Color: t.Color,
		Slug:  t.Slug,
	}
}

func recipeToDomain(m RecipeModel) (*recipe.Recipe, error) {
	tags := make([]recipe.Tag, len(m.Tags))
	for i, t := range m.Tags {
		tags[i] = tagToDomain(t)
	}

	items := make([]recipe.LineItem, len(m.LineItems))
	for i, li := range m.LineItems {
		item, err := lineItemToDomain(li)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}

	return recipe.Restore(
		m.ID,
		m.AuthorID,
		m.Name,
		m.Text,
		m.Image,
		time.Duration(m.CookingTimeMinutes)*time.Minute,
		tags,
		items,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func recipeToModel(r *recipe.Recipe) RecipeModel {
	tags := make([]TagModel, len(r.Tags()))
	for i, t := range r.Tags() {
		tags[i] = tagToModel(t)
	}

	items := make([]LineItemModel, len(r.LineItems()))
	for i, li := range r.LineItems() {
		items[i] = LineItemModel{
			ID:            li.ID,
			MeasurementID: li.Measurement.ID,
			Amount:        li.Amount.Decimal(),
		}
	}

	return RecipeModel{
		ID:                 r.ID(),
		AuthorID:           r.AuthorID(),
		Name:               r.Name(),
		Text:               r.Text(),
		Image:              r.Image(),
		CookingTimeMinutes: int(r.CookingTime().Minutes()),
		Tags:               tags,
		LineItems:          items,
		CreatedAt:          r.CreatedAt(),
		UpdatedAt:          r.UpdatedAt(),
	}
}

func userToDomain(m UserModel) *user.User {
	return user.Restore(
		m.ID,
		m.Username,
		m.Email,
		m.FirstName,
		m.LastName,
		m.PasswordHash,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func userToModel(u *user.User) UserModel {
	return UserModel{
		ID:           u.ID(),
		Username:     u.Username(),
		Email:        u.Email(),
		FirstName:    u.FirstName(),
		LastName:     u.LastName(),
		PasswordHash: u.PasswordHash(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}
