package testutils

import (
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/foodgram/backend/internal/domain/user"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewTestLogger returns a no-op logger for tests.
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewMeasurement builds a catalog entry with fake but plausible data.
func NewMeasurement() recipe.Measurement {
	return recipe.Measurement{
		ID:   uuid.New(),
		Name: gofakeit.Vegetable(),
		Unit: gofakeit.RandomString([]string{"g", "kg", "ml", "l", "pcs"}),
	}
}

// NewAmount parses a known-good amount literal, failing the test on a
// bad literal.
func NewAmount(t *testing.T, raw string) recipe.Amount {
	t.Helper()
	amount, err := recipe.ParseAmount(raw)
	if err != nil {
		t.Fatalf("invalid amount literal %q: %v", raw, err)
	}
	return amount
}

// NewLineItem builds a line item for the given measurement and amount.
func NewLineItem(t *testing.T, m recipe.Measurement, rawAmount string) recipe.LineItem {
	t.Helper()
	return recipe.LineItem{
		ID:          uuid.New(),
		Measurement: m,
		Amount:      NewAmount(t, rawAmount),
	}
}

// NewTag builds a tag with fake data.
func NewTag() recipe.Tag {
	name := gofakeit.AdjectiveDescriptive()
	return recipe.Tag{
		ID:    uuid.New(),
		Name:  name,
		Color: gofakeit.HexColor(),
		Slug:  fmt.Sprintf("%s-%d", name, gofakeit.Number(1, 9999)),
	}
}

// NewRecipe builds a valid recipe authored by the given user.
func NewRecipe(t *testing.T, authorID uuid.UUID) *recipe.Recipe {
	t.Helper()
	r, err := recipe.NewRecipe(
		gofakeit.Dinner(),
		gofakeit.Paragraph(1, 3, 10, " "),
		gofakeit.URL(),
		time.Duration(gofakeit.Number(5, 120))*time.Minute,
		authorID,
	)
	if err != nil {
		t.Fatalf("failed to build recipe: %v", err)
	}
	return r
}

// NewUser builds a registered user with a known password.
func NewUser(t *testing.T, password string) *user.User {
	t.Helper()
	u, err := user.NewUser(
		gofakeit.Username(),
		gofakeit.Email(),
		gofakeit.FirstName(),
		gofakeit.LastName(),
		password,
	)
	if err != nil {
		t.Fatalf("failed to build user: %v", err)
	}
	return u
}
