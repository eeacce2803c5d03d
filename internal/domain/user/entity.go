// Package user contains the user domain model.
package user

import (
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Domain errors for user operations.
var (
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooLong  = errors.New("username must not exceed 150 characters")
	ErrInvalidEmail     = errors.New("a valid email address is required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

// User is a registered account. Authentication tokens are issued by the
// security layer; the entity only carries the bcrypt password hash.
type User struct {
	id           uuid.UUID
	username     string
	email        string
	firstName    string
	lastName     string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new User with a hashed password.
func NewUser(username, email, firstName, lastName, password string) (*User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(username) > 150 {
		return nil, ErrUsernameTooLong
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		id:           uuid.New(),
		username:     username,
		email:        email,
		firstName:    firstName,
		lastName:     lastName,
		passwordHash: string(hash),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Restore rebuilds a User from persisted state.
func Restore(id uuid.UUID, username, email, firstName, lastName, passwordHash string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		email:        email,
		firstName:    firstName,
		lastName:     lastName,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the user's unique identifier.
func (u *User) ID() uuid.UUID {
	return u.id
}

// Username returns the unique username.
func (u *User) Username() string {
	return u.username
}

// Email returns the user's email address.
func (u *User) Email() string {
	return u.email
}

// FirstName returns the user's first name.
func (u *User) FirstName() string {
	return u.firstName
}

// LastName returns the user's last name.
func (u *User) LastName() string {
	return u.lastName
}

// PasswordHash returns the stored bcrypt hash.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// CreatedAt returns when the account was created.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns when the account was last updated.
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// CheckPassword reports whether the supplied password matches the stored
// hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored hash after validating the new
// password.
func (u *User) ChangePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.passwordHash = string(hash)
	u.updatedAt = time.Now()
	return nil
}
