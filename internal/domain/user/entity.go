// Package user defines the account that may sign in to the catalog
package user

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooLong  = errors.New("username must be 150 characters or fewer")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrInvalidPassword  = errors.New("invalid username or password")
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("username already taken")
)

const maxUsernameLength = 150

// User is an account allowed to browse the catalog
type User struct {
	id           uint
	username     string
	passwordHash string
	isActive     bool
	createdAt    time.Time
	lastLoginAt  *time.Time
}

// NewUser creates an active user, hashing password with the given bcrypt cost
func NewUser(username, password string, cost int) (*User, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, err
	}

	return &User{
		username:     username,
		passwordHash: string(hashedPassword),
		isActive:     true,
		createdAt:    time.Now().UTC(),
	}, nil
}

// Restore rebuilds a user from stored state
func Restore(id uint, username, passwordHash string, isActive bool, createdAt time.Time, lastLoginAt *time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		isActive:     isActive,
		createdAt:    createdAt,
		lastLoginAt:  lastLoginAt,
	}
}

func (u *User) ID() uint                { return u.id }
func (u *User) Username() string        { return u.username }
func (u *User) PasswordHash() string    { return u.passwordHash }
func (u *User) IsActive() bool          { return u.isActive }
func (u *User) CreatedAt() time.Time    { return u.createdAt }
func (u *User) LastLoginAt() *time.Time { return u.lastLoginAt }

// AssignID records the identifier chosen by the store
func (u *User) AssignID(id uint) {
	u.id = id
}

// CheckPassword compares password with the stored hash
func (u *User) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// RecordLogin stamps the last successful sign-in
func (u *User) RecordLogin() {
	now := time.Now().UTC()
	u.lastLoginAt = &now
}

// Deactivate blocks future sign-ins
func (u *User) Deactivate() {
	u.isActive = false
}

func validateUsername(username string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if len(username) > maxUsernameLength {
		return ErrUsernameTooLong
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}
