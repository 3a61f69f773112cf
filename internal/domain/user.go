package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxUsernameLength bounds usernames, in runes.
const MaxUsernameLength = 100

var (
	ErrEmptyUserID     = errors.New("user ID cannot be empty")
	ErrEmptyUsername   = errors.New("username cannot be empty")
	ErrUsernameTooLong = errors.New("username is too long")
)

// User owns decks, ratings and review settings. Users are identified by
// username alone; there is no login.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser returns a validated user with a fresh ID. Surrounding whitespace
// is dropped from username.
func NewUser(username string) (*User, error) {
	u := &User{
		ID:        uuid.New(),
		Username:  strings.TrimSpace(username),
		CreatedAt: time.Now().UTC(),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the ID and username.
func (u *User) Validate() error {
	switch {
	case u.ID == uuid.Nil:
		return ErrEmptyUserID
	case u.Username == "":
		return ErrEmptyUsername
	case utf8.RuneCountInString(u.Username) > MaxUsernameLength:
		return ErrUsernameTooLong
	}
	return nil
}
