package models

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultImageURL is used when signup is given no profile image.
const DefaultImageURL = "/static/images/default-pic.png"

// Validation errors surfaced by Signup.
var (
	ErrUsernameRequired = errors.New("username is required")
	ErrEmailRequired    = errors.New("a valid email address is required")
	ErrPasswordRequired = errors.New("password is required")
)

// User represents a registered user.
type User struct {
	ID           uint   `gorm:"primaryKey;column:user_id"`
	Username     string `gorm:"uniqueIndex;size:255;not null"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"column:pw_hash;not null"`
	ImageURL     string `gorm:"column:image_url"`
}

// TableName overrides the table name used by GORM
func (User) TableName() string {
	return "user"
}

// Signup builds a new User with the password replaced by a bcrypt hash.
// It is the only construction path for users; the caller persists the
// returned instance. Uniqueness of username and email is enforced by
// the database indexes on commit, not here.
func Signup(username, email, password, imageURL string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, ErrUsernameRequired
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if imageURL == "" {
		imageURL = DefaultImageURL
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		ImageURL:     imageURL,
	}, nil
}

// Authenticate reports whether the given plaintext password matches
// the stored hash.
func (u *User) Authenticate(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
