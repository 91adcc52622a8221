package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

var ErrUserNotFound = goerr.New("user not found")

type UserID string

// User is an account record. History holds the serialized visit history
// blob; it is opaque to the store and only interpreted by the codec.
type User struct {
	ID       UserID `firestore:"-"`
	Name     string
	Email    string
	APIToken string
	History  string

	CreatedAt time.Time
	UpdatedAt time.Time
}
