package core

import (
	"context"
	"time"
)

// User represents a console account.
type User struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}

// Actor returns the request identity for u.
func (u *User) Actor() Actor {
	return Actor{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// UserService provides user lookup and provisioning.
type UserService interface {
	// GetByUsername finds an active user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByID returns a user by primary key.
	GetByID(ctx context.Context, userID int) (*User, error)

	// Create inserts a new active user. passwordHash must already be a bcrypt hash.
	Create(ctx context.Context, username, email, passwordHash, role string) (*User, error)
}
