// Package dao provides data access objects for use in the Sable lexing
// server.
package dao

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store is the persistence layer of the server. It holds all the
// repositories.
type Store interface {
	// Users returns the repository of server user accounts.
	Users() UserRepository

	// Documents returns the repository of stored stylesheet documents.
	Documents() DocumentRepository

	// Close releases any resources held by the store.
	Close() error
}

// Role is the level of access a user has on the server.
type Role int

const (
	Guest Role = iota
	Normal

	Admin Role = 100
)

func (r Role) String() string {
	switch r {
	case Guest:
		return "guest"
	case Normal:
		return "normal"
	case Admin:
		return "admin"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole parses a string into a Role.
func ParseRole(s string) (Role, error) {
	check := strings.ToLower(s)
	switch check {
	case "guest":
		return Guest, nil
	case "normal":
		return Normal, nil
	case "admin":
		return Admin, nil
	default:
		return Guest, fmt.Errorf("must be one of 'guest', 'normal', or 'admin'")
	}
}

// User is a server account that can authenticate and manage stored
// documents.
type User struct {
	ID       uuid.UUID
	Username string

	// Password is the bcrypt hash of the user's password, base64-encoded.
	Password string

	Role           Role
	Created        time.Time
	LastLogoutTime time.Time
}

// Document is a stored stylesheet source together with bookkeeping gathered
// when it was lexed at upload time.
type Document struct {
	ID   uuid.UUID
	Name string

	// Source is the full stylesheet source text as uploaded.
	Source string

	// TokenCount is the number of tokens the source lexed to when it was
	// stored.
	TokenCount int

	Created time.Time
}

// UserRepository holds User entities.
type UserRepository interface {
	// Create creates a new User. All attributes except for auto-generated
	// fields are taken from the provided User.
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, id uuid.UUID, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) (User, error)
	Close() error
}

// DocumentRepository holds Document entities.
type DocumentRepository interface {
	// Create creates a new Document. All attributes except for
	// auto-generated fields are taken from the provided Document.
	Create(ctx context.Context, doc Document) (Document, error)
	GetAll(ctx context.Context) ([]Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (Document, error)
	Delete(ctx context.Context, id uuid.UUID) (Document, error)
	Close() error
}
