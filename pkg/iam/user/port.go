package user

import (
	"context"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
)

type Repository interface {
	// Create creates a new user. Duplicate email or external id is a conflict.
	Create(ctx context.Context, u *User) error

	// Update updates an existing user
	Update(ctx context.Context, id kernel.UserID, u *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id kernel.UserID) (*User, error)

	// GetByExternalID retrieves a user by identity provider subject
	GetByExternalID(ctx context.Context, ext kernel.ExternalIdentity) (*User, error)

	// GetByEmail retrieves a user by normalized email
	GetByEmail(ctx context.Context, email kernel.Email) (*User, error)

	// Delete deletes a user by ID
	Delete(ctx context.Context, id kernel.UserID) error

	// Exists checks if a user exists by ID
	Exists(ctx context.Context, id kernel.UserID) (bool, error)

	// List retrieves users with pagination
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[User], error)
}
