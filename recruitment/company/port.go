package company

import (
	"context"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
)

type Repository interface {
	// Create creates a new company
	Create(ctx context.Context, c *Company) error

	// Update updates an existing company
	Update(ctx context.Context, id kernel.CompanyID, c *Company) error

	// GetByID retrieves a company by ID
	GetByID(ctx context.Context, id kernel.CompanyID) (*Company, error)

	// GetBySlug retrieves a company by slug
	GetBySlug(ctx context.Context, slug string) (*Company, error)

	// Delete deletes a company by ID
	Delete(ctx context.Context, id kernel.CompanyID) error

	// ListActive retrieves active companies ordered by name
	ListActive(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Company], error)

	// ListByCreator retrieves every company created by a user
	ListByCreator(ctx context.Context, userID kernel.UserID) ([]*Company, error)
}
