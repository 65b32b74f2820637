package companysrv

import (
	"context"
	"fmt"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/logx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company"
)

// CompanyDeleter runs the delete cascade of a company
type CompanyDeleter interface {
	DeleteCompany(ctx context.Context, id kernel.CompanyID) error
}

// CompanyService provides business operations for companies
type CompanyService struct {
	companyRepo company.Repository
	userRepo    user.Repository
	deleter     CompanyDeleter
}

// NewCompanyService creates a new instance of the company service
func NewCompanyService(companyRepo company.Repository, userRepo user.Repository, deleter CompanyDeleter) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		deleter:     deleter,
	}
}

// ============================================================================
// Commands
// ============================================================================

// Create registers a company owned by the acting user
func (s *CompanyService) Create(ctx context.Context, actor kernel.Actor, req company.CreateCompanyRequest) (*company.Company, error) {
	if actor.UserID.IsEmpty() {
		return nil, company.ErrInsufficientPermissions().WithDetail("reason", "user not registered")
	}
	if exists, err := s.userRepo.Exists(ctx, actor.UserID); err != nil {
		return nil, errx.Wrap(err, "failed to check company creator", errx.TypeInternal)
	} else if !exists {
		return nil, user.ErrUserNotFound().WithDetail("user_id", actor.UserID.String())
	}

	c, err := company.NewCompany(actor.UserID, req)
	if err != nil {
		return nil, err
	}
	base := c.Slug
	for attempt := 1; ; attempt++ {
		if c.Slug, err = s.uniqueSlug(ctx, base, ""); err != nil {
			return nil, err
		}
		err = s.companyRepo.Create(ctx, c)
		if err == nil {
			break
		}
		// a concurrent create took the slug between lookup and insert
		if !errx.IsConflict(err) || attempt == createAttempts {
			return nil, err
		}
	}

	logx.WithFields(logx.Fields{
		"company_id": c.ID.String(),
		"slug":       c.Slug,
		"created_by": c.CreatedBy.String(),
	}).Info("company created")
	return c, nil
}

// Update edits a company. Only the creator or an admin may do so.
func (s *CompanyService) Update(ctx context.Context, actor kernel.Actor, id kernel.CompanyID, req company.UpdateCompanyRequest) (*company.Company, error) {
	c, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	previousSlug := c.Slug
	if err := c.ApplyUpdate(req); err != nil {
		return nil, err
	}
	if c.Slug != previousSlug {
		if c.Slug, err = s.uniqueSlug(ctx, c.Slug, c.ID); err != nil {
			return nil, err
		}
	}

	if err := s.companyRepo.Update(ctx, id, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the company together with its jobs and their dependents
func (s *CompanyService) Delete(ctx context.Context, actor kernel.Actor, id kernel.CompanyID) error {
	if _, err := s.loadOwned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.deleter.DeleteCompany(ctx, id); err != nil {
		return err
	}
	logx.Infof("company %s deleted", id)
	return nil
}

// ============================================================================
// Queries
// ============================================================================

// GetByID retrieves a company by ID
func (s *CompanyService) GetByID(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

// GetBySlug retrieves a company by its URL slug
func (s *CompanyService) GetBySlug(ctx context.Context, slug string) (*company.Company, error) {
	if slug == "" {
		return nil, company.ErrInvalidRequest().WithDetail("slug", "required")
	}
	return s.companyRepo.GetBySlug(ctx, slug)
}

// ListActive lists active companies page by page
func (s *CompanyService) ListActive(ctx context.Context, pagination kernel.PaginationOptions) (*company.PaginatedCompaniesResponse, error) {
	return s.companyRepo.ListActive(ctx, pagination.Normalize())
}

// ListByCreator lists every company created by a user
func (s *CompanyService) ListByCreator(ctx context.Context, userID kernel.UserID) ([]*company.Company, error) {
	if userID.IsEmpty() {
		return nil, company.ErrInvalidRequest().WithDetail("user_id", "required")
	}
	return s.companyRepo.ListByCreator(ctx, userID)
}

// ============================================================================
// Helper Methods
// ============================================================================

func (s *CompanyService) loadOwned(ctx context.Context, actor kernel.Actor, id kernel.CompanyID) (*company.Company, error) {
	c, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(c.CreatedBy) {
		return nil, company.ErrInsufficientPermissions().WithDetail("company_id", id.String())
	}
	return c, nil
}

const (
	maxSlugSuffix  = 20
	createAttempts = 3
)

// uniqueSlug returns base, or the first of base-2, base-3, ... that no other
// company holds. Past maxSlugSuffix it appends a random suffix.
func (s *CompanyService) uniqueSlug(ctx context.Context, base string, self kernel.CompanyID) (string, error) {
	for n := 1; n <= maxSlugSuffix; n++ {
		candidate := base
		if n > 1 {
			candidate = fmt.Sprintf("%s-%d", base, n)
		}

		existing, err := s.companyRepo.GetBySlug(ctx, candidate)
		switch {
		case errx.IsNotFound(err):
			return candidate, nil
		case err != nil:
			return "", err
		case existing.ID == self:
			return candidate, nil
		}
	}
	return base + "-" + kernel.NewID()[:8], nil
}
