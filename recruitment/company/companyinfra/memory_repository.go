package companyinfra

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company"
)

// MemoryCompanyRepository keeps companies in process memory
type MemoryCompanyRepository struct {
	mu        sync.RWMutex
	companies map[kernel.CompanyID]company.Company
}

func NewMemoryCompanyRepository() *MemoryCompanyRepository {
	return &MemoryCompanyRepository{companies: make(map[kernel.CompanyID]company.Company)}
}

func (r *MemoryCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[c.ID]; ok {
		return company.ErrCompanyAlreadyExists()
	}
	r.companies[c.ID] = clone(c)
	return nil
}

func (r *MemoryCompanyRepository) Update(ctx context.Context, id kernel.CompanyID, c *company.Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[id]; !ok {
		return company.ErrCompanyNotFound().WithDetail("company_id", id.String())
	}
	stored := clone(c)
	stored.ID = id
	r.companies[id] = stored
	return nil
}

func (r *MemoryCompanyRepository) GetByID(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.companies[id]
	if !ok {
		return nil, company.ErrCompanyNotFound()
	}
	found := clone(&c)
	return &found, nil
}

func (r *MemoryCompanyRepository) GetBySlug(ctx context.Context, slug string) (*company.Company, error) {
	matches := r.filter(func(c *company.Company) bool { return c.Slug == slug })
	if len(matches) == 0 {
		return nil, company.ErrCompanyNotFound()
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.Before(matches[j].CreatedAt) })
	return matches[0], nil
}

func (r *MemoryCompanyRepository) Delete(ctx context.Context, id kernel.CompanyID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[id]; !ok {
		return company.ErrCompanyNotFound().WithDetail("company_id", id.String())
	}
	delete(r.companies, id)
	return nil
}

func (r *MemoryCompanyRepository) ListActive(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[company.Company], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	active := r.filter(func(c *company.Company) bool { return c.IsActive })
	sort.Slice(active, func(i, j int) bool {
		a, b := strings.ToLower(active[i].Name), strings.ToLower(active[j].Name)
		if a == b {
			return active[i].ID < active[j].ID
		}
		return a < b
	})

	items := make([]company.Company, 0, len(active))
	for _, c := range active {
		items = append(items, *c)
	}
	return kernel.PaginateSlice(items, pagination), nil
}

func (r *MemoryCompanyRepository) ListByCreator(ctx context.Context, userID kernel.UserID) ([]*company.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	owned := r.filter(func(c *company.Company) bool { return c.CreatedBy == userID })
	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedAt.After(owned[j].CreatedAt) })
	return owned, nil
}

func (r *MemoryCompanyRepository) filter(match func(*company.Company) bool) []*company.Company {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*company.Company, 0)
	for _, c := range r.companies {
		if match(&c) {
			found := clone(&c)
			out = append(out, &found)
		}
	}
	return out
}

func clone(c *company.Company) company.Company {
	cp := *c
	if c.FoundedYear != nil {
		year := *c.FoundedYear
		cp.FoundedYear = &year
	}
	if c.Benefits != nil {
		cp.Benefits = append([]string(nil), c.Benefits...)
	}
	if c.CultureTags != nil {
		cp.CultureTags = append([]string(nil), c.CultureTags...)
	}
	return cp
}

// Count returns the number of stored companies
func (r *MemoryCompanyRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.companies)
}

var _ company.Repository = (*MemoryCompanyRepository)(nil)
