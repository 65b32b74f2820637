package company

import (
	"strings"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
)

type Company struct {
	ID            kernel.CompanyID   `json:"id"`
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description,omitempty"`
	LogoURL       string             `json:"logo_url,omitempty"`
	CoverImageURL string             `json:"cover_image_url,omitempty"`
	Website       string             `json:"website,omitempty"`
	Industry      string             `json:"industry,omitempty"`
	Size          string             `json:"size,omitempty"`
	FoundedYear   *int               `json:"founded_year,omitempty"`
	Headquarters  string             `json:"headquarters,omitempty"`
	RemotePolicy  string             `json:"remote_policy,omitempty"`
	Benefits      []string           `json:"benefits,omitempty"`
	CultureTags   []string           `json:"culture_tags,omitempty"`
	SocialLinks   kernel.SocialLinks `json:"social_links"`
	IsVerified    bool               `json:"is_verified"`
	IsActive      bool               `json:"is_active"`
	CreatedBy     kernel.UserID      `json:"created_by"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// NewCompany builds an active company owned by createdBy
func NewCompany(createdBy kernel.UserID, req CreateCompanyRequest) (*Company, error) {
	if createdBy.IsEmpty() {
		return nil, ErrInsufficientPermissions()
	}

	now := time.Now()
	c := &Company{
		ID:            kernel.NewCompanyID(kernel.NewID()),
		Description:   req.Description,
		LogoURL:       req.LogoURL,
		CoverImageURL: req.CoverImageURL,
		Website:       req.Website,
		Industry:      req.Industry,
		Size:          req.Size,
		FoundedYear:   req.FoundedYear,
		Headquarters:  req.Headquarters,
		RemotePolicy:  req.RemotePolicy,
		Benefits:      req.Benefits,
		CultureTags:   req.CultureTags,
		SocialLinks:   req.SocialLinks,
		IsActive:      true,
		CreatedBy:     createdBy,
		CreatedAt:     now,
	}
	if err := c.Rename(req.Name); err != nil {
		return nil, err
	}
	return c, nil
}

// ============================================================================
// Domain Methods
// ============================================================================

// Rename changes the name and regenerates the slug
func (c *Company) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName()
	}
	slug := kernel.Slugify(name)
	if slug == "" {
		return ErrInvalidName().WithDetail("name", name)
	}

	c.Name = name
	c.Slug = slug
	c.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy checks whether userID created the company
func (c *Company) IsOwnedBy(userID kernel.UserID) bool {
	return c.CreatedBy == userID
}

// Verify marks the company as verified
func (c *Company) Verify() {
	c.IsVerified = true
	c.UpdatedAt = time.Now()
}

// Deactivate hides the company from public listings
func (c *Company) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

// ApplyUpdate applies the non-nil fields of req
func (c *Company) ApplyUpdate(req UpdateCompanyRequest) error {
	if req.Name != nil && strings.TrimSpace(*req.Name) != c.Name {
		if err := c.Rename(*req.Name); err != nil {
			return err
		}
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.LogoURL != nil {
		c.LogoURL = *req.LogoURL
	}
	if req.CoverImageURL != nil {
		c.CoverImageURL = *req.CoverImageURL
	}
	if req.Website != nil {
		c.Website = *req.Website
	}
	if req.Industry != nil {
		c.Industry = *req.Industry
	}
	if req.Size != nil {
		c.Size = *req.Size
	}
	if req.FoundedYear != nil {
		year := *req.FoundedYear
		c.FoundedYear = &year
	}
	if req.Headquarters != nil {
		c.Headquarters = *req.Headquarters
	}
	if req.RemotePolicy != nil {
		c.RemotePolicy = *req.RemotePolicy
	}
	if req.Benefits != nil {
		c.Benefits = req.Benefits
	}
	if req.CultureTags != nil {
		c.CultureTags = req.CultureTags
	}
	if req.SocialLinks != nil {
		c.SocialLinks = *req.SocialLinks
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	c.UpdatedAt = time.Now()
	return nil
}
