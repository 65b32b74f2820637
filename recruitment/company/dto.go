package company

import (
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
)

// CreateCompanyRequest - DTO for creating a company
type CreateCompanyRequest struct {
	Name          string             `json:"name"`
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
}

// UpdateCompanyRequest - DTO for partial company updates
type UpdateCompanyRequest struct {
	Name          *string             `json:"name,omitempty"`
	Description   *string             `json:"description,omitempty"`
	LogoURL       *string             `json:"logo_url,omitempty"`
	CoverImageURL *string             `json:"cover_image_url,omitempty"`
	Website       *string             `json:"website,omitempty"`
	Industry      *string             `json:"industry,omitempty"`
	Size          *string             `json:"size,omitempty"`
	FoundedYear   *int                `json:"founded_year,omitempty"`
	Headquarters  *string             `json:"headquarters,omitempty"`
	RemotePolicy  *string             `json:"remote_policy,omitempty"`
	Benefits      []string            `json:"benefits,omitempty"`
	CultureTags   []string            `json:"culture_tags,omitempty"`
	SocialLinks   *kernel.SocialLinks `json:"social_links,omitempty"`
	IsActive      *bool               `json:"is_active,omitempty"`
}

// Response type alias for paginated companies
type PaginatedCompaniesResponse = kernel.Paginated[Company]
