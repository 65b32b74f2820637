package user

import (
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
)

// RegisterUserRequest - DTO for explicit registration
type RegisterUserRequest struct {
	ExternalID   kernel.ExternalIdentity `json:"-"`
	Provider     string                  `json:"provider,omitempty"`
	Email        kernel.Email            `json:"email"`
	FirstName    kernel.FirstName        `json:"first_name"`
	LastName     kernel.LastName         `json:"last_name"`
	ProfileImage string                  `json:"profile_image,omitempty"`
	Role         Role                    `json:"role"`
}

// SyncIdentityRequest - provider profile used on sign-in
type SyncIdentityRequest struct {
	ExternalID   kernel.ExternalIdentity `json:"-"`
	Provider     string                  `json:"provider,omitempty"`
	Email        kernel.Email            `json:"email"`
	FirstName    kernel.FirstName        `json:"first_name"`
	LastName     kernel.LastName         `json:"last_name"`
	FullName     string                  `json:"full_name,omitempty"`
	ProfileImage string                  `json:"profile_image,omitempty"`
	Role         Role                    `json:"role,omitempty"`
}

// UpdateProfileRequest - DTO for profile edits
type UpdateProfileRequest struct {
	FirstName    *kernel.FirstName `json:"first_name,omitempty"`
	LastName     *kernel.LastName  `json:"last_name,omitempty"`
	FullName     *string           `json:"full_name,omitempty"`
	ProfileImage *string           `json:"profile_image,omitempty"`
	Role         *Role             `json:"role,omitempty"`
	Phone        *kernel.Phone     `json:"phone,omitempty"`
	Location     *string           `json:"location,omitempty"`
	Bio          *string           `json:"bio,omitempty"`
	Skills       []string          `json:"skills,omitempty"`
	Experience   *string           `json:"experience,omitempty"`
	Education    *string           `json:"education,omitempty"`
	ResumeURL    *string           `json:"resume_url,omitempty"`
	LinkedInURL  *string           `json:"linkedin_url,omitempty"`
	GitHubURL    *string           `json:"github_url,omitempty"`
	PortfolioURL *string           `json:"portfolio_url,omitempty"`
}

// Response type alias for paginated users
type PaginatedUsersResponse = kernel.Paginated[User]
