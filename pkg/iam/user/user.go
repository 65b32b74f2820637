package user

import (
	"strings"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
)

// Role is the job board role of a user
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleCandidate || r == RoleRecruiter
}

type User struct {
	ID             kernel.UserID           `json:"id"`
	ExternalID     kernel.ExternalIdentity `json:"external_id,omitempty"`
	Provider       string                  `json:"provider,omitempty"`
	Email          kernel.Email            `json:"email"`
	FirstName      kernel.FirstName        `json:"first_name"`
	LastName       kernel.LastName         `json:"last_name"`
	FullName       string                  `json:"full_name"`
	ProfileImage   string                  `json:"profile_image,omitempty"`
	Role           Role                    `json:"role"`
	Phone          kernel.Phone            `json:"phone,omitempty"`
	Location       string                  `json:"location,omitempty"`
	Bio            string                  `json:"bio,omitempty"`
	Skills         []string                `json:"skills,omitempty"`
	Experience     string                  `json:"experience,omitempty"`
	Education      string                  `json:"education,omitempty"`
	ResumeURL      string                  `json:"resume_url,omitempty"`
	LinkedInURL    string                  `json:"linkedin_url,omitempty"`
	GitHubURL      string                  `json:"github_url,omitempty"`
	PortfolioURL   string                  `json:"portfolio_url,omitempty"`
	IsActive       bool                    `json:"is_active"`
	NameCustomized bool                    `json:"name_customized"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// NewUser validates req and builds an active user
func NewUser(req RegisterUserRequest) (*User, error) {
	email := req.Email.Normalize()
	if !email.IsValid() {
		return nil, ErrInvalidEmail().WithDetail("email", req.Email.String())
	}
	role := req.Role
	if role == "" {
		role = RoleCandidate
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole().WithDetail("role", string(role))
	}

	now := time.Now()
	return &User{
		ID:           kernel.NewUserID(kernel.NewID()),
		ExternalID:   req.ExternalID,
		Provider:     req.Provider,
		Email:        email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		FullName:     joinName(req.FirstName, req.LastName),
		ProfileImage: req.ProfileImage,
		Role:         role,
		Skills:       []string{},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsRecruiter checks if the user posts jobs
func (u *User) IsRecruiter() bool {
	return u.Role == RoleRecruiter
}

// DisplayName returns the full name, falling back to the email
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if name := joinName(u.FirstName, u.LastName); name != "" {
		return name
	}
	return u.Email.String()
}

// ApplyIdentity copies provider data onto the user. Names are only taken
// from the provider while the user has not edited them.
func (u *User) ApplyIdentity(req SyncIdentityRequest) bool {
	changed := false

	if req.Email != "" && req.Email.Normalize() != u.Email {
		u.Email = req.Email.Normalize()
		changed = true
	}
	if req.ProfileImage != "" && req.ProfileImage != u.ProfileImage {
		u.ProfileImage = req.ProfileImage
		changed = true
	}
	if req.Provider != "" && req.Provider != u.Provider {
		u.Provider = req.Provider
		changed = true
	}

	if !u.NameCustomized {
		first, last := req.FirstName, req.LastName
		full := req.FullName
		if full == "" {
			full = joinName(first, last)
		}
		if first != u.FirstName || last != u.LastName || full != u.FullName {
			u.FirstName = first
			u.LastName = last
			u.FullName = full
			changed = true
		}
	}

	if changed {
		u.UpdatedAt = time.Now()
	}
	return changed
}

// UpdateProfile applies a profile edit. Any name change marks the name as
// customized so later identity syncs keep it.
func (u *User) UpdateProfile(req UpdateProfileRequest) error {
	nameChanged := false
	if req.FirstName != nil && *req.FirstName != u.FirstName {
		u.FirstName = *req.FirstName
		nameChanged = true
	}
	if req.LastName != nil && *req.LastName != u.LastName {
		u.LastName = *req.LastName
		nameChanged = true
	}
	if req.FullName != nil && *req.FullName != u.FullName {
		u.FullName = *req.FullName
		nameChanged = true
	} else if nameChanged {
		u.FullName = joinName(u.FirstName, u.LastName)
	}
	if nameChanged {
		u.NameCustomized = true
	}

	if req.Role != nil {
		if !req.Role.IsValid() {
			return ErrInvalidRole().WithDetail("role", string(*req.Role))
		}
		u.Role = *req.Role
	}

	if req.ProfileImage != nil {
		u.ProfileImage = *req.ProfileImage
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Location != nil {
		u.Location = *req.Location
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Skills != nil {
		u.Skills = req.Skills
	}
	if req.Experience != nil {
		u.Experience = *req.Experience
	}
	if req.Education != nil {
		u.Education = *req.Education
	}
	if req.ResumeURL != nil {
		u.ResumeURL = *req.ResumeURL
	}
	if req.LinkedInURL != nil {
		u.LinkedInURL = *req.LinkedInURL
	}
	if req.GitHubURL != nil {
		u.GitHubURL = *req.GitHubURL
	}
	if req.PortfolioURL != nil {
		u.PortfolioURL = *req.PortfolioURL
	}

	u.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the user as inactive
func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = time.Now()
}

// Activate marks the user as active
func (u *User) Activate() {
	u.IsActive = true
	u.UpdatedAt = time.Now()
}

// ============================================================================
// Helper Methods
// ============================================================================

func joinName(first kernel.FirstName, last kernel.LastName) string {
	return strings.TrimSpace(string(first) + " " + string(last))
}
