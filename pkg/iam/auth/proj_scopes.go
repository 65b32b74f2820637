package auth

import "strings"

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - Job board
// ============================================================================

const (
	ScopeAll = "*"

	// Job scopes
	ScopeJobsAll    = "jobs:*"
	ScopeJobsRead   = "jobs:read"
	ScopeJobsWrite  = "jobs:write"
	ScopeJobsDelete = "jobs:delete"

	// Company scopes
	ScopeCompaniesAll    = "companies:*"
	ScopeCompaniesRead   = "companies:read"
	ScopeCompaniesWrite  = "companies:write"
	ScopeCompaniesDelete = "companies:delete"

	// Application scopes
	ScopeApplicationsAll    = "applications:*"
	ScopeApplicationsRead   = "applications:read"
	ScopeApplicationsApply  = "applications:apply"  // Submit and withdraw own applications
	ScopeApplicationsReview = "applications:review" // Update status, notes and rating

	// Saved job scopes
	ScopeSavedJobsAll = "saved_jobs:*"

	// File scopes
	ScopeFilesAll   = "files:*"
	ScopeFilesRead  = "files:read"
	ScopeFilesWrite = "files:write"

	// Profile scopes
	ScopeProfileAll = "profile:*"
	ScopeUsersRead  = "users:read"
)

const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

// DomainScopeDescriptions provides descriptions for domain scopes
var DomainScopeDescriptions = map[string]string{
	ScopeJobsAll:    "Full access to job management",
	ScopeJobsRead:   "View jobs",
	ScopeJobsWrite:  "Create and edit jobs",
	ScopeJobsDelete: "Delete jobs",

	ScopeCompaniesAll:    "Full access to company management",
	ScopeCompaniesRead:   "View companies",
	ScopeCompaniesWrite:  "Create and edit companies",
	ScopeCompaniesDelete: "Delete companies",

	ScopeApplicationsAll:    "Full access to application management",
	ScopeApplicationsRead:   "View applications",
	ScopeApplicationsApply:  "Apply to jobs and withdraw applications",
	ScopeApplicationsReview: "Review applications",

	ScopeSavedJobsAll: "Save and unsave jobs",

	ScopeFilesAll:   "Full access to uploaded files",
	ScopeFilesRead:  "Download uploaded files",
	ScopeFilesWrite: "Upload files",

	ScopeProfileAll: "Manage own profile",
	ScopeUsersRead:  "View other user profiles",
}

// RoleScopes defines the scopes granted to each user role
var RoleScopes = map[string][]string{
	RoleCandidate: {
		ScopeJobsRead,
		ScopeCompaniesRead,
		ScopeApplicationsRead,
		ScopeApplicationsApply,
		ScopeSavedJobsAll,
		ScopeFilesAll,
		ScopeProfileAll,
	},
	RoleRecruiter: {
		ScopeJobsAll,
		ScopeCompaniesAll,
		ScopeApplicationsRead,
		ScopeApplicationsReview,
		ScopeSavedJobsAll,
		ScopeFilesAll,
		ScopeProfileAll,
		ScopeUsersRead,
	},
	RoleAdmin: {
		ScopeAll,
	},
}

// ScopesForRole returns the scopes of role, falling back to the candidate set
func ScopesForRole(role string) []string {
	if scopes, ok := RoleScopes[role]; ok {
		return scopes
	}
	return RoleScopes[RoleCandidate]
}

// HasScope reports whether granted satisfies required. "*" grants everything and
// "resource:*" grants every action on resource.
func HasScope(granted []string, required string) bool {
	resource, _, _ := strings.Cut(required, ":")
	for _, g := range granted {
		switch {
		case g == ScopeAll, g == required:
			return true
		case strings.HasSuffix(g, ":*") && strings.TrimSuffix(g, ":*") == resource:
			return true
		}
	}
	return false
}
