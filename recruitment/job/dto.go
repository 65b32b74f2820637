package job

import (
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob"
)

// ============================================================================
// Request DTOs
// ============================================================================

// CreateJobRequest - DTO for posting a job
type CreateJobRequest struct {
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	Requirements        string           `json:"requirements,omitempty"`
	Responsibilities    string           `json:"responsibilities,omitempty"`
	Benefits            string           `json:"benefits,omitempty"`
	SkillsRequired      []string         `json:"skills_required"`
	SkillsPreferred     []string         `json:"skills_preferred,omitempty"`
	Status              JobStatus        `json:"status,omitempty"`
	Location            string           `json:"location,omitempty"`
	RemoteWork          bool             `json:"remote_work"`
	JobType             JobType          `json:"job_type"`
	ExperienceLevel     ExperienceLevel  `json:"experience_level"`
	Salary              Salary           `json:"salary"`
	ApplicationDeadline *time.Time       `json:"application_deadline,omitempty"`
	StartDate           *time.Time       `json:"start_date,omitempty"`
	IsFeatured          bool             `json:"is_featured"`
	IsUrgent            bool             `json:"is_urgent"`
	Tags                []string         `json:"tags,omitempty"`
	CompanyID           kernel.CompanyID `json:"company_id"`

	// Set from the caller's token, never from the body
	RecruiterID kernel.ExternalIdentity `json:"-"`
}

// UpdateJobRequest - DTO for partial job updates
type UpdateJobRequest struct {
	Title               *string          `json:"title,omitempty"`
	Description         *string          `json:"description,omitempty"`
	Requirements        *string          `json:"requirements,omitempty"`
	Responsibilities    *string          `json:"responsibilities,omitempty"`
	Benefits            *string          `json:"benefits,omitempty"`
	SkillsRequired      []string         `json:"skills_required,omitempty"`
	SkillsPreferred     []string         `json:"skills_preferred,omitempty"`
	Status              *JobStatus       `json:"status,omitempty"`
	Location            *string          `json:"location,omitempty"`
	RemoteWork          *bool            `json:"remote_work,omitempty"`
	JobType             *JobType         `json:"job_type,omitempty"`
	ExperienceLevel     *ExperienceLevel `json:"experience_level,omitempty"`
	Salary              *Salary          `json:"salary,omitempty"`
	ApplicationDeadline *time.Time       `json:"application_deadline,omitempty"`
	StartDate           *time.Time       `json:"start_date,omitempty"`
	IsFeatured          *bool            `json:"is_featured,omitempty"`
	IsUrgent            *bool            `json:"is_urgent,omitempty"`
	Tags                []string         `json:"tags,omitempty"`
}

// ListCriteria are the listJobs inputs. String filters equal to "" or "all" are ignored.
type ListCriteria struct {
	Limit           int
	Offset          int
	Location        string
	CompanyName     string
	SearchQuery     string
	JobType         string
	ExperienceLevel string
	RemoteWork      *bool
}

// Window returns the clamped offset and limit
func (c ListCriteria) Window() (int, int) {
	return kernel.ClampWindow(c.Offset, c.Limit)
}

// ============================================================================
// Response DTOs
// ============================================================================

// EnrichedJob is a job with its resolved company and recruiter. Either may be
// nil when the reference no longer resolves.
type EnrichedJob struct {
	*Job
	Company   *company.Company `json:"company,omitempty"`
	Recruiter *user.User       `json:"recruiter,omitempty"`
}

// CompanyName returns the resolved company name or "" when absent
func (e *EnrichedJob) CompanyName() string {
	if e.Company == nil {
		return ""
	}
	return e.Company.Name
}

// JobDetail is the single-job view
type JobDetail struct {
	EnrichedJob
	Applications []*application.Application `json:"applications"`
	SavedJobs    []*savedjob.SavedJob       `json:"saved_jobs"`
}

// JobIDResponse is returned by create, update and delete
type JobIDResponse struct {
	ID kernel.JobID `json:"id"`
}
