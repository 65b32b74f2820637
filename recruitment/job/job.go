package job

import (
	"slices"
	"strings"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
)

// JobStatus represents the status of a job posting
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"   // Visible and accepting applications
	JobStatusClosed JobStatus = "closed" // No longer accepting applications
	JobStatusPaused JobStatus = "paused" // Temporarily hidden
)

func (s JobStatus) IsValid() bool {
	return s == JobStatusOpen || s == JobStatusClosed || s == JobStatusPaused
}

type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

func (t JobType) IsValid() bool {
	return slices.Contains([]JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}, t)
}

type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceLead   ExperienceLevel = "lead"
)

func (l ExperienceLevel) IsValid() bool {
	return slices.Contains([]ExperienceLevel{ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceLead}, l)
}

// Salary is the optional advertised pay range
type Salary struct {
	Min      *int   `json:"min,omitempty"`
	Max      *int   `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
	Period   string `json:"period,omitempty"` // hourly, monthly, yearly
}

func (s Salary) IsEmpty() bool {
	return s.Min == nil && s.Max == nil
}

type Job struct {
	ID                  kernel.JobID            `json:"id"`
	Title               string                  `json:"title"`
	Slug                string                  `json:"slug"`
	Description         string                  `json:"description"`
	Requirements        string                  `json:"requirements,omitempty"`
	Responsibilities    string                  `json:"responsibilities,omitempty"`
	Benefits            string                  `json:"benefits,omitempty"`
	SkillsRequired      []string                `json:"skills_required"`
	SkillsPreferred     []string                `json:"skills_preferred,omitempty"`
	Status              JobStatus               `json:"status"`
	IsOpen              bool                    `json:"is_open"`
	Location            *string                 `json:"location,omitempty"`
	RemoteWork          bool                    `json:"remote_work"`
	JobType             JobType                 `json:"job_type"`
	ExperienceLevel     ExperienceLevel         `json:"experience_level"`
	Salary              Salary                  `json:"salary"`
	ApplicationDeadline *time.Time              `json:"application_deadline,omitempty"`
	StartDate           *time.Time              `json:"start_date,omitempty"`
	ApplicationCount    int                     `json:"application_count"`
	ViewCount           int                     `json:"view_count"`
	IsFeatured          bool                    `json:"is_featured"`
	IsUrgent            bool                    `json:"is_urgent"`
	Tags                []string                `json:"tags,omitempty"`
	RecruiterID         kernel.ExternalIdentity `json:"recruiter_id"`
	CompanyID           kernel.CompanyID        `json:"company_id"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}

// NewJob validates req and builds an open or explicitly-statused job
func NewJob(req CreateJobRequest) (*Job, error) {
	if req.RecruiterID.IsEmpty() {
		return nil, ErrInsufficientPermissions().WithDetail("reason", "missing recruiter identity")
	}
	if req.CompanyID.IsEmpty() {
		return nil, ErrCompanyRequired()
	}
	if !req.JobType.IsValid() {
		return nil, ErrInvalidJobType().WithDetail("job_type", string(req.JobType))
	}
	if !req.ExperienceLevel.IsValid() {
		return nil, ErrInvalidExperienceLevel().WithDetail("experience_level", string(req.ExperienceLevel))
	}
	if err := req.Salary.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	j := &Job{
		ID:                  kernel.NewJobID(kernel.NewID()),
		Description:         req.Description,
		Requirements:        req.Requirements,
		Responsibilities:    req.Responsibilities,
		Benefits:            req.Benefits,
		SkillsRequired:      req.SkillsRequired,
		SkillsPreferred:     req.SkillsPreferred,
		RemoteWork:          req.RemoteWork,
		JobType:             req.JobType,
		ExperienceLevel:     req.ExperienceLevel,
		Salary:              req.Salary,
		ApplicationDeadline: req.ApplicationDeadline,
		StartDate:           req.StartDate,
		IsFeatured:          req.IsFeatured,
		IsUrgent:            req.IsUrgent,
		Tags:                req.Tags,
		RecruiterID:         req.RecruiterID,
		CompanyID:           req.CompanyID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if j.SkillsRequired == nil {
		j.SkillsRequired = []string{}
	}
	if loc := strings.TrimSpace(req.Location); loc != "" {
		j.Location = &loc
	}
	if err := j.Rename(req.Title); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = JobStatusOpen
	}
	if err := j.SetStatus(status); err != nil {
		return nil, err
	}
	return j, nil
}

// ============================================================================
// Domain Methods
// ============================================================================

// Rename changes the title and regenerates the slug
func (j *Job) Rename(title string) error {
	title = strings.TrimSpace(title)
	slug := kernel.Slugify(title)
	if title == "" || slug == "" {
		return ErrInvalidTitle().WithDetail("title", title)
	}

	j.Title = title
	j.Slug = slug
	j.UpdatedAt = time.Now()
	return nil
}

// SetStatus is the only way status changes; IsOpen follows it
func (j *Job) SetStatus(status JobStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus().WithDetail("status", string(status))
	}
	j.Status = status
	j.IsOpen = status == JobStatusOpen
	j.UpdatedAt = time.Now()
	return nil
}

// IsListed reports whether the job appears in the public listing
func (j *Job) IsListed() bool {
	return j.Status == JobStatusOpen && j.IsOpen
}

// AcceptsApplications checks status and deadline
func (j *Job) AcceptsApplications(now time.Time) bool {
	if !j.IsListed() {
		return false
	}
	return j.ApplicationDeadline == nil || now.Before(*j.ApplicationDeadline)
}

// IsPostedBy checks whether ext is the recruiter of the job
func (j *Job) IsPostedBy(ext kernel.ExternalIdentity) bool {
	return !ext.IsEmpty() && j.RecruiterID == ext
}

// LocationText returns the location or "" when absent
func (j *Job) LocationText() string {
	if j.Location == nil {
		return ""
	}
	return *j.Location
}

// ApplyUpdate applies the non-nil fields of req
func (j *Job) ApplyUpdate(req UpdateJobRequest) error {
	if req.Title != nil && strings.TrimSpace(*req.Title) != j.Title {
		if err := j.Rename(*req.Title); err != nil {
			return err
		}
	}
	if req.Status != nil {
		if err := j.SetStatus(*req.Status); err != nil {
			return err
		}
	}
	if req.JobType != nil {
		if !req.JobType.IsValid() {
			return ErrInvalidJobType().WithDetail("job_type", string(*req.JobType))
		}
		j.JobType = *req.JobType
	}
	if req.ExperienceLevel != nil {
		if !req.ExperienceLevel.IsValid() {
			return ErrInvalidExperienceLevel().WithDetail("experience_level", string(*req.ExperienceLevel))
		}
		j.ExperienceLevel = *req.ExperienceLevel
	}
	if req.Description != nil {
		j.Description = *req.Description
	}
	if req.Requirements != nil {
		j.Requirements = *req.Requirements
	}
	if req.Responsibilities != nil {
		j.Responsibilities = *req.Responsibilities
	}
	if req.Benefits != nil {
		j.Benefits = *req.Benefits
	}
	if req.SkillsRequired != nil {
		j.SkillsRequired = req.SkillsRequired
	}
	if req.SkillsPreferred != nil {
		j.SkillsPreferred = req.SkillsPreferred
	}
	if req.Location != nil {
		loc := strings.TrimSpace(*req.Location)
		if loc == "" {
			j.Location = nil
		} else {
			j.Location = &loc
		}
	}
	if req.RemoteWork != nil {
		j.RemoteWork = *req.RemoteWork
	}
	if req.Salary != nil {
		if err := req.Salary.Validate(); err != nil {
			return err
		}
		j.Salary = *req.Salary
	}
	if req.ApplicationDeadline != nil {
		j.ApplicationDeadline = req.ApplicationDeadline
	}
	if req.StartDate != nil {
		j.StartDate = req.StartDate
	}
	if req.IsFeatured != nil {
		j.IsFeatured = *req.IsFeatured
	}
	if req.IsUrgent != nil {
		j.IsUrgent = *req.IsUrgent
	}
	if req.Tags != nil {
		j.Tags = req.Tags
	}
	j.UpdatedAt = time.Now()
	return nil
}

// Validate checks the range is ordered and non-negative
func (s Salary) Validate() error {
	if s.Min != nil && s.Max != nil && *s.Min > *s.Max {
		return ErrInvalidSalary().WithDetail("min", *s.Min).WithDetail("max", *s.Max)
	}
	if (s.Min != nil && *s.Min < 0) || (s.Max != nil && *s.Max < 0) {
		return ErrInvalidSalary()
	}
	return nil
}
