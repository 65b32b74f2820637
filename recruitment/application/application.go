package application

import (
	"slices"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
)

// ApplicationStatus represents the status of an application
type ApplicationStatus string

const (
	ApplicationStatusPending               ApplicationStatus = "pending"
	ApplicationStatusReviewed              ApplicationStatus = "reviewed"
	ApplicationStatusShortlisted           ApplicationStatus = "shortlisted"
	ApplicationStatusScheduledForInterview ApplicationStatus = "scheduled_for_interview"
	ApplicationStatusInterviewed           ApplicationStatus = "interviewed"
	ApplicationStatusRejected              ApplicationStatus = "rejected"
	ApplicationStatusHired                 ApplicationStatus = "hired"
)

var validStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusReviewed,
	ApplicationStatusShortlisted,
	ApplicationStatusScheduledForInterview,
	ApplicationStatusInterviewed,
	ApplicationStatusRejected,
	ApplicationStatusHired,
}

// IsValid reports whether s is a known status
func (s ApplicationStatus) IsValid() bool {
	return slices.Contains(validStatuses, s)
}

// CandidateSnapshot is the candidate profile as it was when they applied
type CandidateSnapshot struct {
	FullName     string       `json:"full_name"`
	Email        kernel.Email `json:"email"`
	Phone        kernel.Phone `json:"phone,omitempty"`
	Location     string       `json:"location,omitempty"`
	Skills       []string     `json:"skills,omitempty"`
	Experience   string       `json:"experience,omitempty"`
	LinkedInURL  string       `json:"linkedin_url,omitempty"`
	PortfolioURL string       `json:"portfolio_url,omitempty"`
}

type Application struct {
	ID          kernel.ApplicationID `json:"id"`
	CandidateID kernel.UserID        `json:"candidate_id"`
	JobID       kernel.JobID         `json:"job_id"`
	Status      ApplicationStatus    `json:"status"`
	CoverLetter string               `json:"cover_letter,omitempty"`
	ResumeURL   string               `json:"resume_url,omitempty"`
	Notes       string               `json:"notes,omitempty"`
	Rating      *int                 `json:"rating,omitempty"`
	Candidate   CandidateSnapshot    `json:"candidate"`
	AppliedAt   time.Time            `json:"applied_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// New builds a pending application with the candidate profile snapshot
func New(candidateID kernel.UserID, req ApplyRequest, snapshot CandidateSnapshot) *Application {
	now := time.Now()
	if snapshot.Skills == nil {
		snapshot.Skills = []string{}
	}
	return &Application{
		ID:          kernel.NewApplicationID(kernel.NewID()),
		CandidateID: candidateID,
		JobID:       req.JobID,
		Status:      ApplicationStatusPending,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
		Candidate:   snapshot,
		AppliedAt:   now,
		UpdatedAt:   now,
	}
}

// ============================================================================
// Domain Methods
// ============================================================================

// UpdateStatus sets a new status. Any known status may follow any other.
func (a *Application) UpdateStatus(newStatus ApplicationStatus) error {
	if !newStatus.IsValid() {
		return ErrInvalidStatus().WithDetail("status", string(newStatus))
	}
	a.Status = newStatus
	a.UpdatedAt = time.Now()
	return nil
}

// Rate records the recruiter rating (1-5)
func (a *Application) Rate(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating().WithDetail("rating", rating)
	}
	a.Rating = &rating
	a.UpdatedAt = time.Now()
	return nil
}

// ApplyReview applies a recruiter update. Nothing is changed if any field is invalid.
func (a *Application) ApplyReview(req UpdateApplicationRequest) error {
	if req.Status != nil && !req.Status.IsValid() {
		return ErrInvalidStatus().WithDetail("status", string(*req.Status))
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return ErrInvalidRating().WithDetail("rating", *req.Rating)
	}

	if req.Status != nil {
		a.Status = *req.Status
	}
	if req.Rating != nil {
		rating := *req.Rating
		a.Rating = &rating
	}
	if req.Notes != nil {
		a.Notes = *req.Notes
	}
	a.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy checks whether userID is the applicant
func (a *Application) IsOwnedBy(userID kernel.UserID) bool {
	return a.CandidateID == userID
}

// IsFinal checks whether a decision has been made
func (a *Application) IsFinal() bool {
	return a.Status == ApplicationStatusRejected || a.Status == ApplicationStatusHired
}
