package application

import (
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
)

// ApplyRequest - DTO for submitting an application
type ApplyRequest struct {
	JobID       kernel.JobID `json:"job_id"`
	CoverLetter string       `json:"cover_letter,omitempty"`
	ResumeURL   string       `json:"resume_url,omitempty"`
}

// UpdateApplicationRequest - DTO for recruiter updates
type UpdateApplicationRequest struct {
	Status *ApplicationStatus `json:"status,omitempty"`
	Notes  *string            `json:"notes,omitempty"`
	Rating *int               `json:"rating,omitempty"`
}
