package savedjob

import "github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"

// SaveJobRequest - DTO for save, unsave and toggle
type SaveJobRequest struct {
	JobID kernel.JobID `json:"job_id"`
}

// ToggleResponse reports the state after a toggle
type ToggleResponse struct {
	JobID kernel.JobID `json:"job_id"`
	Saved bool         `json:"saved"`
}

type IsSavedResponse struct {
	Saved bool `json:"saved"`
}
