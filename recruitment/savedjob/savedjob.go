package savedjob

import (
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
)

// SavedJob is a bookmark of a job by a user
type SavedJob struct {
	ID      kernel.SavedJobID `json:"id"`
	UserID  kernel.UserID     `json:"user_id"`
	JobID   kernel.JobID      `json:"job_id"`
	SavedAt time.Time         `json:"saved_at"`
}

func New(userID kernel.UserID, jobID kernel.JobID) *SavedJob {
	return &SavedJob{
		ID:      kernel.NewSavedJobID(kernel.NewID()),
		UserID:  userID,
		JobID:   jobID,
		SavedAt: time.Now(),
	}
}
