package applicationinfra

import (
	"context"
	"sort"
	"sync"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application"
)

// MemoryApplicationRepository keeps applications in process memory
type MemoryApplicationRepository struct {
	mu   sync.RWMutex
	apps map[kernel.ApplicationID]application.Application
}

func NewMemoryApplicationRepository() *MemoryApplicationRepository {
	return &MemoryApplicationRepository{apps: make(map[kernel.ApplicationID]application.Application)}
}

func (r *MemoryApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.apps {
		if existing.CandidateID == app.CandidateID && existing.JobID == app.JobID {
			return application.ErrAlreadyApplied().WithDetail("job_id", app.JobID.String())
		}
	}
	r.apps[app.ID] = clone(app)
	return nil
}

func (r *MemoryApplicationRepository) Update(ctx context.Context, id kernel.ApplicationID, app *application.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.apps[id]; !ok {
		return application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	stored := clone(app)
	stored.ID = id
	r.apps[id] = stored
	return nil
}

func (r *MemoryApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.apps[id]
	if !ok {
		return nil, application.ErrApplicationNotFound()
	}
	found := clone(&app)
	return &found, nil
}

func (r *MemoryApplicationRepository) GetByCandidateAndJob(ctx context.Context, candidateID kernel.UserID, jobID kernel.JobID) (*application.Application, error) {
	matches, err := r.list(ctx, func(a *application.Application) bool {
		return a.CandidateID == candidateID && a.JobID == jobID
	})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, application.ErrApplicationNotFound()
	}
	return matches[0], nil
}

func (r *MemoryApplicationRepository) Delete(ctx context.Context, id kernel.ApplicationID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.apps[id]; !ok {
		return application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	delete(r.apps, id)
	return nil
}

func (r *MemoryApplicationRepository) ListByJob(ctx context.Context, jobID kernel.JobID) ([]*application.Application, error) {
	return r.list(ctx, func(a *application.Application) bool { return a.JobID == jobID })
}

func (r *MemoryApplicationRepository) ListByCandidate(ctx context.Context, candidateID kernel.UserID) ([]*application.Application, error) {
	return r.list(ctx, func(a *application.Application) bool { return a.CandidateID == candidateID })
}

func (r *MemoryApplicationRepository) DeleteByJob(ctx context.Context, jobID kernel.JobID) (int64, error) {
	return r.deleteWhere(ctx, func(a *application.Application) bool { return a.JobID == jobID })
}

func (r *MemoryApplicationRepository) DeleteByCandidate(ctx context.Context, candidateID kernel.UserID) (int64, error) {
	return r.deleteWhere(ctx, func(a *application.Application) bool { return a.CandidateID == candidateID })
}

// Count returns the number of stored applications
func (r *MemoryApplicationRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.apps)
}

func (r *MemoryApplicationRepository) list(ctx context.Context, match func(*application.Application) bool) ([]*application.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]*application.Application, 0)
	for _, a := range r.apps {
		if match(&a) {
			found := clone(&a)
			out = append(out, &found)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].AppliedAt.Equal(out[j].AppliedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].AppliedAt.After(out[j].AppliedAt)
	})
	return out, nil
}

func (r *MemoryApplicationRepository) deleteWhere(ctx context.Context, match func(*application.Application) bool) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, a := range r.apps {
		if match(&a) {
			delete(r.apps, id)
			n++
		}
	}
	return n, nil
}

func clone(a *application.Application) application.Application {
	cp := *a
	if a.Rating != nil {
		rating := *a.Rating
		cp.Rating = &rating
	}
	if a.Candidate.Skills != nil {
		cp.Candidate.Skills = append([]string(nil), a.Candidate.Skills...)
	}
	return cp
}

var _ application.Repository = (*MemoryApplicationRepository)(nil)
