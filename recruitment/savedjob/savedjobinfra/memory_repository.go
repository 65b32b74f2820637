package savedjobinfra

import (
	"context"
	"sort"
	"sync"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob"
)

type pairKey struct {
	user kernel.UserID
	job  kernel.JobID
}

// MemorySavedJobRepository is keyed by (user, job) like the composite index
type MemorySavedJobRepository struct {
	mu    sync.RWMutex
	saved map[pairKey]savedjob.SavedJob
}

func NewMemorySavedJobRepository() *MemorySavedJobRepository {
	return &MemorySavedJobRepository{saved: make(map[pairKey]savedjob.SavedJob)}
}

func (r *MemorySavedJobRepository) Create(ctx context.Context, s *savedjob.SavedJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey{s.UserID, s.JobID}
	if _, ok := r.saved[key]; ok {
		return savedjob.ErrAlreadySaved().WithDetail("job_id", s.JobID.String())
	}
	r.saved[key] = *s
	return nil
}

func (r *MemorySavedJobRepository) Get(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) (*savedjob.SavedJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.saved[pairKey{userID, jobID}]
	if !ok {
		return nil, savedjob.ErrSavedJobNotFound()
	}
	return &s, nil
}

func (r *MemorySavedJobRepository) Exists(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.saved[pairKey{userID, jobID}]
	return ok, nil
}

func (r *MemorySavedJobRepository) Delete(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey{userID, jobID}
	if _, ok := r.saved[key]; !ok {
		return savedjob.ErrSavedJobNotFound().WithDetail("job_id", jobID.String())
	}
	delete(r.saved, key)
	return nil
}

func (r *MemorySavedJobRepository) ListByUser(ctx context.Context, userID kernel.UserID) ([]*savedjob.SavedJob, error) {
	return r.list(ctx, func(k pairKey) bool { return k.user == userID })
}

func (r *MemorySavedJobRepository) ListByJob(ctx context.Context, jobID kernel.JobID) ([]*savedjob.SavedJob, error) {
	return r.list(ctx, func(k pairKey) bool { return k.job == jobID })
}

func (r *MemorySavedJobRepository) DeleteByJob(ctx context.Context, jobID kernel.JobID) (int64, error) {
	return r.deleteWhere(ctx, func(k pairKey) bool { return k.job == jobID })
}

func (r *MemorySavedJobRepository) DeleteByUser(ctx context.Context, userID kernel.UserID) (int64, error) {
	return r.deleteWhere(ctx, func(k pairKey) bool { return k.user == userID })
}

// Count returns the number of stored records
func (r *MemorySavedJobRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.saved)
}

func (r *MemorySavedJobRepository) list(ctx context.Context, match func(pairKey) bool) ([]*savedjob.SavedJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]*savedjob.SavedJob, 0)
	for k, s := range r.saved {
		if match(k) {
			found := s
			out = append(out, &found)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].SavedAt.After(out[j].SavedAt)
	})
	return out, nil
}

func (r *MemorySavedJobRepository) deleteWhere(ctx context.Context, match func(pairKey) bool) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for k := range r.saved {
		if match(k) {
			delete(r.saved, k)
			n++
		}
	}
	return n, nil
}

var _ savedjob.Repository = (*MemorySavedJobRepository)(nil)
