package jobinfra

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job"
)

type storedJob struct {
	job job.Job
	seq uint64
}

// MemoryJobRepository keeps jobs in process memory. seq records insertion
// order so jobs created in the same instant still list newest first.
type MemoryJobRepository struct {
	mu   sync.RWMutex
	jobs map[kernel.JobID]*storedJob
	seq  uint64
}

func NewMemoryJobRepository() *MemoryJobRepository {
	return &MemoryJobRepository{jobs: make(map[kernel.JobID]*storedJob)}
}

func (r *MemoryJobRepository) Create(ctx context.Context, j *job.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[j.ID]; ok {
		return job.ErrJobAlreadyExists().WithDetail("job_id", j.ID.String())
	}
	r.seq++
	r.jobs[j.ID] = &storedJob{job: clone(j), seq: r.seq}
	return nil
}

func (r *MemoryJobRepository) Update(ctx context.Context, id kernel.JobID, j *job.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.jobs[id]
	if !ok {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	updated := clone(j)
	updated.ID = id
	// counters belong to the increment methods
	updated.ViewCount = stored.job.ViewCount
	updated.ApplicationCount = stored.job.ApplicationCount
	updated.CreatedAt = stored.job.CreatedAt
	stored.job = updated
	return nil
}

func (r *MemoryJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	found := clone(&stored.job)
	return &found, nil
}

func (r *MemoryJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; !ok {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	delete(r.jobs, id)
	return nil
}

func (r *MemoryJobRepository) ListOpen(ctx context.Context, n int) ([]*job.Job, error) {
	jobs, err := r.list(ctx, func(j *job.Job) bool { return j.IsListed() })
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	if len(jobs) > n {
		jobs = jobs[:n]
	}
	return jobs, nil
}

func (r *MemoryJobRepository) ListByRecruiter(ctx context.Context, recruiterID kernel.ExternalIdentity) ([]*job.Job, error) {
	return r.list(ctx, func(j *job.Job) bool { return j.RecruiterID == recruiterID })
}

func (r *MemoryJobRepository) ListByCompany(ctx context.Context, companyID kernel.CompanyID) ([]*job.Job, error) {
	return r.list(ctx, func(j *job.Job) bool { return j.CompanyID == companyID })
}

func (r *MemoryJobRepository) IncrementViewCount(ctx context.Context, id kernel.JobID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if stored, ok := r.jobs[id]; ok {
		stored.job.ViewCount++
		stored.job.UpdatedAt = time.Now()
	}
	return nil
}

func (r *MemoryJobRepository) IncrementApplicationCount(ctx context.Context, id kernel.JobID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.jobs[id]
	if !ok {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	stored.job.ApplicationCount++
	stored.job.UpdatedAt = time.Now()
	return nil
}

// Count returns the number of stored jobs
func (r *MemoryJobRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}

func (r *MemoryJobRepository) list(ctx context.Context, match func(*job.Job) bool) ([]*job.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	matched := make([]*storedJob, 0)
	for _, s := range r.jobs {
		if match(&s.job) {
			matched = append(matched, &storedJob{job: clone(&s.job), seq: s.seq})
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, k int) bool {
		a, b := matched[i], matched[k]
		if !a.job.CreatedAt.Equal(b.job.CreatedAt) {
			return a.job.CreatedAt.After(b.job.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]*job.Job, 0, len(matched))
	for _, s := range matched {
		out = append(out, &s.job)
	}
	return out, nil
}

func clone(j *job.Job) job.Job {
	cp := *j
	cp.SkillsRequired = append([]string(nil), j.SkillsRequired...)
	cp.SkillsPreferred = append([]string(nil), j.SkillsPreferred...)
	cp.Tags = append([]string(nil), j.Tags...)
	if j.Location != nil {
		loc := *j.Location
		cp.Location = &loc
	}
	if j.Salary.Min != nil {
		v := *j.Salary.Min
		cp.Salary.Min = &v
	}
	if j.Salary.Max != nil {
		v := *j.Salary.Max
		cp.Salary.Max = &v
	}
	return cp
}

var _ job.Repository = (*MemoryJobRepository)(nil)
