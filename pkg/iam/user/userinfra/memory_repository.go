package userinfra

import (
	"context"
	"sort"
	"sync"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
)

// MemoryUserRepository keeps users in process memory
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[kernel.UserID]user.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[kernel.UserID]user.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, u *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(u, ""); err != nil {
		return err
	}
	r.users[u.ID] = clone(u)
	return nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, id kernel.UserID, u *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	if err := r.checkUnique(u, id); err != nil {
		return err
	}
	stored := clone(u)
	stored.ID = id
	r.users[id] = stored
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	return r.find(ctx, func(u *user.User) bool { return u.ID == id })
}

func (r *MemoryUserRepository) GetByExternalID(ctx context.Context, ext kernel.ExternalIdentity) (*user.User, error) {
	if ext.IsEmpty() {
		return nil, user.ErrUserNotFound()
	}
	return r.find(ctx, func(u *user.User) bool { return u.ExternalID == ext })
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	normalized := email.Normalize()
	return r.find(ctx, func(u *user.User) bool { return u.Email.Normalize() == normalized })
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id kernel.UserID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryUserRepository) Exists(ctx context.Context, id kernel.UserID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *MemoryUserRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	all := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return kernel.PaginateSlice(all, pagination), nil
}

func (r *MemoryUserRepository) find(ctx context.Context, match func(*user.User) bool) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(&u) {
			found := clone(&u)
			return &found, nil
		}
	}
	return nil, user.ErrUserNotFound()
}

// checkUnique must be called with the write lock held
func (r *MemoryUserRepository) checkUnique(u *user.User, self kernel.UserID) error {
	email := u.Email.Normalize()
	for id, existing := range r.users {
		if id == self || id == u.ID {
			continue
		}
		if existing.Email.Normalize() == email {
			return user.ErrEmailAlreadyExists()
		}
		if !u.ExternalID.IsEmpty() && existing.ExternalID == u.ExternalID {
			return user.ErrExternalIDAlreadyExists()
		}
	}
	return nil
}

func clone(u *user.User) user.User {
	c := *u
	c.Email = u.Email.Normalize()
	if u.Skills != nil {
		c.Skills = append([]string(nil), u.Skills...)
	}
	return c
}

// Count returns the number of stored users
func (r *MemoryUserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

var _ user.Repository = (*MemoryUserRepository)(nil)
