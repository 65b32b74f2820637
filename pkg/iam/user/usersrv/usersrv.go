package usersrv

import (
	"context"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/logx"
)

// UserDeleter runs the delete cascade of a user
type UserDeleter interface {
	DeleteUser(ctx context.Context, id kernel.UserID) error
}

// UserService provides business operations for users
type UserService struct {
	userRepo user.Repository
	deleter  UserDeleter
}

// NewUserService creates a new instance of the user service
func NewUserService(userRepo user.Repository, deleter UserDeleter) *UserService {
	return &UserService{
		userRepo: userRepo,
		deleter:  deleter,
	}
}

// Register creates a user explicitly. The email must not be taken.
func (s *UserService) Register(ctx context.Context, req user.RegisterUserRequest) (*user.User, error) {
	u, err := user.NewUser(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, u.Email); err == nil {
		return nil, user.ErrEmailAlreadyExists().WithDetail("email", u.Email.String())
	} else if !errx.IsNotFound(err) {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	logx.WithFields(logx.Fields{
		"user_id": u.ID.String(),
		"role":    string(u.Role),
	}).Info("user registered")
	return u, nil
}

// SyncFromIdentity upserts the user behind an identity provider subject on
// sign-in. An existing account with the same email is linked to the subject.
// Returns whether a new user was created.
func (s *UserService) SyncFromIdentity(ctx context.Context, req user.SyncIdentityRequest) (*user.User, bool, error) {
	if req.ExternalID.IsEmpty() {
		return nil, false, user.ErrInvalidRequest().WithDetail("external_id", "required")
	}

	existing, err := s.userRepo.GetByExternalID(ctx, req.ExternalID)
	switch {
	case err == nil:
		if existing.ApplyIdentity(req) {
			if err := s.userRepo.Update(ctx, existing.ID, existing); err != nil {
				return nil, false, err
			}
		}
		return existing, false, nil
	case !errx.IsNotFound(err):
		return nil, false, err
	}

	if req.Email != "" {
		byEmail, err := s.userRepo.GetByEmail(ctx, req.Email)
		switch {
		case err == nil:
			byEmail.ExternalID = req.ExternalID
			byEmail.ApplyIdentity(req)
			if err := s.userRepo.Update(ctx, byEmail.ID, byEmail); err != nil {
				return nil, false, err
			}
			logx.Infof("linked identity %s to user %s", req.ExternalID, byEmail.ID)
			return byEmail, false, nil
		case !errx.IsNotFound(err):
			return nil, false, err
		}
	}

	u, err := user.NewUser(user.RegisterUserRequest{
		ExternalID:   req.ExternalID,
		Provider:     req.Provider,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		ProfileImage: req.ProfileImage,
		Role:         req.Role,
	})
	if err != nil {
		return nil, false, err
	}
	if req.FullName != "" {
		u.FullName = req.FullName
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, false, err
	}
	logx.Infof("created user %s for identity %s", u.ID, req.ExternalID)
	return u, true, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// List retrieves users with pagination
func (s *UserService) List(ctx context.Context, pagination kernel.PaginationOptions) (*user.PaginatedUsersResponse, error) {
	return s.userRepo.List(ctx, pagination.Normalize())
}

// UpdateProfile edits a profile. Users may only edit themselves unless admin.
func (s *UserService) UpdateProfile(ctx context.Context, actor kernel.Actor, id kernel.UserID, req user.UpdateProfileRequest) (*user.User, error) {
	if !actor.Owns(id) {
		return nil, user.ErrInsufficientPermissions().WithDetail("user_id", id.String())
	}

	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.UpdateProfile(req); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, id, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes the user with everything that references it
func (s *UserService) DeleteUser(ctx context.Context, actor kernel.Actor, id kernel.UserID) error {
	if !actor.Owns(id) {
		return user.ErrInsufficientPermissions().WithDetail("user_id", id.String())
	}
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.deleter.DeleteUser(ctx, id); err != nil {
		return err
	}
	logx.Infof("user %s deleted", id)
	return nil
}

// ResolveIdentity implements auth.IdentityResolver. Unknown subjects resolve
// to an empty ID without error.
func (s *UserService) ResolveIdentity(ctx context.Context, ext kernel.ExternalIdentity) (kernel.UserID, string, error) {
	u, err := s.userRepo.GetByExternalID(ctx, ext)
	if err != nil {
		if errx.IsNotFound(err) {
			return "", "", nil
		}
		return "", "", err
	}
	if !u.IsActive {
		return "", "", user.ErrUserInactive().WithDetail("user_id", u.ID.String())
	}
	return u.ID, string(u.Role), nil
}
