package user

import (
	"testing"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser(RegisterUserRequest{Email: " Ada@Example.COM ", FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, kernel.Email("ada@example.com"), u.Email)
	assert.Equal(t, RoleCandidate, u.Role)
	assert.Equal(t, "Ada Lovelace", u.FullName)
	assert.True(t, u.IsActive)

	_, err = NewUser(RegisterUserRequest{Email: "nope"})
	assert.True(t, errx.IsType(err, errx.TypeValidation))

	_, err = NewUser(RegisterUserRequest{Email: "a@b.co", Role: "admin"})
	assert.True(t, errx.IsType(err, errx.TypeValidation))
}

func TestIdentitySyncRespectsCustomizedName(t *testing.T) {
	u, err := NewUser(RegisterUserRequest{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)

	first := kernel.FirstName("Augusta")
	require.NoError(t, u.UpdateProfile(UpdateProfileRequest{FirstName: &first}))
	assert.True(t, u.NameCustomized)
	assert.Equal(t, "Augusta Lovelace", u.FullName)

	changed := u.ApplyIdentity(SyncIdentityRequest{FirstName: "Ada", LastName: "King", ProfileImage: "https://img.example.com/a.png"})
	assert.True(t, changed)
	assert.Equal(t, kernel.FirstName("Augusta"), u.FirstName)
	assert.Equal(t, "https://img.example.com/a.png", u.ProfileImage)

	assert.False(t, u.ApplyIdentity(SyncIdentityRequest{ProfileImage: "https://img.example.com/a.png"}))
}
