package company

import (
	"testing"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompany(t *testing.T) {
	c, err := NewCompany("u-1", CreateCompanyRequest{Name: "  Acme Widgets, Inc. "})
	require.NoError(t, err)
	assert.Equal(t, "Acme Widgets, Inc.", c.Name)
	assert.Equal(t, "acme-widgets-inc", c.Slug)
	assert.True(t, c.IsActive)
	assert.True(t, c.IsOwnedBy("u-1"))

	_, err = NewCompany("", CreateCompanyRequest{Name: "Acme"})
	assert.True(t, errx.IsType(err, errx.TypeAuthorization))

	_, err = NewCompany("u-1", CreateCompanyRequest{Name: "!!!"})
	assert.True(t, errx.IsType(err, errx.TypeValidation))
}

func TestApplyUpdateRenames(t *testing.T) {
	c, err := NewCompany("u-1", CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	name := "Globex Corp"
	inactive := false
	require.NoError(t, c.ApplyUpdate(UpdateCompanyRequest{Name: &name, IsActive: &inactive}))
	assert.Equal(t, "globex-corp", c.Slug)
	assert.False(t, c.IsActive)

	blank := " "
	assert.Error(t, c.ApplyUpdate(UpdateCompanyRequest{Name: &blank}))
	assert.Equal(t, "Globex Corp", c.Name)
}
