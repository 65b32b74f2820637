package application

import (
	"testing"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsPending(t *testing.T) {
	app := New("u-1", ApplyRequest{JobID: "j-1", CoverLetter: "hello"}, CandidateSnapshot{FullName: "Ada"})

	assert.Equal(t, ApplicationStatusPending, app.Status)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, []string{}, app.Candidate.Skills)
	assert.True(t, app.IsOwnedBy("u-1"))
	assert.False(t, app.IsFinal())
}

func TestApplyReview(t *testing.T) {
	app := New("u-1", ApplyRequest{JobID: "j-1"}, CandidateSnapshot{})

	// transitions are unconstrained
	for _, s := range []ApplicationStatus{ApplicationStatusHired, ApplicationStatusPending, ApplicationStatusScheduledForInterview} {
		status := s
		require.NoError(t, app.ApplyReview(UpdateApplicationRequest{Status: &status}))
		assert.Equal(t, s, app.Status)
	}

	bad := ApplicationStatus("ghosted")
	rating := 4
	err := app.ApplyReview(UpdateApplicationRequest{Status: &bad, Rating: &rating})
	assert.True(t, errx.IsType(err, errx.TypeValidation))
	assert.Nil(t, app.Rating)

	tooHigh := 6
	err = app.ApplyReview(UpdateApplicationRequest{Rating: &tooHigh})
	assert.True(t, errx.IsType(err, errx.TypeValidation))

	notes := "strong systems background"
	require.NoError(t, app.ApplyReview(UpdateApplicationRequest{Rating: &rating, Notes: &notes}))
	assert.Equal(t, 4, *app.Rating)
	assert.Equal(t, notes, app.Notes)
}
