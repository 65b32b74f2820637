package savedjob

import (
	"net/http"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("SAVED_JOB")

// Error codes
var (
	CodeSavedJobNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Saved job not found")
	CodeAlreadySaved     = ErrRegistry.Register("ALREADY_SAVED", errx.TypeConflict, http.StatusConflict, "Job already saved")
	CodeInvalidRequest   = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

func ErrSavedJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeSavedJobNotFound)
}

func ErrAlreadySaved() *errx.Error {
	return ErrRegistry.New(CodeAlreadySaved).WithDetail("invariant", "unique_saved_job")
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
