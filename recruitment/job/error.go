package job

import (
	"net/http"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound             = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeJobAlreadyExists        = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Job already exists")
	CodeInvalidTitle            = ErrRegistry.Register("INVALID_TITLE", errx.TypeValidation, http.StatusBadRequest, "Job title must contain letters or digits")
	CodeInvalidStatus           = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid job status")
	CodeInvalidJobType          = ErrRegistry.Register("INVALID_JOB_TYPE", errx.TypeValidation, http.StatusBadRequest, "Invalid job type")
	CodeInvalidExperienceLevel  = ErrRegistry.Register("INVALID_EXPERIENCE_LEVEL", errx.TypeValidation, http.StatusBadRequest, "Invalid experience level")
	CodeInvalidSalary           = ErrRegistry.Register("INVALID_SALARY", errx.TypeValidation, http.StatusBadRequest, "Invalid salary range")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeUnauthorizedUpdate      = ErrRegistry.Register("UNAUTHORIZED_UPDATE", errx.TypeAuthorization, http.StatusForbidden, "Unauthorized to update this job")
	CodeCompanyRequired         = ErrRegistry.Register("COMPANY_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Job must reference an existing company")
	CodeTooManyViews            = ErrRegistry.Register("TOO_MANY_VIEWS", errx.TypeBusiness, http.StatusTooManyRequests, "Too many view events, slow down")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrJobAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeJobAlreadyExists)
}

func ErrInvalidTitle() *errx.Error {
	return ErrRegistry.New(CodeInvalidTitle)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrInvalidJobType() *errx.Error {
	return ErrRegistry.New(CodeInvalidJobType)
}

func ErrInvalidExperienceLevel() *errx.Error {
	return ErrRegistry.New(CodeInvalidExperienceLevel)
}

func ErrInvalidSalary() *errx.Error {
	return ErrRegistry.New(CodeInvalidSalary)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrUnauthorizedUpdate() *errx.Error {
	return ErrRegistry.New(CodeUnauthorizedUpdate)
}

func ErrCompanyRequired() *errx.Error {
	return ErrRegistry.New(CodeCompanyRequired)
}

func ErrTooManyViews() *errx.Error {
	return ErrRegistry.New(CodeTooManyViews)
}
