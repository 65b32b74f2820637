package company

import (
	"net/http"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("COMPANY")

var (
	CodeCompanyNotFound         = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Company not found")
	CodeCompanyAlreadyExists    = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Company already exists")
	CodeInvalidName             = ErrRegistry.Register("INVALID_NAME", errx.TypeValidation, http.StatusBadRequest, "Company name must contain at least one letter or digit")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Only the creator can modify this company")
)

func ErrCompanyNotFound() *errx.Error {
	return ErrRegistry.New(CodeCompanyNotFound)
}

func ErrCompanyAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeCompanyAlreadyExists)
}

func ErrInvalidName() *errx.Error {
	return ErrRegistry.New(CodeInvalidName)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}
