package fileupload

import (
	"net/http"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("FILE")

// Error codes
var (
	CodeFileNotFound            = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
	CodeInvalidFileName         = ErrRegistry.Register("INVALID_NAME", errx.TypeValidation, http.StatusBadRequest, "Invalid file name")
	CodeFileTooLarge            = ErrRegistry.Register("TOO_LARGE", errx.TypeValidation, http.StatusRequestEntityTooLarge, "File exceeds the maximum size")
	CodeEmptyFile               = ErrRegistry.Register("EMPTY", errx.TypeValidation, http.StatusBadRequest, "File is empty")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeStorageFailed           = ErrRegistry.Register("STORAGE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Object storage operation failed")
	CodePresignNotSupported     = ErrRegistry.Register("PRESIGN_NOT_SUPPORTED", errx.TypeBusiness, http.StatusNotImplemented, "Direct uploads are not supported by this storage backend")
)

func ErrFileNotFound() *errx.Error {
	return ErrRegistry.New(CodeFileNotFound)
}

func ErrInvalidFileName() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileName)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge).WithDetail("max_bytes", MaxFileSize)
}

func ErrEmptyFile() *errx.Error {
	return ErrRegistry.New(CodeEmptyFile)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrStorageFailed() *errx.Error {
	return ErrRegistry.New(CodeStorageFailed)
}

func ErrPresignNotSupported() *errx.Error {
	return ErrRegistry.New(CodePresignNotSupported)
}
