package errx

import "fmt"

// Code identifies a registered error
type Code struct {
	ID         string
	Type       Type
	HTTPStatus int
	Message    string
}

// Registry namespaces the error codes of one domain package
type Registry struct {
	prefix string
	codes  map[string]Code
}

// NewRegistry creates a registry whose codes are prefixed with prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[string]Code),
	}
}

// Register adds a code to the registry. Registering the same name twice panics.
func (r *Registry) Register(name string, errType Type, httpStatus int, message string) Code {
	id := fmt.Sprintf("%s_%s", r.prefix, name)
	if _, exists := r.codes[id]; exists {
		panic("errx: duplicate error code " + id)
	}

	code := Code{
		ID:         id,
		Type:       errType,
		HTTPStatus: httpStatus,
		Message:    message,
	}
	r.codes[id] = code
	return code
}

// New builds a fresh *Error for code
func (r *Registry) New(code Code) *Error {
	return &Error{
		Code:       code.ID,
		Type:       code.Type,
		Message:    code.Message,
		HTTPStatus: code.HTTPStatus,
	}
}

// NewWithCause builds an *Error for code wrapping cause
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	return r.New(code).WithCause(cause)
}
