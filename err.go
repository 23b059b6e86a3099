package cards

import "fmt"

// Error is a structured error from CardsAPI.
type Error struct {
	HTTP    int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Code, e.Message)
}

// NotFound indicates that no entity exists for the given id or name.
func notFound(format string, args ...interface{}) *Error {
	return &Error{
		HTTP:    404,
		Code:    "NotFound",
		Message: fmt.Sprintf(format, args...),
	}
}

// DuplicateName indicates a unique-name constraint violation.
func duplicateName(format string, args ...interface{}) *Error {
	return &Error{
		HTTP:    409,
		Code:    "DuplicateName",
		Message: fmt.Sprintf(format, args...),
	}
}

// Validation indicates a malformed or constraint-violating request.
func validation(format string, args ...interface{}) *Error {
	return &Error{
		HTTP:    400,
		Code:    "ValidationError",
		Message: fmt.Sprintf(format, args...),
	}
}

// BadReference indicates a player pointing at a nonexistent monster card.
func badReference(format string, args ...interface{}) *Error {
	return &Error{
		HTTP:    400,
		Code:    "ReferenceError",
		Message: fmt.Sprintf(format, args...),
	}
}

// TemplateMissing indicates that a display variant's template file is absent.
func templateMissing(format string, args ...interface{}) *Error {
	return &Error{
		HTTP:    500,
		Code:    "TemplateMissing",
		Message: fmt.Sprintf(format, args...),
	}
}

// ImageProcessing indicates a card image that exists but cannot be decoded
// or resized.
func imageProcessing(format string, args ...interface{}) *Error {
	return &Error{
		HTTP:    500,
		Code:    "ImageProcessingError",
		Message: fmt.Sprintf(format, args...),
	}
}
