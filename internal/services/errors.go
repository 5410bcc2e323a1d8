package services

import "errors"

// Pipeline error kinds. Each is scoped to a single document: a failed item
// never aborts the rest of its batch.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrCorruptDocument   = errors.New("corrupt document")
	ErrCompletionAPI     = errors.New("completion API request failed")
	ErrUnparsable        = errors.New("completion response does not match expected format")
)

// ErrorKind maps a pipeline error to the stable identifier reported to
// clients.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, ErrCorruptDocument):
		return "corrupt_document"
	case errors.Is(err, ErrCompletionAPI):
		return "api_error"
	case errors.Is(err, ErrUnparsable):
		return "parse_error"
	default:
		return "internal_error"
	}
}
