package chat

// Validation error codes for rejected send requests.
const (
	ErrCodeMissingField   = "missing_field"
	ErrCodeInvalidType    = "invalid_type"
	ErrCodeEmptyField     = "empty_field"
	ErrCodeContentTooLong = "content_too_long"
)

// ValidationError wraps a code and human-readable message for a rejected
// client input. These are never retried and are surfaced verbatim.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationError(code, msg string) *ValidationError {
	return &ValidationError{Code: code, Message: msg}
}
