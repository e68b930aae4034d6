package errs

import "fmt"

// Kind categorizes application errors for HTTP status mapping and batch
// error reporting.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// InvalidInput indicates the request was malformed (HTTP 400).
	InvalidInput
	// ReadFailed indicates a source document could not be read. Fatal for
	// that document only; batch processing continues with the next one.
	ReadFailed
	// ParsingFailed indicates the HTML could not be parsed (HTTP 500).
	ParsingFailed
	// RulesInvalid indicates the rule file could not be loaded.
	RulesInvalid
)

// AppError carries a category, user message, and original cause.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}
