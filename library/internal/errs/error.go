package errs

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("you need to sign in before continuing")
	ErrForbidden       = errors.New("you are not authorized to perform this action")
)

// FieldBase marks a validation error that belongs to the record as a whole.
const FieldBase = "base"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FullMessage renders the error the way it is shown to API clients,
// e.g. "Title can't be blank". Base errors are rendered as is.
func (fe FieldError) FullMessage() string {
	if fe.Field == FieldBase || fe.Field == "" {
		return fe.Message
	}
	name := strings.ReplaceAll(fe.Field, "_", " ")
	return strings.ToUpper(name[:1]) + name[1:] + " " + fe.Message
}

// ValidationError collects field level failures. It is recoverable and is
// returned to the client as a list of messages.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

func (v *ValidationError) Add(field, message string) {
	v.Errors = append(v.Errors, FieldError{Field: field, Message: message})
}

func (v *ValidationError) Empty() bool {
	return v == nil || len(v.Errors) == 0
}

// Err returns nil when nothing was collected, so callers can write
// `return v.Err()` without leaking a typed nil into an error interface.
func (v *ValidationError) Err() error {
	if v.Empty() {
		return nil
	}
	return v
}

func (v *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(v.Errors))
	for _, fe := range v.Errors {
		msgs = append(msgs, fe.FullMessage())
	}
	return msgs
}

func (v *ValidationError) Error() string {
	return "validation failed: " + strings.Join(v.Messages(), ", ")
}

// DomainError is a rejected state transition, e.g. returning a book twice.
type DomainError struct {
	Message string
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

func (d *DomainError) Error() string {
	return d.Message
}
