package errs_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/library-management/library/internal/errs"
)

func TestFieldError_FullMessage(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fe   errs.FieldError
		want string
	}{
		{errs.FieldError{Field: "title", Message: "can't be blank"}, "Title can't be blank"},
		{errs.FieldError{Field: "available_copies", Message: "cannot exceed total copies"}, "Available copies cannot exceed total copies"},
		{errs.FieldError{Field: errs.FieldBase, Message: "You have already borrowed this book"}, "You have already borrowed this book"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.fe.FullMessage())
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	v := &errs.ValidationError{}
	require.NoError(t, v.Err())

	v.Add("book", "is not available")
	err := errors.Wrap(v.Err(), "CreateBorrowing")
	require.ErrorAs(t, err, new(*errs.ValidationError))
	var derr *errs.DomainError
	require.False(t, errors.As(err, &derr))
	require.Equal(t, []string{"Book is not available"}, v.Messages())

	require.ErrorAs(t, errors.Wrap(errs.NewDomainError("Book has already been returned"), "return"), &derr)
	require.Equal(t, "Book has already been returned", derr.Message)
}
