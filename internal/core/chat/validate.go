package chat

import (
	"fmt"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/gab/internal/core/validate"
)

// ValidateMessage checks that neither author nor body is blank. Any other
// text is accepted as is. The returned error wraps ErrValidation and a
// criterio.FieldErrors naming each offending field.
func ValidateMessage(author, body string) error {
	var errs criterio.FieldErrorsBuilder

	if err := validate.Author(author); err != nil {
		errs = errs.Append("author", err)
	}
	if err := validate.MessageBody(body); err != nil {
		errs = errs.Append("body", err)
	}

	if err := errs.ToError(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
