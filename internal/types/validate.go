package types

import (
	"github.com/go-playground/validator/v10"
	ierr "github.com/paperstack/paperstack/internal/errors"
)

var structValidator = validator.New()

func validateStruct(v any) error {
	if err := structValidator.Struct(v); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation)
	}
	return nil
}
