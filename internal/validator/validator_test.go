package validator

import (
	"testing"

	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/stretchr/testify/assert"
)

type emailRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject"`
}

func TestValidateRequest(t *testing.T) {
	NewValidator()

	assert.NoError(t, ValidateRequest(emailRequest{To: "client@example.com"}))

	err := ValidateRequest(emailRequest{})
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
