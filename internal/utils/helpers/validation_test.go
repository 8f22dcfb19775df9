package helpers

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestValidationMessage(t *testing.T) {
	validate := validator.New()

	type form struct {
		Name     string `validate:"required"`
		Email    string `validate:"required,email"`
		Rating   int    `validate:"gte=1,lte=5"`
		Language string `validate:"oneof=english hindi other"`
	}

	err := validate.Struct(form{Email: "not-an-email", Rating: 9, Language: "latin"})
	require.Error(t, err)

	msg := ValidationMessage(err)
	require.Contains(t, msg, "field Name is required")
	require.Contains(t, msg, "field Email must be a valid email address")
	require.Contains(t, msg, "field Rating must be at most 5")
	require.Contains(t, msg, "field Language must be one of [english hindi other]")
}

func TestValidationMessage_PlainError(t *testing.T) {
	require.Equal(t, "boom", ValidationMessage(errors.New("boom")))
}
