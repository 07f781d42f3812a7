package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniket045123/craftmyresume/internal/domain"
)

type form struct {
	Name   string `json:"fullName" validate:"notblank,max=5"`
	Email  string `json:"email" validate:"omitempty,email"`
	Hidden string `json:"-" validate:"omitempty,max=1"`
}

func TestValidator_Struct(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(form{Name: "Asha"}))

	err := v.Struct(form{Name: "   ", Email: "nope", Hidden: "xx"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []domain.FieldIssue{
		{Field: "fullName", Message: "is required"},
		{Field: "email", Message: "must be a valid email address"},
		{Field: "Hidden", Message: "must be at most 1 characters"},
	}, verr.Issues)
}

func TestValidator_Max(t *testing.T) {
	err := New().Struct(form{Name: "Alexandra"})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "must be at most 5 characters", verr.Issues[0].Message)
}
