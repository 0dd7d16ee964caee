package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,max=10"`
	Site  string `json:"site" validate:"omitempty,url"`
}

func TestValidate_Success(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Email: "user@test.com",
		Name:  "short",
	})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Email: "not-an-email",
		Name:  "",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok, "error must be *ValidationError")

	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "name")
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "This field is required", vErr.Errors["name"])
}

func TestValidate_URLAndMax(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Email: "user@test.com",
		Name:  "way too long for the limit",
		Site:  "not a url",
	})
	require.Error(t, err)

	vErr := err.(*ValidationError)
	assert.Equal(t, "Must be a valid URL", vErr.Errors["site"])
	assert.Contains(t, vErr.Errors["name"], "at most 10")
}
