package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-portal/internal/lib/validate"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"id": 1})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something went wrong")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something went wrong", resp.Error)
}

func TestValidationError(t *testing.T) {
	type form struct {
		Username string `validate:"required,login"`
		Email    string `validate:"required,email"`
		Status   string `validate:"required,oneof=new in_progress completed"`
	}

	v := validate.New()
	err := v.Struct(form{Username: "1bad", Email: "not-an-email", Status: "done"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Username must start with a latin letter")
	assert.Contains(t, resp.Error, "field Email must be a valid email address")
	assert.Contains(t, resp.Error, "field Status must be one of: new in_progress completed")
}
