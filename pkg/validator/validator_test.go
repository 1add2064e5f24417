package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email  string `validate:"required,email"`
	Rating int    `validate:"min=1,max=5"`
}

func TestValidateValid(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(&sample{Email: "a@b.com", Rating: 3}))
}

func TestValidateMessages(t *testing.T) {
	v := New()
	err := v.Validate(&sample{Email: "not-an-email", Rating: 9})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email must be a valid email")
	assert.Contains(t, err.Error(), "Rating must not exceed 5")
}
