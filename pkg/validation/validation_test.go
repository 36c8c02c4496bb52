package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront/pkg/validation"
)

type form struct {
	Email string `validate:"required,email"`
	Age   int    `validate:"gte=0"`
}

var messages = validation.Messages{
	"Email.required": "email is required",
	"Email":          "bad email",
}

func TestCheck(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validation.Check(form{Email: "a@b.co"}, messages))
	})

	t.Run("precise key wins", func(t *testing.T) {
		err := validation.Check(form{}, messages)

		var vErr *validation.Error
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "email is required", vErr.Message)
		assert.Equal(t, "required", vErr.Tag)
	})

	t.Run("field fallback", func(t *testing.T) {
		err := validation.Check(form{Email: "nope"}, messages)

		assert.EqualError(t, err, "bad email")
	})

	t.Run("generic fallback", func(t *testing.T) {
		err := validation.Check(form{Email: "a@b.co", Age: -1}, messages)

		assert.EqualError(t, err, "invalid Age")
	})
}
