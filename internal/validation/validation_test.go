package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luciancic/todo-api/internal/payload"
	"github.com/luciancic/todo-api/internal/validation"
)

func TestStruct(t *testing.T) {
	v, err := validation.New()
	require.NoError(t, err)

	t.Run("valid payload", func(t *testing.T) {
		err := v.Struct(payload.RegisterRequest{
			Email:    "a@x.com",
			Password: "p1secret",
		})
		assert.NoError(t, err)
	})

	t.Run("missing fields are reported by name", func(t *testing.T) {
		err := v.Struct(payload.RegisterRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Email")
		assert.Contains(t, err.Error(), "Password")
	})

	t.Run("malformed email", func(t *testing.T) {
		err := v.Struct(payload.RegisterRequest{
			Email:    "not-an-email",
			Password: "p1secret",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("short password", func(t *testing.T) {
		err := v.Struct(payload.RegisterRequest{
			Email:    "a@x.com",
			Password: "p1",
		})
		assert.Error(t, err)
	})
}
