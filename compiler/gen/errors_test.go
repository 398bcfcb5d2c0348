package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("owned.derive", "Clone", "unknown derive")
	assert.Equal(t, `strtype: config error for "owned.derive" (value: Clone): unknown derive`, err.Error())
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.True(t, IsConfigError(err))
	assert.True(t, IsConfigError(fmt.Errorf("resolve: %w", err)))
	assert.False(t, IsConfigError(errors.New("other")))

	nilValue := NewConfigError("name", nil, "missing wrapper type name")
	assert.Equal(t, `strtype: config error for "name": missing wrapper type name`, nilValue.Error())
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewGenerationError("write", "token.go", "write file", cause)
	assert.Equal(t, "strtype: generation error in phase write (file: token.go): write file: disk full", err.Error())
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsGenerationError(err))

	require.ErrorAs(t, err, new(*GenerationError))
	assert.False(t, IsGenerationError(cause))
}
