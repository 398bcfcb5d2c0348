package strtype

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeError(t *testing.T) {
	t.Run("reports input length", func(t *testing.T) {
		err := NewDecodeError([]byte{0xff, 0xfe})
		assert.Equal(t, "strtype: input of 2 bytes is not valid UTF-8", err.Error())
	})

	t.Run("matches sentinel", func(t *testing.T) {
		err := NewDecodeError([]byte{0xff})
		assert.True(t, errors.Is(err, ErrDecode))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("unmarshal: %w", NewDecodeError([]byte{0xff}))
		assert.True(t, errors.Is(err, ErrDecode))
		assert.True(t, IsDecodeError(err))
	})

	t.Run("other errors do not match", func(t *testing.T) {
		assert.False(t, IsDecodeError(errors.New("boom")))
	})
}

func TestHash64(t *testing.T) {
	t.Run("equal input hashes identically", func(t *testing.T) {
		assert.Equal(t, Hash64([]byte("foo")), Hash64([]byte("foo")))
	})

	t.Run("distinct input hashes differently", func(t *testing.T) {
		assert.NotEqual(t, Hash64([]byte("foo")), Hash64([]byte("bar")))
	})
}
