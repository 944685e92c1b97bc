package sec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	t.Run("string password", func(t *testing.T) {
		t.Parallel()
		hash, err := HashPassword("hunter2")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
	})

	t.Run("byte slice password", func(t *testing.T) {
		t.Parallel()
		hash, err := HashPassword([]byte("hunter2"))
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
	})

	t.Run("over bcrypt length limit", func(t *testing.T) {
		t.Parallel()
		_, err := HashPassword(strings.Repeat("a", 73))
		assert.Error(t, err)
	})
}

func TestComparePassword(t *testing.T) {
	t.Parallel()

	password := "correcthorsebatterystaple"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, ComparePassword(password, hash))
	})

	t.Run("incorrect password", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, ComparePassword("tr0ub4dor&3", hash))
	})

	t.Run("garbage hash", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, ComparePassword(password, []byte("not a bcrypt hash")))
	})
}
