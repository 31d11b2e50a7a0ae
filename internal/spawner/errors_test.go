package spawner

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpawnError_Format(t *testing.T) {
	cause := errors.New("locked")
	err := newRecordError("w-1", cause)
	assert.Equal(t, "RECORD_FAILED: recording wave (wave=w-1): locked", err.Error())

	err = newSolveError("solving capacity 5", nil)
	assert.Equal(t, "SOLVE_FAILED: solving capacity 5", err.Error())
}

func TestSpawnError_Predicates(t *testing.T) {
	wrapped := fmt.Errorf("cycle 3: %w", newSolveError("x", nil))
	assert.True(t, IsSolveError(wrapped))
	assert.False(t, IsRecordError(wrapped))

	assert.True(t, IsRecordError(newRecordError("w", nil)))
	assert.False(t, IsSolveError(errors.New("plain")))
}

func TestSpawnError_Unwrap(t *testing.T) {
	cause := errors.New("root")
	assert.ErrorIs(t, newSolveError("x", cause), cause)
}
